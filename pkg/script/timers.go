package script

import (
	"sort"
	"sync"
	"time"

	"github.com/dop251/goja"
)

// minInterval is the smallest delay setInterval accepts.
const minInterval = 4 * time.Millisecond

// timer is a scheduled setTimeout or setInterval callback.
type timer struct {
	id       int
	callback goja.Callable
	args     []goja.Value
	due      time.Time
	interval time.Duration // 0 for setTimeout
	cleared  bool
}

// timerManager keeps the pending timers. Callbacks only run on the loop
// goroutine; the mutex lets other goroutines ask whether work is pending.
type timerManager struct {
	timers map[int]*timer
	nextID int
	mu     sync.Mutex
	now    func() time.Time
}

func newTimerManager() *timerManager {
	return &timerManager{
		timers: make(map[int]*timer),
		nextID: 1,
		now:    time.Now,
	}
}

func (tm *timerManager) add(callback goja.Callable, delay, interval time.Duration, args []goja.Value) int {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	id := tm.nextID
	tm.nextID++
	tm.timers[id] = &timer{
		id:       id,
		callback: callback,
		args:     args,
		due:      tm.now().Add(delay),
		interval: interval,
	}
	return id
}

func (tm *timerManager) setTimeout(callback goja.Callable, delay time.Duration, args []goja.Value) int {
	return tm.add(callback, delay, 0, args)
}

func (tm *timerManager) setInterval(callback goja.Callable, interval time.Duration, args []goja.Value) int {
	if interval < minInterval {
		interval = minInterval
	}
	return tm.add(callback, interval, interval, args)
}

func (tm *timerManager) clear(id int) {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	if t, ok := tm.timers[id]; ok {
		t.cleared = true
		delete(tm.timers, id)
	}
}

func (tm *timerManager) clearAll() {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	for id, t := range tm.timers {
		t.cleared = true
		delete(tm.timers, id)
	}
}

// due removes and returns the timers whose time has come, ordered by due
// time and then by id. Interval timers are rescheduled instead of removed.
func (tm *timerManager) due() []*timer {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	now := tm.now()
	var out []*timer
	for _, t := range tm.timers {
		if !t.due.After(now) {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].due.Equal(out[j].due) {
			return out[i].id < out[j].id
		}
		return out[i].due.Before(out[j].due)
	})
	for _, t := range out {
		if t.interval > 0 {
			t.due = now.Add(t.interval)
		} else {
			delete(tm.timers, t.id)
		}
	}
	return out
}

// process runs every due timer. A timer cleared by an earlier callback in
// the same batch is skipped.
func (tm *timerManager) process(run func(*timer)) {
	for _, t := range tm.due() {
		tm.mu.Lock()
		cleared := t.cleared
		tm.mu.Unlock()
		if cleared {
			continue
		}
		run(t)
	}
}

func (tm *timerManager) pending() int {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	return len(tm.timers)
}

// next returns the delay until the earliest timer and false when no timer is
// pending.
func (tm *timerManager) next() (time.Duration, bool) {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	if len(tm.timers) == 0 {
		return 0, false
	}
	now := tm.now()
	first := time.Duration(-1)
	for _, t := range tm.timers {
		d := t.due.Sub(now)
		if d <= 0 {
			return 0, true
		}
		if first < 0 || d < first {
			first = d
		}
	}
	return first, true
}
