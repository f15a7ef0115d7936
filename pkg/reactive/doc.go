// Package reactive defines the Observable capability the builder binds to,
// along with a small set of implementations.
//
// An Observable has two operations: read the current value, and subscribe a
// callback to future values. Subscribing returns an Unsubscribe that ends the
// subscription permanently.
//
//	count := reactive.NewSignal(0)
//	label := reactive.Map(count, func(v any) any { return fmt.Sprintf("%d clicks", v) })
//
//	stop := label.Subscribe(func(v any) { fmt.Println(v) })
//	count.Set(1) // prints "1 clicks"
//	stop()
//
// Func adapts any other reactive primitive by supplying the two operations
// as closures.
package reactive
