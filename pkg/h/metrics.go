package h

// BindingKind identifies what a reactive binding writes to.
type BindingKind string

const (
	BindingProperty BindingKind = "property"
	BindingStyle    BindingKind = "style"
	BindingChild    BindingKind = "child"
)

// Metrics receives builder activity. pkg/metrics provides a Prometheus
// implementation.
type Metrics interface {
	// ElementBuilt is called once per element created from a selector.
	ElementBuilt()

	// BindingAdded is called when a subscription is queued for cleanup.
	BindingAdded(kind BindingKind)

	// BindingUpdated is called each time a binding applies an emission.
	BindingUpdated(kind BindingKind)

	// Cleaned is called after Cleanup with the number of callbacks run.
	Cleaned(callbacks int)
}

type nopMetrics struct{}

func (nopMetrics) ElementBuilt() {}
func (nopMetrics) BindingAdded(BindingKind) {}
func (nopMetrics) BindingUpdated(BindingKind) {}
func (nopMetrics) Cleaned(int) {}
