package values

// InvalidReason explains why an enabled configuration cannot be submitted.
type InvalidReason string

const (
	// ReasonNone is used when the configuration is valid
	ReasonNone InvalidReason = ""
	// ReasonMissingName means personalization is on but the text is blank
	ReasonMissingName InvalidReason = "missing_name"
	// ReasonMissingOption means a catalog group has no selection
	ReasonMissingOption InvalidReason = "missing_option"
)

// Lifecycle is the bookkeeping state of a configuration store.
type Lifecycle string

const (
	// LifecycleIdle is the state before any mutation
	LifecycleIdle Lifecycle = "idle"
	// LifecycleLive is entered on the first mutation or rehydration and never left
	LifecycleLive Lifecycle = "live"
)
