package values

import "fmt"

// Mode is the page context a configurator instance runs in.
// It is fixed for the lifetime of the instance.
type Mode string

const (
	// ModePrePurchase configures before the base product is added to the cart
	ModePrePurchase Mode = "pre_purchase"
	// ModePostPurchase retrofits a configuration onto an existing cart line
	ModePostPurchase Mode = "post_purchase"
)

// Validate returns an error if the mode value is invalid
func (m Mode) Validate() error {
	switch m {
	case ModePrePurchase, ModePostPurchase:
		return nil
	default:
		return fmt.Errorf("invalid mode: %q", string(m))
	}
}

// Persists reports whether this mode writes configuration snapshots.
func (m Mode) Persists() bool {
	return m == ModePrePurchase
}

// Rehydrates reports whether this mode restores a snapshot at mount.
func (m Mode) Rehydrates() bool {
	return m == ModePostPurchase
}

// String returns the string representation
func (m Mode) String() string {
	return string(m)
}
