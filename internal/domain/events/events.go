// Package events defines the notifications the configurator broadcasts to the page.
// Payload shapes are the full contract; listeners must not expect more fields.
package events

import "github.com/reglet-dev/stitch/internal/domain/values"

// Topic names a notification channel.
type Topic string

const (
	TopicToggled       Topic = "personalization:toggled"
	TopicOptionChanged Topic = "personalization:option-changed"
	TopicCartUpdated   Topic = "cart:updated"
	TopicCartError     Topic = "cart:error"
)

// Event is a notification with a topic and payload.
type Event interface {
	Topic() Topic
}

// Toggled is published when personalization is switched on or off.
type Toggled struct {
	Context values.Mode `json:"context"`
	Enabled bool        `json:"enabled"`
}

// OptionChanged is published when a value is selected within a group.
type OptionChanged struct {
	Group   string      `json:"group"`
	Value   string      `json:"value"`
	Context values.Mode `json:"context"`
}

// CartUpdated carries the cart returned by a successful submission.
type CartUpdated struct {
	CartData any `json:"cartData"`
}

// CartError reports a failed submission.
type CartError struct {
	Error  error  `json:"-"`
	Source string `json:"source"`
}

func (Toggled) Topic() Topic       { return TopicToggled }
func (OptionChanged) Topic() Topic { return TopicOptionChanged }
func (CartUpdated) Topic() Topic   { return TopicCartUpdated }
func (CartError) Topic() Topic     { return TopicCartError }
