package dto

// QuoteLine is an addon line in a quote.
type QuoteLine struct {
	VariantID string `json:"variant_id" yaml:"variant_id"`
	Group     string `json:"group" yaml:"group"`
	Value     string `json:"value" yaml:"value"`
	Parent    string `json:"parent" yaml:"parent"`
	Quantity  int    `json:"quantity" yaml:"quantity"`
}

// QuoteResponse is the rendered result of evaluating a configuration.
type QuoteResponse struct {
	Properties    map[string]string `json:"properties,omitempty" yaml:"properties,omitempty"`
	Style         map[string]string `json:"style,omitempty" yaml:"style,omitempty"`
	Subject       string            `json:"subject" yaml:"subject"`
	Mode          string            `json:"mode" yaml:"mode"`
	Lifecycle     string            `json:"lifecycle" yaml:"lifecycle"`
	Price         string            `json:"price" yaml:"price"`
	InvalidReason string            `json:"invalid_reason,omitempty" yaml:"invalid_reason,omitempty"`
	InvalidGroup  string            `json:"invalid_group,omitempty" yaml:"invalid_group,omitempty"`
	PreviewText   string            `json:"preview_text" yaml:"preview_text"`
	Lines         []QuoteLine       `json:"lines" yaml:"lines"`
	PriceCents    int64             `json:"price_cents" yaml:"price_cents"`
	Valid         bool              `json:"valid" yaml:"valid"`
	Enabled       bool              `json:"enabled" yaml:"enabled"`
}
