package model

// CategoryBreakdownEntry is one per-category line of the reconciled
// price breakdown. Derived fresh per document, never persisted.
type CategoryBreakdownEntry struct {
	Category  string  `json:"category"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	LineTotal float64 `json:"line_total"`
}

type Customer struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// ReconciledPricing is the canonical price view of one booking,
// constructed once at the start of document composition and immutable
// afterwards. ConvenienceFee is the pre-tax portion of the stored
// tax-inclusive fee; Tax is the 18% GST carved out of it.
type ReconciledPricing struct {
	BasePrice      float64                  `json:"base_price"`
	ConvenienceFee float64                  `json:"convenience_fee"`
	Tax            float64                  `json:"tax"`
	TotalPrice     float64                  `json:"total_price"`
	Breakdown      []CategoryBreakdownEntry `json:"breakdown"`
	Customer       Customer                 `json:"customer"`
	// EventDate/EventTime are the resolved, display-ready date and time
	// after applying the recurring-event occurrence rules.
	EventDate string `json:"event_date"`
	EventTime string `json:"event_time"`
}
