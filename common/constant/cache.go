package constant

import "time"

const (
	OccurrenceCategoryKey = "occurrence_category:%s"
	InvoiceBookingKey     = "invoice:%s"
)

const (
	OccurrenceCategoryTTL = 10 * time.Minute
)
