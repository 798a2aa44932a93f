package constant

// ImportantNotices is the fixed notices block printed at the bottom of
// every ticket document.
var ImportantNotices = []string{
	"Please carry a valid government-issued photo ID along with this ticket.",
	"Entry is permitted only once per ticket; re-entry is not allowed.",
	"Tickets once booked cannot be exchanged, cancelled or refunded.",
	"The QR code on this ticket will be scanned at the venue entrance.",
}

const (
	GeneralCategoryName   = "General"
	GeneralAdmissionName  = "General Admission"
	GuestCustomerFallback = "Guest User"
	DateTBA               = "TBA"
)

const (
	// ConvenienceFeeTaxRate is the GST rate the stored convenience fee
	// is assumed to already include.
	ConvenienceFeeTaxRate = 0.18
)
