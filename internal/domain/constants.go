package domain

// Default configuration values
const (
	DefaultSlotGranularityMinutes = 15
)

// Business validation constants
const (
	MinSlotGranularityMinutes   = 5
	MaxSlotGranularityMinutes   = 240 // 4 hours
	MaxCustomerNameLength       = 200
	MaxCustomerEmailLength      = 254
	MaxCustomerCompanyLength    = 200
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "2006-01-02T15:04:05Z07:00" // RFC 3339
	DateFormat = "2006-01-02"                // YYYY-MM-DD
)
