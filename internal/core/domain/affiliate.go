package domain

import "time"

// ConversionStatus tracks whether a commission has been paid out.
type ConversionStatus string

const (
	ConversionPending ConversionStatus = "pending"
	ConversionPaid    ConversionStatus = "paid"
)

// Conversion is a shop order attributed to an affiliate code. Conversions are
// written by the shop integration, never by this service.
type Conversion struct {
	AffiliateCode string
	ProductID     string
	Amount        float64
	Commission    float64
	Status        ConversionStatus
	CreatedAt     time.Time
}

// RevenuePoint is cumulative commission up to Date.
type RevenuePoint struct {
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
}

// AffiliateStats is the affiliate dashboard summary.
type AffiliateStats struct {
	TotalEarnings     float64        `json:"totalEarnings"`
	PendingPayout     float64        `json:"pendingPayout"`
	RecentConversions int            `json:"recentConversions"`
	Revenue           []RevenuePoint `json:"revenue"`
}
