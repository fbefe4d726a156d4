package catalog

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Image       string    `json:"image"`
	Price       string    `json:"price"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

type TimeFrame struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Discount records are stored as submitted; no rule evaluation happens here.
type Discount struct {
	ID                   uuid.UUID `json:"id"`
	Code                 string    `json:"code"`
	Type                 string    `json:"type"`
	Value                float64   `json:"value"`
	StartDate            time.Time `json:"startDate"`
	EndDate              time.Time `json:"endDate"`
	TimeFrame            TimeFrame `json:"timeFrame"`
	MinimumOrderValue    float64   `json:"minimumOrderValue"`
	MinimumItems         int       `json:"minimumItems"`
	ApplicableCategories []string  `json:"applicableCategories"`
	UsageLimit           int       `json:"usageLimit"`
	CreatedAt            time.Time `json:"createdAt"`
}
