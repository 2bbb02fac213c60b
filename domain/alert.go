package domain

import "time"

const (
	AlertTypeCritical = "critical"
	AlertTypeWarning  = "warning"
	AlertTypeInfo     = "info"
)

// Alert is derived from the current snapshot set on demand; it is not persisted.
type Alert struct {
	Type          string    `json:"type"`
	SKU           string    `json:"sku"`
	Message       string    `json:"message"`
	Severity      string    `json:"severity"`
	PriorityScore float64   `json:"priority_score"`
	CreatedAt     time.Time `json:"created_at"`
}
