package domain

import (
	"time"

	"gorm.io/datatypes"
)

const (
	ApprovalLevelAuto      = "auto_approved"
	ApprovalLevelManager   = "manager"
	ApprovalLevelDirector  = "director"
	ApprovalLevelExecutive = "executive"
)

const (
	ApprovalStatusPending  = "pending"
	ApprovalStatusApproved = "approved"
	ApprovalStatusRejected = "rejected"
)

// PriceApproval is one pending or decided price change in the sign-off queue.
// Context keeps the recommendation details (tags, rule trace) for the reviewer.
type PriceApproval struct {
	ID               uint              `gorm:"primaryKey" json:"id"`
	SKU              string            `gorm:"column:sku;not null" json:"sku"`
	ProductName      string            `gorm:"column:product_name" json:"product_name"`
	CurrentPrice     float64           `gorm:"column:current_price;type:numeric" json:"current_price"`
	RecommendedPrice float64           `gorm:"column:recommended_price;type:numeric" json:"recommended_price"`
	ChangePct        float64           `gorm:"column:change_pct;type:numeric" json:"change_pct"`
	MarginPct        float64           `gorm:"column:margin_pct;type:numeric" json:"margin_pct"`
	RequiredLevel    string            `gorm:"column:required_level;not null" json:"required_level"`
	Status           string            `gorm:"column:status;default:pending" json:"status"`
	DecidedBy        string            `gorm:"column:decided_by" json:"decided_by,omitempty"`
	Notes            string            `gorm:"column:notes" json:"notes,omitempty"`
	Context          datatypes.JSONMap `gorm:"column:context;type:jsonb" json:"context"`
	CreatedAt        time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	DecidedAt        *time.Time        `gorm:"column:decided_at" json:"decided_at,omitempty"`
}

func (PriceApproval) TableName() string {
	return "price_approvals"
}

type WorkflowStats struct {
	Pending       int64 `json:"pending"`
	Approved      int64 `json:"approved"`
	Rejected      int64 `json:"rejected"`
	ManagerQueue  int64 `json:"manager_queue"`
	DirectorQueue int64 `json:"director_queue"`
	ExecQueue     int64 `json:"executive_queue"`
}
