package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ActionCreateProduct     = "CREATE_PRODUCT"
	ActionUpdateProduct     = "UPDATE_PRODUCT"
	ActionDeleteProduct     = "DELETE_PRODUCT"
	ActionCreateImport      = "CREATE_IMPORT"
	ActionUpdateImportSpend = "UPDATE_IMPORT_INVESTMENT"
	ActionUpdateInvestment  = "UPDATE_INVESTMENT"
	ActionUpdateExpenses    = "UPDATE_EXPENSES"
	ActionUpdateAverageCPA  = "UPDATE_AVERAGE_CPA"
)

// AuditLog tracks who changed what and when
type AuditLog struct {
	ID         string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Actor      string    `gorm:"type:varchar(100);index" json:"actor"` // token subject, empty when auth is off
	Action     string    `gorm:"type:varchar(50);not null;index" json:"action"`
	EntityID   string    `gorm:"type:varchar(50);index" json:"entity_id"`
	EntityName string    `gorm:"type:varchar(255)" json:"entity_name,omitempty"`
	Details    string    `gorm:"type:text" json:"details"` // serialized JSON payload of the action
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
}

func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// StateBlob is one versioned key-value record holding a serialized workspace.
type StateBlob struct {
	Key       string    `gorm:"column:state_key;type:varchar(100);primaryKey" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}
