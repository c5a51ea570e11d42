package types

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Policy lifecycle markers. Status is set by calling code before the policy
// service is invoked, never by the service itself.
const (
	PolicyStatusIdle      = 1
	PolicyStatusActive    = 2
	PolicyStatusSuspended = 4
	PolicyStatusExpired   = 8

	PolicyStageNew     = "N"
	PolicyStageRenewed = "R"
)

type Policy struct {
	ID         uint            `gorm:"primaryKey;autoIncrement" json:"id" mapstructure:"id"`
	UUID       uuid.UUID       `gorm:"type:uuid;uniqueIndex;column:uuid" json:"uuid" mapstructure:"uuid"`
	Stage      string          `gorm:"column:stage;size:1" json:"stage" mapstructure:"stage"`
	Status     int             `gorm:"column:status" json:"status" mapstructure:"status"`
	EnrollDate *time.Time      `gorm:"column:enroll_date" json:"enroll_date" mapstructure:"enroll_date"`
	StartDate  *time.Time      `gorm:"column:start_date" json:"start_date" mapstructure:"start_date"`
	ExpiryDate *time.Time      `gorm:"column:expiry_date" json:"expiry_date" mapstructure:"expiry_date"`
	Value      decimal.Decimal `gorm:"column:policy_value;type:numeric(18,2)" json:"value" mapstructure:"value"`
	ProductID  uint            `gorm:"column:product_id;index" json:"product_id" mapstructure:"product_id"`
	FamilyID   uint            `gorm:"column:family_id;index" json:"family_id" mapstructure:"family_id"`
	OfficerID  uint            `gorm:"column:officer_id" json:"officer_id" mapstructure:"officer_id"`
	Audit      `mapstructure:",squash"`
}

func (Policy) TableName() string {
	return "tblPolicy"
}

func (p *Policy) BeforeCreate(tx *gorm.DB) error {
	if p.UUID == uuid.Nil {
		p.UUID = uuid.New()
	}
	return nil
}
