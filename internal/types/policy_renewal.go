package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PolicyRenewal is a pending renewal generated by the batch that scans for
// expiring policies. It points at the policy being replaced, the product the
// new policy should use and the head insuree of the family.
type PolicyRenewal struct {
	ID           uint       `gorm:"primaryKey;autoIncrement" json:"id" mapstructure:"id"`
	UUID         uuid.UUID  `gorm:"type:uuid;uniqueIndex;column:uuid" json:"uuid" mapstructure:"uuid"`
	RenewalDate  *time.Time `gorm:"column:renewal_date" json:"renewal_date" mapstructure:"renewal_date"`
	InsureeID    uint       `gorm:"column:insuree_id" json:"insuree_id" mapstructure:"insuree_id"`
	PolicyID     uint       `gorm:"column:policy_id;index" json:"policy_id" mapstructure:"policy_id"`
	NewProductID uint       `gorm:"column:new_product_id" json:"new_product_id" mapstructure:"new_product_id"`
	NewOfficerID *uint      `gorm:"column:new_officer_id" json:"new_officer_id" mapstructure:"new_officer_id"`
	Audit        `mapstructure:",squash"`
}

func (PolicyRenewal) TableName() string {
	return "tblPolicyRenewals"
}

func (r *PolicyRenewal) BeforeCreate(tx *gorm.DB) error {
	if r.UUID == uuid.Nil {
		r.UUID = uuid.New()
	}
	return nil
}
