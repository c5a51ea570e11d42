package types

import (
	"time"
)

// Audit carries the validity/audit columns shared by every legacy table.
// A row with a nil ValidityTo is the live version of the record.
type Audit struct {
	ValidityFrom time.Time  `gorm:"column:validity_from;not null" json:"validity_from" mapstructure:"validity_from"`
	ValidityTo   *time.Time `gorm:"column:validity_to" json:"validity_to" mapstructure:"validity_to"`
	AuditUserID  int        `gorm:"column:audit_user_id" json:"audit_user_id" mapstructure:"audit_user_id"`
}

// MutationError is the error shape surfaced by every mutation: a fixed
// message code plus free-form detail.
type MutationError struct {
	Message string `json:"message"`
	Detail  string `json:"detail"`
}
