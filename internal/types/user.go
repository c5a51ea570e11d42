package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// User is an interactive or enrollment-officer account. Rights holds the
// numeric permission codes granted to the account, stored as a JSON array.
type User struct {
	ID        uint                        `gorm:"primaryKey;autoIncrement" json:"id"`
	UUID      uuid.UUID                   `gorm:"type:uuid;uniqueIndex;column:uuid" json:"uuid"`
	Username  string                      `gorm:"column:username;uniqueIndex;size:64" json:"username"`
	Password  string                      `gorm:"column:password" json:"-"`
	Rights    datatypes.JSONSlice[string] `gorm:"column:rights" json:"rights"`
	OfficerID *uint                       `gorm:"column:officer_id" json:"officer_id"`
	CreatedAt time.Time                   `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time                   `gorm:"not null" json:"updated_at"`
}

func (User) TableName() string {
	return "core_user"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.UUID == uuid.Nil {
		u.UUID = uuid.New()
	}
	return nil
}

// HasRights reports whether the user holds every right code in the group.
func (u *User) HasRights(group []string) bool {
	if u == nil {
		return false
	}
	held := make(map[string]struct{}, len(u.Rights))
	for _, r := range u.Rights {
		held[r] = struct{}{}
	}
	for _, want := range group {
		if _, ok := held[want]; !ok {
			return false
		}
	}
	return true
}
