package models

import "time"

// User represents one registered storefront account. Email is the natural
// lookup key and is guarded by a store-level unique index; the registration
// flow's own duplicate check is advisory only.
type User struct {
	BaseModel

	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`

	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`

	// OTP and OTPExpiry are meaningful only as a pair; both nil when no
	// verification challenge is outstanding.
	IsEmailVerified bool       `gorm:"default:false" json:"is_email_verified"`
	OTP             *string    `json:"-"`
	OTPExpiry       *time.Time `json:"-"`
}

// HasPendingOTP reports whether a verification challenge is on record.
func (u *User) HasPendingOTP() bool {
	return u.OTP != nil && u.OTPExpiry != nil
}
