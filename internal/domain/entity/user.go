package entity

import "time"

// Roles stored on the user row. Authorization reads this column; there is no
// parallel allow-list.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Account provenance.
const (
	ProviderLocal  = "local"
	ProviderGoogle = "google"
)

// User is the aggregate root for the account domain.
// Passwords are stored as bcrypt hashes in PasswordHash; the field is empty
// for accounts created through Google. Exactly one of PasswordHash/GoogleID
// is set at creation, but a local account may later gain a GoogleID when the
// same verified email logs in through Google (merge-on-email).
type User struct {
	ID           string
	Email        string
	Username     string
	PasswordHash string
	GoogleID     string
	Provider     string
	Role         string
	IsVerified   bool

	// Pending email verification, cleared on success. At most one token is
	// outstanding per user; resending overwrites it.
	VerificationToken   string
	VerificationExpires time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsAdmin reports whether the stored role grants admin access.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
