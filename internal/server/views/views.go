// Package views shapes persisted rows for read-only consumption. Nothing in
// this package ever exposes a password hash.
package views

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/antonk9218/paybuddy/internal/server/models"
)

// UnknownReceiver is substituted for the receiver email when the receiver
// row no longer exists at read time.
const UnknownReceiver = "unknown"

const emailMask = "****"

// User is the display-safe shape of a user row.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Connection is an enriched edge: the owner's display name plus the
// counterparty's email and display name.
type Connection struct {
	UserID         int64  `json:"userId"`
	ConnectionID   int64  `json:"connectionId"`
	MyUsername     string `json:"myUsername"`
	FriendEmail    string `json:"friendEmail"`
	FriendUsername string `json:"friendUsername"`
}

// Transaction is a ledger row enriched with the receiver's email, resolved
// at read time rather than stored on the row.
type Transaction struct {
	ID            int64           `json:"id"`
	SenderID      int64           `json:"senderId"`
	ReceiverEmail string          `json:"receiverEmail"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	FeePercent    decimal.Decimal `json:"feePercent"`
}

// PublicUser converts a user row to its public shape.
func PublicUser(u *models.User) User {
	return User{ID: u.ID, Username: u.Username, Email: u.Email}
}

// MaskedUser converts a user row to its public shape with the email masked.
func MaskedUser(u *models.User) User {
	return User{ID: u.ID, Username: u.Username, Email: MaskEmail(u.Email)}
}

// MaskEmail hides the local part of an email, keeping only its first
// character and the domain: "jane@x.com" becomes "j****@x.com". An empty or
// single-character local part becomes a single mask character. Input
// without '@' is passed through unchanged.
func MaskEmail(email string) string {
	at := strings.IndexByte(email, '@')
	if at < 0 {
		return email
	}

	local, domain := email[:at], email[at:]
	if len(local) <= 1 {
		return "*" + domain
	}
	return local[:1] + emailMask + domain
}
