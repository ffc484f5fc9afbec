package models

import "github.com/shopspring/decimal"

// MaxDescriptionLength is the cap on a transaction description. Longer
// input is truncated, not rejected.
const MaxDescriptionLength = 255

// DefaultFeePercent is applied whenever a transaction is created without
// an explicit fee. The fee is stored metadata only; nothing deducts it.
var DefaultFeePercent = decimal.RequireFromString("0.5")

// Transaction is an immutable money-movement record between two users.
type Transaction struct {
	ID          int64
	SenderID    int64
	ReceiverID  int64
	Description string
	Amount      decimal.Decimal
	FeePercent  decimal.Decimal
}
