package model

import (
	"hoodly/shared/model"
)

const (
	PayoutTableName  = "payout_accounts"
	PayoutEntityName = "payout_account"

	PayoutFieldID         = "id"
	PayoutFieldUserID     = "user_id"
	PayoutFieldProvider   = "provider"
	PayoutFieldIsVerified = "is_verified"
)

// PayoutAccount is a bank or payment account registered by a business owner.
// A booking can only be created against a business whose owner has at least
// one verified account on file.
type PayoutAccount struct {
	ID         string `db:"id"`
	UserID     string `db:"user_id"`
	Provider   string `db:"provider"`
	IsVerified bool   `db:"is_verified"`
	model.Metadata
}
