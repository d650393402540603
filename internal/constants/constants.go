package constants

import "time"

// Context keys
const (
	ContextKeyUserID    = "user_id"
	ContextKeyCompanyID = "company_id"
	ContextKeyRequestID = "request_id"
)

// Token lifetimes
const (
	TemporaryTokenTTL = 5 * time.Minute
	SessionTokenTTL   = 7 * 24 * time.Hour
)

// TokenTypeTemporary is the type claim carried by temporary login tokens.
const TokenTypeTemporary = "temp"

const (
	MinPasswordLength    = 8
	RequestIDHeader      = "X-Request-ID"
	TelegramSecretHeader = "X-Telegram-Bot-Api-Secret-Token"
)
