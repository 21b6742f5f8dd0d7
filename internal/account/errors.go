package account

import (
	"errors"

	"github.com/gotd/td/telegram/auth"
	"github.com/gotd/td/tgerr"
)

var (
	// ErrPasswordNeeded means the account has 2FA enabled and sign-in must
	// continue with SubmitPassword. The login session stays open.
	ErrPasswordNeeded = errors.New("2fa cloud password required")

	// ErrInvalidAPICredentials means the API ID / API hash pair was rejected.
	ErrInvalidAPICredentials = errors.New("invalid api id or api hash")

	// ErrInvalidPhone means Telegram rejected the phone number.
	ErrInvalidPhone = errors.New("invalid phone number")

	// ErrAuthRejected means the login code or cloud password was wrong.
	ErrAuthRejected = errors.New("login code or password rejected")
)

// classify maps gotd errors to the sentinel errors above. Errors that match
// no known RPC code are returned as-is so their raw message can be shown.
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, auth.ErrPasswordAuthNeeded):
		return ErrPasswordNeeded
	case tgerr.Is(err, "API_ID_INVALID", "API_ID_PUBLISHED_FLOOD"):
		return ErrInvalidAPICredentials
	case tgerr.Is(err, "PHONE_NUMBER_INVALID", "PHONE_NUMBER_BANNED"):
		return ErrInvalidPhone
	case tgerr.Is(err, "PHONE_CODE_INVALID", "PHONE_CODE_EXPIRED", "PASSWORD_HASH_INVALID", "AUTH_KEY_UNREGISTERED"):
		return ErrAuthRejected
	default:
		return err
	}
}
