package account

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gotd/td/telegram/auth"
	"github.com/gotd/td/tgerr"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"password needed", auth.ErrPasswordAuthNeeded, ErrPasswordNeeded},
		{"api id invalid", tgerr.New(400, "API_ID_INVALID"), ErrInvalidAPICredentials},
		{"api id flood", tgerr.New(400, "API_ID_PUBLISHED_FLOOD"), ErrInvalidAPICredentials},
		{"phone invalid", tgerr.New(400, "PHONE_NUMBER_INVALID"), ErrInvalidPhone},
		{"phone banned", tgerr.New(400, "PHONE_NUMBER_BANNED"), ErrInvalidPhone},
		{"code invalid", tgerr.New(400, "PHONE_CODE_INVALID"), ErrAuthRejected},
		{"code expired", tgerr.New(400, "PHONE_CODE_EXPIRED"), ErrAuthRejected},
		{"bad password", tgerr.New(400, "PASSWORD_HASH_INVALID"), ErrAuthRejected},
		{"key unregistered", tgerr.New(401, "AUTH_KEY_UNREGISTERED"), ErrAuthRejected},
		{"wrapped rpc error", fmt.Errorf("sign in: %w", tgerr.New(400, "PHONE_CODE_INVALID")), ErrAuthRejected},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classify(tt.err)
			if !errors.Is(got, tt.want) {
				t.Errorf("classify(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestClassifyNil(t *testing.T) {
	if got := classify(nil); got != nil {
		t.Errorf("classify(nil) = %v, want nil", got)
	}
}

func TestClassifyPassesThroughUnknownErrors(t *testing.T) {
	err := errors.New("FLOOD_WAIT (420)")
	if got := classify(err); got != err {
		t.Errorf("unknown errors must pass through unchanged, got %v", got)
	}
}
