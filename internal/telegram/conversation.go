package telegram

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/frsammm1/telethon-session-gen/internal/account"
)

// Login is the in-flight account authentication a conversation drives.
// Satisfied by *account.Login.
type Login interface {
	SubmitCode(ctx context.Context, code string) error
	SubmitPassword(ctx context.Context, password string) error
	SessionString(ctx context.Context) (string, error)
	Close()
}

// BeginLogin connects to the target account and requests a login code.
type BeginLogin func(ctx context.Context, apiID int, apiHash, phone string) (Login, error)

type convKey struct {
	chatID int64
	userID int64
}

type convState int

const (
	stateAwaitAPIID convState = iota
	stateAwaitAPIHash
	stateAwaitPhone
	stateConnecting
	stateAwaitCode
	stateAwaitPassword
)

func (s convState) String() string {
	switch s {
	case stateAwaitAPIID:
		return "await_api_id"
	case stateAwaitAPIHash:
		return "await_api_hash"
	case stateAwaitPhone:
		return "await_phone"
	case stateConnecting:
		return "connecting"
	case stateAwaitCode:
		return "await_code"
	case stateAwaitPassword:
		return "await_password"
	default:
		return "unknown"
	}
}

type conversation struct {
	key     convKey
	state   convState
	replies chan string
	cancel  context.CancelFunc
}

var errReplyTimeout = errors.New("timed out waiting for reply")

const (
	msgAskAPIID = "Please send your **API ID** (digits only):"
	msgBadAPIID = "❌ Invalid API ID. Digits only, please. Process cancelled — run /generate to start over."

	msgAskAPIHash = "Now send your **API HASH** (32-character string):"

	msgAskPhone = "Now send your **phone number** (international format, e.g. `+911234567890`):"

	msgConnecting = "🔑 Starting login... check your Telegram Saved Messages/device notifications for the code."

	msgAskCode = "Please send the **login code** you received on your Telegram account:"

	msgAskPassword = "🔒 Two-Factor Authentication (2FA) password required. Please send your **cloud password**:"

	msgTimedOut = "⏰ Timed out. Run /generate to start again."

	msgBadCredentials = "❌ API ID or API HASH is wrong. Double-check them at my.telegram.org and run /generate again."

	msgBadPhone = "❌ Phone number is invalid. Use international format (+country code), then run /generate again."

	msgAuthRejected = "❌ Code or password incorrect. Run /generate to try again."

	msgSuccess = "**✅ Your Telethon string session has been generated:**\n\n" +
		"```\n%s\n```\n\n" +
		"**⚠️ Security warning:** this string gives full access to your Telegram account. " +
		"After using it, go to **Active Sessions** and terminate this session."
)

// runConversation walks one user through the whole flow. It owns the
// conversation for its lifetime and is the only goroutine touching it.
func (b *Bot) runConversation(ctx context.Context, c *conversation) {
	defer b.endConversation(c)

	apiIDText, err := b.ask(ctx, c, stateAwaitAPIID, msgAskAPIID)
	if err != nil {
		b.finish(c, err)
		return
	}
	if !isDigits(apiIDText) {
		b.reply(c.key.chatID, msgBadAPIID)
		return
	}
	apiID, err := strconv.Atoi(apiIDText)
	if err != nil {
		b.reply(c.key.chatID, msgBadAPIID)
		return
	}

	apiHash, err := b.ask(ctx, c, stateAwaitAPIHash, msgAskAPIHash)
	if err != nil {
		b.finish(c, err)
		return
	}

	phone, err := b.ask(ctx, c, stateAwaitPhone, msgAskPhone)
	if err != nil {
		b.finish(c, err)
		return
	}

	c.state = stateConnecting
	b.reply(c.key.chatID, msgConnecting)

	login, err := b.beginLogin(ctx, apiID, apiHash, phone)
	if err != nil {
		b.finish(c, err)
		return
	}
	defer login.Close()

	code, err := b.ask(ctx, c, stateAwaitCode, msgAskCode)
	if err != nil {
		b.finish(c, err)
		return
	}

	err = login.SubmitCode(ctx, code)
	if errors.Is(err, account.ErrPasswordNeeded) {
		var password string
		password, err = b.ask(ctx, c, stateAwaitPassword, msgAskPassword)
		if err != nil {
			b.finish(c, err)
			return
		}
		err = login.SubmitPassword(ctx, password)
	}
	if err != nil {
		b.finish(c, err)
		return
	}

	token, err := login.SessionString(ctx)
	if err != nil {
		b.finish(c, err)
		return
	}
	b.reply(c.key.chatID, fmt.Sprintf(msgSuccess, token))
	log.Printf("✅ session generated for user %d", c.key.userID)
}

// ask sends a prompt and waits for the user's next reply, bounded by the
// per-step deadline. Listening starts at the prompt: anything the user typed
// earlier, e.g. while a network call was in flight, is dropped first.
func (b *Bot) ask(ctx context.Context, c *conversation, st convState, prompt string) (string, error) {
	select {
	case <-c.replies:
	default:
	}

	c.state = st
	b.reply(c.key.chatID, prompt)

	timer := time.NewTimer(b.replyTimeout)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-timer.C:
		return "", errReplyTimeout
	case text := <-c.replies:
		return strings.TrimSpace(text), nil
	}
}

// finish handles every failed conversation exit. Step timeouts get the
// restart hint, cancellation (shutdown or replacement by a new /generate) is
// silent even when it surfaced through a network call, and everything else
// is rendered as a classified login error.
func (b *Bot) finish(c *conversation, err error) {
	switch {
	case errors.Is(err, errReplyTimeout):
		b.reply(c.key.chatID, msgTimedOut)
		log.Printf("⏰ conversation %d/%d timed out at %s", c.key.chatID, c.key.userID, c.state)
	case errors.Is(err, context.Canceled):
		log.Printf("conversation %d/%d cancelled at %s", c.key.chatID, c.key.userID, c.state)
	default:
		b.replyLoginError(c, err)
	}
}

func (b *Bot) replyLoginError(c *conversation, err error) {
	switch {
	case errors.Is(err, account.ErrInvalidAPICredentials):
		b.reply(c.key.chatID, msgBadCredentials)
	case errors.Is(err, account.ErrInvalidPhone):
		b.reply(c.key.chatID, msgBadPhone)
	case errors.Is(err, account.ErrAuthRejected):
		b.reply(c.key.chatID, msgAuthRejected)
	default:
		b.reply(c.key.chatID, fmt.Sprintf("❌ An error occurred during string generation:\n\n`%v`", err))
	}
	log.Printf("❌ conversation %d/%d failed at %s: %v", c.key.chatID, c.key.userID, c.state, err)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
