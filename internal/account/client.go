// Package account drives the MTProto login for the target account being
// onboarded and serializes the resulting session into a string token.
package account

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gotd/td/session"
	"github.com/gotd/td/telegram"
	"github.com/gotd/td/telegram/auth"
	"github.com/gotd/td/tg"
)

type Client struct {
	connectTimeout time.Duration
}

func NewClient(connectTimeout time.Duration) *Client {
	return &Client{connectTimeout: connectTimeout}
}

// Login is one in-flight authentication attempt against a target account.
// It is owned by a single conversation and must be closed on every exit path.
type Login struct {
	client   *telegram.Client
	storage  *session.StorageMemory
	phone    string
	codeHash string

	cancel    context.CancelFunc
	done      chan struct{}
	runErr    error // set before done is closed
	closeOnce sync.Once
}

// Begin connects to Telegram with the user's own API credentials and asks for
// a login code to be delivered to the target account. On success the returned
// Login holds an open connection; the caller must Close it.
func (c *Client) Begin(ctx context.Context, apiID int, apiHash, phone string) (*Login, error) {
	storage := &session.StorageMemory{}
	client := telegram.NewClient(apiID, apiHash, telegram.Options{
		SessionStorage: storage,
	})

	runCtx, cancel := context.WithCancel(ctx)
	l := &Login{
		client:  client,
		storage: storage,
		phone:   phone,
		cancel:  cancel,
		done:    make(chan struct{}),
	}

	ready := make(chan struct{})
	go func() {
		defer close(l.done)
		l.runErr = client.Run(runCtx, func(ctx context.Context) error {
			close(ready)
			<-ctx.Done()
			return ctx.Err()
		})
	}()

	select {
	case <-ready:
	case <-l.done:
		cancel()
		return nil, fmt.Errorf("connect: %w", classify(l.runErr))
	case <-time.After(c.connectTimeout):
		l.Close()
		return nil, fmt.Errorf("connect: timed out after %s", c.connectTimeout)
	case <-ctx.Done():
		l.Close()
		return nil, ctx.Err()
	}

	sent, err := client.Auth().SendCode(ctx, phone, auth.SendCodeOptions{})
	if err != nil {
		l.Close()
		return nil, fmt.Errorf("request login code: %w", classify(err))
	}
	code, ok := sent.(*tg.AuthSentCode)
	if !ok {
		l.Close()
		return nil, fmt.Errorf("request login code: unexpected response %T", sent)
	}
	l.codeHash = code.PhoneCodeHash

	return l, nil
}

// SubmitCode signs in with the code the user received. ErrPasswordNeeded is
// a branch, not a failure: the connection stays open and SubmitPassword must
// be called next. The code is never re-requested.
func (l *Login) SubmitCode(ctx context.Context, code string) error {
	_, err := l.client.Auth().SignIn(ctx, l.phone, code, l.codeHash)
	if errors.Is(err, auth.ErrPasswordAuthNeeded) {
		return ErrPasswordNeeded
	}
	if err != nil {
		return fmt.Errorf("sign in: %w", classify(err))
	}
	return nil
}

// SubmitPassword completes sign-in for accounts with 2FA enabled.
func (l *Login) SubmitPassword(ctx context.Context, password string) error {
	_, err := l.client.Auth().Password(ctx, password)
	if err != nil {
		return fmt.Errorf("password sign in: %w", classify(err))
	}
	return nil
}

// SessionString serializes the authenticated session into an opaque token.
func (l *Login) SessionString(ctx context.Context) (string, error) {
	data, err := l.storage.LoadSession(ctx)
	if err != nil {
		return "", fmt.Errorf("serialize session: %w", err)
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// Close tears down the connection. Idempotent; safe to call on logins that
// never finished connecting. Waits briefly for the client goroutine to stop.
func (l *Login) Close() {
	l.closeOnce.Do(func() {
		l.cancel()
		select {
		case <-l.done:
		case <-time.After(5 * time.Second):
		}
	})
}
