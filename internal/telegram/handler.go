package telegram

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const msgGreeting = "Hi! 👋 I am a Telethon string session generator bot.\n" +
	"Run /generate to create a session."

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From == nil {
		return
	}
	key := convKey{chatID: msg.Chat.ID, userID: msg.From.ID}

	switch msg.Command() {
	case "start":
		b.reply(msg.Chat.ID, msgGreeting)
	case "generate":
		b.startGeneration(ctx, key)
	default:
		// Plain text goes to the user's active conversation, if any.
		b.deliverReply(key, strings.TrimSpace(msg.Text))
	}
}

// startGeneration opens a fresh conversation for the user. A /generate while
// one is already running cancels and replaces it, which also closes any login
// session the old conversation had open.
func (b *Bot) startGeneration(ctx context.Context, key convKey) {
	convCtx, cancel := context.WithCancel(ctx)
	c := &conversation{
		key:     key,
		replies: make(chan string, 1),
		cancel:  cancel,
	}

	b.mu.Lock()
	if prev, ok := b.active[key]; ok {
		prev.cancel()
	}
	b.active[key] = c
	b.mu.Unlock()

	go b.runConversation(convCtx, c)
}

// deliverReply routes a reply to the waiting conversation. Replies with no
// active conversation are not part of this flow and are dropped.
func (b *Bot) deliverReply(key convKey, text string) {
	b.mu.Lock()
	c, ok := b.active[key]
	b.mu.Unlock()
	if !ok {
		return
	}
	select {
	case c.replies <- text:
	default: // conversation is mid network call; extra input is dropped
	}
}

func (b *Bot) endConversation(c *conversation) {
	c.cancel()
	b.mu.Lock()
	if b.active[c.key] == c {
		delete(b.active, c.key)
	}
	b.mu.Unlock()
}
