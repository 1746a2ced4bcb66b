package telegram

// Telegram chat notifications
// Sends Markdown messages to a chat, optionally into a forum thread
// tgbotapi v5 configs have no message_thread_id, so sendMessage is issued through MakeRequest

import (
	"fmt"
	"net/http"
	"time"

	"sui-arb-ops/internal/infra/log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Notifier posts messages to one chat/thread
type Notifier struct {
	bot      *tgbotapi.BotAPI
	chatID   string
	threadID string
}

// NewNotifier builds a notifier against the public Bot API. No request is
// made until the first Notify, so an unreachable Telegram never blocks startup.
func NewNotifier(token, chatID, threadID string) (*Notifier, error) {
	return NewNotifierWithEndpoint(token, chatID, threadID, tgbotapi.APIEndpoint, &http.Client{Timeout: 30 * time.Second})
}

// NewNotifierWithEndpoint is NewNotifier against a custom API endpoint
// (format "https://host/bot%s/%s").
func NewNotifierWithEndpoint(token, chatID, threadID, endpoint string, client *http.Client) (*Notifier, error) {
	if token == "" {
		return nil, fmt.Errorf("telegram bot token is empty")
	}
	if chatID == "" {
		return nil, fmt.Errorf("telegram chat id is empty")
	}

	bot := &tgbotapi.BotAPI{Token: token, Client: client, Buffer: 100}
	bot.SetAPIEndpoint(endpoint)

	log.LogInfo("Telegram notifier ready", zap.String("chatID", chatID), zap.String("threadID", threadID))
	return &Notifier{bot: bot, chatID: chatID, threadID: threadID}, nil
}

// Notify sends text with Markdown parse mode and link previews disabled
func (n *Notifier) Notify(text string) error {
	params := tgbotapi.Params{}
	params.AddNonEmpty("chat_id", n.chatID)
	params.AddNonEmpty("message_thread_id", n.threadID)
	params.AddNonEmpty("text", text)
	params.AddNonEmpty("parse_mode", tgbotapi.ModeMarkdown)
	params.AddBool("disable_web_page_preview", true)

	resp, err := n.bot.MakeRequest("sendMessage", params)
	if err != nil {
		return fmt.Errorf("failed to send telegram message: %w", err)
	}
	if !resp.Ok {
		return fmt.Errorf("telegram API error %d: %s", resp.ErrorCode, resp.Description)
	}

	log.LogInfo("Telegram message sent", zap.String("chatID", n.chatID), zap.String("threadID", n.threadID))
	return nil
}

// EscapeMarkdown escapes legacy Markdown control characters
func EscapeMarkdown(text string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdown, text)
}
