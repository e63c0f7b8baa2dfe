package notify

import (
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/doanvu/school-eval-api/internal/observability"
)

// TelegramSink pushes outcomes to a configured chat (homeroom group or staff
// channel). Send errors are captured, never returned: the sink is secondary
// to whatever operation it reports on.
type TelegramSink struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegramSink(token, chatID string) (*TelegramSink, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	id, err := strconv.ParseInt(strings.TrimSpace(chatID), 10, 64)
	if err != nil {
		return nil, err
	}
	return &TelegramSink{bot: bot, chatID: id}, nil
}

func (s *TelegramSink) Success(msg string) { s.send("✅ " + msg) }
func (s *TelegramSink) Failure(msg string) { s.send("❌ " + msg) }

func (s *TelegramSink) send(text string) {
	if _, err := s.bot.Send(tgbotapi.NewMessage(s.chatID, text)); err != nil {
		if isSystemErr(err) {
			observability.CaptureErr(err)
		}
	}
}

// 5xx, 429 and timeouts are worth a Sentry event; Telegram-side validation
// noise is not.
func isSystemErr(err error) bool {
	s := err.Error()
	return strings.Contains(s, "429") ||
		strings.Contains(s, "502") ||
		strings.Contains(s, "503") ||
		strings.Contains(s, "timeout")
}
