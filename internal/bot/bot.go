package bot

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const sendTimeout = 30 * time.Second

// ErrInvalidChatID - идентификатор чата не является ни числом, ни @username канала
var ErrInvalidChatID = errors.New("некорректный идентификатор чата")

// NewBotAPI создаёт клиента Bot API. endpoint в формате tgbotapi.APIEndpoint,
// пустая строка означает api.telegram.org. Недоступность Telegram при старте
// не ошибка: getMe только логируется, отправка сообщений сама логирует сбои.
func NewBotAPI(token, endpoint string, logger *slog.Logger) (*tgbotapi.BotAPI, error) {
	if err := tgbotapi.SetLogger(botLogger{logger: logger}); err != nil {
		return nil, err
	}

	if endpoint == "" {
		endpoint = tgbotapi.APIEndpoint
	}

	botAPI := &tgbotapi.BotAPI{
		Token:  token,
		Client: &http.Client{Timeout: sendTimeout},
		Buffer: 100,
	}
	botAPI.SetAPIEndpoint(endpoint)

	self, err := botAPI.GetMe()
	if err != nil {
		logger.Warn("не удалось проверить авторизацию бота", slog.String("error", err.Error()))
		return botAPI, nil
	}
	botAPI.Self = self

	logger.Info("аккаунт авторизован", slog.String("username", self.UserName))
	return botAPI, nil
}

// Notifier отправляет сообщения в один заранее заданный чат
type Notifier struct {
	api     *tgbotapi.BotAPI
	chatID  int64
	channel string
	logger  *slog.Logger
}

// NewNotifier принимает числовой id чата или @username канала
func NewNotifier(botAPI *tgbotapi.BotAPI, chatID string, logger *slog.Logger) (*Notifier, error) {
	chatID = strings.TrimSpace(chatID)
	n := &Notifier{api: botAPI, logger: logger}

	switch {
	case strings.HasPrefix(chatID, "@") && len(chatID) > 1:
		n.channel = chatID
	default:
		id, err := strconv.ParseInt(chatID, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidChatID, chatID)
		}
		n.chatID = id
	}

	return n, nil
}

// SendMessage отправляет текст в чат. Ошибка отправки только логируется.
func (n *Notifier) SendMessage(text string) {
	var msg tgbotapi.MessageConfig
	if n.channel != "" {
		msg = tgbotapi.NewMessageToChannel(n.channel, text)
	} else {
		msg = tgbotapi.NewMessage(n.chatID, text)
	}

	n.logger.Info("отправка сообщения в Telegram", slog.String("text", text))
	if _, err := n.api.Send(msg); err != nil {
		n.logger.Error("ошибка отправки сообщения", slog.String("error", err.Error()))
		return
	}
	n.logger.Debug("сообщение отправлено")
}

// botLogger перенаправляет внутренний лог tgbotapi в slog
type botLogger struct {
	logger *slog.Logger
}

func (l botLogger) Println(v ...interface{}) {
	l.logger.Debug(strings.TrimSpace(fmt.Sprintln(v...)), slog.String("component", "tgbotapi"))
}

func (l botLogger) Printf(format string, v ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, v...), slog.String("component", "tgbotapi"))
}
