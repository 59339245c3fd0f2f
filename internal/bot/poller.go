package bot

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/d1mk9/hwStatusBot/internal/api"
	"github.com/d1mk9/hwStatusBot/internal/utils"
)

const (
	StartMessage     = "Бот начал работу"
	UnchangedMessage = "Статус не изменился"
)

// Fetcher запрашивает изменения статусов начиная с метки времени
type Fetcher interface {
	GetAPIAnswer(ctx context.Context, timestamp int64) (interface{}, error)
}

// Sender доставляет текст в чат
type Sender interface {
	SendMessage(text string)
}

// Poller периодически опрашивает API и сообщает об изменении статуса работы.
// Метка времени и последнее отправленное сообщение живут только в памяти.
type Poller struct {
	fetcher  Fetcher
	sender   Sender
	interval time.Duration
	logger   *slog.Logger

	timestamp   int64
	lastMessage string
}

func NewPoller(fetcher Fetcher, sender Sender, interval time.Duration, logger *slog.Logger) *Poller {
	return &Poller{
		fetcher:  fetcher,
		sender:   sender,
		interval: interval,
		logger:   logger,
	}
}

// Run отправляет стартовое сообщение и опрашивает API до отмены ctx.
// После каждого цикла, успешного или нет, ждёт interval.
func (p *Poller) Run(ctx context.Context) error {
	p.sender.SendMessage(StartMessage)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		// ошибка цикла уже залогирована, следующий цикл повторит запрос
		p.Cycle(ctx)

		select {
		case <-ctx.Done():
			p.logger.Info("опрос остановлен")
			return ctx.Err()
		case <-time.After(p.interval):
		}
	}
}

// Cycle выполняет одну проверку. При ошибке метка времени и последнее
// сообщение не меняются, следующий цикл повторит запрос с той же меткой.
func (p *Poller) Cycle(ctx context.Context) error {
	logger := p.logger.With(slog.String("cycle_id", uuid.NewString()))

	response, err := p.fetcher.GetAPIAnswer(ctx, p.timestamp)
	if err != nil {
		return p.fail(logger, err)
	}

	logger.Debug("проверка ответа API")
	homeworks, err := api.CheckResponse(response)
	if err != nil {
		return p.fail(logger, err)
	}

	message := UnchangedMessage
	if len(homeworks) > 0 {
		message, err = utils.ParseStatus(homeworks[0])
		if err != nil {
			return p.fail(logger, err)
		}
	}

	if ts, ok := api.CurrentDate(response); ok {
		p.timestamp = ts
	} else {
		logger.Warn("в ответе нет current_date, метка времени не изменена", slog.Int64("from_date", p.timestamp))
	}

	if message == p.lastMessage {
		logger.Debug(message)
		return nil
	}

	p.sender.SendMessage(message)
	p.lastMessage = message
	return nil
}

func (p *Poller) fail(logger *slog.Logger, err error) error {
	logger.Error("Сбой в работе программы", slog.String("error", err.Error()), slog.Int64("from_date", p.timestamp))
	return err
}

// Timestamp возвращает текущую метку времени для следующего запроса
func (p *Poller) Timestamp() int64 {
	return p.timestamp
}

// LastMessage возвращает последнее отправленное уведомление
func (p *Poller) LastMessage() string {
	return p.lastMessage
}
