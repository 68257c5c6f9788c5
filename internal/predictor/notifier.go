package predictor

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Min interval between any two Telegram messages to the same chat to avoid
// 429 Too Many Requests (~30/min limit).
const telegramSendInterval = 2 * time.Second

// Notifier sends prediction reports to a Telegram chat through a background
// queue so the pipeline never blocks on the Telegram API.
type Notifier struct {
	bot      *tgbotapi.BotAPI
	chatID   int64
	mu       sync.Mutex
	lastSend time.Time

	queue     chan string
	queueDone chan struct{}
	wg        sync.WaitGroup
	ctx       context.Context
	cancel    context.CancelFunc
}

// NewNotifier creates a Telegram notifier. It verifies the token by calling
// GetMe before accepting any messages.
func NewNotifier(token string, chatID int64) (*Notifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}
	bot.Debug = false

	if _, err := bot.GetMe(); err != nil {
		return nil, fmt.Errorf("get bot info: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	n := &Notifier{
		bot:       bot,
		chatID:    chatID,
		queue:     make(chan string, 100),
		queueDone: make(chan struct{}),
		ctx:       ctx,
		cancel:    cancel,
	}

	n.wg.Add(1)
	go n.messageSender()

	slog.Info("Telegram notifier initialized", "chat_id", chatID)
	return n, nil
}

// SendReport splits the report into Telegram-sized chunks and queues them
// in order. Non-blocking: a full queue drops the report with an error.
func (n *Notifier) SendReport(ctx context.Context, report string) error {
	if n == nil || n.bot == nil {
		return fmt.Errorf("telegram notifier not initialized")
	}

	for _, chunk := range SplitMessage(report) {
		select {
		case <-n.ctx.Done():
			return fmt.Errorf("notifier stopped")
		case <-ctx.Done():
			return ctx.Err()
		case n.queue <- chunk:
		default:
			slog.Warn("Telegram message queue is full, dropping report chunk")
			return fmt.Errorf("message queue is full")
		}
	}
	return nil
}

// QueueLen returns the current number of queued messages (for logging).
func (n *Notifier) QueueLen() int {
	if n == nil || n.queue == nil {
		return 0
	}
	return len(n.queue)
}

// messageSender runs in the background and sends queued messages with the
// required interval between them. On shutdown it drains what is queued.
func (n *Notifier) messageSender() {
	defer n.wg.Done()

	for {
		select {
		case <-n.ctx.Done():
			for {
				select {
				case msg := <-n.queue:
					n.send(msg)
				default:
					close(n.queueDone)
					return
				}
			}
		case msg := <-n.queue:
			n.send(msg)
		}
	}
}

func (n *Notifier) send(text string) {
	n.mu.Lock()
	elapsed := time.Since(n.lastSend)
	if elapsed < telegramSendInterval {
		wait := telegramSendInterval - elapsed
		n.mu.Unlock()
		select {
		case <-n.ctx.Done():
			slog.Warn("Telegram send cancelled during rate limit wait")
			return
		case <-time.After(wait):
		}
		n.mu.Lock()
	}
	n.lastSend = time.Now()

	msg := tgbotapi.NewMessage(n.chatID, text)
	start := time.Now()
	_, err := n.bot.Send(msg)
	n.mu.Unlock()

	if err != nil {
		slog.Error("Telegram send failed", "error", err, "duration", time.Since(start))
		return
	}
	slog.Info("Telegram message sent", "duration", time.Since(start), "queue_length", len(n.queue))
}

// Stop stops the notifier and waits for queued messages to be sent.
func (n *Notifier) Stop() {
	if n == nil {
		return
	}
	n.cancel()
	<-n.queueDone
	n.wg.Wait()
}
