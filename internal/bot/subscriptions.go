package bot

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"suimei/internal/domain"
)

type messageSender interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
}

type FortuneQuerier interface {
	FortuneAt(ctx context.Context, b domain.BirthData, year int) (domain.TimelineEntryView, error)
}

// FortuneDispatcher remembers the birth data of subscribed chats and sends each of them
// their fortune when a new solar year begins. Subscriptions live in memory only.
type FortuneDispatcher struct {
	sender messageSender
	charts FortuneQuerier
	logger *zap.Logger

	mu          sync.RWMutex
	subscribers map[int64]domain.BirthData
}

func NewFortuneDispatcher(sender messageSender, charts FortuneQuerier, logger *zap.Logger) *FortuneDispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FortuneDispatcher{
		sender:      sender,
		charts:      charts,
		logger:      logger,
		subscribers: make(map[int64]domain.BirthData),
	}
}

// Subscribe stores b for chatID. It reports whether the chat was new; an existing
// subscription is replaced.
func (d *FortuneDispatcher) Subscribe(chatID int64, b domain.BirthData) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	_, exists := d.subscribers[chatID]
	d.subscribers[chatID] = b
	return !exists
}

func (d *FortuneDispatcher) Unsubscribe(chatID int64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.subscribers[chatID]; !exists {
		return false
	}
	delete(d.subscribers, chatID)
	return true
}

func (d *FortuneDispatcher) Subscription(chatID int64) (domain.BirthData, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	b, ok := d.subscribers[chatID]
	return b, ok
}

func (d *FortuneDispatcher) SubscriberCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.subscribers)
}

// NotifyYear sends every subscriber the scored fortune for year.
func (d *FortuneDispatcher) NotifyYear(ctx context.Context, year int) error {
	if d == nil || d.sender == nil || d.charts == nil {
		return nil
	}

	var errs error
	for _, sub := range d.snapshotSubscribers() {
		entry, err := d.charts.FortuneAt(ctx, sub.birth, year)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("chat %d: %w", sub.chatID, err))
			continue
		}
		msg := fmt.Sprintf("%d年が始まりました\n%s", year, domain.FormatFortune(entry))
		if _, err := d.sender.Send(&tele.Chat{ID: sub.chatID}, msg); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("chat %d: %w", sub.chatID, err))
		}
	}
	if errs != nil {
		d.logger.Warn("annual fortune broadcast incomplete", zap.Int("year", year), zap.Error(errs))
	}
	return errs
}

type subscription struct {
	chatID int64
	birth  domain.BirthData
}

func (d *FortuneDispatcher) snapshotSubscribers() []subscription {
	d.mu.RLock()
	defer d.mu.RUnlock()

	subs := make([]subscription, 0, len(d.subscribers))
	for chatID, b := range d.subscribers {
		subs = append(subs, subscription{chatID: chatID, birth: b})
	}
	sort.Slice(subs, func(i, j int) bool { return subs[i].chatID < subs[j].chatID })
	return subs
}
