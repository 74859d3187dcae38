// Package notify posts ledger events to an external webhook. Delivery is best
// effort: failures are logged and never returned to the caller.
package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/GlebRadaev/investledger/pkg/clients"
)

//go:generate mockgen -source=notify.go -destination=mock_notify.go -package=notify

const (
	EventInvestmentConfirmed = "investment.confirmed"
	EventInvestmentRejected  = "investment.rejected"
	EventInvestmentStatus    = "investment.status"
	EventReferralCommission  = "referral.commission"
)

var ErrUnexpectedStatus = errors.New("unexpected webhook status")

// WithdrawalEvent names the event for a withdrawal entering status.
func WithdrawalEvent(status string) string {
	return "withdrawal." + status
}

type Event struct {
	Type     string    `json:"type"`
	UserID   int       `json:"user_id"`
	EntityID int       `json:"entity_id"`
	Amount   string    `json:"amount,omitempty"`
	Status   string    `json:"status,omitempty"`
	Reason   string    `json:"reason,omitempty"`
	At       time.Time `json:"at"`
}

type Notifier interface {
	Notify(ctx context.Context, e Event)
}

type Nop struct{}

func (Nop) Notify(context.Context, Event) {}

type Webhook struct {
	url     string
	client  clients.HTTPClientI
	breaker *gobreaker.CircuitBreaker
}

func NewWebhook(url string, client clients.HTTPClientI) *Webhook {
	settings := gobreaker.Settings{
		Name:        "NotifyWebhook",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 5
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			zap.L().Info("webhook circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	}
	return &Webhook{
		url:     url,
		client:  client,
		breaker: gobreaker.NewCircuitBreaker(settings),
	}
}

func (w *Webhook) Notify(ctx context.Context, e Event) {
	if e.At.IsZero() {
		e.At = time.Now().UTC()
	}
	body, err := json.Marshal(e)
	if err != nil {
		zap.L().Error("failed to encode notification", zap.String("type", e.Type), zap.Error(err))
		return
	}

	headers := http.Header{}
	headers.Set("Content-Type", "application/json")

	_, err = w.breaker.Execute(func() (interface{}, error) {
		status, _, err := w.client.Post(ctx, w.url, headers, body)
		if err != nil {
			return nil, err
		}
		if status < http.StatusOK || status >= http.StatusMultipleChoices {
			return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, status)
		}
		return nil, nil
	})
	if err != nil {
		zap.L().Warn("notification not delivered",
			zap.String("type", e.Type),
			zap.Int("entityID", e.EntityID),
			zap.Error(err))
	}
}
