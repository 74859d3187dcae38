package notify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/investledger/pkg/clients"
)

func NewMock(t *testing.T) (*Webhook, *clients.MockHTTPClientI) {
	ctrl := gomock.NewController(t)
	client := clients.NewMockHTTPClientI(ctrl)
	return NewWebhook("http://hooks.local/ledger", client), client
}

func TestWebhook_Notify(t *testing.T) {
	webhook, client := NewMock(t)

	client.EXPECT().
		Post(gomock.Any(), "http://hooks.local/ledger", gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, headers http.Header, body []byte) (int, []byte, error) {
			assert.Equal(t, "application/json", headers.Get("Content-Type"))
			var e Event
			require.NoError(t, json.Unmarshal(body, &e))
			assert.Equal(t, EventInvestmentConfirmed, e.Type)
			assert.Equal(t, 7, e.EntityID)
			assert.False(t, e.At.IsZero())
			return http.StatusOK, nil, nil
		})

	webhook.Notify(context.Background(), Event{Type: EventInvestmentConfirmed, UserID: 1, EntityID: 7, Amount: "100"})
}

func TestWebhook_BreakerOpensAfterFailures(t *testing.T) {
	webhook, client := NewMock(t)

	client.EXPECT().
		Post(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(0, nil, errors.New("connection refused")).
		Times(6)

	for i := 0; i < 8; i++ {
		webhook.Notify(context.Background(), Event{Type: WithdrawalEvent("paid"), EntityID: i})
	}
	assert.Equal(t, "open", webhook.breaker.State().String())
}

func TestWebhook_BadStatusCountsAsFailure(t *testing.T) {
	webhook, client := NewMock(t)

	client.EXPECT().
		Post(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(http.StatusBadGateway, []byte("bad gateway"), nil)

	webhook.Notify(context.Background(), Event{Type: EventReferralCommission})
	assert.Equal(t, uint32(1), webhook.breaker.Counts().ConsecutiveFailures)
}

func TestWithdrawalEvent(t *testing.T) {
	assert.Equal(t, "withdrawal.rejected", WithdrawalEvent("rejected"))
}

func TestNop(t *testing.T) {
	assert.NotPanics(t, func() {
		Nop{}.Notify(context.Background(), Event{})
	})
}
