package admin

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/GlebRadaev/investledger/internal/domain"
	"github.com/GlebRadaev/investledger/internal/dto"
	"github.com/GlebRadaev/investledger/internal/plans"
	"github.com/GlebRadaev/investledger/internal/settlement"
	"github.com/GlebRadaev/investledger/pkg/auth"
)

type mocks struct {
	investments *MockInvestmentService
	withdrawals *MockWithdrawalService
	jobs        *MockJobRunner
}

func NewMock(t *testing.T) (*AdminHandler, *mocks) {
	ctrl := gomock.NewController(t)
	m := &mocks{
		investments: NewMockInvestmentService(ctrl),
		withdrawals: NewMockWithdrawalService(ctrl),
		jobs:        NewMockJobRunner(ctrl),
	}
	return New(m.investments, m.withdrawals, m.jobs), m
}

func request(method, target, body string, params map[string]string) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	ctx = context.WithValue(ctx, auth.UserIDKey, 99)
	ctx = context.WithValue(ctx, auth.IsAdminKey, true)
	return req.WithContext(ctx)
}

func TestConfirmPaymentHandler(t *testing.T) {
	tests := []struct {
		name         string
		id           string
		body         string
		prepareMock  func(m *mocks)
		expectedCode int
	}{
		{
			name: "Confirmed",
			id:   "4",
			body: `{"status":"confirmed"}`,
			prepareMock: func(m *mocks) {
				m.investments.EXPECT().ConfirmPayment(gomock.Any(), 4, domain.PaymentDecision{Status: "confirmed"}).
					Return(&domain.Investment{ID: 4, Status: domain.InvestmentActive, PaymentStatus: "confirmed"}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Rejected with reason",
			id:   "4",
			body: `{"status":"rejected","reason":"chargeback"}`,
			prepareMock: func(m *mocks) {
				m.investments.EXPECT().ConfirmPayment(gomock.Any(), 4, domain.PaymentDecision{Status: "rejected", Reason: "chargeback"}).
					Return(&domain.Investment{ID: 4, Status: domain.InvestmentCancelled}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:         "Unknown decision",
			id:           "4",
			body:         `{"status":"maybe"}`,
			prepareMock:  func(m *mocks) {},
			expectedCode: http.StatusUnprocessableEntity,
		},
		{
			name:         "Invalid id",
			id:           "0",
			body:         `{"status":"confirmed"}`,
			prepareMock:  func(m *mocks) {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "Already decided",
			id:   "4",
			body: `{"status":"confirmed"}`,
			prepareMock: func(m *mocks) {
				m.investments.EXPECT().ConfirmPayment(gomock.Any(), 4, gomock.Any()).Return(nil, domain.ErrAlreadyProcessed)
			},
			expectedCode: http.StatusConflict,
		},
		{
			name: "Missing investment",
			id:   "5",
			body: `{"status":"confirmed"}`,
			prepareMock: func(m *mocks) {
				m.investments.EXPECT().ConfirmPayment(gomock.Any(), 5, gomock.Any()).Return(nil, domain.ErrNotFound)
			},
			expectedCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, m := NewMock(t)
			tt.prepareMock(m)

			rr := httptest.NewRecorder()
			handler.ConfirmPayment(rr, request("PUT", "/api/admin/investments/"+tt.id+"/payment", tt.body, map[string]string{"id": tt.id}))

			assert.Equal(t, tt.expectedCode, rr.Code)
		})
	}
}

func TestSetInvestmentStatusHandler(t *testing.T) {
	handler, m := NewMock(t)

	m.investments.EXPECT().SetStatus(gomock.Any(), 4, domain.InvestmentCancelled).
		Return(&domain.Investment{ID: 4, Status: domain.InvestmentCancelled}, nil)
	rr := httptest.NewRecorder()
	handler.SetInvestmentStatus(rr, request("PUT", "/api/admin/investments/4/status", `{"status":"cancelled"}`, map[string]string{"id": "4"}))
	assert.Equal(t, http.StatusOK, rr.Code)
	var body dto.InvestmentResponseDTO
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	assert.Equal(t, domain.InvestmentCancelled, body.Status)

	rr = httptest.NewRecorder()
	handler.SetInvestmentStatus(rr, request("PUT", "/api/admin/investments/4/status", `{"status":"active"}`, map[string]string{"id": "4"}))
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)

	m.investments.EXPECT().SetStatus(gomock.Any(), 4, domain.InvestmentCompleted).Return(nil, domain.ErrInvalidTransition)
	rr = httptest.NewRecorder()
	handler.SetInvestmentStatus(rr, request("PUT", "/api/admin/investments/4/status", `{"status":"completed"}`, map[string]string{"id": "4"}))
	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestDecideWithdrawalHandler(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		prepareMock  func(m *mocks)
		expectedCode int
	}{
		{
			name: "Approved by the calling admin",
			body: `{"status":"approved"}`,
			prepareMock: func(m *mocks) {
				m.withdrawals.EXPECT().Decide(gomock.Any(), 5, domain.WithdrawalDecision{Status: "approved", ProcessedBy: 99}).
					Return(&domain.Withdrawal{ID: 5, Status: domain.WithdrawalApproved}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Paid with transaction id",
			body: `{"status":"paid","transaction_id":"tx-1"}`,
			prepareMock: func(m *mocks) {
				m.withdrawals.EXPECT().Decide(gomock.Any(), 5, domain.WithdrawalDecision{Status: "paid", ProcessedBy: 99, TransactionID: "tx-1"}).
					Return(&domain.Withdrawal{ID: 5, Status: domain.WithdrawalPaid, TransactionID: "tx-1"}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:         "Cancelled is not an admin decision",
			body:         `{"status":"cancelled"}`,
			prepareMock:  func(m *mocks) {},
			expectedCode: http.StatusUnprocessableEntity,
		},
		{
			name: "Already processed",
			body: `{"status":"rejected","reason":"late"}`,
			prepareMock: func(m *mocks) {
				m.withdrawals.EXPECT().Decide(gomock.Any(), 5, gomock.Any()).Return(nil, domain.ErrAlreadyProcessed)
			},
			expectedCode: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, m := NewMock(t)
			tt.prepareMock(m)

			rr := httptest.NewRecorder()
			handler.DecideWithdrawal(rr, request("PUT", "/api/admin/withdrawals/5", tt.body, map[string]string{"id": "5"}))

			assert.Equal(t, tt.expectedCode, rr.Code)
		})
	}
}

func TestUpdatePlanHandler(t *testing.T) {
	handler, m := NewMock(t)

	registry := plans.NewRegistry(plans.Default())
	m.investments.EXPECT().UpdatePlan("Gold", gomock.Any()).DoAndReturn(func(name string, patch plans.Patch) (*plans.Table, error) {
		require.NotNil(t, patch.ReturnsPercent)
		assert.Equal(t, "12", patch.ReturnsPercent.String())
		assert.Nil(t, patch.MinAmount)
		return registry.Update(name, patch)
	})
	rr := httptest.NewRecorder()
	handler.UpdatePlan(rr, request("PUT", "/api/admin/plans/Gold", `{"returns_percent":"12"}`, map[string]string{"name": "Gold"}))
	assert.Equal(t, http.StatusOK, rr.Code)
	var body dto.PlansResponseDTO
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	assert.Equal(t, 2, body.Version)

	m.investments.EXPECT().UpdatePlan("Mythic", gomock.Any()).Return(nil, fmt.Errorf("plan %q: %w", "Mythic", domain.ErrNotFound))
	rr = httptest.NewRecorder()
	handler.UpdatePlan(rr, request("PUT", "/api/admin/plans/Mythic", `{"duration_days":3}`, map[string]string{"name": "Mythic"}))
	assert.Equal(t, http.StatusNotFound, rr.Code)

	m.investments.EXPECT().UpdatePlan("Gold", gomock.Any()).Return(nil, domain.ErrInvalidPlan)
	rr = httptest.NewRecorder()
	handler.UpdatePlan(rr, request("PUT", "/api/admin/plans/Gold", `{"max_amount":"1"}`, map[string]string{"name": "Gold"}))
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = httptest.NewRecorder()
	handler.UpdatePlan(rr, request("PUT", "/api/admin/plans/Gold", `{"duration_days":0}`, map[string]string{"name": "Gold"}))
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestUpdatePlanHandler_LeavesLoggingToService(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	restore := zap.ReplaceGlobals(zap.New(core))
	defer restore()

	handler, m := NewMock(t)
	table, err := plans.NewTable(3, plans.Default().Plans())
	require.NoError(t, err)
	m.investments.EXPECT().UpdatePlan("Gold", gomock.Any()).Return(table, nil)

	rr := httptest.NewRecorder()
	handler.UpdatePlan(rr, request("PUT", "/api/admin/plans/Gold", `{"duration_days":3}`, map[string]string{"name": "Gold"}))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Zero(t, logs.FilterMessage("plan table updated").Len())
}

func TestRunJobHandler(t *testing.T) {
	tests := []struct {
		name         string
		job          string
		prepareMock  func(m *mocks)
		expectedCode int
	}{
		{
			name: "Accrual run",
			job:  settlement.JobAccrual,
			prepareMock: func(m *mocks) {
				m.jobs.EXPECT().RunJob(gomock.Any(), settlement.JobAccrual).Return(settlement.Result{Processed: 3, Skipped: 1}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Unknown job",
			job:  "payout",
			prepareMock: func(m *mocks) {
				m.jobs.EXPECT().RunJob(gomock.Any(), "payout").Return(settlement.Result{}, fmt.Errorf("%w: %q", settlement.ErrUnknownJob, "payout"))
			},
			expectedCode: http.StatusNotFound,
		},
		{
			name: "Already running",
			job:  settlement.JobRelease,
			prepareMock: func(m *mocks) {
				m.jobs.EXPECT().RunJob(gomock.Any(), settlement.JobRelease).Return(settlement.Result{}, fmt.Errorf("release: %w", settlement.ErrJobRunning))
			},
			expectedCode: http.StatusConflict,
		},
		{
			name: "Run failed",
			job:  settlement.JobCompletion,
			prepareMock: func(m *mocks) {
				m.jobs.EXPECT().RunJob(gomock.Any(), settlement.JobCompletion).Return(settlement.Result{}, errors.New("db error"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, m := NewMock(t)
			tt.prepareMock(m)

			rr := httptest.NewRecorder()
			handler.RunJob(rr, request("POST", "/api/admin/jobs/"+tt.job, "", map[string]string{"job": tt.job}))

			assert.Equal(t, tt.expectedCode, rr.Code)
			if tt.expectedCode == http.StatusOK {
				var result settlement.Result
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&result))
				assert.Equal(t, 3, result.Processed)
				assert.Equal(t, 1, result.Skipped)
			}
		})
	}
}
