package withdrawals

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/investledger/internal/domain"
	"github.com/GlebRadaev/investledger/internal/dto"
	"github.com/GlebRadaev/investledger/pkg/auth"
	"github.com/GlebRadaev/investledger/pkg/utils"
)

func NewMock(t *testing.T) (*WithdrawalHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service)
	return handler, service
}

func withUser(r *http.Request, userID int) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), auth.UserIDKey, userID))
}

func withdrawal(id int, status string) *domain.Withdrawal {
	return &domain.Withdrawal{
		ID:               id,
		UserID:           1,
		Amount:           decimal.RequireFromString("30"),
		Method:           "USDT",
		Type:             domain.WithdrawalCombined,
		Status:           status,
		FromWithdrawable: decimal.RequireFromString("20"),
		FromReferral:     decimal.RequireFromString("10"),
	}
}

func TestRequestWithdrawalHandler(t *testing.T) {
	tests := []struct {
		name          string
		body          string
		prepareMock   func(s *MockService)
		expectedCode  int
		expectedError string
	}{
		{
			name: "Successful request",
			body: `{"amount":"30","method":"USDT","withdrawal_type":"combined","destination":"wallet"}`,
			prepareMock: func(s *MockService) {
				s.EXPECT().RequestWithdrawal(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, req domain.WithdrawalRequest) (*domain.Withdrawal, error) {
						assert.Equal(t, 1, req.UserID)
						assert.Equal(t, "30", req.Amount.String())
						assert.Equal(t, domain.WithdrawalCombined, req.Type)
						assert.Equal(t, "wallet", req.Destination)
						return withdrawal(5, domain.WithdrawalPending), nil
					})
			},
			expectedCode: http.StatusCreated,
		},
		{
			name:          "Malformed body",
			body:          `{`,
			prepareMock:   func(s *MockService) {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Invalid request body",
		},
		{
			name:         "Unknown withdrawal type",
			body:         `{"amount":"30","method":"USDT","withdrawal_type":"bonus"}`,
			prepareMock:  func(s *MockService) {},
			expectedCode: http.StatusUnprocessableEntity,
		},
		{
			name:         "Negative amount",
			body:         `{"amount":"-5","method":"USDT","withdrawal_type":"main"}`,
			prepareMock:  func(s *MockService) {},
			expectedCode: http.StatusUnprocessableEntity,
		},
		{
			name: "Insufficient funds",
			body: `{"amount":"30","method":"USDT","withdrawal_type":"main"}`,
			prepareMock: func(s *MockService) {
				s.EXPECT().RequestWithdrawal(gomock.Any(), gomock.Any()).Return(nil, domain.ErrInsufficientFunds)
			},
			expectedCode:  http.StatusPaymentRequired,
			expectedError: domain.ErrInsufficientFunds.Error(),
		},
		{
			name: "Below minimum",
			body: `{"amount":"1","method":"Bitcoin","withdrawal_type":"main"}`,
			prepareMock: func(s *MockService) {
				s.EXPECT().RequestWithdrawal(gomock.Any(), gomock.Any()).Return(nil, domain.ErrBelowMinimum)
			},
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, service := NewMock(t)
			tt.prepareMock(service)

			req := withUser(httptest.NewRequest("POST", "/api/user/withdrawals", bytes.NewBufferString(tt.body)), 1)
			rr := httptest.NewRecorder()
			handler.RequestWithdrawal(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			if tt.expectedCode == http.StatusCreated {
				var body dto.WithdrawalResponseDTO
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
				assert.Equal(t, 5, body.ID)
				assert.Equal(t, "20", body.FromWithdrawable.String())
				assert.Equal(t, "10", body.FromReferral.String())
				return
			}
			if tt.expectedError != "" {
				var resp utils.Response
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
				assert.Equal(t, tt.expectedError, resp.Message)
			}
		})
	}
}

func TestGetWithdrawalsHandler(t *testing.T) {
	tests := []struct {
		name         string
		prepareMock  func(s *MockService)
		expectedCode int
	}{
		{
			name: "Withdrawals found",
			prepareMock: func(s *MockService) {
				s.EXPECT().GetWithdrawals(gomock.Any(), 1).Return([]domain.Withdrawal{*withdrawal(1, domain.WithdrawalPending)}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "No withdrawals",
			prepareMock: func(s *MockService) {
				s.EXPECT().GetWithdrawals(gomock.Any(), 1).Return([]domain.Withdrawal{}, nil)
			},
			expectedCode: http.StatusNoContent,
		},
		{
			name: "Internal server error",
			prepareMock: func(s *MockService) {
				s.EXPECT().GetWithdrawals(gomock.Any(), 1).Return(nil, errors.New("db error"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, service := NewMock(t)
			tt.prepareMock(service)

			req := withUser(httptest.NewRequest("GET", "/api/user/withdrawals", nil), 1)
			rr := httptest.NewRecorder()
			handler.GetWithdrawals(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
		})
	}
}

func TestGetStatsHandler(t *testing.T) {
	handler, service := NewMock(t)
	service.EXPECT().GetStats(gomock.Any(), 1).Return([]domain.WithdrawalStat{
		{Status: domain.WithdrawalPending, Count: 2, Total: decimal.RequireFromString("60")},
		{Status: domain.WithdrawalPaid, Count: 1, Total: decimal.RequireFromString("25.5")},
	}, nil)

	req := withUser(httptest.NewRequest("GET", "/api/user/withdrawals/stats", nil), 1)
	rr := httptest.NewRecorder()
	handler.GetStats(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var body []dto.WithdrawalStatDTO
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	require.Len(t, body, 2)
	assert.Equal(t, 2, body[0].Count)
	assert.Equal(t, "25.5", body[1].Total.String())

	service.EXPECT().GetStats(gomock.Any(), 1).Return(nil, errors.New("db error"))
	rr = httptest.NewRecorder()
	handler.GetStats(rr, req)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestCancelWithdrawalHandler(t *testing.T) {
	tests := []struct {
		name         string
		id           string
		prepareMock  func(s *MockService)
		expectedCode int
	}{
		{
			name: "Cancelled",
			id:   "5",
			prepareMock: func(s *MockService) {
				s.EXPECT().Cancel(gomock.Any(), 1, 5).Return(withdrawal(5, domain.WithdrawalCancelled), nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:         "Invalid id",
			id:           "x",
			prepareMock:  func(s *MockService) {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "Not the owner",
			id:   "6",
			prepareMock: func(s *MockService) {
				s.EXPECT().Cancel(gomock.Any(), 1, 6).Return(nil, domain.ErrNotFound)
			},
			expectedCode: http.StatusNotFound,
		},
		{
			name: "Already processed",
			id:   "7",
			prepareMock: func(s *MockService) {
				s.EXPECT().Cancel(gomock.Any(), 1, 7).Return(nil, domain.ErrAlreadyProcessed)
			},
			expectedCode: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, service := NewMock(t)
			tt.prepareMock(service)

			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.id)
			req := withUser(httptest.NewRequest("POST", "/api/user/withdrawals/"+tt.id+"/cancel", nil), 1)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
			rr := httptest.NewRecorder()
			handler.CancelWithdrawal(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
		})
	}
}
