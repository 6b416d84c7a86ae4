package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/rewardhub/rewardhub/internal/domain/errors"
	"github.com/rewardhub/rewardhub/internal/domain/model"
	"github.com/rewardhub/rewardhub/internal/server/http/middleware"
	testhelpers "github.com/rewardhub/rewardhub/internal/test"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestContext(t *testing.T, method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	c.Request = httptest.NewRequest(method, target, reader)
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func authenticate(c *gin.Context, userID, email string, admin bool) {
	c.Set(middleware.UserIDContextKey, userID)
	c.Set(middleware.UserEmailContextKey, email)
	c.Set(middleware.UserAdminContextKey, admin)
}

func TestProfileHandlerGet(t *testing.T) {
	handler := NewProfileHandler(testhelpers.ProfileFacadeStub{})
	c, w := newTestContext(t, http.MethodGet, "/api/user/profile", "")
	authenticate(c, "user-1", "u@example.com", false)

	handler.Get(c)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp struct {
		ID     string `json:"id"`
		Email  string `json:"email"`
		Points int64  `json:"points"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ID != "user-1" || resp.Email != "u@example.com" || resp.Points != 100 {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestProfileHandlerGetUnauthenticated(t *testing.T) {
	handler := NewProfileHandler(testhelpers.ProfileFacadeStub{
		ProfileFn: func(context.Context, string, string) (*model.UserProfile, error) {
			return nil, domainErrors.ErrUnauthenticated
		},
	})
	c, w := newTestContext(t, http.MethodGet, "/api/user/profile", "")

	handler.Get(c)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestProfileHandlerUpdateDemographics(t *testing.T) {
	handler := NewProfileHandler(testhelpers.ProfileFacadeStub{})

	c, w := newTestContext(t, http.MethodPut, "/api/user/demographics", "{bad json")
	authenticate(c, "user-1", "u@example.com", false)
	handler.UpdateDemographics(c)
	c.Writer.WriteHeaderNow()
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %d", w.Code)
	}

	c, w = newTestContext(t, http.MethodPut, "/api/user/demographics", `{"country_code":"US","postal_code":"90210"}`)
	authenticate(c, "user-1", "u@example.com", false)
	handler.UpdateDemographics(c)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp struct {
		CountryCode *string `json:"country_code"`
		PostalCode  *string `json:"postal_code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.CountryCode == nil || *resp.CountryCode != "US" || resp.PostalCode == nil || *resp.PostalCode != "90210" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestWithdrawalHandlerSubmit(t *testing.T) {
	cases := []struct {
		name       string
		body       string
		submitErr  error
		wantStatus int
	}{
		{"malformed body", "{", nil, http.StatusBadRequest},
		{"below minimum", `{"paypal_email":"p@e.com","points":100}`, domainErrors.ErrBelowMinimum, http.StatusUnprocessableEntity},
		{"bad email", `{"paypal_email":"nope","points":5000}`, domainErrors.ErrInvalidArgument, http.StatusUnprocessableEntity},
		{"insufficient", `{"paypal_email":"p@e.com","points":9999999}`, domainErrors.ErrInsufficientBalance, http.StatusPaymentRequired},
		{"timeout", `{"paypal_email":"p@e.com","points":5000}`, domainErrors.ErrTimeout, http.StatusGatewayTimeout},
		{"success", `{"paypal_email":"p@e.com","points":5000}`, nil, http.StatusCreated},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stub := testhelpers.WithdrawalFacadeStub{}
			if tc.submitErr != nil {
				stub.SubmitFn = func(context.Context, string, string, int64) (*model.WithdrawalRequest, error) {
					return nil, tc.submitErr
				}
			}
			handler := NewWithdrawalHandler(stub)
			c, w := newTestContext(t, http.MethodPost, "/api/user/withdrawals", tc.body)
			authenticate(c, "user-1", "u@example.com", false)

			handler.Submit(c)
			c.Writer.WriteHeaderNow()

			if w.Code != tc.wantStatus {
				t.Fatalf("expected %d, got %d", tc.wantStatus, w.Code)
			}
		})
	}
}

func TestWithdrawalHandlerSubmitResponseBody(t *testing.T) {
	handler := NewWithdrawalHandler(testhelpers.WithdrawalFacadeStub{
		SubmitFn: func(_ context.Context, userID, email string, points int64) (*model.WithdrawalRequest, error) {
			return &model.WithdrawalRequest{
				ID:          "req-1",
				UserID:      userID,
				PaypalEmail: email,
				Points:      points,
				AmountUSD:   5,
				Status:      model.StatusPendingReview,
			}, nil
		},
	})
	c, w := newTestContext(t, http.MethodPost, "/api/user/withdrawals", `{"paypal_email":"p@e.com","points":5000}`)
	authenticate(c, "user-1", "u@example.com", false)

	handler.Submit(c)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}
	var resp struct {
		ID          string  `json:"id"`
		PaypalEmail string  `json:"paypal_email"`
		Points      int64   `json:"points"`
		AmountUSD   float64 `json:"amount_usd"`
		Status      string  `json:"status"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ID != "req-1" || resp.PaypalEmail != "p@e.com" || resp.Points != 5000 || resp.AmountUSD != 5 {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.Status != "Pending Review" {
		t.Fatalf("unexpected status string: %q", resp.Status)
	}
}

func TestWithdrawalHandlerList(t *testing.T) {
	handler := NewWithdrawalHandler(testhelpers.WithdrawalFacadeStub{
		WithdrawalsFn: func(context.Context, string) ([]model.WithdrawalRequest, error) {
			return nil, nil
		},
	})
	c, w := newTestContext(t, http.MethodGet, "/api/user/withdrawals", "")
	authenticate(c, "user-1", "u@example.com", false)
	handler.List(c)
	c.Writer.WriteHeaderNow()
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for empty history, got %d", w.Code)
	}

	handler = NewWithdrawalHandler(testhelpers.WithdrawalFacadeStub{})
	c, w = newTestContext(t, http.MethodGet, "/api/user/withdrawals", "")
	authenticate(c, "user-1", "u@example.com", false)
	handler.List(c)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp []json.RawMessage
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp) != 1 {
		t.Fatalf("expected one entry, got %d", len(resp))
	}
}

func TestAdminHandlerList(t *testing.T) {
	handler := NewAdminHandler(testhelpers.AdminFacadeStub{
		ListFn: func(_ context.Context, isAdmin bool, status string) ([]model.AdminWithdrawalRequest, error) {
			if !isAdmin {
				return nil, domainErrors.ErrPermissionDenied
			}
			if status != "" && status != "Pending Review" {
				return nil, domainErrors.ErrInvalidArgument
			}
			return []model.AdminWithdrawalRequest{
				{
					WithdrawalRequest: model.WithdrawalRequest{ID: "req-1", UserID: "user-1", Status: model.StatusPendingReview},
					UserEmail:         "a@example.com",
				},
			}, nil
		},
	})

	c, w := newTestContext(t, http.MethodGet, "/api/admin/withdrawals", "")
	authenticate(c, "admin-1", "admin@example.com", false)
	handler.List(c)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin, got %d", w.Code)
	}

	c, w = newTestContext(t, http.MethodGet, "/api/admin/withdrawals?status=Frozen", "")
	authenticate(c, "admin-1", "admin@example.com", true)
	handler.List(c)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for unknown status, got %d", w.Code)
	}

	c, w = newTestContext(t, http.MethodGet, "/api/admin/withdrawals?status=Pending+Review", "")
	authenticate(c, "admin-1", "admin@example.com", true)
	handler.List(c)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp []struct {
		ID        string `json:"id"`
		UserID    string `json:"user_id"`
		UserEmail string `json:"user_email"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp) != 1 || resp[0].UserEmail != "a@example.com" || resp[0].UserID != "user-1" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestAdminHandlerResolve(t *testing.T) {
	cases := []struct {
		name       string
		body       string
		resolveErr error
		wantStatus int
	}{
		{"malformed body", "{", nil, http.StatusBadRequest},
		{"terminal state", `{"user_id":"user-1","status":"Rejected","rejection_reason":"late"}`, domainErrors.ErrInvalidTransition, http.StatusConflict},
		{"missing request", `{"user_id":"user-1","status":"Processed"}`, domainErrors.ErrNotFound, http.StatusNotFound},
		{"reconciliation failure", `{"user_id":"user-1","status":"Rejected","rejection_reason":"fraud"}`, domainErrors.ErrReconciliationFailure, http.StatusInternalServerError},
		{"success", `{"user_id":"user-1","status":"Processed"}`, nil, http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stub := testhelpers.AdminFacadeStub{}
			if tc.resolveErr != nil {
				stub.ResolveFn = func(context.Context, bool, string, string, model.WithdrawalStatus, string) (*model.WithdrawalRequest, error) {
					return nil, tc.resolveErr
				}
			}
			handler := NewAdminHandler(stub)
			c, w := newTestContext(t, http.MethodPatch, "/api/admin/withdrawals/req-1", tc.body)
			c.Params = gin.Params{{Key: "id", Value: "req-1"}}
			authenticate(c, "admin-1", "admin@example.com", true)

			handler.Resolve(c)
			c.Writer.WriteHeaderNow()

			if w.Code != tc.wantStatus {
				t.Fatalf("expected %d, got %d", tc.wantStatus, w.Code)
			}
		})
	}
}

type rewardVerifierStub struct {
	err error
}

func (s rewardVerifierStub) Verify(string, string, int64, string) error { return s.err }

func TestRewardsHandlerCallback(t *testing.T) {
	handler := NewRewardsHandler(testhelpers.ProfileFacadeStub{}, rewardVerifierStub{})

	c, w := newTestContext(t, http.MethodPost, "/api/rewards/callback", "{")
	handler.Callback(c)
	c.Writer.WriteHeaderNow()
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %d", w.Code)
	}

	c, w = newTestContext(t, http.MethodPost, "/api/rewards/callback", `{"user_id":"user-1","email":"u@example.com","transaction_id":"tx-1","points":500,"signature":"sig"}`)
	handler.Callback(c)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp struct {
		UserID string `json:"user_id"`
		Points int64  `json:"points"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.UserID != "user-1" || resp.Points != 500 {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestRewardsHandlerCallbackBadSignature(t *testing.T) {
	handler := NewRewardsHandler(testhelpers.ProfileFacadeStub{}, rewardVerifierStub{err: errors.New("bad signature")})

	c, w := newTestContext(t, http.MethodPost, "/api/rewards/callback", `{"user_id":"user-1","transaction_id":"tx-1","points":500,"signature":"forged"}`)
	handler.Callback(c)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestRewardsHandlerCallbackInvalidPoints(t *testing.T) {
	handler := NewRewardsHandler(testhelpers.ProfileFacadeStub{
		CreditRewardFn: func(context.Context, string, string, int64) (*model.UserProfile, error) {
			return nil, domainErrors.ErrInvalidArgument
		},
	}, rewardVerifierStub{})

	c, w := newTestContext(t, http.MethodPost, "/api/rewards/callback", `{"user_id":"user-1","transaction_id":"tx-1","points":-5,"signature":"sig"}`)
	handler.Callback(c)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", w.Code)
	}
}

func TestHealthHandler(t *testing.T) {
	handler := NewHealthHandler(testhelpers.RewardFacadeStub{})
	c, w := newTestContext(t, http.MethodGet, "/api/health", "")
	handler.Check(c)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	handler = NewHealthHandler(testhelpers.RewardFacadeStub{
		HealthFn: func(context.Context) error { return errors.New("db down") },
	})
	c, w = newTestContext(t, http.MethodGet, "/api/health", "")
	handler.Check(c)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
}

func TestCurrentIdentityHelpers(t *testing.T) {
	c, _ := newTestContext(t, http.MethodGet, "/", "")
	if CurrentUserID(c) != "" || CurrentEmail(c) != "" || IsAdmin(c) {
		t.Fatal("expected zero values without auth context")
	}

	authenticate(c, "user-1", "u@example.com", true)
	if CurrentUserID(c) != "user-1" || CurrentEmail(c) != "u@example.com" || !IsAdmin(c) {
		t.Fatal("unexpected identity values")
	}
}
