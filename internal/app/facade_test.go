package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	domainErrors "github.com/rewardhub/rewardhub/internal/domain/errors"
	"github.com/rewardhub/rewardhub/internal/domain/model"
	testhelpers "github.com/rewardhub/rewardhub/internal/test"
	"github.com/rewardhub/rewardhub/internal/usecase"
)

type healthStub struct {
	err error
}

func (h healthStub) HealthCheck(context.Context) error { return h.err }

func newFacade() (*RewardFacade, *testhelpers.ProfileRepositoryStub, *testhelpers.WithdrawalRepositoryStub, *testhelpers.LedgerRepositoryStub, *healthStub) {
	profiles := testhelpers.NewProfileRepositoryStub()
	withdrawals := &testhelpers.WithdrawalRepositoryStub{}
	ledger := &testhelpers.LedgerRepositoryStub{}
	alerts := &testhelpers.AlertNotifierStub{}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	profileUC := usecase.NewProfileUseCase(profiles)
	withdrawalUC := usecase.NewWithdrawalUseCase(profiles, withdrawals, ledger, alerts, logger, 5000, 1000, 1)
	adminUC := usecase.NewAdminUseCase(withdrawals, 1)

	health := &healthStub{}
	facade := NewRewardFacade(profileUC, withdrawalUC, adminUC, health)
	return facade, profiles, withdrawals, ledger, health
}

func TestRewardFacadeProfile(t *testing.T) {
	facade, profiles, _, _, _ := newFacade()

	profile, err := facade.Profile(context.Background(), "user-1", "u@example.com")
	if err != nil {
		t.Fatalf("profile returned error: %v", err)
	}
	if profile.ID != "user-1" {
		t.Fatalf("unexpected profile: %+v", profile)
	}
	if _, ok := profiles.Profiles["user-1"]; !ok {
		t.Fatal("profile not stored")
	}

	updated, err := facade.UpdateDemographics(context.Background(), "user-1", "DE", "10115")
	if err != nil {
		t.Fatalf("update demographics returned error: %v", err)
	}
	if updated.CountryCode == nil || *updated.CountryCode != "DE" {
		t.Fatalf("unexpected demographics: %+v", updated)
	}

	credited, err := facade.CreditReward(context.Background(), "user-1", "u@example.com", 300)
	if err != nil {
		t.Fatalf("credit returned error: %v", err)
	}
	if credited.Points != 300 {
		t.Fatalf("unexpected points: %d", credited.Points)
	}
}

func TestRewardFacadeWithdrawals(t *testing.T) {
	facade, profiles, withdrawals, ledger, _ := newFacade()
	profiles.Profiles["user-1"] = &model.UserProfile{ID: "user-1", Points: 10000}
	withdrawals.Items = []model.WithdrawalRequest{{ID: "req-1", UserID: "user-1"}}

	req, err := facade.SubmitWithdrawal(context.Background(), "user-1", "pay@example.com", 5000)
	if err != nil {
		t.Fatalf("submit returned error: %v", err)
	}
	if req.Status != model.StatusPendingReview {
		t.Fatalf("unexpected status: %s", req.Status)
	}
	if len(ledger.SubmitCalls) != 1 {
		t.Fatalf("expected one ledger call, got %d", len(ledger.SubmitCalls))
	}

	list, err := facade.Withdrawals(context.Background(), "user-1")
	if err != nil || len(list) != 1 {
		t.Fatalf("unexpected withdrawals result: %v err=%v", list, err)
	}

	if _, err := facade.SubmitWithdrawal(context.Background(), "user-1", "pay@example.com", 999999); !errors.Is(err, domainErrors.ErrInsufficientBalance) {
		t.Fatalf("expected insufficient balance, got %v", err)
	}
}

func TestRewardFacadeAdmin(t *testing.T) {
	facade, _, withdrawals, ledger, _ := newFacade()
	withdrawals.JoinedItems = []model.AdminWithdrawalRequest{
		{WithdrawalRequest: model.WithdrawalRequest{ID: "req-1", Status: model.StatusPendingReview}, UserEmail: "a@example.com"},
	}

	list, err := facade.AdminWithdrawals(context.Background(), true, "")
	if err != nil || len(list) != 1 {
		t.Fatalf("unexpected admin list: %v err=%v", list, err)
	}

	if _, err := facade.AdminWithdrawals(context.Background(), false, ""); !errors.Is(err, domainErrors.ErrPermissionDenied) {
		t.Fatalf("expected permission denied, got %v", err)
	}

	req, err := facade.ResolveWithdrawal(context.Background(), true, "req-1", "user-1", model.StatusProcessed, "")
	if err != nil {
		t.Fatalf("resolve returned error: %v", err)
	}
	if req.Status != model.StatusProcessed {
		t.Fatalf("unexpected status: %s", req.Status)
	}
	if len(ledger.ResolveCalls) != 1 {
		t.Fatalf("expected one resolve call, got %d", len(ledger.ResolveCalls))
	}
}

func TestRewardFacadeHealth(t *testing.T) {
	facade, _, _, _, health := newFacade()

	if err := facade.HealthCheck(context.Background()); err != nil {
		t.Fatalf("expected healthy, got %v", err)
	}
	health.err = errors.New("db down")
	if err := facade.HealthCheck(context.Background()); err == nil {
		t.Fatal("expected health check failure")
	}
}
