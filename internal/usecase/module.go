package usecase

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/rewardhub/rewardhub/internal/adapter/alert"
	"github.com/rewardhub/rewardhub/internal/config"
	"github.com/rewardhub/rewardhub/internal/domain/repository"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	NewProfileUseCase,
	newWithdrawalUseCase,
	newAdminUseCase,
)

type withdrawalParams struct {
	fx.In

	Profiles    repository.ProfileRepository
	Withdrawals repository.WithdrawalRepository
	Ledger      repository.LedgerRepository
	Alerts      alert.Notifier
	Logger      *slog.Logger
	Config      *config.Config
}

func newWithdrawalUseCase(p withdrawalParams) *WithdrawalUseCase {
	return NewWithdrawalUseCase(
		p.Profiles,
		p.Withdrawals,
		p.Ledger,
		p.Alerts,
		p.Logger,
		p.Config.MinWithdrawalPoints,
		p.Config.PointsPerDollar,
		p.Config.StoreRetries,
	)
}

type adminParams struct {
	fx.In

	Withdrawals repository.WithdrawalRepository
	Config      *config.Config
}

func newAdminUseCase(p adminParams) *AdminUseCase {
	return NewAdminUseCase(p.Withdrawals, p.Config.StoreRetries)
}
