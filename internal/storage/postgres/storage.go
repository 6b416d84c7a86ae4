package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/rewardhub/rewardhub/internal/domain/errors"
	"github.com/rewardhub/rewardhub/internal/domain/model"
	"github.com/rewardhub/rewardhub/internal/domain/repository"
)

// pgxPool is the subset of pgxpool.Pool the storage uses; tests substitute a
// pgxmock pool through it.
type pgxPool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// newRequestID generates withdrawal request identifiers; overridable in tests.
var newRequestID = uuid.NewString

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool    pgxPool
	logger  *slog.Logger
	timeout time.Duration
}

type profileRepository struct {
	storage *Storage
}

type withdrawalRepository struct {
	storage *Storage
}

type ledgerRepository struct {
	storage *Storage
}

// New creates storage with schema initialization. timeout bounds every store
// call; zero disables the per-call deadline.
func New(ctx context.Context, dsn string, timeout time.Duration, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger, timeout: timeout}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Profiles() repository.ProfileRepository {
	return &profileRepository{storage: s}
}

func (s *Storage) Withdrawals() repository.WithdrawalRepository {
	return &withdrawalRepository{storage: s}
}

func (s *Storage) Ledger() repository.LedgerRepository {
	return &ledgerRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS profiles (
            id TEXT PRIMARY KEY,
            email TEXT NOT NULL DEFAULT '',
            points BIGINT NOT NULL DEFAULT 0 CHECK (points >= 0),
            country_code TEXT,
            postal_code TEXT,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS withdrawal_requests (
            id TEXT PRIMARY KEY,
            user_id TEXT NOT NULL REFERENCES profiles(id),
            paypal_email TEXT NOT NULL,
            points BIGINT NOT NULL CHECK (points > 0),
            amount_usd DOUBLE PRECISION NOT NULL,
            status TEXT NOT NULL,
            rejection_reason TEXT,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_withdrawal_requests_user ON withdrawal_requests(user_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_withdrawal_requests_created ON withdrawal_requests(created_at DESC)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// callCtx applies the configured per-call deadline.
func (s *Storage) callCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}

// mapErr normalizes driver errors into the domain taxonomy. A deadline hit
// means the outcome is unknown, which callers must treat differently from a
// definite failure.
func mapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %v", domainErrors.ErrTimeout, err)
	case errors.Is(err, pgx.ErrNoRows):
		return domainErrors.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return domainErrors.ErrAlreadyExists
	}
	return err
}

const profileColumns = `id, email, points, country_code, postal_code, created_at, updated_at`

func scanProfile(row pgx.Row) (*model.UserProfile, error) {
	var p model.UserProfile
	err := row.Scan(&p.ID, &p.Email, &p.Points, &p.CountryCode, &p.PostalCode, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return &p, nil
}

// --- ProfileRepository implementation ---

func (r *profileRepository) Get(ctx context.Context, userID string) (*model.UserProfile, error) {
	ctx, cancel := r.storage.callCtx(ctx)
	defer cancel()

	const query = `SELECT ` + profileColumns + ` FROM profiles WHERE id=$1`
	return scanProfile(r.storage.pool.QueryRow(ctx, query, userID))
}

// Create is idempotent: a second call for the same id returns the existing
// profile untouched instead of failing, so retries after partial failures
// are harmless.
func (r *profileRepository) Create(ctx context.Context, userID, email string) (*model.UserProfile, error) {
	ctx, cancel := r.storage.callCtx(ctx)
	defer cancel()

	const query = `INSERT INTO profiles (id, email) VALUES ($1, $2)
                   ON CONFLICT (id) DO NOTHING
                   RETURNING ` + profileColumns
	profile, err := scanProfile(r.storage.pool.QueryRow(ctx, query, userID, email))
	if errors.Is(err, domainErrors.ErrNotFound) {
		const existing = `SELECT ` + profileColumns + ` FROM profiles WHERE id=$1`
		return scanProfile(r.storage.pool.QueryRow(ctx, existing, userID))
	}
	return profile, err
}

func (r *profileRepository) SetPoints(ctx context.Context, userID string, points int64) (*model.UserProfile, error) {
	ctx, cancel := r.storage.callCtx(ctx)
	defer cancel()

	const query = `UPDATE profiles SET points=$2, updated_at=NOW() WHERE id=$1
                   RETURNING ` + profileColumns
	return scanProfile(r.storage.pool.QueryRow(ctx, query, userID, points))
}

func (r *profileRepository) AddPoints(ctx context.Context, userID string, delta int64) (*model.UserProfile, error) {
	ctx, cancel := r.storage.callCtx(ctx)
	defer cancel()

	const query = `UPDATE profiles SET points=GREATEST(points+$2, 0), updated_at=NOW() WHERE id=$1
                   RETURNING ` + profileColumns
	return scanProfile(r.storage.pool.QueryRow(ctx, query, userID, delta))
}

func (r *profileRepository) SetDemographics(ctx context.Context, userID, countryCode, postalCode string) (*model.UserProfile, error) {
	ctx, cancel := r.storage.callCtx(ctx)
	defer cancel()

	const query = `UPDATE profiles SET country_code=$2, postal_code=$3, updated_at=NOW() WHERE id=$1
                   RETURNING ` + profileColumns
	return scanProfile(r.storage.pool.QueryRow(ctx, query, userID, countryCode, postalCode))
}

// --- WithdrawalRepository implementation ---

const requestColumns = `id, user_id, paypal_email, points, amount_usd, status, rejection_reason, created_at`

func scanRequest(row pgx.Row) (*model.WithdrawalRequest, error) {
	var w model.WithdrawalRequest
	err := row.Scan(&w.ID, &w.UserID, &w.PaypalEmail, &w.Points, &w.AmountUSD, &w.Status, &w.RejectionReason, &w.CreatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return &w, nil
}

func (r *withdrawalRepository) Get(ctx context.Context, requestID, userID string) (*model.WithdrawalRequest, error) {
	ctx, cancel := r.storage.callCtx(ctx)
	defer cancel()

	const query = `SELECT ` + requestColumns + ` FROM withdrawal_requests WHERE id=$1 AND user_id=$2`
	return scanRequest(r.storage.pool.QueryRow(ctx, query, requestID, userID))
}

func (r *withdrawalRepository) ListByUser(ctx context.Context, userID string) ([]model.WithdrawalRequest, error) {
	ctx, cancel := r.storage.callCtx(ctx)
	defer cancel()

	const query = `SELECT ` + requestColumns + `
                   FROM withdrawal_requests WHERE user_id=$1 ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	return collectRequests(rows)
}

func (r *withdrawalRepository) ListAll(ctx context.Context) ([]model.WithdrawalRequest, error) {
	ctx, cancel := r.storage.callCtx(ctx)
	defer cancel()

	const query = `SELECT ` + requestColumns + `
                   FROM withdrawal_requests ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	return collectRequests(rows)
}

func collectRequests(rows pgx.Rows) ([]model.WithdrawalRequest, error) {
	var result []model.WithdrawalRequest
	for rows.Next() {
		var w model.WithdrawalRequest
		if err := rows.Scan(&w.ID, &w.UserID, &w.PaypalEmail, &w.Points, &w.AmountUSD, &w.Status, &w.RejectionReason, &w.CreatedAt); err != nil {
			return nil, mapErr(err)
		}
		result = append(result, w)
	}
	if err := rows.Err(); err != nil {
		return nil, mapErr(err)
	}
	return result, nil
}

// ListAllJoined returns every request with the owner's email attached. A
// missing profile leaves the email empty rather than dropping the row; the
// query layer substitutes its placeholder.
func (r *withdrawalRepository) ListAllJoined(ctx context.Context) ([]model.AdminWithdrawalRequest, error) {
	ctx, cancel := r.storage.callCtx(ctx)
	defer cancel()

	const query = `SELECT w.id, w.user_id, w.paypal_email, w.points, w.amount_usd, w.status, w.rejection_reason, w.created_at, p.email
                   FROM withdrawal_requests w
                   LEFT JOIN profiles p ON p.id = w.user_id
                   ORDER BY w.created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	var result []model.AdminWithdrawalRequest
	for rows.Next() {
		var (
			a     model.AdminWithdrawalRequest
			email *string
		)
		if err := rows.Scan(&a.ID, &a.UserID, &a.PaypalEmail, &a.Points, &a.AmountUSD, &a.Status, &a.RejectionReason, &a.CreatedAt, &email); err != nil {
			return nil, mapErr(err)
		}
		if email != nil {
			a.UserEmail = *email
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, mapErr(err)
	}
	return result, nil
}

// --- LedgerRepository implementation ---

func (r *ledgerRepository) SubmitWithdrawal(ctx context.Context, userID, paypalEmail string, points int64, amountUSD float64) (*model.WithdrawalRequest, error) {
	ctx, cancel := r.storage.callCtx(ctx)
	defer cancel()

	req := &model.WithdrawalRequest{
		ID:          newRequestID(),
		UserID:      userID,
		PaypalEmail: paypalEmail,
		Points:      points,
		AmountUSD:   amountUSD,
		Status:      model.StatusPendingReview,
	}

	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		// Lock the profile row so the balance check and the debit see the
		// same value; concurrent submissions serialize here.
		const balanceQuery = `SELECT points FROM profiles WHERE id=$1 FOR UPDATE`
		var current int64
		if err := tx.QueryRow(ctx, balanceQuery, userID).Scan(&current); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrNotFound
			}
			return err
		}
		if current < points {
			return domainErrors.ErrInsufficientBalance
		}

		const debit = `UPDATE profiles SET points = points - $2, updated_at=NOW() WHERE id=$1`
		if _, err := tx.Exec(ctx, debit, userID, points); err != nil {
			return err
		}

		const insert = `INSERT INTO withdrawal_requests (id, user_id, paypal_email, points, amount_usd, status)
                        VALUES ($1, $2, $3, $4, $5, $6)
                        RETURNING created_at`
		return tx.QueryRow(ctx, insert, req.ID, userID, paypalEmail, points, amountUSD, model.StatusPendingReview).Scan(&req.CreatedAt)
	})
	if err != nil {
		return nil, mapErr(err)
	}
	return req, nil
}

func (r *ledgerRepository) ResolveRequest(ctx context.Context, requestID, userID string, newStatus model.WithdrawalStatus, reason string) (*repository.ResolveOutcome, error) {
	ctx, cancel := r.storage.callCtx(ctx)
	defer cancel()

	outcome := &repository.ResolveOutcome{PointsAdjusted: true}

	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		// Locking the request row serializes concurrent admin actions on
		// the same request; the loser revalidates against the committed
		// status.
		const current = `SELECT ` + requestColumns + ` FROM withdrawal_requests WHERE id=$1 AND user_id=$2 FOR UPDATE`
		req, err := scanRequest(tx.QueryRow(ctx, current, requestID, userID))
		if err != nil {
			return err
		}

		if !model.CanTransition(req.Status, newStatus) {
			return domainErrors.ErrInvalidTransition
		}
		delta := model.PointsDelta(req.Status, newStatus, req.Points)

		var reasonArg *string
		if newStatus == model.StatusRejected {
			reasonArg = &reason
		}
		const update = `UPDATE withdrawal_requests SET status=$3, rejection_reason=$4 WHERE id=$1 AND user_id=$2`
		if _, err := tx.Exec(ctx, update, requestID, userID, newStatus, reasonArg); err != nil {
			return err
		}

		outcome.PointsDelta = delta
		if delta != 0 {
			const adjust = `UPDATE profiles SET points=GREATEST(points+$2, 0), updated_at=NOW() WHERE id=$1`
			tag, err := tx.Exec(ctx, adjust, userID, delta)
			if err != nil {
				return err
			}
			// A vanished profile must not block the review: the ledger
			// update commits and the engine reconciles the balance.
			outcome.PointsAdjusted = tag.RowsAffected() == 1
		}

		req.Status = newStatus
		req.RejectionReason = reasonArg
		outcome.Request = req
		return nil
	})
	if err != nil {
		return nil, mapErr(err)
	}
	return outcome, nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}
