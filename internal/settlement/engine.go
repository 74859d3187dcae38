// Package settlement runs the periodic jobs that move money on their own:
// daily accruals, release of held accruals and completion of matured
// investments. Every item is settled in its own transaction so one bad
// record never blocks the rest of a run.
package settlement

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/GlebRadaev/investledger/internal/domain"
	"github.com/GlebRadaev/investledger/internal/metrics"
	"github.com/GlebRadaev/investledger/internal/pg"
	"github.com/GlebRadaev/investledger/internal/service/ledgerservice"
)

//go:generate mockgen -source=engine.go -destination=mock_engine.go -package=settlement

const (
	JobAccrual    = "accrual"
	JobRelease    = "release"
	JobCompletion = "completion"
)

// Policy decides where a daily accrual lands.
type Policy string

const (
	// PolicyHeld parks accruals in the pending balance for the hold period.
	PolicyHeld Policy = "held"
	// PolicyImmediate makes accruals withdrawable as soon as they post.
	PolicyImmediate Policy = "immediate"
)

func ParsePolicy(s string) (Policy, error) {
	switch p := Policy(s); p {
	case PolicyHeld, PolicyImmediate:
		return p, nil
	}
	return "", fmt.Errorf("unknown accrual policy %q", s)
}

type InvestmentRepo interface {
	GetForUpdate(ctx context.Context, id int) (*domain.Investment, error)
	FindAccruable(ctx context.Context, now time.Time, afterID int, limit uint32) ([]domain.Investment, error)
	FindMatured(ctx context.Context, now time.Time, afterID int, limit uint32) ([]domain.Investment, error)
}

type AccrualRepo interface {
	Create(ctx context.Context, accrual *domain.EarningAccrual) (bool, error)
	SumByInvestment(ctx context.Context, investmentID int) (int, decimal.Decimal, error)
	FindReleasable(ctx context.Context, now time.Time, afterID int, limit uint32) ([]domain.EarningAccrual, error)
	MarkReleased(ctx context.Context, id int, now time.Time) (bool, error)
}

type Completer interface {
	CompleteMatured(ctx context.Context, id int, now time.Time) (bool, error)
}

type Options struct {
	Policy     Policy
	HoldDays   int
	BatchLimit uint32
	Workers    int
}

// Result counts the outcome of one job run. Skipped items needed no work,
// usually because an earlier run already handled them.
type Result struct {
	Processed int `json:"processed"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed"`
}

type counters struct {
	processed atomic.Int64
	skipped   atomic.Int64
	failed    atomic.Int64
}

func (c *counters) result() Result {
	return Result{
		Processed: int(c.processed.Load()),
		Skipped:   int(c.skipped.Load()),
		Failed:    int(c.failed.Load()),
	}
}

type Engine struct {
	investments InvestmentRepo
	accruals    AccrualRepo
	ledger      ledgerservice.Ledger
	completer   Completer
	tx          pg.TXManager
	poster      *Poster
	policy      Policy
	limit       uint32
	workerPool  WorkerPoolI
	inFlight    sync.Map
}

func New(investments InvestmentRepo, accruals AccrualRepo, ledger ledgerservice.Ledger, completer Completer, tx pg.TXManager, opts Options) *Engine {
	if opts.BatchLimit == 0 {
		opts.BatchLimit = 1000
	}
	if opts.Workers == 0 {
		opts.Workers = 10
	}
	if opts.Policy == "" {
		opts.Policy = PolicyHeld
	}
	return &Engine{
		investments: investments,
		accruals:    accruals,
		ledger:      ledger,
		completer:   completer,
		tx:          tx,
		poster:      NewPoster(accruals, ledger, opts.Policy, opts.HoldDays),
		policy:      opts.Policy,
		limit:       opts.BatchLimit,
		workerPool:  NewWorkerPool(opts.Workers),
	}
}

func (e *Engine) Policy() Policy {
	return e.policy
}

func (e *Engine) Close() {
	e.workerPool.Close()
}

// run pages through the candidates by ascending id and hands every item to
// the worker pool. handle reports false for items that needed nothing.
func run[T any](ctx context.Context, e *Engine, job string, fetch func(ctx context.Context, afterID int) ([]T, error), idOf func(T) int, handle func(ctx context.Context, item T) (bool, error)) (Result, error) {
	runID := uuid.NewString()
	start := time.Now()
	logger := zap.L().With(zap.String("job", job), zap.String("runID", runID))
	logger.Info("settlement job started")

	var (
		c       counters
		afterID int
		runErr  error
	)
	for {
		page, err := fetch(ctx, afterID)
		if err != nil {
			runErr = fmt.Errorf("fetch %s candidates: %w", job, err)
			break
		}

		var (
			wg sync.WaitGroup
			g  errgroup.Group
		)
		for _, item := range page {
			key := fmt.Sprintf("%s:%d", job, idOf(item))
			if _, loaded := e.inFlight.LoadOrStore(key, struct{}{}); loaded {
				c.skipped.Add(1)
				continue
			}

			wg.Add(1)
			g.Go(func() error {
				err := e.workerPool.AddTask(ctx, func() error {
					defer wg.Done()
					defer e.inFlight.Delete(key)

					done, err := handle(ctx, item)
					switch {
					case err != nil:
						c.failed.Add(1)
						logger.Error("settlement item failed", zap.Int("id", idOf(item)), zap.Error(err))
					case done:
						c.processed.Add(1)
					default:
						c.skipped.Add(1)
					}
					return nil
				})
				if err != nil {
					e.inFlight.Delete(key)
					wg.Done()
				}
				return err
			})
		}
		submitErr := g.Wait()
		wg.Wait()
		if submitErr != nil {
			runErr = submitErr
			break
		}
		if len(page) < int(e.limit) {
			break
		}
		afterID = idOf(page[len(page)-1])
	}

	res := c.result()
	metrics.JobRuns.WithLabelValues(job, metrics.Result(runErr)).Inc()
	metrics.JobDuration.WithLabelValues(job).Observe(time.Since(start).Seconds())
	metrics.JobItems.WithLabelValues(job, "processed").Add(float64(res.Processed))
	metrics.JobItems.WithLabelValues(job, "skipped").Add(float64(res.Skipped))
	metrics.JobItems.WithLabelValues(job, "failed").Add(float64(res.Failed))

	fields := []zap.Field{
		zap.Int("processed", res.Processed),
		zap.Int("skipped", res.Skipped),
		zap.Int("failed", res.Failed),
		zap.Duration("took", time.Since(start)),
	}
	if runErr != nil {
		logger.Error("settlement job aborted", append(fields, zap.Error(runErr))...)
		return res, runErr
	}
	logger.Info("settlement job finished", fields...)
	return res, nil
}

func investmentID(inv domain.Investment) int { return inv.ID }

func accrualID(a domain.EarningAccrual) int { return a.ID }

// accrualDay is the UTC calendar day an accrual is booked under. At most one
// accrual per investment exists for a day.
func accrualDay(now time.Time) time.Time {
	y, m, d := now.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// RunAccrual posts today's return for every active investment.
func (e *Engine) RunAccrual(ctx context.Context, now time.Time) (Result, error) {
	now = now.UTC()
	return run(ctx, e, JobAccrual,
		func(ctx context.Context, afterID int) ([]domain.Investment, error) {
			return e.investments.FindAccruable(ctx, now, afterID, e.limit)
		},
		investmentID,
		func(ctx context.Context, inv domain.Investment) (bool, error) {
			return e.accrue(ctx, inv.ID, now)
		},
	)
}

func (e *Engine) accrue(ctx context.Context, id int, now time.Time) (bool, error) {
	var posted bool
	err := e.tx.Begin(ctx, func(ctx context.Context) error {
		posted = false
		inv, err := e.investments.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if inv == nil {
			return fmt.Errorf("investment %d: %w", id, domain.ErrNotFound)
		}
		if inv.Status != domain.InvestmentActive || inv.StartDate == nil || inv.EndDate == nil ||
			inv.StartDate.After(now) || !now.Before(*inv.EndDate) {
			return nil
		}

		count, total, err := e.accruals.SumByInvestment(ctx, inv.ID)
		if err != nil {
			return err
		}
		amount, ok := domain.NextAccrual(inv, count, total)
		if !ok {
			return nil
		}

		posted, err = e.poster.post(ctx, inv, amount, now, false)
		return err
	})
	return posted, err
}

// RunRelease moves held accruals whose release date has passed into the
// withdrawable balance.
func (e *Engine) RunRelease(ctx context.Context, now time.Time) (Result, error) {
	now = now.UTC()
	return run(ctx, e, JobRelease,
		func(ctx context.Context, afterID int) ([]domain.EarningAccrual, error) {
			return e.accruals.FindReleasable(ctx, now, afterID, e.limit)
		},
		accrualID,
		func(ctx context.Context, a domain.EarningAccrual) (bool, error) {
			return e.release(ctx, a, now)
		},
	)
}

func (e *Engine) release(ctx context.Context, a domain.EarningAccrual, now time.Time) (bool, error) {
	var released bool
	err := e.tx.Begin(ctx, func(ctx context.Context) error {
		ok, err := e.accruals.MarkReleased(ctx, a.ID, now)
		released = ok
		if err != nil || !ok {
			return err
		}
		_, err = e.ledger.Apply(ctx, a.UserID,
			domain.Debit(domain.FieldPendingBalance, a.Amount),
			domain.Credit(domain.FieldWithdrawableBalance, a.Amount),
		)
		return err
	})
	if err != nil {
		return false, err
	}
	return released, nil
}

// RunCompletion settles every active investment whose end date has passed.
func (e *Engine) RunCompletion(ctx context.Context, now time.Time) (Result, error) {
	now = now.UTC()
	return run(ctx, e, JobCompletion,
		func(ctx context.Context, afterID int) ([]domain.Investment, error) {
			return e.investments.FindMatured(ctx, now, afterID, e.limit)
		},
		investmentID,
		func(ctx context.Context, inv domain.Investment) (bool, error) {
			return e.completer.CompleteMatured(ctx, inv.ID, now)
		},
	)
}
