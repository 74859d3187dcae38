package settlement

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

//go:generate mockgen -source=scheduler.go -destination=mock_scheduler.go -package=settlement

var ErrUnknownJob = errors.New("unknown settlement job")

type Jobs interface {
	RunAccrual(ctx context.Context, now time.Time) (Result, error)
	RunRelease(ctx context.Context, now time.Time) (Result, error)
	RunCompletion(ctx context.Context, now time.Time) (Result, error)
}

var _ Jobs = (*Engine)(nil)

// Schedule holds the cron specs of the three jobs, evaluated in UTC.
type Schedule struct {
	Accrual    string
	Release    string
	Completion string
}

type Scheduler struct {
	cron     *cron.Cron
	jobs     Jobs
	locker   Locker
	schedule Schedule
	timeout  time.Duration
	now      func() time.Time
}

func NewScheduler(jobs Jobs, locker Locker, schedule Schedule, timeout time.Duration) *Scheduler {
	if timeout <= 0 {
		timeout = 30 * time.Minute
	}
	return &Scheduler{
		cron:     cron.New(cron.WithLocation(time.UTC)),
		jobs:     jobs,
		locker:   locker,
		schedule: schedule,
		timeout:  timeout,
		now:      time.Now,
	}
}

func (s *Scheduler) runner(job string) (func(context.Context, time.Time) (Result, error), error) {
	switch job {
	case JobAccrual:
		return s.jobs.RunAccrual, nil
	case JobRelease:
		return s.jobs.RunRelease, nil
	case JobCompletion:
		return s.jobs.RunCompletion, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownJob, job)
}

// RunJob runs one job now under the job lock. Cron ticks and manual
// triggers both come through here.
func (s *Scheduler) RunJob(ctx context.Context, job string) (Result, error) {
	fn, err := s.runner(job)
	if err != nil {
		return Result{}, err
	}

	unlock, err := s.locker.Lock(ctx, job, s.timeout)
	if err != nil {
		return Result{}, err
	}
	defer func() {
		if err := unlock(context.WithoutCancel(ctx)); err != nil {
			zap.L().Warn("failed to release job lock", zap.String("job", job), zap.Error(err))
		}
	}()

	return fn(ctx, s.now())
}

func (s *Scheduler) tick(job string) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		if _, err := s.RunJob(ctx, job); err != nil {
			if errors.Is(err, ErrJobRunning) {
				zap.L().Info("settlement job skipped, still running elsewhere", zap.String("job", job))
				return
			}
			zap.L().Error("settlement job failed", zap.String("job", job), zap.Error(err))
		}
	}
}

func (s *Scheduler) Start() error {
	specs := []struct {
		job  string
		spec string
	}{
		{JobCompletion, s.schedule.Completion},
		{JobAccrual, s.schedule.Accrual},
		{JobRelease, s.schedule.Release},
	}
	for _, sp := range specs {
		if sp.spec == "" {
			zap.L().Info("settlement job disabled", zap.String("job", sp.job))
			continue
		}
		if _, err := s.cron.AddFunc(sp.spec, s.tick(sp.job)); err != nil {
			return fmt.Errorf("schedule %s job %q: %w", sp.job, sp.spec, err)
		}
	}

	s.cron.Start()
	zap.L().Info("settlement scheduler started",
		zap.String("accrual", s.schedule.Accrual),
		zap.String("release", s.schedule.Release),
		zap.String("completion", s.schedule.Completion),
	)
	return nil
}

// Stop prevents new runs and waits for running ones to return.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	zap.L().Info("settlement scheduler stopped")
}
