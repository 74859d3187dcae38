package app

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/GlebRadaev/investledger/internal/config"
	"github.com/GlebRadaev/investledger/internal/handlers"
	"github.com/GlebRadaev/investledger/internal/notify"
	"github.com/GlebRadaev/investledger/internal/pg"
	"github.com/GlebRadaev/investledger/internal/repo"
	"github.com/GlebRadaev/investledger/internal/service"
	"github.com/GlebRadaev/investledger/internal/settlement"
	"github.com/GlebRadaev/investledger/pkg/auth"
	"github.com/GlebRadaev/investledger/pkg/clients"
	"github.com/GlebRadaev/investledger/pkg/logger"
)

const lockPrefix = "investledger:"

type ApplicationI interface {
	Start(ctx context.Context) error
	Wait(ctx context.Context, cancel context.CancelFunc) error
}

type Application struct {
	cfg   *config.Config
	api   *handlers.Handlers
	srv   *service.Services
	repo  *repo.Repositories
	redis *redis.Client

	errCh    chan error
	httpDone chan struct{}
	wg       sync.WaitGroup
	ready    bool
}

func New() *Application {
	return &Application{
		errCh:    make(chan error),
		httpDone: make(chan struct{}),
	}
}

func (a *Application) Start(ctx context.Context) error {
	cfg := config.New()

	err := logger.InitLogger(cfg)
	if err != nil {
		return fmt.Errorf("can't init logger: %w", err)
	}
	if err = cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	pool, err := getPgxpool(ctx, cfg)
	if err != nil {
		zap.L().Error("build pgx pool failed: ", zap.Error(err))
		return fmt.Errorf("can't build pgx pool: %w", err)
	}
	if err := pg.RunMigrations(pool); err != nil {
		zap.L().Error("migrations failed: ", zap.Error(err))
		return fmt.Errorf("can't run migrations: %w", err)
	}
	txManager := pg.NewTXManager(pool)

	locker, err := a.newLocker(ctx, cfg)
	if err != nil {
		return fmt.Errorf("can't connect to redis: %w", err)
	}

	jwtService := auth.NewJWTService(cfg.JWTSecret)
	opts, err := buildOptions(cfg, locker, newNotifier(cfg), jwtService)
	if err != nil {
		return err
	}

	conn := pg.New(pool)
	a.cfg = cfg
	a.repo = repo.New(conn, txManager)
	a.srv = service.New(a.repo, opts)
	a.api = handlers.New(a.srv, jwtService)

	if err = a.startHTTPServer(ctx); err != nil {
		return fmt.Errorf("can't start http server: %w", err)
	}
	if err = a.startScheduler(ctx); err != nil {
		return fmt.Errorf("can't start settlement scheduler: %w", err)
	}

	a.ready = true
	zap.L().Info("all systems started successfully")
	return nil
}

func getPgxpool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	cfgpool, err := pgxpool.ParseConfig(cfg.Database)
	if err != nil {
		return nil, err
	}
	dbpool, err := pgxpool.NewWithConfig(ctx, cfgpool)
	if err != nil {
		return nil, err
	}
	if err = dbpool.Ping(ctx); err != nil {
		return nil, err
	}
	return dbpool, nil
}

// newLocker picks the job lock. Without a redis address the lock only
// guards this process.
func (a *Application) newLocker(ctx context.Context, cfg *config.Config) (settlement.Locker, error) {
	if cfg.RedisAddress == "" {
		zap.L().Info("redis not configured, settlement jobs lock locally")
		return settlement.NewLocalLocker(), nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}
	a.redis = client
	return settlement.NewRedisLocker(client, lockPrefix), nil
}

func newNotifier(cfg *config.Config) notify.Notifier {
	if cfg.NotifyWebhookURL == "" {
		return notify.Nop{}
	}
	return notify.NewWebhook(cfg.NotifyWebhookURL, clients.NewHTTPClient())
}

func buildOptions(cfg *config.Config, locker settlement.Locker, notifier notify.Notifier, jwtService auth.JWTServiceInterface) (service.Options, error) {
	policy, err := settlement.ParsePolicy(cfg.AccrualPolicy)
	if err != nil {
		return service.Options{}, err
	}
	minimums, err := cfg.Minimums()
	if err != nil {
		return service.Options{}, err
	}
	return service.Options{
		ReferralPercent:  cfg.ReferralPercent,
		ReferralMaxDepth: cfg.ReferralMaxDepth,
		Minimums:         minimums,
		Settlement: settlement.Options{
			Policy:     policy,
			HoldDays:   cfg.HoldDays,
			BatchLimit: cfg.BatchLimit,
			Workers:    cfg.Workers,
		},
		Schedule: settlement.Schedule{
			Accrual:    cfg.AccrualSchedule,
			Release:    cfg.ReleaseSchedule,
			Completion: cfg.CompletionSchedule,
		},
		JobTimeout: cfg.JobTimeout,
		Locker:     locker,
		Notifier:   notifier,
		JWTService: jwtService,
	}, nil
}

func (a *Application) startHTTPServer(ctx context.Context) error {
	router := chi.NewRouter()
	a.api.InitRoutes(router)
	server := http.Server{
		Addr:    a.cfg.Address,
		Handler: router,
	}
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		<-ctx.Done()

		sCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(sCtx)
		close(a.httpDone)
	}()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		zap.L().Info("starting http server on port", zap.String("port", a.cfg.Address))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.errCh <- fmt.Errorf("http server exited with error: %w", err)
		}
	}()

	return nil
}

func (a *Application) startScheduler(ctx context.Context) error {
	if err := a.srv.Scheduler.Start(); err != nil {
		return err
	}
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		<-ctx.Done()
		// admin requests can still submit jobs until the server has drained
		<-a.httpDone

		a.srv.Scheduler.Stop()
		a.srv.Settlement.Close()
		if a.redis != nil {
			if err := a.redis.Close(); err != nil {
				zap.L().Warn("redis close failed", zap.Error(err))
			}
		}
		zap.L().Info("settlement scheduler stopped")
	}()
	return nil
}

func (a *Application) Wait(ctx context.Context, cancel context.CancelFunc) error {
	var appErr error

	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()

		for err := range a.errCh {
			cancel()
			zap.L().Error(err.Error())
			appErr = err
		}
	}()

	<-ctx.Done()
	a.wg.Wait()
	close(a.errCh)
	wg.Wait()

	return appErr
}
