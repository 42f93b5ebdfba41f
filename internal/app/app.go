package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"jobportal/config"
	"jobportal/internal/access"
	"jobportal/internal/api/middleware"
	"jobportal/internal/database"
	"jobportal/internal/notify"
	"jobportal/internal/services"
	"jobportal/internal/storage"
	"jobportal/internal/storage/memory"
	"jobportal/internal/storage/postgres"
	redisstore "jobportal/internal/storage/redis"
	"jobportal/internal/uploads"
	"jobportal/internal/validation"

	"go.uber.org/zap"
)

// Application holds core application dependencies.
type Application struct {
	Config  *config.Config
	Logger  *zap.Logger
	Tokens  *access.TokenManager
	Limiter middleware.Limiter
	Metrics *middleware.Metrics

	Jobs         services.JobService
	Applications services.ApplicationService
	Auth         services.AuthService
	Profiles     services.ProfileService
	SavedJobs    services.SavedJobService

	// Checks are probed by the health endpoint, keyed by dependency name.
	Checks map[string]func(ctx context.Context) error
	// UploadsDir is served statically when files are stored on local disk.
	UploadsDir string

	dispatcher *notify.Dispatcher
	closers    []namedCloser
}

type namedCloser struct {
	name string
	fn   func(ctx context.Context) error
}

// New wires storage, email, uploads and services from cfg. Callers must Close the result.
func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Application, error) {
	if log == nil {
		log = zap.NewNop()
	}
	a := &Application{
		Config:  cfg,
		Logger:  log,
		Tokens:  access.NewTokenManager(cfg.JWT.Secret, cfg.JWT.Expiration, time.Now),
		Metrics: middleware.NewMetrics(),
		Checks:  make(map[string]func(ctx context.Context) error),
	}

	store, err := a.openStore(ctx)
	if err != nil {
		a.Close(ctx)
		return nil, err
	}
	otps := a.openCache(ctx)

	files, err := a.openUploads()
	if err != nil {
		a.Close(ctx)
		return nil, err
	}

	renderer, err := notify.NewRenderer(cfg.ClientURL)
	if err != nil {
		a.Close(ctx)
		return nil, fmt.Errorf("loading email templates: %w", err)
	}
	var mailer notify.Mailer
	if cfg.Mail.User != "" {
		mailer = notify.NewSMTPMailer(cfg.Mail)
	} else {
		log.Warn("mail.user not set, emails are logged instead of sent")
		mailer = notify.NewLogMailer(log)
	}
	a.dispatcher = notify.NewDispatcher(mailer, renderer, log.Named("notify"), cfg.Notify.Timeout, cfg.OTP.TTL)
	a.closers = append(a.closers, namedCloser{"notifications", a.dispatcher.Wait})

	deps := services.Deps{
		Store:     store,
		OTPs:      otps,
		Notifier:  a.dispatcher,
		Files:     files,
		Tokens:    a.Tokens,
		Validator: validation.New(),
		Logger:    log,
		Now:       time.Now,
		OTPTTL:    cfg.OTP.TTL,
	}
	a.Jobs = services.NewJobService(deps)
	a.Applications = services.NewApplicationService(deps)
	a.Auth = services.NewAuthService(deps)
	a.Profiles = services.NewProfileService(deps)
	a.SavedJobs = services.NewSavedJobService(deps)
	return a, nil
}

func (a *Application) openStore(ctx context.Context) (storage.Store, error) {
	if a.Config.Storage.Driver == "memory" {
		a.Logger.Warn("using in-memory storage, data is lost on restart")
		return memory.NewStore(time.Now), nil
	}

	if err := database.RunMigrations(a.Config, a.Logger); err != nil {
		return nil, err
	}
	pool, err := database.NewConnectionPool(ctx, a.Config.DB, a.Logger)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, namedCloser{"postgres", func(context.Context) error {
		pool.Close()
		return nil
	}})
	a.Checks["database"] = pool.Ping
	return postgres.NewStore(pool), nil
}

// openCache connects Redis for OTPs and rate limiting, falling back to process memory.
func (a *Application) openCache(ctx context.Context) storage.OTPStore {
	if a.Config.Redis.Addr != "" {
		client, err := database.NewRedisClient(ctx, a.Config.Redis, a.Logger)
		if err == nil {
			a.closers = append(a.closers, namedCloser{"redis", func(context.Context) error {
				return client.Close()
			}})
			a.Checks["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
			a.Limiter = middleware.NewRedisLimiter(client)
			return redisstore.NewOTPStore(client)
		}
		a.Logger.Warn("redis unavailable, using in-memory OTP store and rate limiter", zap.Error(err))
	}
	a.Limiter = middleware.NewMemoryLimiter(time.Now)
	return memory.NewOTPStore(time.Now)
}

func (a *Application) openUploads() (uploads.Storage, error) {
	u := a.Config.Uploads
	if u.Driver == "cloudinary" {
		files, err := uploads.NewCloudinaryStorage(u.Cloudinary.CloudName, u.Cloudinary.APIKey, u.Cloudinary.APISecret, u.Cloudinary.Folder)
		if err != nil {
			return nil, fmt.Errorf("configuring cloudinary: %w", err)
		}
		return files, nil
	}
	local := uploads.NewLocalStorage(u.LocalDir, u.PublicURL)
	a.UploadsDir = local.Dir()
	return local, nil
}

// Close waits for pending notifications and releases connections in reverse order of acquisition.
func (a *Application) Close(ctx context.Context) error {
	var result error
	for i := len(a.closers) - 1; i >= 0; i-- {
		c := a.closers[i]
		if err := c.fn(ctx); err != nil {
			a.Logger.Error("shutdown step failed", zap.String("component", c.name), zap.Error(err))
			result = errors.Join(result, err)
			continue
		}
		a.Logger.Info("component stopped", zap.String("component", c.name))
	}
	a.closers = nil
	return result
}
