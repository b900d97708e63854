package main

import (
	"context"
	"fmt"
	"time"

	common_api "go-unionreg/internal/common/api"
	"go-unionreg/internal/config"
	"go-unionreg/internal/database"
	"go-unionreg/internal/features/approval"
	"go-unionreg/internal/features/audit"
	"go-unionreg/internal/features/chain"
	"go-unionreg/internal/features/notification"
	"go-unionreg/internal/features/quorum"
	"go-unionreg/internal/features/review"
	"go-unionreg/internal/features/system"
	"go-unionreg/internal/features/validation"
	"go-unionreg/internal/logger"
	"go-unionreg/internal/middleware"
	"go-unionreg/pkg/utils"

	_ "go-unionreg/docs" // Import swagger docs

	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// NewFiberServer creates a new Fiber app instance
func NewFiberServer(cfg *config.Config) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		BodyLimit:             cfg.MaxUploadMB * 1024 * 1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(middleware.CORSMiddleware())

	return app
}

// AsRoute tags the constructor so Fx adds it to the "routes" group
func AsRoute(f any) any {
	return fx.Annotate(
		f,
		fx.As(new(common_api.Route)),
		fx.ResultTags(`group:"routes"`),
	)
}

// RegisterAllRoutes calls Setup() on every member of the "routes" group
func RegisterAllRoutes(app *fiber.App, routes []common_api.Route, log *zap.Logger) {
	log.Info("registering routes", zap.Int("count", len(routes)))
	for _, route := range routes {
		log.Debug("setting up route", zap.String("api", fmt.Sprintf("%T", route)))
		route.Setup(app)
	}
}

var RegisterAllRoutesWithAnnotation = fx.Annotate(
	RegisterAllRoutes,
	fx.ParamTags(``, `group:"routes"`, ``),
)

// StartServer starts Fiber in a goroutine and shuts it down when the app exits
func StartServer(lc fx.Lifecycle, app *fiber.App, cfg *config.Config, log *zap.Logger, shutdowner fx.Shutdowner) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := fmt.Sprintf(":%s", cfg.Port)
				if err := app.Listen(port); err != nil {
					log.Error("server stopped", zap.Error(err))
					_ = shutdowner.Shutdown(fx.ExitCode(1))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.ShutdownWithContext(ctx)
		},
	})
}

type indexer interface {
	EnsureIndexes(ctx context.Context) error
}

// InitializeIndexes ensures that necessary database indexes are created
func InitializeIndexes(
	lc fx.Lifecycle,
	log *zap.Logger,
	instances *approval.InstanceRepositoryImpl,
	ledger *validation.LedgerRepositoryImpl,
	submissions *review.SubmissionRepositoryImpl,
	notifications notification.NotificationRepository,
) {
	repos := map[string]indexer{
		"approval_instances": instances,
		"validation_issues":  ledger,
		"submissions":        submissions,
	}
	if n, ok := notifications.(indexer); ok {
		repos["notifications"] = n
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				for name, repo := range repos {
					if err := repo.EnsureIndexes(ctx); err != nil {
						log.Error("failed to ensure indexes", zap.String("collection", name), zap.Error(err))
					}
				}
			}()
			return nil
		},
	})
}

// StartDigest runs the review backlog digest for the lifetime of the app
func StartDigest(lc fx.Lifecycle, digest *review.Digest) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return digest.Start()
		},
		OnStop: func(ctx context.Context) error {
			digest.Stop()
			return nil
		},
	})
}

func appOptions() fx.Option {
	return fx.Options(
		fx.Provide(
			config.LoadConfig,
			logger.NewLogger,
			NewFiberServer,
			database.NewDatabase,

			// Chains and the state machine
			chain.NewRegistryFromConfig,
			approval.NewEngine,
			approval.NewLocker,

			// Repositories
			approval.NewInstanceRepository,
			validation.NewLedgerRepository,
			review.NewSubmissionRepository,
			audit.NewAuditRepository,
			notification.NewNotificationRepository,

			// Interface adapters
			func(r *approval.InstanceRepositoryImpl) approval.InstanceStore { return r },
			func(r *validation.LedgerRepositoryImpl) validation.Ledger { return r },
			func(r *review.SubmissionRepositoryImpl) review.SubmissionRepository { return r },
			func(s audit.AuditService) review.AuditLogger { return s },
			func(s notification.NotificationService) review.Notifier { return s },
			func(db *database.MongodbDB) system.Pinger { return db },

			// Services
			audit.NewAuditService,
			notification.NewNotificationService,
			review.NewCoordinator,
			review.NewDigest,

			// Controllers
			chain.NewChainController,
			quorum.NewQuorumController,
			review.NewReviewController,
			audit.NewAuditController,
			notification.NewNotificationController,

			// API routes
			AsRoute(system.NewHealthApi),
			AsRoute(chain.NewChainApi),
			AsRoute(quorum.NewQuorumApi),
			AsRoute(review.NewReviewApi),
			AsRoute(audit.NewAuditApi),
			AsRoute(notification.NewNotificationApi),
			AsRoute(system.NewSwaggerApi),
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(
			func(cfg *config.Config) { utils.SetSecret(cfg.JWTSecret) },
			RegisterAllRoutesWithAnnotation,
			StartServer,
			InitializeIndexes,
			StartDigest,
		),
	)
}

// @title           Union Registration Review API
// @version         1.0
// @description     Sequential multi-authority review of union submissions.
// @BasePath        /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	fx.New(appOptions()).Run()
}
