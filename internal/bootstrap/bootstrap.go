// Package bootstrap ensambla la aplicación: origen de datos, almacenes de
// sesión, casos de uso y servidor HTTP a partir de la configuración.
package bootstrap

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"golang.org/x/text/language"

	appanalytics "github.com/jhoicas/palletpro-api/internal/application/analytics"
	"github.com/jhoicas/palletpro-api/internal/application/auth"
	"github.com/jhoicas/palletpro-api/internal/application/billing"
	"github.com/jhoicas/palletpro-api/internal/application/dto"
	"github.com/jhoicas/palletpro-api/internal/application/fetch"
	"github.com/jhoicas/palletpro-api/internal/application/notification"
	"github.com/jhoicas/palletpro-api/internal/application/ports"
	"github.com/jhoicas/palletpro-api/internal/application/session"
	"github.com/jhoicas/palletpro-api/internal/application/usecase"
	"github.com/jhoicas/palletpro-api/internal/domain/repository"
	infraai "github.com/jhoicas/palletpro-api/internal/infrastructure/ai"
	"github.com/jhoicas/palletpro-api/internal/infrastructure/cache"
	"github.com/jhoicas/palletpro-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/palletpro-api/internal/infrastructure/pdf"
	"github.com/jhoicas/palletpro-api/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/palletpro-api/internal/infrastructure/redis"
	"github.com/jhoicas/palletpro-api/internal/infrastructure/telemetry"
	httpRouter "github.com/jhoicas/palletpro-api/internal/interfaces/http"
	"github.com/jhoicas/palletpro-api/pkg/config"
	"github.com/jhoicas/palletpro-api/pkg/logger"
)

// Options ajustes del ensamblado que no vienen de la configuración.
type Options struct {
	DocsFile string // swagger.json servido en /docs; vacío o inexistente = sin docs
}

// Container aplicación ensamblada.
type Container struct {
	App      *fiber.App
	Sessions *session.Service
	closers  []func()
}

// Close libera conexiones en orden inverso de apertura.
func (c *Container) Close() {
	c.Sessions.Close()
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}

// repositories puertos de datos según DATA_SOURCE.
type repositories struct {
	users     repository.UserRepository
	customers repository.CustomerRepository
	products  repository.ProductRepository
	orders    repository.OrderRepository
	analytics repository.AnalyticsRepository
	tx        usecase.OrderTxRunner
}

// stores almacenes de sesión, preferencias y notificaciones.
type stores struct {
	sessions      repository.SessionStore
	preferences   repository.PreferenceStore
	notifications repository.NotificationStore
}

var invoiceIssuer = billing.Issuer{
	Name:    "PalletPro Inc.",
	Address: "1200 Logistics Pkwy, Columbus, OH 43215",
	Email:   "billing@palletpro.example",
	Phone:   "+1 (800) 555-0199",
}

// Build ensambla la aplicación. La sesión no queda lista hasta que se llama a
// Sessions.Init; mientras tanto las páginas responden el estado de carga.
func Build(ctx context.Context, cfg *config.Config, log *logger.Logger, opts Options) (*Container, error) {
	c := &Container{}

	repos, err := c.openRepositories(ctx, cfg, log)
	if err != nil {
		c.closeAll()
		return nil, err
	}
	st, err := c.openStores(ctx, cfg)
	if err != nil {
		c.closeAll()
		return nil, err
	}

	c.Sessions = session.NewService(st.sessions, cfg.Session.TTL, log)
	notifier := notification.NewDispatcher(st.notifications, log)

	authUC := auth.NewAuthUseCase(repos.users, repos.customers, c.Sessions, notifier, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	customerUC := usecase.NewCustomerUseCase(repos.customers, repos.users, repos.orders, repos.analytics)
	productUC := usecase.NewProductUseCase(repos.products)
	metricsCache := cache.NewMetricsCache(cfg.Cache.Size, cfg.Cache.TTL)
	orderUC := usecase.NewOrderUseCase(repos.orders, repos.customers, repos.products, repos.tx, notifier, metricsCache)
	userUC := usecase.NewUserUseCase(repos.users)
	teamUC := usecase.NewTeamUseCase(repos.users, repos.analytics)
	prefsUC := usecase.NewPreferencesUseCase(st.preferences)
	feedUC := notification.NewUseCase(st.notifications)

	dashboardUC := appanalytics.NewDashboardUseCase(repos.analytics, repos.customers, repos.orders, metricsCache)
	insightsUC := appanalytics.NewInsightsUseCase(dashboardUC, insightProvider(cfg.AI), infraai.NewStaticInsights(), log)
	invoiceUC := billing.NewInvoiceUseCase(repos.orders, repos.customers, infrapdf.NewMarotoPDFGenerator(), invoiceIssuer)

	locale, err := language.Parse(cfg.Table.Locale)
	if err != nil {
		log.Warn().Str("locale", cfg.Table.Locale).Msg("locale de tablas inválido, se usa orden raíz")
		locale = language.Und
	}
	pages := httpRouter.NewPageHandler(httpRouter.PageDeps{
		Auth:          authUC,
		Customers:     customerUC,
		Orders:        orderUC,
		Products:      productUC,
		Users:         userUC,
		Team:          teamUC,
		Preferences:   prefsUC,
		Dashboard:     dashboardUC,
		Insights:      insightsUC,
		Invoices:      invoiceUC,
		Notifications: feedUC,
		Tables: httpRouter.TableSettings{
			Locale:            locale,
			PerPage:           cfg.Table.DefaultPerPage,
			AdvisoryThreshold: cfg.Table.AdvisoryThreshold,
			Observer:          telemetry.NewTableObserver(log),
		},
		RenderBudget: cfg.Table.RenderBudget,
		Latest:       fetch.NewLatest(),
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			status, code := fiber.StatusInternalServerError, "INTERNAL"
			if fe, ok := err.(*fiber.Error); ok {
				status, code = fe.Code, "HTTP_ERROR"
			}
			return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
		},
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger(log))
	app.Use(httpRouter.Metrics())

	if opts.DocsFile != "" {
		if _, err := os.Stat(opts.DocsFile); err == nil {
			// Swagger UI: http://localhost:<port>/docs
			app.Use(swagger.New(swagger.Config{
				BasePath: "/",
				FilePath: opts.DocsFile,
				Path:     "docs",
				Title:    "PalletPro API",
			}))
		}
	}

	app.Get("/health", func(fc *fiber.Ctx) error {
		if !c.Sessions.Ready() {
			return fc.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "starting", "service": cfg.App.Name})
		}
		return fc.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "data_source": cfg.App.DataSource})
	})
	app.Get("/metrics", httpRouter.MetricsHandler())

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		Sessions:     c.Sessions,
		Customers:    httpRouter.NewCustomerHandler(customerUC),
		Products:     httpRouter.NewProductHandler(productUC),
		Orders:       httpRouter.NewOrderHandler(orderUC),
		Users:        httpRouter.NewUserHandler(userUC, teamUC),
		Dashboard:    httpRouter.NewDashboardHandler(dashboardUC),
		Analytics:    httpRouter.NewAnalyticsHandler(insightsUC),
		Invoices:     httpRouter.NewInvoiceHandler(invoiceUC),
		Account:      httpRouter.NewAccountHandler(feedUC, prefsUC),
		Pages:        pages,
		Log:          log,
		JWTSecret:    cfg.JWT.Secret,
		SecureCookie: cfg.App.Env == "production",
	})

	c.App = app
	return c, nil
}

func (c *Container) closeAll() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}

func (c *Container) openRepositories(ctx context.Context, cfg *config.Config, log *logger.Logger) (*repositories, error) {
	if cfg.App.DataSource == config.DataSourcePostgres {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		c.closers = append(c.closers, pool.Close)
		log.Info().Msg("origen de datos: postgres")
		return &repositories{
			users:     postgres.NewUserRepository(pool),
			customers: postgres.NewCustomerRepository(pool),
			products:  postgres.NewProductRepository(pool),
			orders:    postgres.NewOrderRepository(pool),
			analytics: postgres.NewAnalyticsRepository(pool),
			tx:        postgres.NewTxRunner(pool),
		}, nil
	}

	store, err := memory.NewSeededStore(cfg.App.MockLatency)
	if err != nil {
		return nil, fmt.Errorf("dataset de demostración: %w", err)
	}
	log.Info().Dur("latency", cfg.App.MockLatency).Msg("origen de datos: mock")
	return &repositories{
		users:     memory.NewUserRepository(store),
		customers: memory.NewCustomerRepository(store),
		products:  memory.NewProductRepository(store),
		orders:    memory.NewOrderRepository(store),
		analytics: memory.NewAnalyticsRepository(store),
		tx:        memory.NewTxRunner(store),
	}, nil
}

func (c *Container) openStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	if !cfg.Redis.Enabled() {
		return &stores{
			sessions:      memory.NewSessionStore(),
			preferences:   memory.NewPreferenceStore(),
			notifications: memory.NewNotificationStore(),
		}, nil
	}
	rdb, err := infraredis.NewClient(ctx, cfg.Redis)
	if err != nil {
		return nil, err
	}
	c.closers = append(c.closers, func() { _ = rdb.Close() })
	return &stores{
		sessions:      infraredis.NewSessionStore(rdb),
		preferences:   infraredis.NewPreferenceStore(rdb),
		notifications: infraredis.NewNotificationStore(rdb),
	}, nil
}

// insightProvider Anthropic si hay API key; si no, los insights estáticos.
func insightProvider(cfg config.AIConfig) ports.InsightService {
	if cfg.AnthropicAPIKey == "" {
		return infraai.NewStaticInsights()
	}
	return infraai.NewAnthropicService(cfg.AnthropicAPIKey, cfg.Model)
}
