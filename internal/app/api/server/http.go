package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/IgorMikael1000/Motorista-Pro/docs"
	"github.com/IgorMikael1000/Motorista-Pro/internal/app/api/handlers"
	mw "github.com/IgorMikael1000/Motorista-Pro/internal/app/api/middleware"
	"github.com/IgorMikael1000/Motorista-Pro/internal/app/service/account"
	"github.com/IgorMikael1000/Motorista-Pro/internal/app/service/backup"
	"github.com/IgorMikael1000/Motorista-Pro/internal/app/service/billing"
	"github.com/IgorMikael1000/Motorista-Pro/internal/app/service/drivelog"
	"github.com/IgorMikael1000/Motorista-Pro/internal/app/service/finance"
	"github.com/IgorMikael1000/Motorista-Pro/internal/app/service/gamification"
	"github.com/IgorMikael1000/Motorista-Pro/internal/app/service/maintenance"
	"github.com/IgorMikael1000/Motorista-Pro/internal/app/service/notify"
	"github.com/IgorMikael1000/Motorista-Pro/internal/app/service/settings"
	"github.com/IgorMikael1000/Motorista-Pro/internal/app/service/statistics"
	"github.com/IgorMikael1000/Motorista-Pro/internal/app/service/support"
	"github.com/IgorMikael1000/Motorista-Pro/internal/platform/googleauth"
	"github.com/IgorMikael1000/Motorista-Pro/internal/platform/mercadopago"
	"github.com/IgorMikael1000/Motorista-Pro/internal/platform/stripepay"
	cfgpkg "github.com/IgorMikael1000/Motorista-Pro/pkg/config"
	metrics "github.com/IgorMikael1000/Motorista-Pro/pkg/metrics"
)

func newEngine() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	// Add request tracing middleware only; request logger & access log are attached per group in registerRoutes
	r.Use(mw.TraceMiddleware())
	return r
}

// RouteDeps collects everything the route table needs so registerRoutes
// stays a single fx.Invoke target.
type RouteDeps struct {
	fx.In

	Engine   *gin.Engine
	Log      *zap.SugaredLogger
	Cfg      *cfgpkg.Config
	Verifier *googleauth.Verifier
	Stripe   *stripepay.Client
	MP       *mercadopago.Client

	Account     *account.Service
	Billing     *billing.Service
	DriveLogs   *drivelog.Service
	Finance     *finance.Service
	Maintenance *maintenance.Service
	Settings    *settings.Service
	Badges      *gamification.Service
	Notify      *notify.Service
	Support     *support.Service
	Statistics  *statistics.Service
	Backup      *backup.Service
}

func registerRoutes(d RouteDeps) {
	r, log, cfg := d.Engine, d.Log, d.Cfg

	// Prometheus metrics
	if cfg != nil && cfg.MetricsAddr != "" {
		p := metrics.NewPrometheus(metrics.NewPrometheusOptions{
			ReqCntURLLabelMappingFn: func(c *gin.Context) string {
				if fp := c.FullPath(); fp != "" {
					return fp
				}
				return c.Request.URL.Path
			},
			Logger: log,
		})
		p.SetListenAddress(cfg.MetricsAddr)
		p.Use(r)

		log.Infow("metrics started", "addr", cfg.MetricsAddr)
	}

	// Public group: request logger + access log
	pub := r.Group("/")
	pub.Use(mw.RequestLoggerMiddleware(log), mw.AccessLogMiddleware())
	handlers.RegisterHealthRoutes(pub)
	// Swagger UI
	docs.SwaggerInfo.BasePath = "/"
	pub.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Payment provider callbacks, signature- or lookup-verified
	webhooks := r.Group("/webhooks")
	webhooks.Use(mw.RequestLoggerMiddleware(log), mw.AccessLogMiddleware())
	handlers.RegisterWebhookRoutes(webhooks, log, d.Stripe, d.MP, d.Billing)

	// Sign-in endpoints stay outside the auth gate
	apiV1 := r.Group("/api/v1")
	apiV1.Use(mw.RequestLoggerMiddleware(log), mw.AccessLogMiddleware())
	handlers.RegisterAuthRoutes(apiV1, cfg, d.Verifier, d.Account)

	// Driver APIs behind the session cookie
	authed := apiV1.Group("/")
	authed.Use(mw.AuthRequired(cfg))
	handlers.RegisterProfileRoutes(authed, d.Account)
	handlers.RegisterDriveLogRoutes(authed, d.Account, d.DriveLogs, d.Badges)
	handlers.RegisterFinanceRoutes(authed, d.Account, d.Finance, d.Settings)
	handlers.RegisterAppointmentRoutes(authed, d.DriveLogs, d.Badges)
	handlers.RegisterMaintenanceRoutes(authed, d.Maintenance)
	handlers.RegisterSettingsRoutes(authed, d.Settings)
	handlers.RegisterEngagementRoutes(authed, d.Account, d.Badges, d.Notify)
	handlers.RegisterSupportRoutes(authed, d.Support)
	handlers.RegisterBillingRoutes(authed, cfg, d.Account, d.Billing, d.Stripe, d.MP)
	handlers.RegisterExportRoutes(authed, d.Backup)

	// Admin APIs behind the admin role
	admin := apiV1.Group("/admin")
	admin.Use(mw.AuthRequired(cfg), mw.AdminRequired())
	handlers.RegisterAdminRoutes(admin, cfg, d.Account, d.Billing, d.Notify, d.Statistics)
	handlers.RegisterAdminSupportRoutes(admin, d.Support)
	handlers.RegisterAdminBackupRoutes(admin, d.Backup)
}

func runServer(lc fx.Lifecycle, log *zap.SugaredLogger, cfg *cfgpkg.Config, r *gin.Engine) {
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{Addr: addr, Handler: r, ReadHeaderTimeout: 5 * time.Second}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("starting HTTP server", "addr", addr)
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Errorf("server error: %v", err)
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Infow("stopping HTTP server")
			shutdownCtx, cancel := context.WithTimeout(ctx, 120*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

var Module = fx.Options(
	fx.Provide(newEngine),
	fx.Invoke(registerRoutes),
	fx.Invoke(runServer),
)
