package cmd

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	authclient "github.com/vibast-solutions/lib-go-auth/client"
	authmiddleware "github.com/vibast-solutions/lib-go-auth/middleware"
	authlibservice "github.com/vibast-solutions/lib-go-auth/service"
	"github.com/vibast-solutions/ms-go-services/app/controller"
	grpcserver "github.com/vibast-solutions/ms-go-services/app/grpc"
	"github.com/vibast-solutions/ms-go-services/app/metrics"
	"github.com/vibast-solutions/ms-go-services/config"
	"google.golang.org/grpc"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP and gRPC servers",
	Long:  "Start both HTTP (Echo) and gRPC servers for the services billing API.",
	Run:   runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

type httpControllers struct {
	catalog       *controller.CatalogController
	clients       *controller.ClientController
	subscriptions *controller.SubscriptionController
}

func runServe(_ *cobra.Command, _ []string) {
	deps, cleanup := mustLoadDependencies()
	defer cleanup()
	cfg := deps.cfg

	services := deps.newAPIServices()
	controllers := httpControllers{
		catalog:       controller.NewCatalogController(services.catalog),
		clients:       controller.NewClientController(services.clients),
		subscriptions: controller.NewSubscriptionController(services.subscriptions),
	}
	grpcBillingServer := grpcserver.NewServer(services.catalog, services.subscriptions)

	authGRPCClient, err := authclient.NewGRPCClientFromAddr(context.Background(), cfg.InternalEndpoints.AuthGRPCAddr)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize auth gRPC client")
	}
	defer authGRPCClient.Close()
	internalAuthService := authlibservice.NewInternalAuthService(authGRPCClient)
	echoInternalAuthMiddleware := authmiddleware.NewEchoInternalAuthMiddleware(internalAuthService)
	grpcInternalAuthMiddleware := authmiddleware.NewGRPCInternalAuthMiddleware(internalAuthService)

	e := setupHTTPServer(controllers, deps.registry, echoInternalAuthMiddleware.RequireInternalAccess(cfg.App.ServiceName))
	grpcSrv, lis := setupGRPCServer(cfg, grpcBillingServer, deps.metrics, grpcInternalAuthMiddleware, cfg.App.ServiceName)

	go func() {
		httpAddr := net.JoinHostPort(cfg.HTTP.Host, cfg.HTTP.Port)
		logrus.WithField("addr", httpAddr).Info("Starting HTTP server")
		if err := e.Start(httpAddr); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("HTTP server error")
		}
	}()

	go func() {
		logrus.WithField("addr", lis.Addr().String()).Info("Starting gRPC server")
		if err := grpcSrv.Serve(lis); err != nil {
			logrus.WithError(err).Fatal("gRPC server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Warn("HTTP shutdown error")
	}
	grpcSrv.GracefulStop()

	logrus.Info("Server stopped")
}

// setupHTTPServer registers the API behind auth. /metrics stays outside the
// auth group for the scraper.
func setupHTTPServer(
	controllers httpControllers,
	gatherer prometheus.Gatherer,
	auth echo.MiddlewareFunc,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogRemoteIP:  true,
		LogLatency:   true,
		LogUserAgent: true,
		LogError:     true,
		HandleError:  true,
		LogRequestID: true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			fields := logrus.Fields{
				"remote_ip":  v.RemoteIP,
				"host":       v.Host,
				"method":     v.Method,
				"uri":        v.URI,
				"status":     v.Status,
				"latency":    v.Latency.String(),
				"latency_ns": v.Latency.Nanoseconds(),
				"user_agent": v.UserAgent,
				"request_id": v.RequestID,
			}
			entry := logrus.WithFields(fields)
			if v.Error != nil {
				entry = entry.WithError(v.Error)
			}
			entry.Info("http_request")
			return nil
		},
	}))
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: func() string {
			return fmt.Sprintf("rest-%s", uuid.New().String())
		},
	}))

	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	api := e.Group("")
	if auth != nil {
		api.Use(auth)
	}

	api.GET("/health", controllers.subscriptions.Health)

	servicesGroup := api.Group("/services")
	servicesGroup.POST("", controllers.catalog.CreateService)
	servicesGroup.GET("", controllers.catalog.ListServices)
	servicesGroup.GET("/:id", controllers.catalog.GetService)
	servicesGroup.PATCH("/:id", controllers.catalog.UpdateService)
	servicesGroup.DELETE("/:id", controllers.catalog.DeleteService)

	plans := api.Group("/plans")
	plans.POST("", controllers.catalog.CreatePlan)
	plans.GET("", controllers.catalog.ListPlans)
	plans.GET("/:id", controllers.catalog.GetPlan)
	plans.PATCH("/:id", controllers.catalog.UpdatePlan)
	plans.DELETE("/:id", controllers.catalog.DeletePlan)

	clients := api.Group("/clients")
	clients.POST("", controllers.clients.CreateClient)
	clients.GET("", controllers.clients.ListClients)
	clients.GET("/:id", controllers.clients.GetClient)
	clients.DELETE("/:id", controllers.clients.DeleteClient)

	subscriptions := api.Group("/subscriptions")
	subscriptions.POST("", controllers.subscriptions.CreateSubscription)
	subscriptions.GET("", controllers.subscriptions.ListSubscriptions)
	subscriptions.GET("/total", controllers.subscriptions.TotalSum)
	subscriptions.GET("/:id", controllers.subscriptions.GetSubscription)
	subscriptions.DELETE("/:id", controllers.subscriptions.DeleteSubscription)
	subscriptions.POST("/:id/recompute", controllers.subscriptions.RecomputeSubscription)

	return e
}

func setupGRPCServer(
	cfg *config.Config,
	billingServer *grpcserver.Server,
	m *metrics.Metrics,
	internalAuthMiddleware *authmiddleware.GRPCInternalAuthMiddleware,
	appServiceName string,
) (*grpc.Server, net.Listener) {
	grpcAddr := net.JoinHostPort(cfg.GRPC.Host, cfg.GRPC.Port)
	lis, err := net.Listen("tcp", grpcAddr)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to listen on gRPC port")
	}

	grpcSrv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			grpcserver.RecoveryInterceptor(),
			grpcserver.RequestIDInterceptor(),
			grpcserver.LoggingInterceptor(),
			grpcserver.MetricsInterceptor(m),
			internalAuthMiddleware.UnaryRequireInternalAccess(appServiceName),
		),
	)
	grpcserver.RegisterBillingServiceServer(grpcSrv, billingServer)

	return grpcSrv, lis
}
