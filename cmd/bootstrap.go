package cmd

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
	"github.com/vibast-solutions/ms-go-services/app/cache"
	"github.com/vibast-solutions/ms-go-services/app/events"
	"github.com/vibast-solutions/ms-go-services/app/factory"
	"github.com/vibast-solutions/ms-go-services/app/metrics"
	"github.com/vibast-solutions/ms-go-services/app/queue"
	"github.com/vibast-solutions/ms-go-services/app/repository"
	"github.com/vibast-solutions/ms-go-services/app/service"
	"github.com/vibast-solutions/ms-go-services/config"

	_ "github.com/go-sql-driver/mysql"
)

const cacheDriverMemory = "memory"

type dependencies struct {
	cfg      *config.Config
	db       *sql.DB
	redis    *redis.Client
	registry *prometheus.Registry
	metrics  *metrics.Metrics
	queue    *queue.RedisQueue

	serviceRepo      *repository.ServiceRepository
	planRepo         *repository.PlanRepository
	clientRepo       *repository.ClientRepository
	subscriptionRepo *repository.SubscriptionRepository
}

func mustLoadDependencies() (*dependencies, func()) {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}
	if err := configureLogging(cfg); err != nil {
		logrus.WithError(err).Fatal("Failed to configure logging")
	}

	db, err := sql.Open("mysql", cfg.MySQL.DSN)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}

	db.SetMaxOpenConns(cfg.MySQL.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MySQL.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.MySQL.ConnMaxLifetime)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		logrus.WithError(err).Fatal("Failed to ping database")
	}

	redisClient, err := newRedisClient(cfg.Redis)
	if err != nil {
		_ = db.Close()
		logrus.WithError(err).Fatal("Failed to connect to redis")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewMetrics(registry)

	deps := &dependencies{
		cfg:              cfg,
		db:               db,
		redis:            redisClient,
		registry:         registry,
		metrics:          m,
		queue:            queue.NewRedisQueue(redisClient, cfg.Queue.Key, m),
		serviceRepo:      repository.NewServiceRepository(db),
		planRepo:         repository.NewPlanRepository(db),
		clientRepo:       repository.NewClientRepository(db),
		subscriptionRepo: repository.NewSubscriptionRepository(db),
	}

	cleanup := func() {
		if err := redisClient.Close(); err != nil {
			logrus.WithError(err).Warn("Failed to close redis")
		}
		if err := db.Close(); err != nil {
			logrus.WithError(err).Warn("Failed to close database")
		}
	}

	return deps, cleanup
}

func newRedisClient(cfg config.RedisConfig) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

func newCacheStore(cfg config.CacheConfig, client *redis.Client, m *metrics.Metrics) cache.Store {
	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case cacheDriverMemory:
		return cache.NewMemoryStore(cfg.TotalSumTTL, m)
	default:
		return cache.NewRedisStore(client, cfg.Prefix, m)
	}
}

type apiServices struct {
	catalog       *service.CatalogService
	clients       *service.ClientService
	subscriptions *service.SubscriptionService
}

// newAPIServices wires the write path: services publish on the bus and the
// recompute dispatcher turns events into queued jobs and cache invalidations.
func (d *dependencies) newAPIServices() apiServices {
	store := newCacheStore(d.cfg.Cache, d.redis, d.metrics)

	bus := events.NewBus(factory.NewModuleLogger("event-bus"))
	service.NewRecomputeDispatcher(d.subscriptionRepo, d.queue, store).Register(bus)

	return apiServices{
		catalog: service.NewCatalogService(d.serviceRepo, d.planRepo, bus),
		clients: service.NewClientService(d.clientRepo),
		subscriptions: service.NewSubscriptionService(
			d.subscriptionRepo,
			d.serviceRepo,
			d.planRepo,
			d.clientRepo,
			store,
			bus,
			d.cfg.Cache.TotalSumTTL,
		),
	}
}

func (d *dependencies) newRecomputeService() *service.RecomputeService {
	return service.NewRecomputeService(d.subscriptionRepo, d.queue)
}
