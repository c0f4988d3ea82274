package internal

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/extra/redisotel/v8"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/csrf"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"

	"github.com/2beens/gymlog/internal/api"
	"github.com/2beens/gymlog/internal/client"
	"github.com/2beens/gymlog/internal/config"
	"github.com/2beens/gymlog/internal/db"
	"github.com/2beens/gymlog/internal/events"
	"github.com/2beens/gymlog/internal/middleware"
	"github.com/2beens/gymlog/internal/stats"
	"github.com/2beens/gymlog/internal/telemetry/metrics"
	"github.com/2beens/gymlog/internal/telemetry/tracing"
	"github.com/2beens/gymlog/internal/view"
	"github.com/2beens/gymlog/internal/web"
	"github.com/2beens/gymlog/internal/workouts"
)

const csrfKeyLength = 32

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server

	config       *config.Config
	dbPool       *pgxpool.Pool
	redisClient  *redis.Client
	store        workouts.Store
	statsService *stats.Service
	publisher    events.Publisher
	apiClient    *client.Client
	csrfKey      []byte

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

func NewServer(ctx context.Context, cfg *config.Config) (*Server, error) {
	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(cfg.Secrets.HoneycombEnabled, "gymlog-service")
	if err != nil {
		return nil, err
	}

	s := &Server{
		config:       cfg,
		otelShutdown: otelShutdown,
	}

	var collectors []prometheus.Collector
	switch cfg.Storage {
	case config.StoragePostgres:
		dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
			DBHost:         cfg.PostgresHost,
			DBPort:         cfg.PostgresPort,
			DBName:         cfg.PostgresDBName,
			DBUser:         cfg.PostgresUser,
			DBPassword:     cfg.Secrets.PostgresPassword,
			TracingEnabled: cfg.Secrets.HoneycombEnabled,
		})
		if err != nil {
			return nil, fmt.Errorf("new db pool: %w", err)
		}
		if err := dbPool.Ping(ctx); err != nil {
			log.Warnf("failed to ping db: %s", err)
		}

		repo := workouts.NewPgRepo(dbPool)
		if err := repo.EnsureSchema(ctx); err != nil {
			dbPool.Close()
			return nil, fmt.Errorf("ensure schema: %w", err)
		}

		s.dbPool = dbPool
		s.store = repo
		collectors = append(collectors, pgxpoolprometheus.NewCollector(
			dbPool,
			map[string]string{"db_name": cfg.PostgresDBName},
		))
	default:
		fileStore, err := workouts.NewFileStore(cfg.DataPath)
		if err != nil {
			return nil, fmt.Errorf("new file store: %w", err)
		}
		s.store = fileStore
		log.Debugf("using file store: %s", cfg.DataPath)
	}

	s.promRegistry = metrics.SetupPrometheus(collectors...)
	s.metricsManager = metrics.NewManager("gymlog", "service", s.promRegistry)
	s.metricsManager.GaugeLifeSignal.Set(0)

	if cfg.RedisEnabled() {
		s.redisClient = redis.NewClient(&redis.Options{
			Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
			Password: cfg.Secrets.RedisPassword,
			DB:       0,
		})
		s.redisClient.AddHook(redisotel.NewTracingHook())
		rdbStatus := s.redisClient.Ping(ctx)
		if err := rdbStatus.Err(); err != nil {
			log.Errorf("--> failed to ping redis: %s", err)
		} else {
			log.Debugf("redis ping: %s", rdbStatus.Val())
		}
	} else {
		log.Debugln("redis not configured, rate limiting disabled")
	}

	if cfg.KafkaEnabled() {
		s.publisher = events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		log.Debugf("publishing workout events to %s on %v", cfg.KafkaTopic, cfg.KafkaBrokers)
	} else {
		s.publisher = events.NopPublisher{}
	}

	s.statsService = stats.NewService(s.store)
	s.apiClient = client.New(cfg.APIBaseURL, cfg.ClientTimeout)

	s.csrfKey, err = csrfKey(cfg.Secrets.CSRFKey)
	if err != nil {
		return nil, err
	}

	return s, nil
}

// csrfKey uses the configured key, or a random one. A random key invalidates
// issued tokens on restart.
func csrfKey(configured string) ([]byte, error) {
	if configured != "" {
		return []byte(configured), nil
	}
	log.Warnln("GYMLOG_CSRF_KEY not set, using a random csrf key")
	key := make([]byte, csrfKeyLength)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("generate csrf key: %w", err)
	}
	return key, nil
}

// csrfProtect guards the page form. Outside production the page is served over
// plain http, and requests are marked as such so the origin checks compare http origins.
func csrfProtect(key []byte, secure bool) func(http.Handler) http.Handler {
	protect := csrf.Protect(key, csrf.Secure(secure), csrf.Path("/"))
	if secure {
		return protect
	}
	return func(next http.Handler) http.Handler {
		protected := protect(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			protected.ServeHTTP(w, csrf.PlaintextHTTPRequest(r))
		})
	}
}

func (s *Server) routerSetup() (*mux.Router, error) {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("gymlog-router"))

	var rateLimiter middleware.RequestRateLimiter
	if s.redisClient != nil {
		rateLimiter = redis_rate.NewLimiter(s.redisClient)
	}

	apiHandler := api.NewHandler(s.store, s.statsService, s.publisher, s.metricsManager)
	apiHandler.SetupRoutes(r, rateLimiter, s.config.PostRateLimitPerMin)

	webHandler, err := web.NewHandler(s.apiClient, s.metricsManager, view.Surface{
		Width:  s.config.ChartWidth,
		Height: s.config.ChartHeight,
	})
	if err != nil {
		return nil, fmt.Errorf("new web handler: %w", err)
	}
	webHandler.SetupRoutes(r, csrfProtect(s.csrfKey, s.config.Environment == "production"))

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "DELETE").Name("unknown")

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.NoCache())
	r.Use(middleware.DrainAndCloseRequest())

	return r, nil
}

func (s *Server) Serve(host string, port int) {
	router, err := s.routerSetup()
	if err != nil {
		log.Fatalf("failed to setup router: %s", err)
	}

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.HandlerFor(s.promRegistry, promhttp.HandlerOpts{}))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown http server")
		}
		log.Warnln("server shut down")
	}

	if s.metricsHttpServer != nil {
		if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown metrics http server")
		}
		log.Warnln("metrics server shut down")
	}

	if err := s.publisher.Close(); err != nil {
		log.Errorf("failed to close events publisher: %s", err)
	}

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
		}
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeRequests.Add(1)
	case http.StateClosed:
		s.metricsManager.GaugeRequests.Add(-1)
	default:
		// do nothing
	}
}
