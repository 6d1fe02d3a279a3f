package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/errgroup"

	"github.com/2beens/fitcoach/internal/config"
	"github.com/2beens/fitcoach/internal/db"
	"github.com/2beens/fitcoach/internal/export"
	"github.com/2beens/fitcoach/internal/generation"
	"github.com/2beens/fitcoach/internal/illustration"
	"github.com/2beens/fitcoach/internal/middleware"
	"github.com/2beens/fitcoach/internal/planstore"
	"github.com/2beens/fitcoach/internal/profile"
	"github.com/2beens/fitcoach/internal/speech"
	"github.com/2beens/fitcoach/internal/telemetry/metrics"
	"github.com/2beens/fitcoach/internal/telemetry/tracing"
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server

	config      *config.Config
	redisClient *redis.Client
	dbPool      *pgxpool.Pool
	// remote stays a nil interface when the remote tier is disabled
	remote planstore.Remote

	validator   *profile.Validator
	generator   *generation.Service
	speech      *speech.Client
	illustrator *illustration.Client
	exporter    *export.Exporter

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config  *config.Config
	Secrets *config.Secrets
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	cfg := params.Config
	secrets := params.Secrets

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
		Password: secrets.RedisPassword,
		DB:       0, // use default DB
	})

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(secrets.HoneycombEnabled, "fitcoach-backend", rdb)
	if err != nil {
		return nil, err
	}

	var (
		dbPool           *pgxpool.Pool
		remote           planstore.Remote
		pgxpoolCollector prometheus.Collector
	)
	if secrets.RemoteStoreEnabled() {
		dbPool, err = openRemoteStore(ctx, secrets, secrets.HoneycombEnabled)
		if err != nil {
			log.Errorf("remote plan store disabled: %s", err)
		} else {
			remote = planstore.NewPostgresRemote(dbPool)
			pgxpoolCollector = pgxpoolprometheus.NewCollector(
				dbPool,
				map[string]string{"db_name": "fitcoach_remote"},
			)
		}
	} else {
		log.Infoln("remote plan store not configured, plans are kept locally only")
	}

	promRegistry := metrics.SetupPrometheus(pgxpoolCollector)
	metricsManager := metrics.NewManager("backend", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	tracedHttpClient := &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	validator := profile.NewValidator()
	genClient := generation.NewClient(nil, cfg.GenerationModels, metricsManager)
	geminiCaller, err := generation.NewGeminiCaller(ctx, secrets.GeminiAPIKey, cfg.GeminiBaseURL)
	switch {
	case err == nil:
		genClient = generation.NewClient(geminiCaller, cfg.GenerationModels, metricsManager)
	case errors.Is(err, generation.ErrNotConfigured):
		log.Warnln("GEMINI_API_KEY not set, plan generation is disabled")
	default:
		return nil, fmt.Errorf("new gemini caller: %w", err)
	}

	s := &Server{
		config:      cfg,
		redisClient: rdb,
		dbPool:      dbPool,
		remote:      remote,

		validator: validator,
		generator: generation.NewService(validator, genClient, metricsManager),
		speech: speech.NewClient(speech.NewClientParams{
			BaseURL:        cfg.ElevenLabsBaseURL,
			APIKey:         secrets.ElevenLabsAPIKey,
			ModelID:        cfg.TTSModelID,
			DefaultVoiceID: cfg.DefaultVoiceID,
			MaxCharacters:  cfg.TTSMaxCharacters,
			HTTPClient:     tracedHttpClient,
		}),
		illustrator: illustration.NewClient(illustration.NewClientParams{
			BaseURL:    cfg.ImageBaseURL,
			APIKey:     secrets.ImageAPIKey,
			Model:      cfg.ImageModel,
			HTTPClient: tracedHttpClient,
		}),
		exporter: export.NewExporter(),

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}

	return s, nil
}

func openRemoteStore(ctx context.Context, secrets *config.Secrets, tracingEnabled bool) (*pgxpool.Pool, error) {
	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		ConnString:     secrets.RemoteStoreURL,
		Password:       secrets.RemoteStoreKey,
		TracingEnabled: tracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("ping remote store: %w", err)
	}

	if err := planstore.NewPostgresRemote(dbPool).EnsureSchema(ctx); err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("ensure remote schema: %w", err)
	}

	return dbPool, nil
}

// storeFor builds the plan store of one device: the Redis keyspace of the
// device as the local tier, plus the shared remote tier.
func (s *Server) storeFor(deviceID string) *planstore.Store {
	return planstore.NewStore(planstore.NewStoreParams{
		Local:   planstore.NewRedisKV(s.redisClient, planstore.DevicePrefix(deviceID)),
		Remote:  s.remote,
		UserID:  deviceID,
		Metrics: s.metricsManager,
	})
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("main-router"))

	generationHandler := generation.NewHandler(s.generator, s.validator)
	r.HandleFunc("/generate-plan", generationHandler.HandleGeneratePlan).Methods("POST", "OPTIONS").Name("generate-plan")

	plansHandler := planstore.NewHandler(s.storeFor)
	r.HandleFunc("/plans", plansHandler.HandleSave).Methods("POST", "OPTIONS").Name("save-plan")
	r.HandleFunc("/plans", plansHandler.HandleClear).Methods("DELETE", "OPTIONS").Name("clear-plans")
	r.HandleFunc("/plans/current", plansHandler.HandleCurrent).Methods("GET", "OPTIONS").Name("current-plan")
	r.HandleFunc("/plans/current/stats", plansHandler.HandleCurrentStats).Methods("GET", "OPTIONS").Name("current-plan-stats")
	r.HandleFunc("/plans/history", plansHandler.HandleHistory).Methods("GET", "OPTIONS").Name("plan-history")
	r.HandleFunc("/plans/history/{id}", plansHandler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-plan")

	speechHandler := speech.NewHandler(s.speech, s.metricsManager)
	r.HandleFunc("/tts", speechHandler.HandleTTS).Methods("POST", "OPTIONS").Name("tts")
	r.HandleFunc("/tts/plan", speechHandler.HandleTTSPlan).Methods("POST", "OPTIONS").Name("tts-plan")
	r.HandleFunc("/tts/voices", speechHandler.HandleVoices).Methods("GET", "OPTIONS").Name("tts-voices")

	imageHandler := illustration.NewHandler(s.illustrator, s.metricsManager)
	r.HandleFunc("/image", imageHandler.HandleImage).Methods("POST", "OPTIONS").Name("image")

	exportHandler := export.NewHandler(s.exporter, s.metricsManager)
	r.HandleFunc("/export/pdf", exportHandler.HandleExportPDF).Methods("POST", "OPTIONS").Name("export-pdf")

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "DELETE", "OPTIONS").Name("unknown")

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors(s.config.AllowedOrigins))
	r.Use(middleware.DrainAndCloseRequest())

	return r
}

func (s *Server) Serve(host string, port int) {
	router := s.routerSetup()

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler: router,
		Addr:    ipAndPort,
		// generation may walk several models
		WriteTimeout: 3 * time.Minute,
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

	g, gCtx := errgroup.WithContext(ctx)
	for name, srv := range map[string]*http.Server{
		"http":    s.httpServer,
		"metrics": s.metricsHttpServer,
	} {
		if srv == nil {
			continue
		}
		g.Go(func() error {
			if err := srv.Shutdown(gCtx); err != nil {
				return fmt.Errorf("shutdown %s server: %w", name, err)
			}
			log.Warnf("%s server shut down", name)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Errorf(" >>> failed to gracefully shutdown: %s", err)
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
