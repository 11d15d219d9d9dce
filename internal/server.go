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
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.uber.org/multierr"

	"github.com/2beens/fitlog/internal/apierr"
	"github.com/2beens/fitlog/internal/auth"
	"github.com/2beens/fitlog/internal/cache"
	"github.com/2beens/fitlog/internal/config"
	"github.com/2beens/fitlog/internal/db"
	"github.com/2beens/fitlog/internal/gymstats/favorites"
	"github.com/2beens/fitlog/internal/gymstats/validation"
	"github.com/2beens/fitlog/internal/gymstats/views"
	"github.com/2beens/fitlog/internal/gymstats/weights"
	"github.com/2beens/fitlog/internal/gymstats/workouts"
	"github.com/2beens/fitlog/internal/middleware"
	"github.com/2beens/fitlog/internal/telemetry/metrics"
	"github.com/2beens/fitlog/internal/telemetry/tracing"
	"github.com/2beens/fitlog/internal/users"
	"github.com/2beens/fitlog/pkg"
)

const serviceName = "fitlog-backend"

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config        *config.Config
	dbPool        *pgxpool.Pool
	redisClient   *redis.Client
	rateLimiter   middleware.RequestRateLimiter
	tokenManager  *auth.TokenManager
	revocations   *auth.RevocationStore
	workoutsCache *cache.WorkoutsCache
	validator     *validation.Validator

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	VersionInfo             string
	JWTSecret               string
	RedisPassword           string
	PostgresPassword        string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	if params.JWTSecret == "" {
		return nil, errors.New("jwt secret not set")
	}

	dbParams := db.NewDBPoolParams{
		DBHost:         params.Config.PostgresHost,
		DBPort:         params.Config.PostgresPort,
		DBName:         params.Config.PostgresDBName,
		DBUser:         params.Config.PostgresUser,
		DBPassword:     params.PostgresPassword,
		TracingEnabled: params.HoneycombTracingEnabled,
	}
	dbPool, err := db.NewDBPool(ctx, dbParams)
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Warnf("failed to ping db: %s", err)
	}

	if err := db.RunMigrations(dbParams.ConnString()); err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	pgxpoolCollector := pgxpoolprometheus.NewCollector(
		dbPool,
		map[string]string{"db_name": params.Config.PostgresDBName},
	)
	promRegistry := metrics.NewRegistry("fitlog", pgxpoolCollector)
	metricsManager := metrics.NewManager("fitlog", "backend", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(params.Config.RedisHost, params.Config.RedisPort),
		Password: params.RedisPassword,
		DB:       0, // use default DB
	})

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, serviceName, rdb)
	if err != nil {
		return nil, err
	}

	return &Server{
		config:      params.Config,
		versionInfo: params.VersionInfo,
		dbPool:      dbPool,

		redisClient:  rdb,
		rateLimiter:  redis_rate.NewLimiter(rdb),
		tokenManager: auth.NewTokenManager(params.JWTSecret, params.Config.TokenTTL.Duration),
		revocations:  auth.NewRevocationStore(rdb),
		workoutsCache: cache.NewWorkoutsCache(
			params.Config.WorkoutsCacheSizeMB,
			params.Config.WorkoutsCacheTTLSecs,
			metricsManager,
		),
		validator: validation.New(),

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}, nil
}

func (s *Server) routerSetup() (*mux.Router, error) {
	// match on the escaped path so saved workout titles may contain "/" (%2F)
	r := mux.NewRouter().UseEncodedPath()
	r.Use(otelmux.Middleware("main-router"))

	r.HandleFunc("/health", s.handleHealth).Methods("GET", "OPTIONS").Name("health")

	usersRepo := users.NewRepo(s.dbPool)
	authService := auth.NewService(usersRepo, s.tokenManager, s.revocations)
	authHandler := auth.NewHandler(authService, s.validator)
	r.HandleFunc("/auth/logout", authHandler.HandleLogout).Methods("POST", "OPTIONS").Name("logout")

	authRouter := r.PathPrefix("/auth").Subrouter()
	authRouter.HandleFunc("/signup", authHandler.HandleSignup).Methods("POST", "OPTIONS").Name("signup")
	authRouter.HandleFunc("/login", authHandler.HandleLogin).Methods("POST", "OPTIONS").Name("login")
	authRouter.Use(middleware.RateLimit(s.rateLimiter, "auth", s.config.AuthRateLimitAllowedPerMin, s.metricsManager))

	usersHandler := users.NewHandler(usersRepo, s.revocations, s.validator, s.workoutsCache.Invalidate)
	r.HandleFunc("/users/me", usersHandler.HandleGetMe).Methods("GET", "OPTIONS").Name("get-me")
	r.HandleFunc("/users/me", usersHandler.HandlePatchMe).Methods("PATCH", "OPTIONS").Name("patch-me")
	r.HandleFunc("/users/me", usersHandler.HandleDeleteMe).Methods("DELETE", "OPTIONS").Name("delete-me")

	weightsRepo := weights.NewRepo(s.dbPool)
	weightsHandler := weights.NewHandler(weights.NewService(weightsRepo, s.metricsManager), s.validator)
	r.HandleFunc("/weights", weightsHandler.HandleList).Methods("GET", "OPTIONS").Name("list-weights")
	r.HandleFunc("/weights", weightsHandler.HandleCreate).Methods("POST", "OPTIONS").Name("new-weight")
	r.HandleFunc("/weights/{id}", weightsHandler.HandleUpdate).Methods("PUT", "OPTIONS").Name("update-weight")
	r.HandleFunc("/weights/{id}", weightsHandler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-weight")

	workoutsService := workouts.NewService(workouts.NewRepo(s.dbPool), s.metricsManager)
	workoutsHandler := workouts.NewHandler(workoutsService, s.workoutsCache, s.validator)
	r.HandleFunc("/workouts", workoutsHandler.HandleList).Methods("GET", "OPTIONS").Name("list-workouts")
	r.HandleFunc("/workouts", workoutsHandler.HandleCreate).Methods("POST", "OPTIONS").Name("new-workout")
	r.HandleFunc("/workouts/{id}", workoutsHandler.HandleGet).Methods("GET", "OPTIONS").Name("get-workout")
	r.HandleFunc("/workouts/{id}", workoutsHandler.HandleUpdate).Methods("PUT", "OPTIONS").Name("update-workout")
	r.HandleFunc("/workouts/{id}", workoutsHandler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-workout")
	r.HandleFunc("/exercises/{id}", workoutsHandler.HandleUpdateExercise).Methods("PUT", "OPTIONS").Name("update-exercise")
	r.HandleFunc("/exercises/{id}", workoutsHandler.HandleDeleteExercise).Methods("DELETE", "OPTIONS").Name("delete-exercise")

	favoritesHandler := favorites.NewHandler(favorites.NewService(favorites.NewRepo(s.dbPool), s.metricsManager), s.validator)
	r.HandleFunc("/saved-workouts", favoritesHandler.HandleListWorkouts).Methods("GET", "OPTIONS").Name("list-saved-workouts")
	r.HandleFunc("/saved-workouts", favoritesHandler.HandleSaveWorkout).Methods("POST", "OPTIONS").Name("new-saved-workout")
	r.HandleFunc("/saved-workouts/{title}", favoritesHandler.HandleDeleteWorkout).Methods("DELETE", "OPTIONS").Name("delete-saved-workout")
	r.HandleFunc("/saved-exercises", favoritesHandler.HandleListExercises).Methods("GET", "OPTIONS").Name("list-saved-exercises")
	r.HandleFunc("/saved-exercises", favoritesHandler.HandleSaveExercise).Methods("POST", "OPTIONS").Name("new-saved-exercise")
	r.HandleFunc("/saved-exercises/{id}", favoritesHandler.HandleDeleteExercise).Methods("DELETE", "OPTIONS").Name("delete-saved-exercise")

	statsHandler := views.NewStatsHandler(weightsRepo, workoutsService, usersRepo)
	r.HandleFunc("/stats/weights", statsHandler.HandleWeights).Methods("GET", "OPTIONS").Name("stats-weights")
	r.HandleFunc("/stats/workouts", statsHandler.HandleWorkouts).Methods("GET", "OPTIONS").Name("stats-workouts")

	// all the rest - unhandled paths
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apierr.Write(w, apierr.NotFound("Route not found", nil))
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pkg.WriteJSON(w, apierr.Response{
			Error:  "Method not allowed",
			Code:   apierr.CodeValidation,
			Status: http.StatusMethodNotAllowed,
		}, http.StatusMethodNotAllowed)
	})

	authMiddleware := middleware.NewAuthMiddlewareHandler(s.tokenManager, s.revocations)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors(s.config.AllowedOrigins))
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.LimitAndDrainRequest(middleware.MaxRequestBodyBytes))

	return r, nil
}

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteJSON(w, healthResponse{Status: "ok", Version: s.versionInfo}, http.StatusOK)
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
	metricsRouter.Handle("/metrics", promhttp.InstrumentMetricHandler(
		s.promRegistry,
		promhttp.HandlerFor(s.promRegistry, promhttp.HandlerOpts{}),
	))
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

	// stop accepting requests first, so in-flight ones can still use db and redis
	var shutdownErr error
	if s.httpServer != nil {
		shutdownErr = multierr.Append(shutdownErr, s.httpServer.Shutdown(ctx))
		log.Warnln("server shut down")
	}
	if s.metricsHttpServer != nil {
		shutdownErr = multierr.Append(shutdownErr, s.metricsHttpServer.Shutdown(ctx))
		log.Warnln("metrics server shut down")
	}

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if s.redisClient != nil {
		shutdownErr = multierr.Append(shutdownErr, s.redisClient.Close())
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}

	for _, err := range multierr.Errors(shutdownErr) {
		log.Errorf(" >>> graceful shutdown: %s", err)
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
