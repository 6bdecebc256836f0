package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/exaring/otelpgx"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/metinatakli/cinema-booking/internal/booking"
	"github.com/metinatakli/cinema-booking/internal/catalog"
	"github.com/metinatakli/cinema-booking/internal/domain"
	"github.com/metinatakli/cinema-booking/internal/repository"
	appvalidator "github.com/metinatakli/cinema-booking/internal/validator"
	"github.com/metinatakli/cinema-booking/internal/vcs"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"github.com/riandyrn/otelchi"
	"go.opentelemetry.io/contrib/bridges/otelslog"
)

const serviceName = "cinema-booking-api"

var (
	version = vcs.Version()
)

// movieCatalog serves the read-only catalog endpoints.
type movieCatalog interface {
	Search(ctx context.Context, text string) (*domain.CatalogMovie, error)
	ListMovies(ctx context.Context) ([]domain.CatalogMovie, error)
}

type Application struct {
	config    Config
	logger    *slog.Logger
	db        *pgxpool.Pool
	redis     redis.UniversalClient
	validator *validator.Validate

	booking *booking.Service
	movies  movieCatalog
}

type Config struct {
	Port              int
	Env               string
	DB                DBConfig
	Redis             RedisConfig
	Catalog           catalog.Config
	Cache             CacheConfig
	ReservationExpiry time.Duration
	OtelCollectorUrl  string
}

type DBConfig struct {
	DSN          string
	MaxOpenConns int
	MaxIdleTime  time.Duration
}

type RedisConfig struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
	MaxIdleTime  time.Duration
}

type CacheConfig struct {
	AbsoluteExpiry time.Duration
	SlidingExpiry  time.Duration
}

func Run() error {
	// A missing .env file is fine; flags and the environment still apply.
	_ = godotenv.Load()

	var (
		cfg Config
		env envDefaults
	)

	flag.IntVar(&cfg.Port, "port", env.Int("PORT", 3000), "server port")
	flag.StringVar(&cfg.Env, "env", env.String("ENV", "dev"), "Environment (dev|staging|prod)")

	flag.StringVar(&cfg.DB.DSN, "db-dsn", env.String("DB_DSN", ""), "PostgreSQL DSN")
	flag.IntVar(&cfg.DB.MaxOpenConns, "db-max-open-conns", env.Int("DB_MAX_OPEN_CONNS", 25), "PostgreSQL max open connections")
	flag.DurationVar(&cfg.DB.MaxIdleTime, "db-max-idle-time", env.Duration("DB_MAX_IDLE_TIME", 15*time.Minute), "PostgreSQL max idle time for connections")

	flag.StringVar(&cfg.Redis.URL, "redis-url", env.String("REDIS_URL", ""), "Redis URL")
	flag.IntVar(&cfg.Redis.MaxOpenConns, "redis-max-open-conns", env.Int("REDIS_MAX_OPEN_CONNS", 25), "Redis max open connections")
	flag.IntVar(&cfg.Redis.MaxIdleConns, "redis-max-idle-conns", env.Int("REDIS_MAX_IDLE_CONNS", 10), "Redis max idle connections")
	flag.DurationVar(&cfg.Redis.MaxIdleTime, "redis-max-idle-time", env.Duration("REDIS_MAX_IDLE_TIME", 2*time.Minute), "Redis max idle time for connections")

	flag.StringVar(&cfg.Catalog.Protocol, "catalog-protocol", env.String("CATALOG_PROTOCOL", "grpc"), "Catalog transport (http|plain|grpc|https|secure|encrypted)")
	flag.StringVar(&cfg.Catalog.HTTPBaseURL, "catalog-http-url", env.String("CATALOG_HTTP_URL", ""), "Catalog REST base URL")
	flag.StringVar(&cfg.Catalog.GRPCAddr, "catalog-grpc-addr", env.String("CATALOG_GRPC_ADDR", ""), "Catalog gRPC address")
	flag.StringVar(&cfg.Catalog.APIKey, "catalog-api-key", env.String("CATALOG_API_KEY", ""), "Catalog API key")
	flag.StringVar(&cfg.Catalog.CAFile, "catalog-ca-file", env.String("CATALOG_CA_FILE", ""), "PEM file with CAs trusted for the catalog gRPC server")
	flag.DurationVar(&cfg.Catalog.Timeout, "catalog-timeout", env.Duration("CATALOG_TIMEOUT", catalog.DefaultFetchTimeout), "Timeout of a single catalog call")

	flag.DurationVar(&cfg.Cache.AbsoluteExpiry, "cache-absolute-expiry", env.Duration("CACHE_ABSOLUTE_EXPIRY", catalog.DefaultAbsoluteExpiry), "Absolute expiry of cached movies")
	flag.DurationVar(&cfg.Cache.SlidingExpiry, "cache-sliding-expiry", env.Duration("CACHE_SLIDING_EXPIRY", catalog.DefaultSlidingExpiry), "Sliding expiry of cached movies")

	flag.DurationVar(&cfg.ReservationExpiry, "reservation-expiry", env.Duration("RESERVATION_EXPIRY", domain.DefaultReservationExpiry), "Time an unpaid reservation holds its seats")

	flag.StringVar(&cfg.OtelCollectorUrl, "otel-collector-url", env.String("OTEL_COLLECTOR_URL", ""), "OpenTelemetry collector gRPC endpoint")

	displayVersion := flag.Bool("version", false, "Display version and exit")

	flag.Parse()

	if *displayVersion {
		fmt.Printf("Version:\t%s\n", version)
		os.Exit(0)
	}

	if err := env.Err(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	textHandler := slog.NewTextHandler(os.Stdout, nil)
	logger := slog.New(textHandler)

	shutdownTelemetry, err := InitTelemetry(cfg, logger)
	if err != nil {
		return err
	}
	defer shutdownTelemetry(context.Background())

	if cfg.OtelCollectorUrl != "" {
		logger = slog.New(NewMultiHandler(textHandler, otelslog.NewHandler(serviceName)))
	}

	db, err := NewDatabasePool(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	redisClient, err := NewRedisClient(cfg)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	catalogClient, err := catalog.NewClient(cfg.Catalog, logger)
	if err != nil {
		return err
	}

	app := NewApp(
		cfg,
		logger,
		db,
		redisClient,
		appvalidator.NewValidator(),
		repository.NewPostgresShowtimeRepository(db),
		repository.NewPostgresAuditoriumRepository(db),
		repository.NewPostgresTicketRepository(db),
		catalogClient,
	)

	return app.run()
}

// NewApp wires the booking use cases on top of the given storage and catalog client.
func NewApp(
	cfg Config,
	logger *slog.Logger,
	db *pgxpool.Pool,
	redisClient redis.UniversalClient,
	validator *validator.Validate,
	showtimeRepo domain.ShowtimeRepository,
	auditoriumRepo domain.AuditoriumRepository,
	ticketRepo domain.TicketRepository,
	catalogClient catalog.Client) *Application {

	cache := catalog.NewMovieCache(redisClient, cfg.Cache.AbsoluteExpiry, cfg.Cache.SlidingExpiry, logger)
	provider := catalog.NewProvider(catalogClient, cache, cfg.Catalog.Timeout, logger)

	service := booking.NewService(
		showtimeRepo,
		auditoriumRepo,
		ticketRepo,
		provider,
		logger,
		booking.WithReservationExpiry(cfg.ReservationExpiry),
	)

	return &Application{
		config:    cfg,
		logger:    logger,
		db:        db,
		redis:     redisClient,
		validator: validator,
		booking:   service,
		movies:    provider,
	}
}

func NewRedisClient(cfg Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:            cfg.Redis.URL,
		MaxIdleConns:    cfg.Redis.MaxIdleConns,
		MaxActiveConns:  cfg.Redis.MaxOpenConns,
		ConnMaxIdleTime: cfg.Redis.MaxIdleTime,
	})

	err := errors.Join(redisotel.InstrumentTracing(rdb), redisotel.InstrumentMetrics(rdb))
	if err != nil {
		rdb.Close()
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = rdb.Ping(ctx).Err()
	if err != nil {
		rdb.Close()
		return nil, err
	}

	return rdb, nil
}

func NewDatabasePool(cfg Config) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(cfg.DB.DSN)
	if err != nil {
		return nil, err
	}

	config.MaxConnIdleTime = cfg.DB.MaxIdleTime
	config.MaxConns = int32(cfg.DB.MaxOpenConns)
	config.ConnConfig.Tracer = otelpgx.NewTracer()

	db, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = db.Ping(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func (app *Application) run() error {
	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%d", app.config.Port),
		Handler:      app.Routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelDebug),
	}

	shutdownError := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		app.logger.Info("shutting down server", "signal", s.String())

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		shutdownError <- srv.Shutdown(ctx)
	}()

	app.logger.Info("starting server", "addr", srv.Addr, "env", app.config.Env, "version", version)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdownError
	if err != nil {
		return err
	}

	app.logger.Info("stopped server", "addr", srv.Addr)

	return nil
}

func (app *Application) Routes() http.Handler {
	r := chi.NewRouter()

	r.NotFound(app.notFoundResponse)
	r.MethodNotAllowed(app.methodNotAllowedResponse)

	r.Use(middleware.RequestID)
	r.Use(otelchi.Middleware(serviceName, otelchi.WithChiRoutes(r)))
	r.Use(app.recoverPanic)
	r.Use(app.logRequest)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/healthcheck", app.GetHealth)

		r.Get("/movies", app.ListMoviesHandler)
		r.Get("/movies/search", app.SearchMovieHandler)

		r.Post("/showtimes", app.CreateShowtimeHandler)

		r.Post("/showtimes/{showtimeId}/reservations", func(w http.ResponseWriter, r *http.Request) {
			showtimeID, err := readIntParam(r, "showtimeId")
			if err != nil {
				app.badRequestResponse(w, r, err)
				return
			}
			app.ReserveSeatsHandler(w, r, showtimeID)
		})

		r.Post("/reservations/{reservationId}/payment", func(w http.ResponseWriter, r *http.Request) {
			reservationID, err := readUUIDParam(r, "reservationId")
			if err != nil {
				app.badRequestResponse(w, r, err)
				return
			}
			app.ConfirmPaymentHandler(w, r, reservationID)
		})
	})

	return r
}
