package integration_test

import (
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/cinema-booking/internal/app"
	"github.com/metinatakli/cinema-booking/internal/catalog"
	"github.com/metinatakli/cinema-booking/internal/repository"
	appvalidator "github.com/metinatakli/cinema-booking/internal/validator"
	"github.com/redis/go-redis/v9"
)

type TestApp struct {
	App         *app.Application
	DB          *pgxpool.Pool
	RedisClient *redis.Client
	Catalog     *FakeCatalog
}

func newTestApp(cfg app.Config) (*TestApp, error) {
	var out io.Writer = io.Discard
	if testing.Verbose() {
		out = os.Stderr
	}
	logger := slog.New(slog.NewTextHandler(out, nil))

	db, err := app.NewDatabasePool(cfg)
	if err != nil {
		return nil, err
	}

	redisClient, err := app.NewRedisClient(cfg)
	if err != nil {
		db.Close()
		return nil, err
	}

	fakeCatalog := newFakeCatalog(cfg.Catalog.APIKey)
	cfg.Catalog.HTTPBaseURL = fakeCatalog.URL()

	catalogClient, err := catalog.NewClient(cfg.Catalog, logger)
	if err != nil {
		fakeCatalog.Close()
		redisClient.Close()
		db.Close()
		return nil, err
	}

	application := app.NewApp(
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

	return &TestApp{
		App:         application,
		DB:          db,
		RedisClient: redisClient,
		Catalog:     fakeCatalog,
	}, nil
}

func (a *TestApp) Close() {
	a.Catalog.Close()
	a.RedisClient.Close()
	a.DB.Close()
}
