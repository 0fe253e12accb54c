package helper

//nolint:revive
import (
	"errors"
	"fmt"
	"net/url"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"

	"tonyspizza/config"
	"tonyspizza/infras/postgres"
)

const (
	defaultMigrationPath  = "migrations/postgres"
	defaultMigrationTable = "schema_migrations"
)

const (
	ActionUp     = "up"
	ActionDown   = "down"
	ActionStepUp = "step-up"
	ActionDrop   = "drop"
)

// SourceURL is the file source holding the schema and the seeded tables.
func SourceURL(cfg *config.Config) string {
	path := cfg.DB.Postgres.MigrationPath
	if path == "" {
		path = defaultMigrationPath
	}

	return "file://" + path
}

// DatabaseURL is the write endpoint with the migrations table set.
func DatabaseURL(cfg *config.Config) (string, error) {
	dsn, err := url.Parse(postgres.DSN(cfg))
	if err != nil {
		return "", fmt.Errorf("error parsing database url: %w", err)
	}

	table := cfg.DB.Postgres.MigrationTable
	if table == "" {
		table = defaultMigrationTable
	}

	query := dsn.Query()
	query.Set("x-migrations-table", table)
	dsn.RawQuery = query.Encode()

	return dsn.String(), nil
}

func getConnection(cfg *config.Config) (*migrate.Migrate, error) {
	databaseURL, err := DatabaseURL(cfg)
	if err != nil {
		return nil, err
	}

	mig, err := migrate.New(SourceURL(cfg), databaseURL)
	if err != nil {
		return nil, fmt.Errorf("error creating migrate instance: %w", err)
	}

	return mig, nil
}

func Runner(cfg *config.Config, action string) error {
	mig, err := getConnection(cfg)
	if err != nil {
		return err
	}

	defer mig.Close()

	switch action {
	case ActionUp:
		err = mig.Up()
	case ActionDown:
		err = mig.Steps(-1)
	case ActionStepUp:
		err = mig.Steps(1)
	case ActionDrop:
		err = mig.Down()
	default:
		return fmt.Errorf("unknown migration action %q", action)
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("error running %s migrations: %w", action, err)
	}

	log.Info().Str("action", action).Msg("Database migrations completed successfully")

	return nil
}
