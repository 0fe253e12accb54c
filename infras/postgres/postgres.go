package postgres

//nolint:revive
import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"tonyspizza/config"
)

const (
	postgresMaxIdleConnection = 10
	postgresMaxOpenConnection = 10
	postgresConnMaxLifetime   = 30 * time.Minute
)

// Connection splits reads from writes so a replica can serve the listing pages.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

type endpoint struct {
	name     string
	username string
	password string
	host     string
	port     string
	dbName   string
	sslMode  string
}

func New(cfg *config.Config) *Connection {
	pg := cfg.DB.Postgres

	read := endpoint{
		name:     "read",
		username: pg.Read.Username,
		password: pg.Read.Password,
		host:     pg.Read.Host,
		port:     pg.Read.Port,
		dbName:   dbName(cfg, pg.Read.Name),
		sslMode:  pg.Read.SSLMode,
	}
	write := endpoint{
		name:     "write",
		username: pg.Write.Username,
		password: pg.Write.Password,
		host:     pg.Write.Host,
		port:     pg.Write.Port,
		dbName:   dbName(cfg, pg.Write.Name),
		sslMode:  pg.Write.SSLMode,
	}

	return &Connection{
		Read:  mustConnect(read, pg.MaxRetry, pg.RetryWaitTime),
		Write: mustConnect(write, pg.MaxRetry, pg.RetryWaitTime),
	}
}

// Close releases both pools.
func (c *Connection) Close() error {
	return errors.Join(c.Read.Close(), c.Write.Close())
}

func dbName(cfg *config.Config, baseName string) string {
	return cfg.DB.Postgres.Prefix + baseName
}

// DSN builds the lib/pq connection URL for the write endpoint, used by migrations.
func DSN(cfg *config.Config) string {
	pg := cfg.DB.Postgres.Write

	return (&endpoint{
		username: pg.Username,
		password: pg.Password,
		host:     pg.Host,
		port:     pg.Port,
		dbName:   dbName(cfg, pg.Name),
		sslMode:  pg.SSLMode,
	}).dsn()
}

func (e *endpoint) dsn() string {
	sslMode := e.sslMode
	if sslMode == "" {
		sslMode = "disable"
	}

	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(e.username, e.password),
		Host:     net.JoinHostPort(e.host, e.port),
		Path:     e.dbName,
		RawQuery: fmt.Sprintf("sslmode=%s", sslMode),
	}

	return dsn.String()
}

func mustConnect(e endpoint, maxRetry, waitTime int) *sqlx.DB {
	attempts := max(maxRetry, 1)

	for retry := range attempts {
		sqlDB, err := sqlx.Connect("postgres", e.dsn())
		if err == nil {
			log.Info().
				Str("name", e.name).
				Str("host", e.host).
				Str("port", e.port).
				Str("dbName", e.dbName).
				Msg("Connected to database")

			sqlDB.SetMaxIdleConns(postgresMaxIdleConnection)
			sqlDB.SetMaxOpenConns(postgresMaxOpenConnection)
			sqlDB.SetConnMaxLifetime(postgresConnMaxLifetime)

			return sqlDB
		}

		log.Error().
			Err(err).
			Str("name", e.name).
			Str("host", e.host).
			Int("attempt", retry+1).
			Msg("Failed connecting to database, retrying")

		time.Sleep(time.Duration(waitTime) * time.Second)
	}

	log.Fatal().Str("name", e.name).Str("host", e.host).Msg("Giving up connecting to database")

	return nil
}
