package auth

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

//go:embed migrations/*.sql
var migrations embed.FS

// querier is the part of pgxpool.Pool we use.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRegistry looks keys up in a postgres table.
type PostgresRegistry struct {
	opts  *PostgresOptions
	pool  *pgxpool.Pool
	db    querier
	query string
}

// NewPostgresRegistry connects to postgres. The connection is lazy; a bad URL errors here
// but an unreachable database only errors on lookup.
func NewPostgresRegistry(opts *PostgresOptions) (*PostgresRegistry, error) {
	opts.SetDefaults()
	pool, err := pgxpool.New(context.Background(), opts.connURL())
	if err != nil {
		return nil, err
	}
	return newPostgresRegistry(opts, pool, pool), nil
}

func newPostgresRegistry(opts *PostgresOptions, pool *pgxpool.Pool, db querier) *PostgresRegistry {
	return &PostgresRegistry{
		opts:  opts,
		pool:  pool,
		db:    db,
		query: fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM %s WHERE key = $1);`, pq.QuoteIdentifier(opts.Table)),
	}
}

// Exists returns if the key has a row in the table.
func (p *PostgresRegistry) Exists(ctx context.Context, key string) (bool, error) {
	found := false
	err := p.db.QueryRow(ctx, p.query, key).Scan(&found)
	return found, err
}

// Close shuts down the database connection.
func (p *PostgresRegistry) Close() error {
	if p.pool != nil {
		p.pool.Close()
	}
	return nil
}

// Migrate brings the registry tables up to date.
func Migrate(opts *PostgresOptions) error {
	opts.SetDefaults()
	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		return err
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, opts.connURL())
	if err != nil {
		return err
	}
	defer m.Close()

	err = m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	return err
}

// connURL returns the URL with the username / password env vars substituted in.
func (o *PostgresOptions) connURL() string {
	u := strings.Replace(o.URL, "$"+o.UsernameEnvVar, os.Getenv(o.UsernameEnvVar), 1)
	return strings.Replace(u, "$"+o.PasswordEnvVar, os.Getenv(o.PasswordEnvVar), 1)
}
