package migrate

import (
	"fmt"
	"net/url"

	"github.com/cockroachdb/errors"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

const (
	brc20MigrationSource = "modules/brc20/database/postgresql/migrations"
	brc20MigrationTable  = "brc20_schema_migrations"
)

var supportedDrivers = map[string]struct{}{
	"postgres":   {},
	"postgresql": {},
}

// newMigrate opens the brc20 migrations of sourcePath against databaseURL.
// The migration table is separated per module so modules can share a database.
func newMigrate(databaseURL string, sourcePath string) (*migrate.Migrate, error) {
	parsed, err := url.Parse(databaseURL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse database URL")
	}
	if _, ok := supportedDrivers[parsed.Scheme]; !ok {
		return nil, errors.Errorf("unsupported database driver: %s", parsed.Scheme)
	}
	query := parsed.Query()
	query.Set("x-migrations-table", brc20MigrationTable)
	parsed.RawQuery = query.Encode()

	m, err := migrate.New("file://"+sourcePath, parsed.String())
	if err != nil {
		return nil, errors.Wrap(err, "failed to create Migrate instance")
	}
	m.Log = &consoleLogger{
		prefix: fmt.Sprintf("[%s] ", "BRC20"),
	}
	return m, nil
}
