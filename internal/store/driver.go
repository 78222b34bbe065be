package store

import (
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Supported target database drivers.
const (
	DriverSQLite   = "sqlite3"
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

// ValidateDriver rejects anything other than the three supported drivers.
func ValidateDriver(name string) error {
	switch name {
	case DriverSQLite, DriverMySQL, DriverPostgres:
		return nil
	default:
		return fmt.Errorf("unsupported database driver %q (want %s, %s or %s)",
			name, DriverSQLite, DriverMySQL, DriverPostgres)
	}
}
