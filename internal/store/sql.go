package store

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// SQL is the persisted store, backed by Postgres in production or a
// local SQLite file in development
type SQL struct {
	db           *sql.DB
	users        *sqlUsers
	sessions     *sqlSessions
	resets       *sqlResets
	contacts     *sqlContacts
	specialDates *sqlSpecialDates
	orders       *sqlOrders
}

// OpenSQL opens the database behind dbURL, pings it, and runs migrations.
// A postgres:// or postgresql:// URL selects the Postgres driver;
// anything else is treated as a SQLite file path.
func OpenSQL(dbURL string) (*SQL, error) {
	driver := "sqlite"
	if strings.HasPrefix(dbURL, "postgres://") || strings.HasPrefix(dbURL, "postgresql://") {
		driver = "postgres"
	}

	db, err := sql.Open(driver, dbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if driver == "sqlite" {
		// SQLite needs a single writer and foreign keys enabled
		db.SetMaxOpenConns(1)
		if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
			return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
		}
	}

	s := &SQL{
		db:           db,
		users:        &sqlUsers{db: db},
		sessions:     &sqlSessions{db: db},
		resets:       &sqlResets{db: db},
		contacts:     &sqlContacts{db: db},
		specialDates: &sqlSpecialDates{db: db},
		orders:       &sqlOrders{db: db},
	}

	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return s, nil
}

func (s *SQL) Users() UserStore               { return s.users }
func (s *SQL) Sessions() SessionStore         { return s.sessions }
func (s *SQL) Resets() ResetStore             { return s.resets }
func (s *SQL) Contacts() ContactStore         { return s.contacts }
func (s *SQL) SpecialDates() SpecialDateStore { return s.specialDates }
func (s *SQL) Orders() OrderStore             { return s.orders }

// Close closes the database connection
func (s *SQL) Close() error {
	return s.db.Close()
}
