package db

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// Open connects to Postgres, configures the pool, and applies the schema.
func Open(host, port, user, password, name string) (*sql.DB, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, name,
	)

	database, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	if err = database.Ping(); err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	database.SetMaxOpenConns(25)
	database.SetMaxIdleConns(5)
	database.SetConnMaxLifetime(5 * time.Minute)

	if err := migrate(database); err != nil {
		database.Close()
		return nil, err
	}

	log.Println("database connected")
	return database, nil
}

func migrate(database *sql.DB) error {
	schema := `
    CREATE TABLE IF NOT EXISTS users (
        id BIGSERIAL PRIMARY KEY,
        username TEXT UNIQUE NOT NULL,
        password_hash TEXT NOT NULL,
        starting_cash NUMERIC(24,4) NOT NULL,
        created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
    );

    CREATE TABLE IF NOT EXISTS transactions (
        id BIGSERIAL PRIMARY KEY,
        user_id BIGINT NOT NULL REFERENCES users(id),
        symbol TEXT NOT NULL,
        quantity NUMERIC(24,8) NOT NULL CHECK (quantity > 0),
        price NUMERIC(24,4) NOT NULL,
        tx_type TEXT NOT NULL CHECK (tx_type IN ('purchase', 'sale')),
        created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
    );

    CREATE INDEX IF NOT EXISTS transactions_user_created_idx
        ON transactions (user_id, created_at DESC);
    `
	if _, err := database.Exec(schema); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
