package database

import (
	"database/sql"

	_ "github.com/go-sql-driver/mysql"
)

func Connect(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	if err = db.Ping(); err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	return db, nil
}

func CreateTables(db *sql.DB) error {
	tables := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id                VARCHAR(36) PRIMARY KEY,
			email             VARCHAR(255) NOT NULL,
			full_name         VARCHAR(100) NOT NULL,
			password          VARCHAR(255) NOT NULL,
			avatar            VARCHAR(255) NOT NULL DEFAULT '',
			bio               VARCHAR(500) NOT NULL DEFAULT '',
			native_language   VARCHAR(50) NOT NULL DEFAULT '',
			learning_language VARCHAR(50) NOT NULL DEFAULT '',
			location          VARCHAR(100) NOT NULL DEFAULT '',
			is_onboarded      BOOLEAN NOT NULL DEFAULT FALSE,
			created_at        DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at        DATETIME DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			UNIQUE KEY uk_email (email)
		)`,
		`CREATE TABLE IF NOT EXISTS friend_edges (
			id           VARCHAR(36) PRIMARY KEY,
			user_lo      VARCHAR(36) NOT NULL,
			user_hi      VARCHAR(36) NOT NULL,
			requester_id VARCHAR(36) NOT NULL,
			status       ENUM('pending', 'accepted') NOT NULL DEFAULT 'pending',
			created_at   DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at   DATETIME DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			UNIQUE KEY uk_pair (user_lo, user_hi),
			INDEX idx_hi (user_hi),
			INDEX idx_requester (requester_id)
		)`,
	}

	for _, table := range tables {
		if _, err := db.Exec(table); err != nil {
			return err
		}
	}

	return nil
}
