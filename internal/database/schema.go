package database

import (
	"context"
	"database/sql"
)

// schema lists the DDL statements required by the service. Statements are
// idempotent so EnsureSchema can run on every startup.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS rooms (
		id            VARCHAR(64)  NOT NULL,
		max_occupancy INT          NOT NULL,
		timezone      VARCHAR(64)  NULL,
		PRIMARY KEY (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS users (
		id            VARCHAR(64)   NOT NULL,
		display_name  VARCHAR(128)  NOT NULL,
		contact_info  VARCHAR(128)  NOT NULL,
		password_hash VARCHAR(100)  NULL,
		PRIMARY KEY (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS occupancies (
		id           BIGINT        NOT NULL AUTO_INCREMENT,
		room         VARCHAR(64)   NOT NULL,
		user_id      VARCHAR(64)   NOT NULL,
		user_name    VARCHAR(128)  NOT NULL,
		user_contact VARCHAR(128)  NOT NULL,
		` + "`start`" + `  DATETIME NOT NULL,
		` + "`end`" + `    DATETIME NOT NULL,
		PRIMARY KEY (id),
		KEY idx_occupancies_room_start (room, ` + "`start`" + `),
		CONSTRAINT fk_occupancies_room FOREIGN KEY (room) REFERENCES rooms (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// EnsureSchema creates the application's tables when they do not exist yet.
// It replaces the embedded migrations a full deployment would ship: the
// schema is small enough that idempotent DDL on startup is sufficient.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
