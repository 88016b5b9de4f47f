// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package postgres

import (
	_ "github.com/jackc/pgx/v5/stdlib" // required for SQL access
	migrate "github.com/rubenv/sql-migrate"
)

// Migration returns the schema of the report history.
func Migration() *migrate.MemoryMigrationSource {
	return &migrate.MemoryMigrationSource{
		Migrations: []*migrate.Migration{
			{
				Id: "reports_1",
				Up: []string{
					`CREATE TABLE IF NOT EXISTS reports (
						id          VARCHAR(36) PRIMARY KEY,
						common_name VARCHAR(253) NOT NULL,
						fingerprint VARCHAR(128) NOT NULL,
						action      VARCHAR(32) NOT NULL,
						report      JSONB NOT NULL,
						started_at  TIMESTAMPTZ NOT NULL,
						finished_at TIMESTAMPTZ NOT NULL
					)`,
					`CREATE INDEX IF NOT EXISTS reports_common_name_idx ON reports (common_name, started_at DESC)`,
				},
				Down: []string{
					"DROP TABLE reports",
				},
			},
		},
	}
}
