// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package postgres_test

import (
	"fmt"
	"log"
	"os"
	"testing"

	cpostgres "github.com/absmach/certdeploy/postgres"
	"github.com/absmach/supermq/pkg/postgres"
	"github.com/jmoiron/sqlx"
	"github.com/ory/dockertest/v3"
	"go.opentelemetry.io/otel/trace/noop"
)

var (
	db       *sqlx.DB
	database postgres.Database
)

func TestMain(m *testing.M) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		log.Fatalf("Could not connect to docker: %s", err)
	}

	container, err := pool.Run("postgres", "16.2-alpine", []string{
		"POSTGRES_USER=test",
		"POSTGRES_PASSWORD=test",
		"POSTGRES_DB=test",
	})
	if err != nil {
		log.Fatalf("Could not start container: %s", err)
	}

	port := container.GetPort("5432/tcp")

	if err := pool.Retry(func() error {
		url := fmt.Sprintf("host=localhost port=%s user=test dbname=test password=test sslmode=disable", port)
		db, err = sqlx.Open("pgx", url)
		if err != nil {
			return err
		}
		return db.Ping()
	}); err != nil {
		log.Fatalf("Could not connect to docker: %s", err)
	}

	dbConfig := postgres.Config{
		Host:    "localhost",
		Port:    port,
		User:    "test",
		Pass:    "test",
		Name:    "test",
		SSLMode: "disable",
	}

	if db, err = postgres.Setup(dbConfig, *cpostgres.Migration()); err != nil {
		log.Fatalf("Could not setup test DB connection: %s", err)
	}
	database = postgres.NewDatabase(db, dbConfig, noop.NewTracerProvider().Tracer(""))

	code := m.Run()

	// Defers will not be run when using os.Exit
	db.Close()
	if err := pool.Purge(container); err != nil {
		log.Fatalf("Could not purge container: %s", err)
	}

	os.Exit(code)
}
