// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/absmach/certdeploy"
	"github.com/absmach/certdeploy/pkg/errors"
	svcerr "github.com/absmach/certdeploy/pkg/errors/service"
	"github.com/absmach/supermq/pkg/postgres"
	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres error codes:
// https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	errDuplicate      = "23505" // unique_violation
	errTruncation     = "22001" // string_data_right_truncation
	errInvalid        = "22P02" // invalid_text_representation
	errUntranslatable = "22P05" // untranslatable_character
	errInvalidChar    = "22021" // character_not_in_repertoire
)

var _ certdeploy.Repository = (*reportsRepo)(nil)

type reportsRepo struct {
	db postgres.Database
}

// NewRepository returns a report repository backed by Postgres.
func NewRepository(db postgres.Database) certdeploy.Repository {
	return reportsRepo{
		db: db,
	}
}

type dbReport struct {
	ID          string    `db:"id"`
	CommonName  string    `db:"common_name"`
	Fingerprint string    `db:"fingerprint"`
	Action      string    `db:"action"`
	Report      []byte    `db:"report"`
	StartedAt   time.Time `db:"started_at"`
	FinishedAt  time.Time `db:"finished_at"`
}

func (repo reportsRepo) Save(ctx context.Context, r certdeploy.Report) error {
	dbr, err := toDBReport(r)
	if err != nil {
		return errors.Wrap(svcerr.ErrMalformedEntity, err)
	}

	q := `INSERT INTO reports (id, common_name, fingerprint, action, report, started_at, finished_at)
		VALUES (:id, :common_name, :fingerprint, :action, :report, :started_at, :finished_at)`
	if _, err := repo.db.NamedExecContext(ctx, q, dbr); err != nil {
		return handleError(svcerr.ErrCreateEntity, err)
	}

	return nil
}

func (repo reportsRepo) Retrieve(ctx context.Context, id string) (certdeploy.Report, error) {
	q := `SELECT id, common_name, fingerprint, action, report, started_at, finished_at FROM reports WHERE id = $1`

	var dbr dbReport
	if err := repo.db.QueryRowxContext(ctx, q, id).StructScan(&dbr); err != nil {
		if err == sql.ErrNoRows {
			return certdeploy.Report{}, errors.Wrap(svcerr.ErrNotFound, err)
		}
		return certdeploy.Report{}, handleError(svcerr.ErrViewEntity, err)
	}

	return toReport(dbr)
}

func (repo reportsRepo) List(ctx context.Context, pm certdeploy.PageMetadata) (certdeploy.ReportPage, error) {
	where := ""
	if pm.CommonName != "" {
		where = "WHERE common_name = :common_name"
	}

	q := fmt.Sprintf(`SELECT id, common_name, fingerprint, action, report, started_at, finished_at FROM reports %s
		ORDER BY started_at DESC, id LIMIT :limit OFFSET :offset`, where)

	rows, err := repo.db.NamedQueryContext(ctx, q, pm)
	if err != nil {
		return certdeploy.ReportPage{}, handleError(svcerr.ErrViewEntity, err)
	}
	defer rows.Close()

	reports := []certdeploy.Report{}
	for rows.Next() {
		var dbr dbReport
		if err := rows.StructScan(&dbr); err != nil {
			return certdeploy.ReportPage{}, handleError(svcerr.ErrViewEntity, err)
		}
		r, err := toReport(dbr)
		if err != nil {
			return certdeploy.ReportPage{}, err
		}
		reports = append(reports, r)
	}
	if err := rows.Err(); err != nil {
		return certdeploy.ReportPage{}, handleError(svcerr.ErrViewEntity, err)
	}

	cq := fmt.Sprintf(`SELECT COUNT(*) FROM reports %s`, where)
	count, err := total(ctx, repo.db, cq, pm)
	if err != nil {
		return certdeploy.ReportPage{}, handleError(svcerr.ErrViewEntity, err)
	}

	return certdeploy.ReportPage{
		PageMetadata: certdeploy.PageMetadata{
			Total:      count,
			Offset:     pm.Offset,
			Limit:      pm.Limit,
			CommonName: pm.CommonName,
		},
		Reports: reports,
	}, nil
}

func total(ctx context.Context, db postgres.Database, query string, params any) (uint64, error) {
	rows, err := db.NamedQueryContext(ctx, query, params)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	var total uint64
	if rows.Next() {
		if err := rows.Scan(&total); err != nil {
			return 0, err
		}
	}
	return total, rows.Err()
}

func toDBReport(r certdeploy.Report) (dbReport, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return dbReport{}, err
	}
	return dbReport{
		ID:          r.ID,
		CommonName:  r.CommonName,
		Fingerprint: r.Fingerprint,
		Action:      string(r.Action),
		Report:      data,
		StartedAt:   r.StartedAt.UTC(),
		FinishedAt:  r.FinishedAt.UTC(),
	}, nil
}

func toReport(dbr dbReport) (certdeploy.Report, error) {
	var r certdeploy.Report
	if err := json.Unmarshal(dbr.Report, &r); err != nil {
		return certdeploy.Report{}, errors.Wrap(svcerr.ErrViewEntity, err)
	}
	r.ID = dbr.ID
	r.StartedAt = dbr.StartedAt
	r.FinishedAt = dbr.FinishedAt
	return r, nil
}

func handleError(wrapper, err error) error {
	pqErr, ok := err.(*pgconn.PgError)
	if ok {
		switch pqErr.Code {
		case errDuplicate:
			return errors.Wrap(svcerr.ErrConflict, err)
		case errInvalid, errInvalidChar, errTruncation, errUntranslatable:
			return errors.Wrap(svcerr.ErrMalformedEntity, err)
		}
	}

	return errors.Wrap(wrapper, err)
}
