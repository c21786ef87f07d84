package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/rotisserie/eris"
)

// UpsertSpec describes a bulk upsert into one directory table.
type UpsertSpec struct {
	Table        string   // schema-qualified target, e.g. "adscout.locations"
	Columns      []string // columns present in every row
	ConflictKeys []string // unique-constraint columns; all other columns are updated on conflict
}

// BulkUpsert writes rows via COPY into a temp table followed by
// INSERT ... ON CONFLICT DO UPDATE, inside a single transaction. Returns the
// number of rows affected by the final insert.
func BulkUpsert(ctx context.Context, pool Pool, spec UpsertSpec, rows [][]any) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	if len(spec.Columns) == 0 || len(spec.ConflictKeys) == 0 {
		return 0, eris.Errorf("db: upsert %s: columns and conflict keys are required", spec.Table)
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return 0, eris.Wrapf(err, "db: upsert %s: begin tx", spec.Table)
	}
	defer tx.Rollback(ctx)

	temp := "_staging_" + strings.ReplaceAll(spec.Table, ".", "_")
	createSQL := fmt.Sprintf(
		"CREATE TEMP TABLE %s (LIKE %s INCLUDING DEFAULTS) ON COMMIT DROP",
		pgx.Identifier{temp}.Sanitize(), qualify(spec.Table),
	)
	if _, err := tx.Exec(ctx, createSQL); err != nil {
		return 0, eris.Wrapf(err, "db: upsert %s: create staging table", spec.Table)
	}

	if _, err := tx.CopyFrom(ctx, pgx.Identifier{temp}, spec.Columns, pgx.CopyFromRows(rows)); err != nil {
		return 0, eris.Wrapf(err, "db: upsert %s: COPY into staging table", spec.Table)
	}

	tag, err := tx.Exec(ctx, upsertSQL(spec, temp))
	if err != nil {
		return 0, eris.Wrapf(err, "db: upsert %s: merge from staging table", spec.Table)
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, eris.Wrapf(err, "db: upsert %s: commit tx", spec.Table)
	}
	return tag.RowsAffected(), nil
}

func upsertSQL(spec UpsertSpec, temp string) string {
	conflict := make(map[string]bool, len(spec.ConflictKeys))
	for _, k := range spec.ConflictKeys {
		conflict[k] = true
	}
	var sets []string
	for _, col := range spec.Columns {
		if !conflict[col] {
			q := pgx.Identifier{col}.Sanitize()
			sets = append(sets, fmt.Sprintf("%s = EXCLUDED.%s", q, q))
		}
	}
	return fmt.Sprintf(
		"INSERT INTO %s (%s) SELECT %s FROM %s ON CONFLICT (%s) DO UPDATE SET %s",
		qualify(spec.Table), quoteJoin(spec.Columns), quoteJoin(spec.Columns),
		pgx.Identifier{temp}.Sanitize(), quoteJoin(spec.ConflictKeys), strings.Join(sets, ", "),
	)
}

// qualify sanitizes a possibly schema-qualified table name.
func qualify(table string) string {
	if schema, name, ok := strings.Cut(table, "."); ok {
		return pgx.Identifier{schema, name}.Sanitize()
	}
	return pgx.Identifier{table}.Sanitize()
}

func quoteJoin(cols []string) string {
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = pgx.Identifier{c}.Sanitize()
	}
	return strings.Join(quoted, ", ")
}
