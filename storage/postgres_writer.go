package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"airbnb-merger/models"
	"airbnb-merger/utils"
)

const (
	// maxBindParams is PostgreSQL's limit on parameters per statement.
	maxBindParams = 65535
	maxBatchRows  = 500

	runIDColumn = "merge_run_id"
)

// PostgresWriter exports merged tables to PostgreSQL. Every column is stored
// as TEXT since source files carry no type information we trust.
type PostgresWriter struct {
	db    *sql.DB
	table string
}

// NewPostgresWriter opens a connection to PostgreSQL and waits for it to
// answer a ping, retrying with back-off.
func NewPostgresWriter(ctx context.Context, dsn, table string, retry *utils.RetryConfig) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	if err := retry.Do(ctx, "postgres ping", func() error { return db.PingContext(ctx) }); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: %w", err)
	}

	return &PostgresWriter{db: db, table: table}, nil
}

// Export replaces the target table with the contents of t.
func (pw *PostgresWriter) Export(ctx context.Context, t *models.Table, runID string) error {
	tx, err := pw.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("postgres: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, stmt := range migrationStatements(pw.table, t.Columns) {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("postgres: migrate: %w", err)
		}
	}

	size := batchSize(len(t.Columns) + 1)
	for i := 0; i < len(t.Rows); i += size {
		end := i + size
		if end > len(t.Rows) {
			end = len(t.Rows)
		}
		query, args := insertStatement(pw.table, t.Columns, t.Rows[i:end], runID)
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("postgres: insert rows %d-%d: %w", i, end, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("postgres: commit: %w", err)
	}

	stored, err := pw.Count(ctx)
	if err != nil {
		return err
	}
	return checkStoredRows(stored, t.Len())
}

// checkStoredRows fails when the table does not hold exactly the rows sent.
func checkStoredRows(stored, want int) error {
	if stored != want {
		return fmt.Errorf("postgres: stored %d rows, expected %d", stored, want)
	}
	return nil
}

// Count returns the number of rows currently stored in the target table.
func (pw *PostgresWriter) Count(ctx context.Context) (int, error) {
	var n int
	err := pw.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+pq.QuoteIdentifier(pw.table)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("postgres: count: %w", err)
	}
	return n, nil
}

func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}

// migrationStatements drops and recreates table with one TEXT column per
// table column plus the run identifier.
func migrationStatements(table string, columns []string) []string {
	quoted := pq.QuoteIdentifier(table)
	defs := make([]string, 0, len(columns)+1)
	for _, c := range columns {
		defs = append(defs, pq.QuoteIdentifier(c)+" TEXT")
	}
	defs = append(defs, pq.QuoteIdentifier(runIDColumn)+" TEXT NOT NULL")

	return []string{
		"DROP TABLE IF EXISTS " + quoted,
		"CREATE TABLE " + quoted + " (\n\t" + strings.Join(defs, ",\n\t") + "\n)",
	}
}

// batchSize keeps a multi-row insert under the bind parameter limit.
func batchSize(width int) int {
	if width < 1 {
		width = 1
	}
	n := maxBindParams / width
	if n > maxBatchRows {
		n = maxBatchRows
	}
	if n < 1 {
		n = 1
	}
	return n
}

func insertStatement(table string, columns []string, rows []models.Row, runID string) (string, []any) {
	width := len(columns) + 1
	names := make([]string, 0, width)
	for _, c := range columns {
		names = append(names, pq.QuoteIdentifier(c))
	}
	names = append(names, pq.QuoteIdentifier(runIDColumn))

	valueStrings := make([]string, 0, len(rows))
	args := make([]any, 0, len(rows)*width)
	placeholders := make([]string, width)

	for idx, r := range rows {
		base := idx * width
		for j := 0; j < width; j++ {
			placeholders[j] = fmt.Sprintf("$%d", base+j+1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(placeholders, ",")+")")
		for _, v := range r {
			args = append(args, v)
		}
		args = append(args, runID)
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES %s",
		pq.QuoteIdentifier(table), strings.Join(names, ", "), strings.Join(valueStrings, ","))
	return query, args
}
