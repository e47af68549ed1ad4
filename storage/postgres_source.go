package storage

import (
	"database/sql"
	"fmt"
	"regexp"
	"strings"

	"github.com/lib/pq"

	"airbnb-webmap/models"
	"airbnb-webmap/utils"
)

var (
	tableNameRegexp  = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)
	columnNameRegexp = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

// PostgresSource reads listings from a PostgreSQL table holding the listings columns.
// The table is only ever read. Rows come back ordered by OrderBy, or in
// storage order when OrderBy is empty.
type PostgresSource struct {
	DSN     string
	Table   string
	OrderBy string
	Retry   *utils.RetryConfig
}

// NewPostgresSource returns a source reading table through dsn, ordered by orderBy.
func NewPostgresSource(dsn, table, orderBy string, retry *utils.RetryConfig) *PostgresSource {
	return &PostgresSource{DSN: dsn, Table: table, OrderBy: orderBy, Retry: retry}
}

func (s *PostgresSource) Name() string {
	return "postgres:" + s.Table
}

// ReadListings connects, pings with back-off and reads the whole table.
func (s *PostgresSource) ReadListings() ([]models.Listing, error) {
	query, err := s.selectQuery()
	if err != nil {
		return nil, &models.DataLoadError{Source: s.Name(), Reason: "build query", Err: err}
	}

	db, err := sql.Open("postgres", s.DSN)
	if err != nil {
		return nil, &models.DataLoadError{Source: s.Name(), Reason: "open", Err: err}
	}
	defer db.Close()

	retry := s.Retry
	if retry == nil {
		retry = &utils.RetryConfig{MaxAttempts: 1}
	}
	if err := retry.Do("postgres ping", db.Ping); err != nil {
		return nil, &models.DataLoadError{Source: s.Name(), Reason: "connect", Err: err}
	}

	rows, err := db.Query(query)
	if err != nil {
		return nil, &models.DataLoadError{Source: s.Name(), Reason: "query", Err: err}
	}
	defer rows.Close()

	var listings []models.Listing
	rowNum := 0
	for rows.Next() {
		rowNum++
		cells := make([]sql.NullString, len(RequiredColumns))
		dest := make([]any, len(cells))
		for i := range cells {
			dest[i] = &cells[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, &models.DataLoadError{Source: s.Name(), Reason: "scan row", Err: err}
		}

		var row rawRow
		for i, c := range cells {
			row[i] = c.String
		}
		listing, err := row.toListing()
		if err != nil {
			return nil, &models.DataLoadError{
				Source: s.Name(),
				Reason: fmt.Sprintf("invalid row %d", rowNum),
				Err:    err,
			}
		}
		listings = append(listings, listing)
	}
	if err := rows.Err(); err != nil {
		return nil, &models.DataLoadError{Source: s.Name(), Reason: "read rows", Err: err}
	}

	return listings, nil
}

// selectQuery casts every column to text so rows go through the same
// validation as CSV cells.
func (s *PostgresSource) selectQuery() (string, error) {
	if !tableNameRegexp.MatchString(s.Table) {
		return "", fmt.Errorf("invalid table name %q", s.Table)
	}

	cols := make([]string, len(RequiredColumns))
	for i, c := range RequiredColumns {
		cols[i] = pq.QuoteIdentifier(c) + "::text"
	}

	parts := strings.Split(s.Table, ".")
	for i, p := range parts {
		parts[i] = pq.QuoteIdentifier(p)
	}

	query := fmt.Sprintf("SELECT %s FROM %s", strings.Join(cols, ", "), strings.Join(parts, "."))
	if s.OrderBy != "" {
		if !columnNameRegexp.MatchString(s.OrderBy) {
			return "", fmt.Errorf("invalid order column %q", s.OrderBy)
		}
		query += " ORDER BY " + pq.QuoteIdentifier(s.OrderBy)
	}
	return query, nil
}
