package source

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/kailas-cloud/dinedash/internal/db"
	"github.com/kailas-cloud/dinedash/internal/domain/restaurant"
)

// rows is the subset of *sql.Rows the postgres source iterates.
type rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

type queryFunc func(ctx context.Context, query string) (rows, error)

// Postgres reads records from a table, one row per restaurant.
// Award columns hold JSON (false, true or a tier string).
type Postgres struct {
	query queryFunc
	table string
}

// NewPostgres creates a postgres source over conn.
func NewPostgres(conn *sql.DB, table string) *Postgres {
	return &Postgres{
		table: table,
		query: func(ctx context.Context, q string) (rows, error) {
			return conn.QueryContext(ctx, q)
		},
	}
}

// Name identifies the source in logs and metrics.
func (p *Postgres) Name() string { return "postgres" }

func (p *Postgres) selectSQL() string {
	return fmt.Sprintf(`SELECT name, COALESCE(category, ''), COALESCE(city, ''), COALESCE(location, ''),
	COALESCE(hours, ''), COALESCE(status, ''), COALESCE(rank, 0), COALESCE(rating, 0),
	michelin::text, james_beard::text, COALESCE(notes, '')
FROM %s ORDER BY id`, pq.QuoteIdentifier(p.table))
}

// Load selects every row in table order.
func (p *Postgres) Load(ctx context.Context) ([]restaurant.Record, error) {
	rs, err := p.query(ctx, p.selectSQL())
	if err != nil {
		return nil, &Error{Source: p.Name(), Err: &db.Error{Op: db.OpSelect, Err: err}}
	}
	defer func() { _ = rs.Close() }()

	var out []restaurant.Record
	for rs.Next() {
		var (
			d                    recordDTO
			michelin, jamesBeard sql.NullString
		)
		if err := rs.Scan(&d.Name, &d.Category, &d.City, &d.Location, &d.Hours, &d.Status,
			&d.Rank, &d.Rating, &michelin, &jamesBeard, &d.Notes); err != nil {
			return nil, &Error{Source: p.Name(), Err: fmt.Errorf("scan row: %w", err)}
		}
		if d.Michelin, err = awardColumn(michelin); err != nil {
			return nil, &Error{Source: p.Name(), Err: fmt.Errorf("restaurant %q michelin: %w", d.Name, err)}
		}
		if d.JamesBeard, err = awardColumn(jamesBeard); err != nil {
			return nil, &Error{Source: p.Name(), Err: fmt.Errorf("restaurant %q james_beard: %w", d.Name, err)}
		}
		out = append(out, d.toRecord())
	}
	if err := rs.Err(); err != nil {
		return nil, &Error{Source: p.Name(), Err: &db.Error{Op: db.OpSelect, Err: err}}
	}
	return out, nil
}

func awardColumn(v sql.NullString) (restaurant.Award, error) {
	var a restaurant.Award
	if !v.Valid || v.String == "" {
		return a, nil
	}
	if err := a.UnmarshalJSON([]byte(v.String)); err != nil {
		return restaurant.NoAward(), err
	}
	return a, nil
}
