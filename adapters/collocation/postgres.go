/*
Copyright © 2026 the harpcore authors.
This file is part of harpcore.

harpcore is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

harpcore is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with harpcore.  If not, see <http://www.gnu.org/licenses/>.
*/

package collocation

import (
	"context"

	"github.com/jackc/pgx/v4"
	"github.com/spatialmodel/harpcore"
)

// PostgresTable is a CollocationTable backed by a Postgres query, the way
// the teacher's internal/postgis package reaches a spatial-join table over
// a pgx connection rather than holding every row in memory. Use New's
// in-memory Table for small matched sets and PostgresTable when the
// collocation index itself lives in a database.
//
// PostgresTable does not populate CollocationMetaB.DimLengths: the
// dimension-length map has no natural single-column SQL representation,
// so this reference adapter leaves it nil. RegridCollocated reads
// DimLengths[Vertical] before importing any match product to decide how
// far to grow the vertical axis; with pairs from this table it keeps the
// local product's own vertical length.
type PostgresTable struct {
	conn    *pgx.Conn
	query   string // selects id, a_index, b_index, b_filename, b_source_id, source_a
	sourceA string // filter value already applied to query, "" if none
}

// OpenPostgresTable connects to connString (a libpq connection URL, e.g.
// "postgres://user@host:5432/dbname") and returns a PostgresTable that
// runs query to enumerate pairs. query must select the columns
// PostgresTable.Pairs scans (id, a_index, b_index, b_filename,
// b_source_id) plus source_a, the A-side source identifier FilterBySourceA
// matches against.
func OpenPostgresTable(ctx context.Context, connString, query string) (*PostgresTable, error) {
	conn, err := pgx.Connect(ctx, connString)
	if err != nil {
		return nil, &harpcore.Error{Kind: harpcore.FileOpen, Message: "connecting to collocation database", Cause: err}
	}
	return &PostgresTable{conn: conn, query: query}, nil
}

func (t *PostgresTable) Copy() harpcore.CollocationTable {
	return &PostgresTable{conn: t.conn, query: t.query, sourceA: t.sourceA}
}

// FilterBySourceA returns a table whose query is additionally restricted
// to sourceID via a WHERE clause appended around the caller's base query.
func (t *PostgresTable) FilterBySourceA(sourceID string) harpcore.CollocationTable {
	return &PostgresTable{conn: t.conn, query: t.query, sourceA: sourceID}
}

// SortByID wraps the query in an ORDER BY id clause.
func (t *PostgresTable) SortByID() harpcore.CollocationTable {
	return &PostgresTable{conn: t.conn, query: "SELECT * FROM (" + t.query + ") sorted ORDER BY id", sourceA: t.sourceA}
}

// Pairs executes the table's query and scans every row into a
// CollocationPair, applying any FilterBySourceA restriction as a WHERE
// clause around the base query.
func (t *PostgresTable) Pairs() []harpcore.CollocationPair {
	query := "SELECT id, a_index, b_index, b_filename, b_source_id FROM (" + t.query + ") base"
	args := []interface{}{}
	if t.sourceA != "" {
		query += " WHERE source_a = $1"
		args = append(args, t.sourceA)
	}

	rows, err := t.conn.Query(context.Background(), query, args...)
	if err != nil {
		return nil
	}
	defer rows.Close()

	var out []harpcore.CollocationPair
	for rows.Next() {
		var p harpcore.CollocationPair
		var meta harpcore.CollocationMetaB
		if err := rows.Scan(&p.ID, &p.IndexA, &p.IndexB, &meta.Filename, &meta.SourceID); err != nil {
			continue
		}
		p.MetaB = meta
		out = append(out, p)
	}
	return out
}

var _ harpcore.CollocationTable = &PostgresTable{}
