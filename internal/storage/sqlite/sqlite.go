// Package sqlite provides a SQLite-backed implementation of the
// storage.Storage interface using Go's standard database/sql package.
//
// WHY SQLite?
// ───────────
// SQLite stores everything in a single file on disk. There is no
// network, no separate server process, and no installation beyond the
// driver. That makes it a convenient backend for local development when
// no MongoDB instance is around.
//
// DOCUMENTS IN A RELATIONAL FILE:
// ───────────────────────────────
// Each collection is one table:
//
//	seq  insertion counter, gives Find a stable order
//	id   the document's ObjectID in hex
//	doc  the whole document as canonical MongoDB Extended JSON
//
// Equality filters are evaluated by SQLite itself with json_extract, so
// the same storage.Filter works here and against MongoDB.
//
// The blank import below registers the sqlite3 driver with database/sql.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/aanand-mishra/course-api/internal/storage"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	// Blank import: side-effect only (registers the "sqlite3" driver).
	_ "github.com/mattn/go-sqlite3"
)

// SQLite is the concrete implementation of storage.Storage.
// It holds a *sql.DB which is a connection pool managed by database/sql.
type SQLite struct {
	Db *sql.DB

	mu     sync.Mutex
	tables map[string]error
}

// New opens the SQLite database at path and creates a table for each of
// the given collections if it does not already exist.
func New(path string, collections ...string) (*SQLite, error) {
	// sql.Open does NOT open a real connection yet; it just validates
	// the driver name and data source name (DSN).
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrap(err, "opening sqlite database")
	}

	// SQLite allows a single writer. One connection avoids "database is
	// locked" errors under concurrent requests.
	db.SetMaxOpenConns(1)

	s := &SQLite{Db: db, tables: make(map[string]error)}
	for _, name := range collections {
		if err := s.ensureTable(name); err != nil {
			db.Close()
			return nil, err
		}
	}

	return s, nil
}

// ensureTable runs CREATE TABLE IF NOT EXISTS once per collection name
// and remembers the outcome.
func (s *SQLite) ensureTable(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err, ok := s.tables[name]; ok {
		return err
	}

	_, err := s.Db.Exec(fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id  TEXT    NOT NULL UNIQUE,
			doc TEXT    NOT NULL
		)
	`, quote(name)))
	err = errors.Wrapf(err, "creating table for collection '%s'", name)
	s.tables[name] = err
	return err
}

func (s *SQLite) Collection(name string) storage.Collection {
	return &collection{db: s.Db, table: quote(name), err: s.ensureTable(name)}
}

func (s *SQLite) Close(context.Context) error {
	return errors.Wrap(s.Db.Close(), "closing sqlite database")
}

type collection struct {
	db    *sql.DB
	table string

	// err is set when the table could not be created; every operation
	// returns it.
	err error
}

func (c *collection) Insert(ctx context.Context, doc any) (primitive.ObjectID, error) {
	if c.err != nil {
		return primitive.NilObjectID, c.err
	}

	id := primitive.NewObjectID()
	raw, err := storage.NewDocument(id, doc)
	if err != nil {
		return primitive.NilObjectID, err
	}
	text, err := toJSON(raw)
	if err != nil {
		return primitive.NilObjectID, err
	}

	// Placeholders (?) keep the document text as pure data.
	_, err = c.db.ExecContext(ctx,
		fmt.Sprintf("INSERT INTO %s (id, doc) VALUES (?, ?)", c.table),
		id.Hex(), text,
	)
	if err != nil {
		return primitive.NilObjectID, errors.Wrap(err, "inserting document")
	}

	return id, nil
}

func (c *collection) FindByID(ctx context.Context, id primitive.ObjectID) (bson.Raw, error) {
	if c.err != nil {
		return nil, c.err
	}

	var text string
	err := c.db.QueryRowContext(ctx,
		fmt.Sprintf("SELECT doc FROM %s WHERE id = ? LIMIT 1", c.table),
		id.Hex(),
	).Scan(&text)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNoDocument
		}
		return nil, errors.Wrap(err, "finding document by id")
	}

	return fromJSON(text)
}

func (c *collection) Find(ctx context.Context, filter storage.Filter) ([]bson.Raw, error) {
	if c.err != nil {
		return nil, c.err
	}

	// Sort the fields so the same filter always yields the same SQL.
	fields := make([]string, 0, len(filter))
	for field := range filter {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	query := fmt.Sprintf("SELECT doc FROM %s", c.table)
	args := make([]any, 0, 2*len(fields))
	if len(fields) > 0 {
		clauses := make([]string, 0, len(fields))
		for _, field := range fields {
			clauses = append(clauses, "json_extract(doc, ?) = ?")
			args = append(args, "$."+field, filter[field])
		}
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY seq"

	return c.query(ctx, query, args...)
}

func (c *collection) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]bson.Raw, error) {
	if c.err != nil {
		return nil, c.err
	}
	if len(ids) == 0 {
		return make([]bson.Raw, 0), nil
	}

	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = "?"
		args[i] = id.Hex()
	}

	return c.query(ctx, fmt.Sprintf(
		"SELECT doc FROM %s WHERE id IN (%s) ORDER BY seq",
		c.table, strings.Join(placeholders, ", "),
	), args...)
}

func (c *collection) UpdateByID(ctx context.Context, id primitive.ObjectID, doc any) (bool, error) {
	if c.err != nil {
		return false, c.err
	}

	// Read-modify-write inside one transaction so a concurrent update of
	// the same document cannot be lost halfway.
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return false, errors.Wrap(err, "starting transaction")
	}
	defer tx.Rollback()

	var text string
	err = tx.QueryRowContext(ctx,
		fmt.Sprintf("SELECT doc FROM %s WHERE id = ? LIMIT 1", c.table),
		id.Hex(),
	).Scan(&text)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrap(err, "finding document to update")
	}

	existing, err := fromJSON(text)
	if err != nil {
		return false, err
	}
	updated, err := storage.SetFields(existing, doc)
	if err != nil {
		return false, err
	}
	if text, err = toJSON(updated); err != nil {
		return false, err
	}

	if _, err = tx.ExecContext(ctx,
		fmt.Sprintf("UPDATE %s SET doc = ? WHERE id = ?", c.table),
		text, id.Hex(),
	); err != nil {
		return false, errors.Wrap(err, "updating document")
	}

	return true, errors.Wrap(tx.Commit(), "committing update")
}

func (c *collection) DeleteByID(ctx context.Context, id primitive.ObjectID) (bool, error) {
	if c.err != nil {
		return false, c.err
	}

	result, err := c.db.ExecContext(ctx,
		fmt.Sprintf("DELETE FROM %s WHERE id = ?", c.table),
		id.Hex(),
	)
	if err != nil {
		return false, errors.Wrap(err, "deleting document")
	}

	n, err := result.RowsAffected()
	if err != nil {
		return false, errors.Wrap(err, "counting deleted rows")
	}
	return n > 0, nil
}

// query runs a SELECT doc ... statement and decodes every row.
func (c *collection) query(ctx context.Context, query string, args ...any) ([]bson.Raw, error) {
	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "querying documents")
	}
	defer rows.Close() // must close rows to free the DB connection

	// Returning [] instead of null keeps JSON responses consistent.
	docs := make([]bson.Raw, 0)
	for rows.Next() {
		var text string
		if err := rows.Scan(&text); err != nil {
			return nil, errors.Wrap(err, "scanning document row")
		}
		raw, err := fromJSON(text)
		if err != nil {
			return nil, err
		}
		docs = append(docs, raw)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterating document rows")
	}

	return docs, nil
}

func toJSON(raw bson.Raw) (string, error) {
	data, err := bson.MarshalExtJSON(raw, true, false)
	if err != nil {
		return "", errors.Wrap(err, "encoding document as extended JSON")
	}
	return string(data), nil
}

func fromJSON(text string) (bson.Raw, error) {
	var d bson.D
	if err := bson.UnmarshalExtJSON([]byte(text), true, &d); err != nil {
		return nil, errors.Wrap(err, "decoding extended JSON document")
	}
	raw, err := bson.Marshal(d)
	return raw, errors.Wrap(err, "marshalling document")
}

// quote turns a collection name into a safe SQL identifier.
func quote(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
