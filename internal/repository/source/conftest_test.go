package source

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"reflect"
)

const sampleDocument = `{"restaurants":[
	{"name":"Sushi Den","category":"Sushi","city":"Denver","location":"1487 S Pearl St","hours":"5-10pm","status":"Open","rank":1,"rating":4.6,"michelin":"Recommended","james_beard":false,"notes":"omakase"},
	{"name":"Tokio","category":"Ramen","city":"Denver","status":"closed","rank":0,"rating":3.9,"michelin":false,"james_beard":true},
	{"name":"Bare Minimum"}
]}`

// mockKV implements kvStore for tests.
type mockKV struct {
	getFn func(ctx context.Context, key string) ([]byte, error)
	setFn func(ctx context.Context, key string, value []byte) error
}

func (m *mockKV) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return nil, errors.New("not configured")
}

func (m *mockKV) Set(ctx context.Context, key string, value []byte) error {
	if m.setFn != nil {
		return m.setFn(ctx, key, value)
	}
	return nil
}

// mockJSON implements jsonStore for tests.
type mockJSON struct {
	getFn func(ctx context.Context, key string, paths ...string) ([]byte, error)
	setFn func(ctx context.Context, key, path string, data []byte) error
}

func (m *mockJSON) JSONSet(ctx context.Context, key, path string, data []byte) error {
	if m.setFn != nil {
		return m.setFn(ctx, key, path, data)
	}
	return nil
}

func (m *mockJSON) JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key, paths...)
	}
	return nil, errors.New("not configured")
}

// fakeRows replays fixed rows through the rows interface.
type fakeRows struct {
	data    [][]any
	pos     int
	scanErr error
	err     error
	closed  bool
}

func (f *fakeRows) Next() bool {
	if f.pos >= len(f.data) {
		return false
	}
	f.pos++
	return true
}

func (f *fakeRows) Scan(dest ...any) error {
	if f.scanErr != nil {
		return f.scanErr
	}
	row := f.data[f.pos-1]
	if len(dest) != len(row) {
		return fmt.Errorf("scan: want %d columns, got %d", len(row), len(dest))
	}
	for i, v := range row {
		switch d := dest[i].(type) {
		case *sql.NullString:
			if v == nil {
				*d = sql.NullString{}
			} else {
				*d = sql.NullString{String: v.(string), Valid: true}
			}
		default:
			reflect.ValueOf(d).Elem().Set(reflect.ValueOf(v))
		}
	}
	return nil
}

func (f *fakeRows) Err() error   { return f.err }
func (f *fakeRows) Close() error { f.closed = true; return nil }

func pgRow(name, category, city, status string, rank int, rating float64, michelin, jamesBeard any) []any {
	return []any{name, category, city, "", "", status, rank, rating, michelin, jamesBeard, ""}
}
