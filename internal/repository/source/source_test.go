package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kailas-cloud/dinedash/internal/db"
	"github.com/kailas-cloud/dinedash/internal/domain/restaurant"
)

// --- dto.go ---

func TestDecode_Sample(t *testing.T) {
	records, err := Decode([]byte(sampleDocument))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}

	den := records[0]
	if den.Name() != "Sushi Den" || den.Rank() != 1 || den.Rating() != 4.6 {
		t.Errorf("unexpected first record: %+v", den.Params())
	}
	if den.Michelin().Kind() != restaurant.AwardTiered || den.Michelin().Tier() != "Recommended" {
		t.Errorf("michelin = %+v, want tier Recommended", den.Michelin())
	}
	if den.JamesBeard().IsAwarded() {
		t.Error("james_beard false must decode as no award")
	}

	tokio := records[1]
	if tokio.Status() != restaurant.Closed {
		t.Errorf("status should normalise to Closed, got %q", tokio.Status())
	}
	if tokio.JamesBeard().Kind() != restaurant.AwardPlain {
		t.Errorf("james_beard true must decode as plain award")
	}
}

func TestDecode_AbsentOptionalFieldsAreEmpty(t *testing.T) {
	records, err := Decode([]byte(sampleDocument))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bare := records[2]
	if bare.Location() != "" || bare.Notes() != "" || bare.Hours() != "" || bare.City() != "" {
		t.Errorf("absent strings should be empty: %+v", bare.Params())
	}
	if bare.HasAward() {
		t.Error("absent awards should be None")
	}
}

func TestDecode_Malformed(t *testing.T) {
	if _, err := Decode([]byte(`{"restaurants": [`)); err == nil {
		t.Fatal("expected error")
	}
}

func TestDecode_EmptyDocument(t *testing.T) {
	records, err := Decode([]byte(`{}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected no records, got %d", len(records))
	}
}

func TestEncode_RoundTripKeepsOrderAndAwards(t *testing.T) {
	in, err := Decode([]byte(sampleDocument))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	data, err := Encode(in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !strings.Contains(string(data), `"michelin":"Recommended"`) {
		t.Errorf("tier not preserved: %s", data)
	}
	out, err := Decode(data)
	if err != nil {
		t.Fatalf("decode again: %v", err)
	}
	for i := range in {
		if in[i] != out[i] {
			t.Errorf("record %d differs: %+v vs %+v", i, in[i].Params(), out[i].Params())
		}
	}
}

// --- file.go ---

func TestFile_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "restaurants.json")
	if err := os.WriteFile(path, []byte(sampleDocument), 0o600); err != nil {
		t.Fatal(err)
	}
	records, err := NewFile(path).Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 3 {
		t.Errorf("expected 3 records, got %d", len(records))
	}
}

func TestFile_Missing(t *testing.T) {
	_, err := NewFile(filepath.Join(t.TempDir(), "nope.json")).Load(context.Background())
	var srcErr *Error
	if !errors.As(err, &srcErr) || srcErr.Source != "file" {
		t.Fatalf("expected file source error, got %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist in chain, got %v", err)
	}
}

func TestFile_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewFile("ignored").Load(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

// --- http.go ---

func TestHTTP_Load(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("unexpected method %s", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleDocument))
	}))
	defer srv.Close()

	records, err := NewHTTP(srv.URL, srv.Client()).Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 3 {
		t.Errorf("expected 3 records, got %d", len(records))
	}
}

func TestHTTP_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewHTTP(srv.URL, nil).Load(context.Background())
	if err == nil || !strings.Contains(err.Error(), "unexpected status 404") {
		t.Fatalf("expected status error, got %v", err)
	}
}

func TestHTTP_BadBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html>"))
	}))
	defer srv.Close()

	if _, err := NewHTTP(srv.URL, nil).Load(context.Background()); err == nil {
		t.Fatal("expected decode error")
	}
}

// --- redis.go ---

func TestRedis_Load(t *testing.T) {
	kv := &mockKV{getFn: func(_ context.Context, key string) ([]byte, error) {
		if key != "dinedash:restaurants" {
			t.Errorf("unexpected key %q", key)
		}
		return []byte(sampleDocument), nil
	}}
	records, err := NewRedis(kv, "dinedash:restaurants").Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 3 {
		t.Errorf("expected 3 records, got %d", len(records))
	}
}

func TestRedis_MissingKey(t *testing.T) {
	kv := &mockKV{getFn: func(context.Context, string) ([]byte, error) {
		return nil, db.ErrKeyNotFound
	}}
	_, err := NewRedis(kv, "k").Load(context.Background())
	if !errors.Is(err, db.ErrKeyNotFound) {
		t.Errorf("expected ErrKeyNotFound, got %v", err)
	}
}

func TestRedis_Seed(t *testing.T) {
	var stored []byte
	kv := &mockKV{setFn: func(_ context.Context, _ string, value []byte) error {
		stored = value
		return nil
	}}
	in := []restaurant.Record{restaurant.Reconstruct(restaurant.Params{Name: "A", Status: restaurant.Open, Michelin: restaurant.Awarded()})}
	if err := NewRedis(kv, "k").Seed(context.Background(), in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out, err := Decode(stored)
	if err != nil {
		t.Fatalf("seeded value must decode: %v", err)
	}
	if len(out) != 1 || out[0] != in[0] {
		t.Errorf("seeded %+v, decoded %+v", in, out)
	}
}

func TestRedis_SeedError(t *testing.T) {
	kv := &mockKV{setFn: func(context.Context, string, []byte) error {
		return &db.Error{Op: db.OpSet, Err: context.DeadlineExceeded}
	}}
	err := NewRedis(kv, "k").Seed(context.Background(), nil)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline error in chain, got %v", err)
	}
}

func TestRedisJSON_Load(t *testing.T) {
	js := &mockJSON{getFn: func(_ context.Context, key string, paths ...string) ([]byte, error) {
		if key != "dinedash:restaurants" || len(paths) != 0 {
			t.Errorf("unexpected call key=%q paths=%v", key, paths)
		}
		return []byte(sampleDocument), nil
	}}
	src := NewRedisJSON(js, "dinedash:restaurants")
	records, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 3 {
		t.Errorf("expected 3 records, got %d", len(records))
	}
	if src.Name() != "redis-json" {
		t.Errorf("name = %q", src.Name())
	}
}

func TestRedisJSON_MissingKey(t *testing.T) {
	js := &mockJSON{getFn: func(context.Context, string, ...string) ([]byte, error) {
		return nil, db.ErrKeyNotFound
	}}
	_, err := NewRedisJSON(js, "k").Load(context.Background())
	if !errors.Is(err, db.ErrKeyNotFound) {
		t.Errorf("expected ErrKeyNotFound, got %v", err)
	}
	var srcErr *Error
	if !errors.As(err, &srcErr) || srcErr.Source != "redis-json" {
		t.Errorf("expected source error, got %v", err)
	}
}

func TestRedisJSON_SeedRoundTrip(t *testing.T) {
	var stored []byte
	js := &mockJSON{
		setFn: func(_ context.Context, _, path string, data []byte) error {
			if path != "$" {
				t.Errorf("path = %q, want $", path)
			}
			stored = data
			return nil
		},
		getFn: func(context.Context, string, ...string) ([]byte, error) {
			return stored, nil
		},
	}
	src := NewRedisJSON(js, "k")
	in := []restaurant.Record{restaurant.Reconstruct(restaurant.Params{
		Name: "A", Status: restaurant.Open, JamesBeard: restaurant.AwardedWithTier("Finalist"),
	})}
	if err := src.Seed(context.Background(), in); err != nil {
		t.Fatalf("seed: %v", err)
	}
	out, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(out) != 1 || out[0] != in[0] {
		t.Errorf("seeded %+v, loaded %+v", in, out)
	}
}

// --- postgres.go ---

func TestPostgres_Load(t *testing.T) {
	fr := &fakeRows{data: [][]any{
		pgRow("A", "Sushi", "Denver", "Open", 1, 4.5, "true", "false"),
		pgRow("B", "Sushi", "Denver", "CLOSED", 0, 3.0, nil, `"Semifinalist"`),
	}}
	var gotSQL string
	p := &Postgres{table: "restaurants", query: func(_ context.Context, q string) (rows, error) {
		gotSQL = q
		return fr, nil
	}}

	records, err := p.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(gotSQL, `FROM "restaurants" ORDER BY id`) {
		t.Errorf("unexpected query: %s", gotSQL)
	}
	if !fr.closed {
		t.Error("rows must be closed")
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Michelin().Kind() != restaurant.AwardPlain || records[0].JamesBeard().IsAwarded() {
		t.Errorf("unexpected awards on A: %+v", records[0].Params())
	}
	if records[1].Status() != restaurant.Closed {
		t.Errorf("status = %q, want Closed", records[1].Status())
	}
	if records[1].Michelin().IsAwarded() || records[1].JamesBeard().Tier() != "Semifinalist" {
		t.Errorf("unexpected awards on B: %+v", records[1].Params())
	}
}

func TestPostgres_QueryError(t *testing.T) {
	p := &Postgres{table: "restaurants", query: func(context.Context, string) (rows, error) {
		return nil, errors.New("connection refused")
	}}
	_, err := p.Load(context.Background())
	var dbErr *db.Error
	if !errors.As(err, &dbErr) || dbErr.Op != db.OpSelect {
		t.Fatalf("expected SELECT db.Error, got %v", err)
	}
}

func TestPostgres_ScanError(t *testing.T) {
	fr := &fakeRows{data: [][]any{pgRow("A", "", "", "Open", 1, 4.0, nil, nil)}, scanErr: errors.New("bad type")}
	p := &Postgres{table: "t", query: func(context.Context, string) (rows, error) { return fr, nil }}
	if _, err := p.Load(context.Background()); err == nil || !strings.Contains(err.Error(), "scan row") {
		t.Fatalf("expected scan error, got %v", err)
	}
}

func TestPostgres_RowsErr(t *testing.T) {
	fr := &fakeRows{err: errors.New("stream broke")}
	p := &Postgres{table: "t", query: func(context.Context, string) (rows, error) { return fr, nil }}
	if _, err := p.Load(context.Background()); err == nil {
		t.Fatal("expected rows error")
	}
}

func TestPostgres_QuotesTable(t *testing.T) {
	p := &Postgres{table: `evil"; DROP TABLE x; --`}
	if !strings.Contains(p.selectSQL(), `"evil""; DROP TABLE x; --"`) {
		t.Errorf("table not quoted: %s", p.selectSQL())
	}
}

// --- static.go ---

func TestStatic_LoadReturnsCopy(t *testing.T) {
	in := []restaurant.Record{restaurant.Reconstruct(restaurant.Params{Name: "A"})}
	s := NewStatic(in)
	out, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out[0] = restaurant.Reconstruct(restaurant.Params{Name: "Z"})
	again, _ := s.Load(context.Background())
	if again[0].Name() != "A" {
		t.Error("Load must not expose internal slice")
	}
}
