package dinedash

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/text/language"

	"github.com/kailas-cloud/dinedash/internal/config"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	source  config.SourceConfig
	records []Record

	lang           language.Tag
	searchDebounce time.Duration
	loadTimeout    time.Duration

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithFile loads records from a JSON document on disk.
func WithFile(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.source.Driver = config.DriverFile
		c.source.Path = path
	})
}

// WithURL fetches the JSON document over HTTP.
func WithURL(url string) Option {
	return optionFunc(func(c *clientConfig) {
		c.source.Driver = config.DriverHTTP
		c.source.URL = url
	})
}

// WithRedis reads the JSON document stored as a string under key.
func WithRedis(addr, password, key string) Option {
	return optionFunc(func(c *clientConfig) {
		c.source.Driver = config.DriverRedis
		c.source.Redis.Addrs = []string{addr}
		c.source.Redis.Password = password
		c.source.Redis.Key = key
		c.source.Redis.Format = config.RedisFormatString
	})
}

// WithPostgres reads records from a table.
func WithPostgres(dsn, table string) Option {
	return optionFunc(func(c *clientConfig) {
		c.source.Driver = config.DriverPostgres
		c.source.Postgres.DSN = dsn
		c.source.Postgres.Table = table
	})
}

// WithRecords serves a fixed in-memory record set. Takes precedence over
// any other source option.
func WithRecords(records ...Record) Option {
	return optionFunc(func(c *clientConfig) {
		c.records = records
	})
}

// WithLanguage sets the collation used for name and city sorting.
// Defaults to English.
func WithLanguage(tag language.Tag) Option {
	return optionFunc(func(c *clientConfig) {
		c.lang = tag
	})
}

// WithSearchDebounce sets the quiet window before typed search text is applied.
// Default: 300ms.
func WithSearchDebounce(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.searchDebounce = d
	})
}

// WithLoadTimeout bounds the one-time load. Default: 10s.
func WithLoadTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.loadTimeout = d
	})
}

// WithLogger enables structured logging for client operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers client metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
