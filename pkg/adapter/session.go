package adapter

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/leapstack-labs/sqlconsole/pkg/core"
	"github.com/leapstack-labs/sqlconsole/pkg/dialect"
)

// Session is one physical connection to the target, used for a single
// request and closed afterwards. A Session is not safe for concurrent use.
type Session struct {
	db            *sql.DB
	conn          *sql.Conn
	dialect       *dialect.Dialect
	status        StatusExecer
	defaultSchema string
	logger        *slog.Logger

	closeOnce sync.Once
	closeErr  error
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithStatusExecer makes Exec report native command tags through se.
func WithStatusExecer(se StatusExecer) Option {
	return func(s *Session) { s.status = se }
}

// WithDefaultSchema overrides the dialect's default schema.
func WithDefaultSchema(schema string) Option {
	return func(s *Session) {
		if schema != "" {
			s.defaultSchema = schema
		}
	}
}

// Open resolves the adapter for target, connects and checks out the
// session's connection. Any failure is a *core.ConnectionError.
func Open(ctx context.Context, target core.ConnectionTarget, logger *slog.Logger) (*Session, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	a, err := NewAdapter(target.Scheme, logger)
	if err != nil {
		return nil, core.NewConnectionError(err)
	}

	logger.Debug("opening session",
		slog.String("adapter", a.Name()),
		slog.String("dsn", target.Redacted()),
		slog.Bool("ssl", target.SSLRequired))

	db, err := a.Open(ctx, target)
	if err != nil {
		return nil, core.NewConnectionError(err)
	}

	opts := []Option{WithLogger(logger)}
	if se, ok := a.(StatusExecer); ok {
		opts = append(opts, WithStatusExecer(se))
	}
	if sr, ok := a.(SchemaResolver); ok {
		opts = append(opts, WithDefaultSchema(sr.DefaultSchema(target)))
	}
	return NewSession(ctx, db, a.Dialect(), opts...)
}

// NewSession wraps an open handle. The handle is capped at one connection and
// owned by the session from here on, including on error.
func NewSession(ctx context.Context, db *sql.DB, d *dialect.Dialect, opts ...Option) (*Session, error) {
	if d == nil {
		_ = db.Close()
		return nil, core.NewConnectionError(dialect.ErrDialectRequired)
	}
	db.SetMaxOpenConns(1)

	conn, err := db.Conn(ctx)
	if err != nil {
		_ = db.Close()
		return nil, core.NewConnectionError(err)
	}

	s := &Session{
		db:            db,
		conn:          conn,
		dialect:       d,
		defaultSchema: d.DefaultSchema,
		logger:        slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Dialect returns the session's SQL dialect.
func (s *Session) Dialect() *dialect.Dialect {
	return s.dialect
}

// DefaultSchema returns the schema assumed for unqualified table names.
func (s *Session) DefaultSchema() string {
	return s.defaultSchema
}

// Query runs a statement and materialises every row.
func (s *Session) Query(ctx context.Context, query string, args ...any) (*core.ResultSet, error) {
	s.logger.Debug("query", slog.String("sql", query), slog.Int("args", len(args)))

	rows, err := s.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, core.NewEngineError(err)
	}
	defer func() { _ = rows.Close() }()

	rs, err := scanRows(rows)
	if err != nil {
		return nil, core.NewEngineError(err)
	}
	return rs, nil
}

// Exec runs a statement that returns no rows and reports the engine status.
func (s *Session) Exec(ctx context.Context, query string) (string, error) {
	s.logger.Debug("exec", slog.String("sql", query))

	if s.status != nil {
		status, err := s.status.ExecStatus(ctx, s.conn, query)
		switch {
		case err == nil:
			return status, nil
		case !errors.Is(err, ErrStatusUnsupported):
			return "", core.NewEngineError(err)
		}
	}

	res, err := s.conn.ExecContext(ctx, query)
	if err != nil {
		return "", core.NewEngineError(err)
	}
	return genericStatus(query, res), nil
}

// ExecCount runs a parameterised statement and returns the rows affected.
func (s *Session) ExecCount(ctx context.Context, query string, args ...any) (int64, error) {
	s.logger.Debug("exec", slog.String("sql", query), slog.Int("args", len(args)))

	res, err := s.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, core.NewEngineError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, core.NewEngineError(err)
	}
	return n, nil
}

// Close releases the connection and the handle. It is safe to call more than once.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		s.logger.Debug("closing session")
		connErr := s.conn.Close()
		dbErr := s.db.Close()
		if connErr != nil && !errors.Is(connErr, sql.ErrConnDone) {
			s.closeErr = fmt.Errorf("failed to close connection: %w", connErr)
			return
		}
		if dbErr != nil {
			s.closeErr = fmt.Errorf("failed to close database: %w", dbErr)
		}
	})
	return s.closeErr
}

// genericStatus builds "<VERB> <rows>" for drivers without native command tags.
func genericStatus(query string, res sql.Result) string {
	fields := strings.Fields(query)
	verb := "OK"
	if len(fields) > 0 {
		verb = strings.ToUpper(strings.TrimRight(fields[0], ";"))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return verb
	}
	return fmt.Sprintf("%s %d", verb, n)
}
