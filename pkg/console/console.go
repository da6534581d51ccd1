package console

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/leapstack-labs/sqlconsole/pkg/adapter"
	"github.com/leapstack-labs/sqlconsole/pkg/core"
)

// Action selects what a request does after connecting.
type Action string

// Supported actions.
const (
	ActionConnect   Action = "connect"
	ActionViewTable Action = "view_table"
	ActionRunSQL    Action = "run_sql"
	ActionDeleteRow Action = "delete_row"
)

// ParseAction maps a form value to an Action. Blank means connect.
func ParseAction(s string) (Action, error) {
	switch a := Action(strings.TrimSpace(s)); a {
	case "":
		return ActionConnect, nil
	case ActionConnect, ActionViewTable, ActionRunSQL, ActionDeleteRow:
		return a, nil
	default:
		return "", &core.ValidationError{Msg: fmt.Sprintf("Unknown action %q", s)}
	}
}

// Request is one operator request. Every request opens its own session.
type Request struct {
	URL     string
	SSLMode string
	Action  Action
	// Table is "schema.table"; without a dot the engine default schema applies.
	Table string
	SQL   string
	// Row is an encoded RowSnapshot.
	Row string
}

// Response carries everything a presentation layer renders for a request.
type Response struct {
	Action    Action
	Target    core.ConnectionTarget
	Catalog   *Catalog
	Table     core.TableRef
	Result    *core.ResultSet
	Status    string
	Deleted   int64
	Deletable bool
	Message   string
}

// Event describes a handled request for a Recorder.
type Event struct {
	Action   Action
	DSN      string
	Table    string
	Message  string
	Err      error
	Deleted  int64
	Duration time.Duration
	At       time.Time
}

// Recorder receives one Event per handled request.
type Recorder interface {
	Record(ctx context.Context, ev Event) error
}

// Options configures a Console.
type Options struct {
	Logger   *slog.Logger
	Opener   Opener
	Recorder Recorder
	// Timeout bounds each request; zero means no limit beyond the caller's context.
	Timeout time.Duration
}

// Console runs operator requests: connect, load the catalog, perform the
// action and close the connection, strictly in that order.
type Console struct {
	logger   *slog.Logger
	open     Opener
	recorder Recorder
	timeout  time.Duration
}

// New creates a Console.
func New(opts Options) *Console {
	c := &Console{
		logger:   opts.Logger,
		open:     opts.Opener,
		recorder: opts.Recorder,
		timeout:  opts.Timeout,
	}
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}
	if c.open == nil {
		c.open = OpenSession
	}
	return c
}

// Handle executes req. On failure the returned Response is still non-nil and
// holds whatever was loaded before the error, typically the catalog.
func (c *Console) Handle(ctx context.Context, req Request) (resp *Response, err error) {
	start := time.Now()
	resp = &Response{Action: req.Action}
	if resp.Action == "" {
		resp.Action = ActionConnect
	}
	defer func() { c.record(ctx, req, resp, err, start) }()

	if strings.TrimSpace(req.URL) == "" {
		return resp, &core.ValidationError{Msg: "Database URL is required"}
	}
	resp.Target = adapter.Resolve(req.URL, req.SSLMode)

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	s, err := c.open(ctx, resp.Target, c.logger)
	if err != nil {
		return resp, err
	}
	defer func() {
		if cerr := s.Close(); cerr != nil {
			c.logger.Warn("failed to close session", slog.String("error", cerr.Error()))
		}
	}()

	catalog, err := ListBaseTables(ctx, s)
	if err != nil {
		return resp, err
	}
	resp.Catalog = catalog

	switch {
	case resp.Action == ActionViewTable && strings.TrimSpace(req.Table) != "":
		return resp, c.view(ctx, s, req, resp)
	case resp.Action == ActionDeleteRow && strings.TrimSpace(req.Table) != "" && req.Row != "":
		return resp, c.delete(ctx, s, req, resp)
	case resp.Action == ActionRunSQL && Classify(req.SQL) != RouteNone:
		return resp, c.run(ctx, s, req, resp)
	default:
		resp.Message = "Connected. Tables loaded."
		return resp, nil
	}
}

func (c *Console) view(ctx context.Context, s Session, req Request, resp *Response) error {
	ref := core.ParseTableRef(req.Table, s.DefaultSchema())
	resp.Table = ref

	rs, err := Browse(ctx, s, resp.Catalog, ref)
	if err != nil {
		return err
	}
	resp.Result = rs
	resp.Deletable = true
	resp.Message = fmt.Sprintf("Showing first %d rows from %s", rs.Len(), ref)
	return nil
}

func (c *Console) delete(ctx context.Context, s Session, req Request, resp *Response) error {
	ref := core.ParseTableRef(req.Table, s.DefaultSchema())
	resp.Table = ref

	if !resp.Catalog.Contains(ref) {
		return &core.ValidationError{Table: ref, Delete: true}
	}
	snap, err := core.DecodeSnapshot(req.Row)
	if err != nil {
		return err
	}

	res, err := DeleteMatching(ctx, s, resp.Catalog, ref, snap)
	if err != nil {
		return err
	}
	resp.Result = res.Rows
	resp.Deleted = res.Deleted
	resp.Deletable = true
	resp.Message = fmt.Sprintf("Deleted %d row(s) from %s", res.Deleted, ref)
	return nil
}

func (c *Console) run(ctx context.Context, s Session, req Request, resp *Response) error {
	out, err := Execute(ctx, s, req.SQL)
	if err != nil {
		return err
	}
	switch out.Route {
	case RouteRows:
		resp.Result = out.Rows
		resp.Message = fmt.Sprintf("Query OK, %d rows returned.", out.Rows.Len())
	case RouteStatus:
		resp.Status = out.Status
		resp.Message = fmt.Sprintf("Statement OK: %s", out.Status)
	}
	return nil
}

func (c *Console) record(ctx context.Context, req Request, resp *Response, err error, start time.Time) {
	duration := time.Since(start)
	attrs := []any{
		slog.String("action", string(resp.Action)),
		slog.Duration("duration", duration),
	}
	if err != nil {
		c.logger.Info("request failed", append(attrs, slog.String("error", err.Error()))...)
	} else {
		c.logger.Debug("request handled", attrs...)
	}

	if c.recorder == nil {
		return
	}
	ev := Event{
		Action:   resp.Action,
		DSN:      resp.Target.Redacted(),
		Table:    strings.TrimSpace(req.Table),
		Message:  resp.Message,
		Err:      err,
		Deleted:  resp.Deleted,
		Duration: duration,
		At:       start,
	}
	if !resp.Table.IsZero() {
		ev.Table = resp.Table.String()
	}
	if rerr := c.recorder.Record(context.WithoutCancel(ctx), ev); rerr != nil {
		c.logger.Warn("failed to record request", slog.String("error", rerr.Error()))
	}
}
