// Package dbconsole provides the single-page database console of the web UI.
package dbconsole

import (
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/gorilla/sessions"
	"github.com/leapstack-labs/sqlconsole/pkg/console"
	"github.com/leapstack-labs/sqlconsole/pkg/core"
)

const pageTitle = "sqlconsole"

// Defaults holds the connection form defaults. They can be replaced while
// the server is running.
type Defaults struct {
	mu      sync.RWMutex
	dsn     string
	sslMode string
}

// NewDefaults returns defaults for the connection form. An empty SSL mode
// means "require".
func NewDefaults(dsn, sslMode string) *Defaults {
	d := &Defaults{}
	d.Set(dsn, sslMode)
	return d
}

// Set replaces both defaults.
func (d *Defaults) Set(dsn, sslMode string) {
	if sslMode == "" {
		sslMode = "require"
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.dsn = dsn
	d.sslMode = sslMode
}

// Get returns the current DSN and SSL mode.
func (d *Defaults) Get() (dsn, sslMode string) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.dsn, d.sslMode
}

// Handlers provides HTTP handlers for the console page.
type Handlers struct {
	console      *console.Console
	sessionStore sessions.Store
	defaults     *Defaults
	logger       *slog.Logger
}

// Options configures the console page.
type Options struct {
	// DefaultSSLMode applies when a post carries no sslmode field.
	DefaultSSLMode string
	// DefaultDSN pre-fills the connection form when the session has none.
	DefaultDSN string
	// Defaults, when set, takes precedence over DefaultSSLMode and DefaultDSN
	// and lets the caller change them later.
	Defaults *Defaults
	Logger   *slog.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(c *console.Console, sessionStore sessions.Store, opts Options) *Handlers {
	h := &Handlers{
		console:      c,
		sessionStore: sessionStore,
		defaults:     opts.Defaults,
		logger:       opts.Logger,
	}
	if h.defaults == nil {
		h.defaults = NewDefaults(opts.DefaultDSN, opts.DefaultSSLMode)
	}
	if h.logger == nil {
		h.logger = slog.New(slog.DiscardHandler)
	}
	return h
}

// ConsolePage renders the empty console, pre-filled with the last connection.
func (h *Handlers) ConsolePage(w http.ResponseWriter, r *http.Request) {
	dsn, sslMode := h.defaults.Get()
	d := PageData{
		Title:   pageTitle,
		DBURL:   dsn,
		SSLMode: sslMode,
	}
	if sess, err := h.sessionStore.Get(r, SessionName); err == nil {
		if v, ok := sess.Values[sessionKeyDBURL].(string); ok && v != "" {
			d.DBURL = v
		}
		if v, ok := sess.Values[sessionKeySSLMode].(string); ok && v != "" {
			d.SSLMode = v
		}
	}
	h.render(w, r, d)
}

// Submit handles every console form: connect, view_table, run_sql and delete_row.
func (h *Handlers) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	form := r.PostForm

	sslMode := form.Get(FieldSSLMode)
	if !form.Has(FieldSSLMode) {
		_, sslMode = h.defaults.Get()
	}
	d := PageData{
		Title:   pageTitle,
		DBURL:   form.Get(FieldDBURL),
		SSLMode: sslMode,
		SQLText: form.Get(FieldSQL),
	}

	action, err := console.ParseAction(form.Get(FieldAction))
	if err != nil {
		d.Error = err.Error()
		h.render(w, r, d)
		return
	}

	req := console.Request{
		URL:     d.DBURL,
		SSLMode: sslMode,
		Action:  action,
		Table:   form.Get(FieldTable),
		SQL:     d.SQLText,
		Row:     form.Get(FieldRow),
	}
	if action == console.ActionDeleteRow {
		req.Table = form.Get(FieldDeleteTable)
	}
	d.Selected = strings.TrimSpace(req.Table)

	resp, err := h.console.Handle(r.Context(), req)
	h.remember(w, r, d)
	fillPage(&d, resp, err)
	h.render(w, r, d)
}

// fillPage copies a console response into page data.
func fillPage(d *PageData, resp *console.Response, err error) {
	if err != nil {
		d.Error = err.Error()
	}
	if resp == nil {
		return
	}
	if err == nil {
		d.Message = resp.Message
	}
	if resp.Catalog != nil {
		d.Tables = make([]string, 0, resp.Catalog.Len())
		for _, t := range resp.Catalog.Tables {
			d.Tables = append(d.Tables, t.String())
		}
	}
	if !resp.Table.IsZero() {
		d.Selected = resp.Table.String()
	}
	if resp.Result != nil {
		d.Result = resultView(resp)
	}
}

func resultView(resp *console.Response) *ResultView {
	rs := resp.Result
	v := &ResultView{
		Columns: rs.Columns,
		Rows:    make([][]Cell, len(rs.Rows)),
	}
	for i, row := range rs.Rows {
		cells := make([]Cell, len(row))
		for j, val := range row {
			cells[j] = Cell{Text: val.Text, Null: val.IsNull()}
		}
		v.Rows[i] = cells
	}
	if resp.Deletable {
		v.DeleteTable = resp.Table.String()
		v.Snapshots = make([]string, len(rs.Rows))
		for i := range rs.Rows {
			v.Snapshots[i] = core.SnapshotRow(rs, i).Encode()
		}
	}
	return v
}

// remember stores the connection in the session cookie for the next GET.
func (h *Handlers) remember(w http.ResponseWriter, r *http.Request, d PageData) {
	if strings.TrimSpace(d.DBURL) == "" {
		return
	}
	sess, err := h.sessionStore.Get(r, SessionName)
	if err != nil && sess == nil {
		h.logger.Warn("failed to load session", slog.String("error", err.Error()))
		return
	}
	sess.Values[sessionKeyDBURL] = d.DBURL
	sess.Values[sessionKeySSLMode] = d.SSLMode
	if err := sess.Save(r, w); err != nil {
		h.logger.Warn("failed to save session", slog.String("error", err.Error()))
	}
}

func (h *Handlers) render(w http.ResponseWriter, r *http.Request, d PageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := Page(d).Render(r.Context(), w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
