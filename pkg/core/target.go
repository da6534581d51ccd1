package core

import (
	"net/url"
	"strings"
)

// ConnectionTarget is the resolved form of a user supplied database URL.
type ConnectionTarget struct {
	// RawURL is the URL exactly as supplied.
	RawURL string
	// SSLMode is the effective SSL mode after applying precedence rules.
	SSLMode string
	// SSLRequired is true when SSLMode demands an encrypted transport.
	SSLRequired bool
	// DSN is RawURL with the query string removed.
	DSN string
	// Scheme is the lower-cased URL scheme used to pick an engine adapter.
	Scheme string
}

// Redacted returns the DSN with any password replaced by "xxxxx".
// DSNs that do not parse as URLs are returned unchanged.
func (t ConnectionTarget) Redacted() string {
	if !strings.Contains(t.DSN, "://") {
		return t.DSN
	}
	u, err := url.Parse(t.DSN)
	if err != nil {
		return t.DSN
	}
	return u.Redacted()
}
