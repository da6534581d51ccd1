package adapter

import (
	"net/url"
	"strings"

	"github.com/leapstack-labs/sqlconsole/pkg/core"
)

// DefaultSSLMode applies when neither the form nor the URL names a mode.
const DefaultSSLMode = "disable"

// DefaultScheme is assumed for DSNs without a scheme, such as libpq
// keyword/value strings.
const DefaultScheme = "postgres"

var sslRequiredModes = map[string]struct{}{
	"require":     {},
	"verify-full": {},
	"verify-ca":   {},
}

// Resolve turns a raw URL and an optional explicit SSL mode into a
// ConnectionTarget. An explicit mode beats the URL's sslmode parameter,
// which beats DefaultSSLMode. Resolve never fails: an unparsable query
// string counts as empty.
func Resolve(rawURL, sslMode string) core.ConnectionTarget {
	dsn, rawQuery, _ := strings.Cut(rawURL, "?")

	params, err := url.ParseQuery(rawQuery)
	if err != nil {
		params = url.Values{}
	}

	mode := strings.TrimSpace(sslMode)
	if mode == "" {
		mode = strings.TrimSpace(params.Get("sslmode"))
	}
	if mode == "" {
		mode = DefaultSSLMode
	}
	_, required := sslRequiredModes[strings.ToLower(mode)]

	return core.ConnectionTarget{
		RawURL:      rawURL,
		SSLMode:     mode,
		SSLRequired: required,
		DSN:         dsn,
		Scheme:      schemeOf(dsn),
	}
}

func schemeOf(dsn string) string {
	if scheme, _, ok := strings.Cut(dsn, "://"); ok && scheme != "" {
		return strings.ToLower(scheme)
	}
	if len(dsn) >= 5 && strings.EqualFold(dsn[:5], "file:") {
		return "file"
	}
	return DefaultScheme
}
