package duckdb

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

// Params holds DuckDB-specific settings taken from the URL query string,
// e.g. duckdb:///data/warehouse.duckdb?access_mode=read_only&threads=4.
type Params struct {
	// AccessMode is "automatic", "read_only" or "read_write".
	AccessMode string `mapstructure:"access_mode"`

	// Threads limits DuckDB's worker threads (0 = engine default).
	Threads int `mapstructure:"threads"`

	// MemoryLimit, e.g. "4GB".
	MemoryLimit string `mapstructure:"memory_limit"`

	// Settings holds any other configuration option passed through verbatim.
	Settings map[string]string `mapstructure:",remain"`
}

// ParseParams decodes URL query values into Params. sslmode is ignored.
func ParseParams(values url.Values) (*Params, error) {
	input := make(map[string]any, len(values))
	for k := range values {
		if strings.EqualFold(k, "sslmode") {
			continue
		}
		input[strings.ToLower(k)] = values.Get(k)
	}

	var p Params
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &p,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(input); err != nil {
		return nil, fmt.Errorf("invalid duckdb parameters: %w", err)
	}
	return &p, nil
}

// Encode renders the params as a go-duckdb DSN query string, sorted by key.
func (p *Params) Encode() string {
	values := url.Values{}
	if p.AccessMode != "" {
		values.Set("access_mode", p.AccessMode)
	}
	if p.Threads > 0 {
		values.Set("threads", fmt.Sprint(p.Threads))
	}
	if p.MemoryLimit != "" {
		values.Set("memory_limit", p.MemoryLimit)
	}
	keys := make([]string, 0, len(p.Settings))
	for k := range p.Settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		values.Set(k, p.Settings[k])
	}
	return values.Encode()
}
