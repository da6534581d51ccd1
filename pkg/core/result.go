package core

import (
	"encoding/hex"
	"strconv"
	"strings"
	"time"
)

// Kind classifies a result cell.
type Kind int

const (
	// KindNull is SQL NULL.
	KindNull Kind = iota
	// KindText is character data.
	KindText
	// KindNumber is any integer, float or decimal value.
	KindNumber
	// KindBool is a boolean.
	KindBool
	// KindOpaque is anything else (timestamps, bytes, engine specific types).
	KindOpaque
)

// String returns the string representation of Kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindText:
		return "text"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindOpaque:
		return "opaque"
	default:
		return "unknown"
	}
}

// Value is a single result cell. Raw keeps the driver value, Text is the
// textual projection used for display and for row snapshots.
type Value struct {
	Kind Kind
	Raw  any
	Text string
}

// Null is the NULL value. Its text projection is empty.
var Null = Value{Kind: KindNull}

// IsNull reports whether v is SQL NULL.
func (v Value) IsNull() bool {
	return v.Kind == KindNull
}

// Display returns the text shown to an operator; NULL renders as "NULL".
func (v Value) Display() string {
	if v.IsNull() {
		return "NULL"
	}
	return v.Text
}

// NewValue converts a value scanned by database/sql into a Value.
// dbType is the engine type name reported by the driver and may be empty.
func NewValue(raw any, dbType string) Value {
	switch x := raw.(type) {
	case nil:
		return Null
	case string:
		if isNumericType(dbType) {
			return Value{Kind: KindNumber, Raw: x, Text: x}
		}
		return Value{Kind: KindText, Raw: x, Text: x}
	case []byte:
		if isBinaryType(dbType) {
			return Value{Kind: KindOpaque, Raw: x, Text: `\x` + hex.EncodeToString(x)}
		}
		s := string(x)
		if isNumericType(dbType) {
			return Value{Kind: KindNumber, Raw: s, Text: s}
		}
		return Value{Kind: KindText, Raw: s, Text: s}
	case bool:
		return Value{Kind: KindBool, Raw: x, Text: strconv.FormatBool(x)}
	case int64:
		return Value{Kind: KindNumber, Raw: x, Text: strconv.FormatInt(x, 10)}
	case int32:
		return Value{Kind: KindNumber, Raw: x, Text: strconv.FormatInt(int64(x), 10)}
	case int:
		return Value{Kind: KindNumber, Raw: x, Text: strconv.Itoa(x)}
	case uint64:
		return Value{Kind: KindNumber, Raw: x, Text: strconv.FormatUint(x, 10)}
	case float64:
		return Value{Kind: KindNumber, Raw: x, Text: strconv.FormatFloat(x, 'g', -1, 64)}
	case float32:
		return Value{Kind: KindNumber, Raw: x, Text: strconv.FormatFloat(float64(x), 'g', -1, 32)}
	case time.Time:
		return Value{Kind: KindOpaque, Raw: x, Text: formatTime(x, dbType)}
	default:
		return Value{Kind: KindOpaque, Raw: x, Text: fmtAny(x)}
	}
}

func isNumericType(dbType string) bool {
	switch strings.ToUpper(dbType) {
	case "NUMERIC", "DECIMAL", "INT2", "INT4", "INT8", "INT", "INTEGER", "BIGINT",
		"SMALLINT", "TINYINT", "MEDIUMINT", "FLOAT", "FLOAT4", "FLOAT8", "DOUBLE",
		"REAL", "HUGEINT", "UNSIGNED BIGINT", "UNSIGNED INT":
		return true
	}
	return false
}

func isBinaryType(dbType string) bool {
	switch strings.ToUpper(dbType) {
	case "BYTEA", "BLOB", "BINARY", "VARBINARY", "LONGBLOB", "MEDIUMBLOB", "TINYBLOB":
		return true
	}
	return false
}

// formatTime renders times the way the engines print them as text, so that
// snapshots captured from a browse compare equal under a text cast.
func formatTime(t time.Time, dbType string) string {
	switch strings.ToUpper(dbType) {
	case "DATE":
		return t.Format("2006-01-02")
	case "TIME":
		return t.Format("15:04:05.999999")
	case "TIMESTAMP", "DATETIME":
		return t.Format("2006-01-02 15:04:05.999999")
	default:
		return t.Format("2006-01-02 15:04:05.999999-07")
	}
}
