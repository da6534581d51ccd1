package core

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

// SnapshotField is one captured (column, text) pair.
type SnapshotField struct {
	Column string
	Text   string
}

// RowSnapshot is the ordered column to text mapping captured from a displayed
// row. It is the sole means of addressing a row for deletion.
type RowSnapshot []SnapshotField

// SnapshotRow captures row i of rs. NULL cells are captured as "". When a
// column name repeats, the first position is kept and the last value wins.
func SnapshotRow(rs *ResultSet, i int) RowSnapshot {
	if rs == nil || i < 0 || i >= len(rs.Rows) {
		return nil
	}
	row := rs.Rows[i]
	snap := make(RowSnapshot, 0, len(rs.Columns))
	for c, col := range rs.Columns {
		text := ""
		if c < len(row) {
			text = row[c].Text
		}
		snap = snap.with(col, text)
	}
	return snap
}

func (s RowSnapshot) with(column, text string) RowSnapshot {
	for i := range s {
		if s[i].Column == column {
			s[i].Text = text
			return s
		}
	}
	return append(s, SnapshotField{Column: column, Text: text})
}

// Encode renders the snapshot as a flat JSON object that keeps column order.
func (s RowSnapshot) Encode() string {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, _ := json.Marshal(f.Column)
		v, _ := json.Marshal(f.Text)
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.String()
}

// DecodeSnapshot parses an encoded snapshot. Anything other than a JSON
// object is rejected with a DecodeError. Non-string values use their JSON
// text and null decodes to "".
func DecodeSnapshot(payload string) (RowSnapshot, error) {
	if !gjson.Valid(payload) {
		return nil, &DecodeError{Msg: "payload is not valid JSON"}
	}
	parsed := gjson.Parse(payload)
	if !parsed.IsObject() {
		return nil, &DecodeError{Msg: fmt.Sprintf("expected a JSON object, got %s", parsed.Type)}
	}

	snap := RowSnapshot{}
	parsed.ForEach(func(key, value gjson.Result) bool {
		var text string
		switch value.Type {
		case gjson.Null:
			text = ""
		case gjson.String:
			text = value.Str
		default:
			text = value.Raw
		}
		snap = snap.with(key.String(), text)
		return true
	})
	return snap, nil
}
