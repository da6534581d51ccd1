package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leapstack-labs/sqlconsole/pkg/console"
	"github.com/leapstack-labs/sqlconsole/pkg/core"
	"gopkg.in/yaml.v3"
)

func renderResults(w io.Writer, rs *core.ResultSet, format string) error {
	if rs == nil {
		rs = &core.ResultSet{}
	}
	switch format {
	case "json":
		return renderJSON(w, rs)
	case "yaml":
		return renderYAML(w, rs)
	case "csv":
		return renderCSV(w, rs)
	case "md", "markdown":
		return renderMarkdown(w, rs)
	default:
		return renderTable(w, rs)
	}
}

func renderTable(w io.Writer, rs *core.ResultSet) error {
	if rs.Len() == 0 {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	// Header
	headerRow := make(table.Row, len(rs.Columns))
	for i, col := range rs.Columns {
		headerRow[i] = col
	}
	t.AppendHeader(headerRow)

	// Rows
	for _, values := range rs.Rows {
		row := make(table.Row, len(values))
		for i, v := range values {
			row[i] = v.Display()
		}
		t.AppendRow(row)
	}

	t.Render()
	_, _ = fmt.Fprintf(w, "(%d rows)\n", rs.Len())
	return nil
}

// renderJSON writes an array of objects whose keys keep the result column order.
func renderJSON(w io.Writer, rs *core.ResultSet) error {
	var buf bytes.Buffer
	buf.WriteString("[")
	for r, values := range rs.Rows {
		if r > 0 {
			buf.WriteString(",")
		}
		buf.WriteString("\n  {")
		for i, col := range rs.Columns {
			if i > 0 {
				buf.WriteString(", ")
			}
			key, err := json.Marshal(col)
			if err != nil {
				return err
			}
			val, err := json.Marshal(jsonValue(values[i]))
			if err != nil {
				return err
			}
			buf.Write(key)
			buf.WriteString(": ")
			buf.Write(val)
		}
		buf.WriteString("}")
	}
	if rs.Len() > 0 {
		buf.WriteString("\n")
	}
	buf.WriteString("]\n")
	_, err := w.Write(buf.Bytes())
	return err
}

func jsonValue(v core.Value) any {
	switch v.Kind {
	case core.KindNull:
		return nil
	case core.KindBool:
		return v.Raw
	case core.KindNumber:
		if json.Valid([]byte(v.Text)) {
			return json.Number(v.Text)
		}
		return v.Text
	default:
		return v.Text
	}
}

// renderYAML writes a sequence of mappings, keeping column order.
func renderYAML(w io.Writer, rs *core.ResultSet) error {
	doc := &yaml.Node{Kind: yaml.SequenceNode}
	for _, values := range rs.Rows {
		m := &yaml.Node{Kind: yaml.MappingNode}
		for i, col := range rs.Columns {
			m.Content = append(m.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: col},
				yamlValue(values[i]),
			)
		}
		doc.Content = append(doc.Content, m)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}

func yamlValue(v core.Value) *yaml.Node {
	switch v.Kind {
	case core.KindNull:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	case core.KindBool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: v.Text}
	case core.KindNumber:
		return &yaml.Node{Kind: yaml.ScalarNode, Value: v.Text}
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.Text}
	}
}

func renderCSV(w io.Writer, rs *core.ResultSet) error {
	// Header
	header := make([]string, len(rs.Columns))
	for i, col := range rs.Columns {
		header[i] = escapeCSV(col)
	}
	_, _ = fmt.Fprintln(w, strings.Join(header, ","))

	// Rows
	for _, row := range rs.Rows {
		values := make([]string, len(row))
		for i, v := range row {
			values[i] = escapeCSV(v.Display())
		}
		_, _ = fmt.Fprintln(w, strings.Join(values, ","))
	}
	return nil
}

func renderMarkdown(w io.Writer, rs *core.ResultSet) error {
	if rs.Len() == 0 {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return nil
	}

	// Header
	_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(rs.Columns, " | "))
	// Separator
	seps := make([]string, len(rs.Columns))
	for i := range seps {
		seps[i] = "---"
	}
	_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(seps, " | "))

	// Rows
	for _, row := range rs.Rows {
		values := make([]string, len(row))
		for i, v := range row {
			values[i] = strings.ReplaceAll(v.Display(), "|", `\|`)
		}
		_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(values, " | "))
	}
	return nil
}

func escapeCSV(s string) string {
	if strings.ContainsAny(s, ",\"\n") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}

// textResult builds a result set of plain text cells, for rendering
// non-query listings through the same formats.
func textResult(columns []string, rows [][]string) *core.ResultSet {
	rs := &core.ResultSet{Columns: columns, Rows: make([][]core.Value, 0, len(rows))}
	for _, row := range rows {
		values := make([]core.Value, len(row))
		for i, s := range row {
			values[i] = core.Value{Kind: core.KindText, Raw: s, Text: s}
		}
		rs.Rows = append(rs.Rows, values)
	}
	return rs
}

func catalogResult(cat *console.Catalog) *core.ResultSet {
	rows := make([][]string, 0, cat.Len())
	if cat == nil {
		return textResult([]string{"schema", "table"}, rows)
	}
	for _, t := range cat.Tables {
		rows = append(rows, []string{t.Schema, t.Name})
	}
	return textResult([]string{"schema", "table"}, rows)
}
