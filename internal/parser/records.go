// Package parser provides structured-record parsing and schema derivation for the route datasets
package parser

import (
	"bufio"
	"bytes"
	"database/sql"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"

	"route-manager/internal/models"
)

// TrimRule describes the formatting noise stripped from one source.
// Leading whitespace is removed from column names when Columns is set,
// and from the values of every column listed in Values.
type TrimRule struct {
	Columns bool
	Values  []string
}

// trimsValue reports whether values of column are left-trimmed
func (r TrimRule) trimsValue(column string) bool {
	for _, c := range r.Values {
		if c == column {
			return true
		}
	}
	return false
}

// LoadRecords reads a structured-record file into a table.
// The first line of the file is a marker and is never interpreted as data.
func LoadRecords(filePath, tableName string, rule TrimRule) (*models.Table, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open records file: %w", err)
	}
	defer file.Close()

	table, err := ParseRecords(file, tableName, rule)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filePath, err)
	}
	return table, nil
}

// ParseRecords skips the first line of r and decodes the remainder as a YAML
// sequence of mappings. Columns appear in the order they are first seen.
func ParseRecords(r io.Reader, tableName string, rule TrimRule) (*models.Table, error) {
	body, err := skipMarkerLine(r)
	if err != nil {
		return nil, err
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("invalid record content: %w", err)
	}

	table := &models.Table{Name: tableName}

	// An empty document has no content node
	if len(doc.Content) == 0 {
		return table, nil
	}

	seq := doc.Content[0]
	if seq.Kind == yaml.ScalarNode && seq.Tag == "!!null" {
		return table, nil
	}
	if seq.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("expected a sequence of records at line %d", seq.Line)
	}

	positions := make(map[string]int)
	var pending []map[string]sql.NullString

	for _, item := range seq.Content {
		record, err := decodeRecord(item, rule)
		if err != nil {
			return nil, err
		}

		values := make(map[string]sql.NullString, len(record))
		for _, field := range record {
			if _, seen := positions[field.name]; !seen {
				positions[field.name] = len(table.Columns)
				table.Columns = append(table.Columns, field.name)
			}
			values[field.name] = field.value
		}
		pending = append(pending, values)
	}

	table.Rows = make([][]sql.NullString, len(pending))
	for i, values := range pending {
		row := make([]sql.NullString, len(table.Columns))
		for name, value := range values {
			row[positions[name]] = value
		}
		table.Rows[i] = row
	}

	return table, nil
}

type field struct {
	name  string
	value sql.NullString
}

// decodeRecord converts one mapping node into ordered fields with the trim rule applied
func decodeRecord(node *yaml.Node, rule TrimRule) ([]field, error) {
	if node.Kind == yaml.AliasNode {
		node = node.Alias
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("expected a mapping at line %d", node.Line)
	}

	fields := make([]field, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		name := node.Content[i].Value
		if rule.Columns {
			name = strings.TrimLeftFunc(name, unicode.IsSpace)
		}

		var raw interface{}
		if err := node.Content[i+1].Decode(&raw); err != nil {
			return nil, fmt.Errorf("invalid value for %q at line %d: %w", name, node.Content[i+1].Line, err)
		}

		text, ok := scalarText(raw)
		if ok && rule.trimsValue(name) {
			text = strings.TrimLeftFunc(text, unicode.IsSpace)
		}
		fields = append(fields, field{name: name, value: sql.NullString{String: text, Valid: ok}})
	}
	return fields, nil
}

// skipMarkerLine drops everything up to and including the first newline
func skipMarkerLine(r io.Reader) ([]byte, error) {
	reader := bufio.NewReader(r)
	if _, err := reader.ReadBytes('\n'); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read marker line: %w", err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(reader); err != nil {
		return nil, fmt.Errorf("failed to read records: %w", err)
	}
	return buf.Bytes(), nil
}

// scalarText converts a decoded YAML value to its text form.
// The second result is false for null values.
func scalarText(v interface{}) (string, bool) {
	switch val := v.(type) {
	case nil:
		return "", false
	case string:
		return val, true
	case int:
		return strconv.Itoa(val), true
	case int64:
		return strconv.FormatInt(val, 10), true
	case uint64:
		return strconv.FormatUint(val, 10), true
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(val), true
	default:
		return fmt.Sprint(val), true
	}
}
