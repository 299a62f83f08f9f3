package fetcher

import (
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// ErrSourceNotFound is returned when a required source file does not exist.
var ErrSourceNotFound = eris.New("source file not found")

const (
	headerSentinel = "STT"
	skipSentinel   = "CAT"
)

// Column is one entry of a column mapping: either a single field, or a named
// group spanning one column per sub-field.
type Column struct {
	Name string
	Sub  []string
}

// Col maps one column to a field.
func Col(name string) Column {
	return Column{Name: name}
}

// GroupCol maps len(sub) consecutive columns into the named group.
func GroupCol(name string, sub ...string) Column {
	return Column{Name: name, Sub: sub}
}

// Cols maps consecutive columns to the given fields.
func Cols(names ...string) []Column {
	cols := make([]Column, len(names))
	for i, n := range names {
		cols[i] = Col(n)
	}
	return cols
}

// Record is one mapped data row.
type Record struct {
	Values map[string]string
	Groups map[string]map[string]string
}

// Get returns a scalar field, empty when absent.
func (r Record) Get(name string) string {
	return r.Values[name]
}

// Group returns a grouped field's sub-values.
func (r Record) Group(name string) map[string]string {
	return r.Groups[name]
}

// MapRows applies mapping to rows of a sheet.
//
// The header row is the first row with a cell containing "STT". Mapping
// starts at the column after it, skipping one more column when that header
// reads "CAT". Data starts headerOffset rows below the header. Rows whose
// mapped values are all blank are dropped.
func MapRows(rows [][]string, mapping []Column, headerOffset int) []Record {
	if len(rows) == 0 {
		return nil
	}
	if headerOffset < 1 {
		headerOffset = 1
	}

	headerIdx, startCol := findHeader(rows)
	if headerIdx < 0 {
		zap.L().Debug("fetcher: header sentinel not found, mapping from first column")
		headerIdx, startCol = 0, 0
	} else if startCol < len(rows[headerIdx]) && strings.ToUpper(strings.TrimSpace(rows[headerIdx][startCol])) == skipSentinel {
		startCol++
	}

	var out []Record
	for i := headerIdx + headerOffset; i < len(rows); i++ {
		rec, ok := mapRow(rows[i], mapping, startCol)
		if ok {
			out = append(out, rec)
		}
	}
	return out
}

func findHeader(rows [][]string) (row, startCol int) {
	for i, r := range rows {
		for j, cell := range r {
			if strings.Contains(strings.ToUpper(strings.TrimSpace(cell)), headerSentinel) {
				return i, j + 1
			}
		}
	}
	return -1, 0
}

func mapRow(row []string, mapping []Column, col int) (Record, bool) {
	rec := Record{Values: make(map[string]string), Groups: make(map[string]map[string]string)}
	hasData := false

	cell := func() string {
		var v string
		if col < len(row) {
			v = strings.TrimSpace(row[col])
		}
		col++
		if v != "" {
			hasData = true
		}
		return v
	}

	for _, c := range mapping {
		if len(c.Sub) == 0 {
			rec.Values[c.Name] = cell()
			continue
		}
		g := make(map[string]string, len(c.Sub))
		for _, sub := range c.Sub {
			g[sub] = cell()
		}
		rec.Groups[c.Name] = g
	}

	return rec, hasData
}

// ReadMapped reads every sheet of an XLSX file and maps each one. A missing
// file wraps ErrSourceNotFound.
func ReadMapped(path string, mapping []Column, headerOffset int) ([]Record, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, eris.Wrapf(ErrSourceNotFound, "fetcher: %s", path)
		}
		return nil, eris.Wrapf(err, "fetcher: stat %s", path)
	}

	zap.L().Info("reading source", zap.String("path", path))

	sheets, err := ReadAllSheets(path)
	if err != nil {
		return nil, err
	}

	var out []Record
	for _, rows := range sheets {
		out = append(out, MapRows(rows, mapping, headerOffset)...)
	}
	return out, nil
}
