// Package fetcher reads the tabular and JSON sources feeding a reconciliation
// run: XLSX exports with sniffed header rows, delimited text and JSON arrays.
package fetcher

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/rotisserie/eris"
)

// DelimitedOptions configures the delimited text parser.
type DelimitedOptions struct {
	Delimiter rune // default ','
	MinFields int  // rows with fewer fields are dropped
	TrimSpace bool
}

// ReadDelimited parses delimited text. Quotes are treated leniently since
// hand-maintained address lists contain stray quote marks. Blank lines are
// skipped.
func ReadDelimited(r io.Reader, opts DelimitedOptions) ([][]string, error) {
	reader := csv.NewReader(r)
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1 // allow variable fields

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			return nil, eris.Wrap(err, "csv: read row")
		}

		if opts.TrimSpace {
			for i, field := range record {
				record[i] = strings.TrimSpace(field)
			}
		}
		if len(record) < opts.MinFields {
			continue
		}

		rows = append(rows, record)
	}
}
