package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/recordkit/recordkit/pkg/types"
)

func init() {
	RegisterFormat("csv", decodeDelimited(','))
	RegisterFormat("tsv", decodeDelimited('\t'))
}

// decodeDelimited reads delimited text whose first row names the columns.
// Cells stay strings, the way SQL drivers hand back text columns; use
// edit.ColumnsConversion to type them.
func decodeDelimited(comma rune) Decoder {
	return func(r io.Reader) (*types.Collection, error) {
		reader := csv.NewReader(r)
		reader.Comma = comma
		reader.LazyQuotes = true
		reader.TrimLeadingSpace = true

		header, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return types.New(), nil
		}
		if err != nil {
			return nil, fmt.Errorf("read header: %w", err)
		}
		for i, h := range header {
			if h == "" {
				header[i] = fmt.Sprintf("col_%d", i+1)
			}
		}

		out := types.New()
		for {
			row, err := reader.Read()
			if errors.Is(err, io.EOF) {
				return out, nil
			}
			if err != nil {
				return nil, fmt.Errorf("read row %d: %w", out.Len()+1, err)
			}
			rec := make(types.Record, len(header))
			for i, h := range header {
				rec[h] = row[i]
			}
			out.Append(rec)
		}
	}
}
