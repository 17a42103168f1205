package source

import (
	"encoding/binary"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/LindsayBradford/go-dbf/godbf"

	rkerrors "github.com/recordkit/recordkit/pkg/errors"
	"github.com/recordkit/recordkit/pkg/types"
)

func init() {
	RegisterFormat("dbf", decodeDBF)
}

// dbfCharset is the charset name handed to the table decoder.
const dbfCharset = "UTF8"

// decodeDBF reads a dBase III table. Each record carries its fields by name
// plus a "deleted" field: 1 for records flagged as deleted, 0 otherwise.
func decodeDBF(r io.Reader) (*types.Collection, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read dbf: %w", err)
	}
	if err := checkDBFLength(data); err != nil {
		return nil, err
	}

	table, err := godbf.NewFromByteArray(data, dbfCharset)
	if err != nil {
		return nil, fmt.Errorf("parse dbf: %w", err)
	}

	fields := table.Fields()
	out := types.New()
	for row := 0; row < table.NumberOfRecords(); row++ {
		rec := make(types.Record, len(fields)+1)
		deleted := int64(0)
		if table.RowIsDeleted(row) {
			deleted = 1
		}
		rec["deleted"] = deleted
		for col, f := range fields {
			rec[f.Name()] = dbfValue(byte(f.FieldType()), int(f.DecimalPlaces()), table.FieldValue(row, col))
		}
		out.Append(rec)
	}
	return out, nil
}

// checkDBFLength rejects tables whose header declares more records than the
// data holds, before the table decoder slices into them.
func checkDBFLength(data []byte) error {
	if len(data) < 12 {
		return fmt.Errorf("dbf header truncated: %d bytes", len(data))
	}
	declared := int(binary.LittleEndian.Uint32(data[4:8]))
	headerLen := int(binary.LittleEndian.Uint16(data[8:10]))
	recordLen := int(binary.LittleEndian.Uint16(data[10:12]))
	if headerLen < 33 || recordLen < 1 || len(data) < headerLen {
		return fmt.Errorf("invalid dbf header: header length %d, record length %d", headerLen, recordLen)
	}
	if available := (len(data) - headerLen) / recordLen; available < declared {
		return rkerrors.NewSourceError(rkerrors.CodeReadFailure,
			fmt.Sprintf("dbf declares %d records, only %d could be read", declared, available), io.ErrUnexpectedEOF)
	}
	return nil
}

// dbfValue types a raw field value: numbers become int64 or float64, logicals
// become bool, blanks become nil and everything else stays a string.
func dbfValue(kind byte, decimals int, raw string) any {
	switch kind {
	case 'N', 'F':
		s := strings.TrimSpace(raw)
		if s == "" {
			return nil
		}
		if decimals == 0 {
			if n, err := strconv.ParseInt(s, 10, 64); err == nil {
				return n
			}
		}
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			return v
		}
		return s
	case 'L':
		switch strings.TrimSpace(raw) {
		case "T", "t", "Y", "y":
			return true
		case "F", "f", "N", "n":
			return false
		default:
			return nil
		}
	default:
		return strings.TrimRight(raw, " \x00")
	}
}
