package source

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/recordkit/recordkit/pkg/types"
)

func init() {
	RegisterFormat("json", decodeJSON)
	RegisterFormat("jsonl", decodeJSONLines)
	RegisterFormat("ndjson", decodeJSONLines)
}

// decodeJSON reads one JSON array or object. Object members keep their
// document order as collection keys.
func decodeJSON(r io.Reader) (*types.Collection, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return types.DecodeCollection(dec)
}

// decodeJSONLines reads one JSON value per line; blank lines are skipped.
func decodeJSONLines(r io.Reader) (*types.Collection, error) {
	out := types.New()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		b := bytes.TrimSpace(scanner.Bytes())
		if len(b) == 0 {
			continue
		}
		dec := json.NewDecoder(bytes.NewReader(b))
		dec.UseNumber()
		var v any
		if err := dec.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out.Append(types.FromJSONValue(v))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
