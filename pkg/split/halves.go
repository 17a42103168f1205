package split

import (
	rkerrors "github.com/recordkit/recordkit/pkg/errors"
	"github.com/recordkit/recordkit/pkg/types"
)

// Halves holds the first and last rows of a collection.
type Halves struct {
	// Top holds the first rows in original order.
	Top *types.Collection `json:"top"`

	// Bottom holds the last rows in reverse order, so Bottom's first entry
	// is the collection's last.
	Bottom *types.Collection `json:"bottom"`
}

// TopAndBottom splits c into its first and last rows entries, giving a
// "top N" view and its counterpart from one result set.
//
// When rows <= 0 or c holds fewer than 2*rows entries, rows becomes
// len(c)/2; with an odd length the middle entry belongs to neither half.
// Integer keys are renumbered within each half; string keys are kept.
func TopAndBottom(c *types.Collection, rows int) (*Halves, error) {
	n := c.Len()
	switch n {
	case 0:
		return nil, rkerrors.InvalidInput("split: empty collection provided to TopAndBottom")
	case 1:
		return nil, rkerrors.MalformedInput("split: collection provided to TopAndBottom contains only 1 element")
	}
	if rows <= 0 || rows > n/2 {
		rows = n / 2
	}

	entries := c.Entries()
	bottom := make([]types.Entry, 0, rows)
	for i := n - 1; i >= n-rows; i-- {
		bottom = append(bottom, entries[i])
	}
	return &Halves{
		Top:    renumber(entries[:rows]),
		Bottom: renumber(bottom),
	}, nil
}

func renumber(entries []types.Entry) *types.Collection {
	out := types.New()
	for _, e := range entries {
		if e.Key.IsInt() {
			out.Append(e.Value)
		} else {
			out.Set(e.Key, e.Value)
		}
	}
	return out
}
