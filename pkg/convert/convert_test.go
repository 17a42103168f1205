package convert

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rkerrors "github.com/recordkit/recordkit/pkg/errors"
	"github.com/recordkit/recordkit/pkg/types"
)

func TestMultiToSingle(t *testing.T) {
	c := types.New()
	c.Set("x", types.Record{"id": int64(1), "name": "a"})
	c.Set("y", types.Record{"id": int64(2), "name": "b"})

	out, err := MultiToSingle(c, "name")
	require.NoError(t, err)
	assert.Equal(t, []types.Key{"x", "y"}, out.Keys())
	assert.Equal(t, []any{"a", "b"}, out.Values())
}

func TestMultiToSingle_BlankColumn(t *testing.T) {
	for _, col := range []string{"", "  ", "\t"} {
		out, err := MultiToSingle(types.FromRecords([]types.Record{{"a": 1}}), col)
		require.NoError(t, err)
		assert.Equal(t, 0, out.Len())
	}
}

func TestMultiToSingle_MissingColumn(t *testing.T) {
	c := types.FromRecords([]types.Record{{"a": 1}, {"b": 2}})
	_, err := MultiToSingle(c, "a")
	assert.True(t, errors.Is(err, rkerrors.ErrMissingField), "got %v", err)
}

func TestToMultiArray(t *testing.T) {
	c := types.New()
	c.Set("en", "English")
	c.Append("Norsk")

	out, err := ToMultiArray(c, []string{"code", "label"})
	require.NoError(t, err)
	require.Equal(t, 2, out.Len())
	assert.Equal(t, types.Record{"code": "en", "label": "English"}, out.At(0).Value)
	assert.Equal(t, types.Record{"code": int64(0), "label": "Norsk"}, out.At(1).Value)
}

func TestToMultiArray_Names(t *testing.T) {
	c := types.FromValues("a")
	for _, names := range [][]string{nil, {"k"}, {"k", "v", "x"}, {"k", "k"}} {
		_, err := ToMultiArray(c, names)
		assert.True(t, errors.Is(err, rkerrors.ErrInvalidInput), "names %v: got %v", names, err)
	}
}

type attrs []Attribute

func (a attrs) Attributes() []Attribute { return a }

func TestAttributesToRecord(t *testing.T) {
	node := attrs{{"id", "7"}, {"title", ""}}

	r := AttributesToRecord(node, true, []string{"id", "lang"})
	assert.Equal(t, types.Record{"id": "7", "title": nil, "lang": nil}, r)

	r = AttributesToRecord(node, false, []string{"lang"})
	assert.Equal(t, types.Record{"id": "7", "title": "", "lang": ""}, r)
}

func TestXMLElements(t *testing.T) {
	doc := `<feed>
  <entry id="1" title="first"/>
  <entry id="2" title=""><entry id="3" title="nested"/></entry>
  <other id="9"/>
</feed>`

	c, err := XMLElements(strings.NewReader(doc), "entry", true, []string{"author"})
	require.NoError(t, err)
	require.Equal(t, 3, c.Len())
	assert.Equal(t, types.Record{"id": "1", "title": "first", "author": nil}, c.At(0).Value)
	assert.Equal(t, types.Record{"id": "2", "title": nil, "author": nil}, c.At(1).Value)
	assert.Equal(t, "nested", c.At(2).Value.(types.Record)["title"])
}

func TestXMLElements_Malformed(t *testing.T) {
	_, err := XMLElements(strings.NewReader(`<feed><entry id="1">`), "entry", true, nil)
	assert.True(t, errors.Is(err, rkerrors.ErrMalformedInput), "got %v", err)
}
