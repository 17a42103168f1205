package convert

import (
	"encoding/xml"
	"errors"
	"io"

	rkerrors "github.com/recordkit/recordkit/pkg/errors"
	"github.com/recordkit/recordkit/pkg/types"
)

// Attribute is one named textual value of a markup node.
type Attribute struct {
	Name  string
	Value string
}

// AttributeSource is implemented by nodes exposing a set of attributes.
type AttributeSource interface {
	Attributes() []Attribute
}

// AttributesToRecord flattens the attributes of node into a record.
//
// With nullifyEmpty an empty attribute value becomes nil. Every name in extra
// that the node lacks is added as nil, or as "" without nullifyEmpty, so
// records built from heterogeneous nodes share one set of columns.
func AttributesToRecord(node AttributeSource, nullifyEmpty bool, extra []string) types.Record {
	attrs := node.Attributes()
	r := make(types.Record, len(attrs)+len(extra))
	for _, a := range attrs {
		if nullifyEmpty && a.Value == "" {
			r[a.Name] = nil
		} else {
			r[a.Name] = a.Value
		}
	}
	for _, name := range extra {
		if r.Has(name) {
			continue
		}
		if nullifyEmpty {
			r[name] = nil
		} else {
			r[name] = ""
		}
	}
	return r
}

// XMLNode adapts an XML start element to AttributeSource. Attribute names
// use their local part.
type XMLNode xml.StartElement

func (n XMLNode) Attributes() []Attribute {
	out := make([]Attribute, len(n.Attr))
	for i, a := range n.Attr {
		out[i] = Attribute{Name: a.Name.Local, Value: a.Value}
	}
	return out
}

// XMLElements decodes every element named name (local part) from an XML
// document into an indexed collection of attribute records.
func XMLElements(r io.Reader, name string, nullifyEmpty bool, extra []string) (*types.Collection, error) {
	if name == "" {
		return nil, rkerrors.InvalidInput("convert: empty element name")
	}
	out := types.New()
	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, rkerrors.Wrap(rkerrors.ErrCategoryValidation, rkerrors.CodeMalformedInput, "convert: decode xml", err)
		}
		if se, ok := tok.(xml.StartElement); ok && se.Name.Local == name {
			out.Append(AttributesToRecord(XMLNode(se), nullifyEmpty, extra))
		}
	}
}
