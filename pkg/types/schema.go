package types

import "sort"

// Value type names reported by TypeName and ColumnDef.Type.
const (
	TypeNull    = "null"
	TypeBool    = "bool"
	TypeInt     = "int"
	TypeFloat   = "float"
	TypeString  = "string"
	TypeNested  = "nested"
	TypeMixed   = "mixed"
	TypeUnknown = "unknown"
)

// Schema describes the columns observed across the records of a collection.
type Schema struct {
	// Rows is the number of record entries inspected
	Rows int `json:"rows"`

	// Columns lists every column seen, ordered by name
	Columns []ColumnDef `json:"columns"`
}

// ColumnDef describes a single column of a Schema.
type ColumnDef struct {
	// Name is the column name
	Name string `json:"name"`

	// Type is the value type shared by all non-null values, or "mixed"
	Type string `json:"type"`

	// Nullable indicates whether any record holds nil for the column
	Nullable bool `json:"nullable"`

	// Present counts the records carrying the column
	Present int `json:"present"`
}

// TypeName returns the value type name of v.
func TypeName(v any) string {
	switch v.(type) {
	case nil:
		return TypeNull
	case bool:
		return TypeBool
	case float32, float64:
		return TypeFloat
	case string:
		return TypeString
	}
	if IsInteger(v) {
		return TypeInt
	}
	if IsNested(v) {
		return TypeNested
	}
	return TypeUnknown
}

// InferSchema inspects every record of c. Entries that are not records are skipped.
func InferSchema(c *Collection) Schema {
	defs := make(map[string]*ColumnDef)
	rows := 0
	c.Range(func(_ Key, v any) bool {
		r, ok := AsRecord(v)
		if !ok {
			return true
		}
		rows++
		for col, val := range r {
			def, ok := defs[col]
			if !ok {
				def = &ColumnDef{Name: col}
				defs[col] = def
			}
			def.Present++
			typ := TypeName(val)
			switch {
			case typ == TypeNull:
				def.Nullable = true
			case def.Type == "":
				def.Type = typ
			case def.Type != typ:
				def.Type = TypeMixed
			}
		}
		return true
	})

	schema := Schema{Rows: rows, Columns: make([]ColumnDef, 0, len(defs))}
	for _, def := range defs {
		if def.Type == "" {
			def.Type = TypeNull
		}
		schema.Columns = append(schema.Columns, *def)
	}
	sort.Slice(schema.Columns, func(i, j int) bool {
		return schema.Columns[i].Name < schema.Columns[j].Name
	})
	return schema
}

// ColumnNames returns the schema's column names in order.
func (s *Schema) ColumnNames() []string {
	names := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		names[i] = c.Name
	}
	return names
}
