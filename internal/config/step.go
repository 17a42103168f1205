package config

import (
	rkerrors "github.com/recordkit/recordkit/pkg/errors"
)

// StepKind names one reshaping operation.
type StepKind string

const (
	StepSort           StepKind = "sort"
	StepOrderBy        StepKind = "order_by"
	StepRecursiveSort  StepKind = "recursive_sort"
	StepSplitByKey     StepKind = "split_by_key"
	StepSplitByHash    StepKind = "split_by_hash"
	StepTopAndBottom   StepKind = "top_and_bottom"
	StepDigitToKey     StepKind = "digit_to_key"
	StepConvertColumns StepKind = "convert_columns"
	StepRemoveByValue  StepKind = "remove_by_value"
	StepRenameColumn   StepKind = "rename_column"
	StepMoveToSubarray StepKind = "move_to_subarray"
	StepMultiToSingle  StepKind = "multi_to_single"
	StepToMultiArray   StepKind = "to_multi_array"
	StepCheck          StepKind = "check"
)

// StepKinds lists every supported step kind.
var StepKinds = []StepKind{
	StepSort, StepOrderBy, StepRecursiveSort,
	StepSplitByKey, StepSplitByHash, StepTopAndBottom,
	StepDigitToKey, StepConvertColumns, StepRemoveByValue,
	StepRenameColumn, StepMoveToSubarray,
	StepMultiToSingle, StepToMultiArray,
	StepCheck,
}

// Terminal reports whether the step produces something other than a
// collection, so no further step can follow it.
func (k StepKind) Terminal() bool {
	switch k {
	case StepSplitByKey, StepSplitByHash, StepTopAndBottom, StepCheck:
		return true
	default:
		return false
	}
}

// Step is one operation of the pipeline. Which fields apply depends on Kind.
type Step struct {
	Kind StepKind `json:"kind" yaml:"kind" jsonschema:"enum=sort,enum=order_by,enum=recursive_sort,enum=split_by_key,enum=split_by_hash,enum=top_and_bottom,enum=digit_to_key,enum=convert_columns,enum=remove_by_value,enum=rename_column,enum=move_to_subarray,enum=multi_to_single,enum=to_multi_array,enum=check"`

	// Column is the column the step works on
	Column string `json:"column,omitempty" yaml:"column"`

	// Columns lists the columns of convert_columns
	Columns []string `json:"columns,omitempty" yaml:"columns"`

	// Clauses are order_by clauses such as "city" or "age desc"
	Clauses []string `json:"clauses,omitempty" yaml:"clauses"`

	// Desc reverses sort and recursive_sort
	Desc bool `json:"desc,omitempty" yaml:"desc"`

	// ByKey makes recursive_sort order by key instead of value
	ByKey bool `json:"by_key,omitempty" yaml:"by_key"`

	Limit  *int64 `json:"limit,omitempty" yaml:"limit"`
	Offset *int64 `json:"offset,omitempty" yaml:"offset"`

	// Keys restricts split_by_key to the listed partitions
	Keys []any `json:"keys,omitempty" yaml:"keys"`

	// KeepColumn keeps the split column in partitioned records
	KeepColumn bool `json:"keep_column,omitempty" yaml:"keep_column"`

	// CaseInsensitive folds partition keys
	CaseInsensitive bool `json:"case_insensitive,omitempty" yaml:"case_insensitive"`

	Buckets int `json:"buckets,omitempty" yaml:"buckets"`

	Rows int `json:"rows,omitempty" yaml:"rows"`

	// Unset drops the digit_to_key column from the rekeyed records
	Unset bool `json:"unset,omitempty" yaml:"unset"`

	// To is the target type of convert_columns
	To string `json:"to,omitempty" yaml:"to"`

	// Value is the value removed by remove_by_value
	Value any `json:"value,omitempty" yaml:"value"`

	// Rekey renumbers the collection after remove_by_value
	Rekey bool `json:"rekey,omitempty" yaml:"rekey"`

	// NewName is the target name of rename_column
	NewName string `json:"new_name,omitempty" yaml:"new_name"`

	// Path is the key path of move_to_subarray
	Path []string `json:"path,omitempty" yaml:"path"`

	// Names are the two column names of to_multi_array
	Names []string `json:"names,omitempty" yaml:"names"`

	EqualLength bool `json:"equal_length,omitempty" yaml:"equal_length"`
	AllScalar   bool `json:"all_scalar,omitempty" yaml:"all_scalar"`
}

// Validate checks that the parameters required by the step kind are set.
// Operation-level checks are left to the operations themselves.
func (s *Step) Validate() error {
	switch s.Kind {
	case StepSort, StepSplitByKey, StepDigitToKey:
		// Empty columns are rejected by split_by_key and digit_to_key
		// themselves; sort treats them as a no-op.
	case StepSplitByHash:
		if s.Column == "" {
			return rkerrors.InvalidInput("split_by_hash requires column")
		}
	case StepOrderBy:
		if len(s.Clauses) == 0 {
			return rkerrors.InvalidInput("order_by requires at least one clause")
		}
	case StepRecursiveSort, StepTopAndBottom, StepRemoveByValue, StepMultiToSingle, StepCheck:
	case StepConvertColumns:
		if s.To == "" {
			return rkerrors.InvalidInput("convert_columns requires to")
		}
	case StepRenameColumn:
		if s.Column == "" || s.NewName == "" {
			return rkerrors.InvalidInput("rename_column requires column and new_name")
		}
	case StepMoveToSubarray:
		if s.Column == "" || len(s.Path) == 0 {
			return rkerrors.InvalidInput("move_to_subarray requires column and path")
		}
	case StepToMultiArray:
		if len(s.Names) != 2 {
			return rkerrors.InvalidInput("to_multi_array requires exactly 2 names, got %d", len(s.Names))
		}
	default:
		return rkerrors.InvalidInput("unknown step kind: %q", s.Kind)
	}
	return nil
}
