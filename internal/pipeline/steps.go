package pipeline

import (
	"fmt"
	"math"

	"github.com/recordkit/recordkit/internal/config"
	"github.com/recordkit/recordkit/pkg/check"
	"github.com/recordkit/recordkit/pkg/convert"
	"github.com/recordkit/recordkit/pkg/edit"
	rkerrors "github.com/recordkit/recordkit/pkg/errors"
	"github.com/recordkit/recordkit/pkg/order"
	"github.com/recordkit/recordkit/pkg/split"
	"github.com/recordkit/recordkit/pkg/types"
)

// Apply runs one step over c. Non-terminal steps return a
// *types.Collection; c itself is modified only by the in-place steps
// recursive_sort, rename_column and move_to_subarray.
func Apply(c *types.Collection, step config.Step) (any, error) {
	if err := step.Validate(); err != nil {
		return nil, err
	}

	switch step.Kind {
	case config.StepSort:
		return order.MultiArrSort(c, step.Column, step.Desc), nil

	case config.StepOrderBy:
		clauses := make([]order.Clause, 0, len(step.Clauses))
		for _, s := range step.Clauses {
			cl, err := order.ParseClause(s)
			if err != nil {
				return nil, err
			}
			clauses = append(clauses, cl)
		}
		return order.NewSorter(clauses...).SortAndLimit(c, step.Limit, step.Offset), nil

	case config.StepRecursiveSort:
		order.RecursiveSort(c, step.ByKey, step.Desc)
		return c, nil

	case config.StepSplitByKey:
		keys := make([]any, len(step.Keys))
		for i, k := range step.Keys {
			keys[i] = normalizeValue(k)
		}
		return split.ByKey(c, step.Column, split.KeyOptions{
			Keys:            keys,
			KeepColumn:      step.KeepColumn,
			CaseInsensitive: step.CaseInsensitive,
		})

	case config.StepSplitByHash:
		return split.ByHash(c, step.Column, step.Buckets)

	case config.StepTopAndBottom:
		return split.TopAndBottom(c, step.Rows)

	case config.StepDigitToKey:
		return edit.DigitToKey(c, step.Column, step.Unset)

	case config.StepConvertColumns:
		return edit.ColumnsConversion(c, step.Columns, edit.ParseConversion(step.To))

	case config.StepRemoveByValue:
		return edit.RemoveByValue(c, normalizeValue(step.Value), step.Rekey), nil

	case config.StepRenameColumn:
		if err := edit.RenameColumn(c, step.Column, step.NewName); err != nil {
			return nil, err
		}
		return c, nil

	case config.StepMoveToSubarray:
		for _, e := range c.Entries() {
			r, ok := types.AsRecord(e.Value)
			if !ok {
				continue
			}
			if err := edit.MoveToSubarray(r, step.Column, step.Path); err != nil {
				return nil, err
			}
		}
		return c, nil

	case config.StepMultiToSingle:
		return convert.MultiToSingle(c, step.Column)

	case config.StepToMultiArray:
		return convert.ToMultiArray(c, step.Names)

	case config.StepCheck:
		multi, err := check.IsMultiDimensional(c, check.MultiDimOptions{
			EqualLength: step.EqualLength,
			AllScalar:   step.AllScalar,
		})
		if err != nil {
			return nil, err
		}
		return types.Record{
			"multidimensional": multi,
			"associative":      check.IsAssociative(c),
			"all_scalar":       check.IsAllScalar(c),
			"schema":           types.InferSchema(c),
		}, nil
	}
	return nil, rkerrors.NewInternalError(fmt.Sprintf("step kind %q has no implementation", step.Kind), nil)
}

// normalizeValue maps configuration scalars onto the representation used by
// loaded collections: integers as int64, integral floats as int64.
func normalizeValue(v any) any {
	switch x := v.(type) {
	case int:
		return int64(x)
	case uint64:
		if x <= math.MaxInt64 {
			return int64(x)
		}
	case float64:
		if x == math.Trunc(x) && math.Abs(x) < 1<<53 {
			return int64(x)
		}
	}
	return v
}

// count returns the number of records held by a step result.
func count(v any) int {
	switch x := v.(type) {
	case *types.Collection:
		return x.Len()
	case *split.PartitionMap:
		return x.Total()
	case *split.Halves:
		return x.Top.Len() + x.Bottom.Len()
	default:
		return 1
	}
}
