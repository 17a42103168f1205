package edit

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/recordkit/recordkit/pkg/types"
)

func TestProperty_RemoveByValueRekeyIsDense(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("rekeyed keys are exactly 0..n-1", prop.ForAll(
		func(values []int, remove int) bool {
			c := types.New()
			for _, v := range values {
				c.Append(int64(v))
			}
			out := RemoveByValue(c, int64(remove), true)
			for i, k := range out.Keys() {
				if n, ok := k.Int(); !ok || n != i {
					return false
				}
			}
			for _, v := range out.Values() {
				if v == int64(remove) {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, 5)),
		gen.IntRange(0, 5),
	))

	properties.TestingRun(t)
}
