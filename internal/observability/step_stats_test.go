package observability

import (
	"sync"
	"testing"
	"time"
)

// TestRecordStepConcurrent tests concurrent RecordStep calls for race conditions.
func TestRecordStepConcurrent(t *testing.T) {
	rs := NewRunStats()
	var wg sync.WaitGroup
	numGoroutines := 10
	recordsPerGoroutine := 100

	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < recordsPerGoroutine; j++ {
				rs.RecordStep("sort", "age", 4, 4, time.Millisecond)
				rs.RecordStep("split_by_key", "city", 4, 4, 2*time.Millisecond)
				rs.RecordFailure("digit_to_key")
			}
		}()
	}
	wg.Wait()

	want := int64(numGoroutines * recordsPerGoroutine)
	s, ok := rs.Get("sort")
	if !ok {
		t.Fatal("sort stats missing")
	}
	if s.Runs != want || s.RecordsIn != 4*want || s.Columns["age"] != int(want) {
		t.Errorf("unexpected sort stats: %+v", s)
	}
	f, _ := rs.Get("digit_to_key")
	if f.Failures != want || f.Runs != 0 {
		t.Errorf("unexpected failure stats: %+v", f)
	}
}

func TestGetSlowest(t *testing.T) {
	rs := NewRunStats()
	rs.RecordStep("sort", "", 10, 10, 5*time.Millisecond)
	rs.RecordStep("order_by", "", 10, 3, 20*time.Millisecond)
	rs.RecordStep("check", "", 3, 1, time.Millisecond)

	top := rs.GetSlowest(2)
	if len(top) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(top))
	}
	if top[0].Kind != "order_by" || top[1].Kind != "sort" {
		t.Errorf("unexpected order: %s, %s", top[0].Kind, top[1].Kind)
	}
	if len(rs.GetSlowest(0)) != 0 {
		t.Error("expected empty result for n=0")
	}
	if len(rs.GetSlowest(10)) != 3 {
		t.Error("n larger than the number of kinds should return all")
	}
}

func TestGetReturnsCopy(t *testing.T) {
	rs := NewRunStats()
	rs.RecordStep("rename_column", "name", 1, 1, 0)

	s, _ := rs.Get("rename_column")
	s.Columns["name"] = 100

	again, _ := rs.Get("rename_column")
	if again.Columns["name"] != 1 {
		t.Error("Get must return a copy")
	}
	if _, ok := rs.Get("missing"); ok {
		t.Error("unknown kind should not be found")
	}
}

func TestMean(t *testing.T) {
	s := StepStats{Runs: 4, Total: 8 * time.Millisecond}
	if s.Mean() != 2*time.Millisecond {
		t.Errorf("got %v", s.Mean())
	}
	if (StepStats{}).Mean() != 0 {
		t.Error("mean of no runs should be 0")
	}
}
