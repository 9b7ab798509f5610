package course

import (
	"reflect"
	"testing"
)

func TestStepIndexes_EmptyColumn(t *testing.T) {
	var e Enrollment
	if got := e.StepIndexes(); len(got) != 0 {
		t.Fatalf("expected empty set for a fresh enrollment, got %v", got)
	}
}

func TestSetStepIndexes_SortsAndDeduplicates(t *testing.T) {
	var e Enrollment
	e.SetStepIndexes([]int{4, 1, 4, 0, 1})

	want := []int{0, 1, 4}
	if got := e.StepIndexes(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestHasStep(t *testing.T) {
	var e Enrollment
	e.SetStepIndexes([]int{0, 2})

	if !e.HasStep(2) {
		t.Fatalf("expected step 2 in the set")
	}
	if e.HasStep(1) {
		t.Fatalf("did not expect step 1 in the set")
	}
}
