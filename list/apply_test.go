package list

import "testing"

func itemValues(items []Item) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Value
	}
	return out
}

func sliceEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestApplyRevertRoundTrip(t *testing.T) {
	milk := Item{ID: NewID(1, 1), Value: "milk"}
	eggs := Item{ID: NewID(1, 2), Value: "eggs"}
	bread := Item{ID: NewID(1, 3), Value: "bread"}
	base := []Item{milk, eggs, bread}

	tests := []struct {
		Name string
		Op   Operation
	}{
		{"add", AddOp{Item: Item{ID: NewID(1, 4), Value: "butter"}}},
		{"remove", RemoveOp{Loc: 1, Item: eggs}},
		{"edit", EditOp{Old: eggs, New: Item{ID: eggs.ID, Value: "free-range eggs"}}},
		{"moveto-front", MoveToOp{ID: bread.ID, OldLoc: 2, NewLoc: 0}},
		{"moveto-clamped", MoveToOp{ID: milk.ID, OldLoc: 0, NewLoc: 99}},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			applied, err := applyOperation(base, test.Op)
			if err != nil {
				t.Fatalf("apply: %v", err)
			}

			reverted, err := revertOperation(applied, test.Op)
			if err != nil {
				t.Fatalf("revert: %v", err)
			}

			if !sliceEqual(itemValues(reverted), itemValues(base)) {
				t.Fatalf("revert(apply(x)) != x: want %v, got %v", itemValues(base), itemValues(reverted))
			}
		})
	}
}

func TestApplyOperationNotFound(t *testing.T) {
	base := []Item{{ID: NewID(1, 1), Value: "milk"}}
	missing := NewID(9, 9)

	tests := []Operation{
		RemoveOp{Loc: 0, Item: Item{ID: missing}},
		EditOp{Old: Item{ID: missing}, New: Item{ID: missing, Value: "x"}},
		MoveToOp{ID: missing, OldLoc: 0, NewLoc: 1},
	}

	for i, op := range tests {
		if _, err := applyOperation(base, op); !IsNotFound(err) {
			t.Errorf("%d) want NotFoundError, got %v", i, err)
		}
	}
}

func TestApplyOperationAddDuplicateIDPanics(t *testing.T) {
	id := NewID(1, 1)
	base := []Item{{ID: id, Value: "milk"}}

	defer func() {
		if r := recover(); r == nil {
			t.Fatal("want panic on duplicate-id Add")
		}
	}()
	applyOperation(base, AddOp{Item: Item{ID: id, Value: "milk again"}})
}

func TestApplyBatchAllOrNothing(t *testing.T) {
	base := []Item{{ID: NewID(1, 1), Value: "milk"}}
	ops := []Operation{
		AddOp{Item: Item{ID: NewID(1, 2), Value: "eggs"}},
		RemoveOp{Loc: 0, Item: Item{ID: NewID(9, 9), Value: "missing"}},
	}

	out, err := applyBatch(base, ops)
	if err == nil {
		t.Fatal("want an error from the failing second op")
	}
	if !sliceEqual(itemValues(out), itemValues(base)) {
		t.Fatalf("want original items returned untouched on failure, got %v", itemValues(out))
	}
}

func TestApplyBatchSuccess(t *testing.T) {
	base := []Item{{ID: NewID(1, 1), Value: "milk"}}
	ops := []Operation{
		AddOp{Item: Item{ID: NewID(1, 2), Value: "eggs"}},
		AddOp{Item: Item{ID: NewID(1, 3), Value: "bread"}},
	}

	out, err := applyBatch(base, ops)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"milk", "eggs", "bread"}
	if !sliceEqual(itemValues(out), want) {
		t.Fatalf("want %v, got %v", want, itemValues(out))
	}
}

func TestMoveToClampsToEnd(t *testing.T) {
	base := []Item{
		{ID: NewID(1, 1), Value: "milk"},
		{ID: NewID(1, 2), Value: "eggs"},
	}

	out, err := applyOperation(base, MoveToOp{ID: base[0].ID, OldLoc: 0, NewLoc: 50})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"eggs", "milk"}
	if !sliceEqual(itemValues(out), want) {
		t.Fatalf("want %v, got %v", want, itemValues(out))
	}
}
