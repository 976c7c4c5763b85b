package list

import "testing"

func TestTransformNoConflictPassesThrough(t *testing.T) {
	incoming := []Operation{AddOp{Item: Item{ID: NewID(2, 1), Value: "bread"}}}
	out, err := Transform(nil, incoming)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("want 1 op, got %d", len(out))
	}
}

func TestTransformAddAddSameValueSkips(t *testing.T) {
	confirmed := []Operation{AddOp{Item: Item{ID: NewID(1, 1), Value: "apples"}}}
	incoming := []Operation{AddOp{Item: Item{ID: NewID(2, 1), Value: "apples"}}}

	out, err := Transform(confirmed, incoming)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("want the conflicting add skipped, got %v", out)
	}
}

func TestTransformAddRemapsDependentOps(t *testing.T) {
	winner := NewID(1, 1)
	loser := NewID(2, 1)
	confirmed := []Operation{AddOp{Item: Item{ID: winner, Value: "apples"}}}
	incoming := []Operation{
		AddOp{Item: Item{ID: loser, Value: "apples"}},
		MoveToOp{ID: loser, OldLoc: 0, NewLoc: 3},
	}

	out, err := Transform(confirmed, incoming)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("want only the moveto to survive, got %v", out)
	}
	mv, ok := out[0].(MoveToOp)
	if !ok {
		t.Fatalf("want MoveToOp, got %T", out[0])
	}
	if mv.ID != winner {
		t.Fatalf("want the moveto remapped to the winning id %v, got %v", winner, mv.ID)
	}
}

func TestTransformAddAfterFreeingRemoveSurvives(t *testing.T) {
	confirmed := []Operation{RemoveOp{Loc: 0, Item: Item{ID: NewID(1, 1), Value: "apples"}}}
	incoming := []Operation{AddOp{Item: Item{ID: NewID(2, 1), Value: "apples"}}}

	out, err := Transform(confirmed, incoming)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("want the add to survive once the title is freed, got %v", out)
	}
}

func TestTransformEditSameBaseValueSurvives(t *testing.T) {
	id := NewID(1, 1)
	confirmed := []Operation{AddOp{Item: Item{ID: id, Value: "milk"}}}
	incoming := []Operation{EditOp{
		Old: Item{ID: id, Value: "milk"},
		New: Item{ID: id, Value: "oat milk"},
	}}

	out, err := Transform(confirmed, incoming)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("want the edit to survive, got %v", out)
	}
}

func TestTransformEditOfRemovedItemErrors(t *testing.T) {
	id := NewID(1, 1)
	confirmed := []Operation{RemoveOp{Loc: 0, Item: Item{ID: id, Value: "milk"}}}
	incoming := []Operation{EditOp{
		Old: Item{ID: id, Value: "milk"},
		New: Item{ID: id, Value: "oat milk"},
	}}

	_, err := Transform(confirmed, incoming)
	if !IsCannotCommit(err) {
		t.Fatalf("want CannotCommitError, got %v", err)
	}
}

func TestTransformEditEditDivergedBaseErrors(t *testing.T) {
	id := NewID(1, 1)
	confirmed := []Operation{EditOp{
		Old: Item{ID: id, Value: "milk"},
		New: Item{ID: id, Value: "2% milk"},
	}}
	incoming := []Operation{EditOp{
		Old: Item{ID: id, Value: "whole milk"},
		New: Item{ID: id, Value: "oat milk"},
	}}

	_, err := Transform(confirmed, incoming)
	if !IsCannotCommit(err) {
		t.Fatalf("want CannotCommitError, got %v", err)
	}
}

func TestTransformRemoveAlreadyRemovedSkips(t *testing.T) {
	id := NewID(1, 1)
	confirmed := []Operation{RemoveOp{Loc: 0, Item: Item{ID: id, Value: "milk"}}}
	incoming := []Operation{RemoveOp{Loc: 0, Item: Item{ID: id, Value: "milk"}}}

	out, err := Transform(confirmed, incoming)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("want the redundant remove skipped, got %v", out)
	}
}

func TestTransformRemoveSurvivesOverEdit(t *testing.T) {
	id := NewID(1, 1)
	confirmed := []Operation{EditOp{
		Old: Item{ID: id, Value: "milk"},
		New: Item{ID: id, Value: "oat milk"},
	}}
	incoming := []Operation{RemoveOp{Loc: 0, Item: Item{ID: id, Value: "milk"}}}

	out, err := Transform(confirmed, incoming)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("want the remove to survive, got %v", out)
	}
}
