package list

// findItem returns the index of the item with the given id, or -1.
func findItem(items []Item, id ID) int {
	for i, item := range items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// clampIndex keeps i within [0, length].
func clampIndex(i, length int) int {
	if i < 0 {
		return 0
	}
	if i > length {
		return length
	}
	return i
}

// applyOperation applies op to items, returning the resulting slice. It
// never mutates items in place, so a failed batch can simply discard the
// partial result and retry from the last good copy. RootOp is never a
// valid argument here; passing one is this package's own bug.
func applyOperation(items []Item, op Operation) ([]Item, error) {
	switch o := op.(type) {
	case RootOp:
		panic(InvariantViolation{What: "applyOperation called with RootOp"})

	case AddOp:
		if findItem(items, o.Item.ID) >= 0 {
			panic(InvariantViolation{What: "applyOperation: Add of an id already present; transform should have deduplicated it"})
		}
		out := make([]Item, len(items), len(items)+1)
		copy(out, items)
		return append(out, o.Item), nil

	case RemoveOp:
		idx := findItem(items, o.Item.ID)
		if idx < 0 {
			return nil, NotFoundError{ID: o.Item.ID}
		}
		out := make([]Item, 0, len(items)-1)
		out = append(out, items[:idx]...)
		out = append(out, items[idx+1:]...)
		return out, nil

	case EditOp:
		idx := findItem(items, o.Old.ID)
		if idx < 0 {
			return nil, NotFoundError{ID: o.Old.ID}
		}
		out := make([]Item, len(items))
		copy(out, items)
		out[idx] = o.New
		return out, nil

	case MoveToOp:
		idx := findItem(items, o.ID)
		if idx < 0 {
			return nil, NotFoundError{ID: o.ID}
		}
		out := make([]Item, 0, len(items))
		out = append(out, items[:idx]...)
		out = append(out, items[idx+1:]...)
		dest := clampIndex(int(o.NewLoc), len(out))
		out = append(out, Item{})
		copy(out[dest+1:], out[dest:])
		out[dest] = items[idx]
		return out, nil

	default:
		panic(InvariantViolation{What: "applyOperation: unknown operation type"})
	}
}

// revertOperation undoes op against items, mirroring applyOperation:
// Add reverses by removing the item it added, Remove by reinserting it at
// its recorded location, Edit by restoring the old item, and MoveTo by
// moving the item back to its old location.
func revertOperation(items []Item, op Operation) ([]Item, error) {
	switch o := op.(type) {
	case RootOp:
		panic(InvariantViolation{What: "revertOperation called with RootOp"})

	case AddOp:
		idx := findItem(items, o.Item.ID)
		if idx < 0 {
			return nil, NotFoundError{ID: o.Item.ID}
		}
		out := make([]Item, 0, len(items)-1)
		out = append(out, items[:idx]...)
		out = append(out, items[idx+1:]...)
		return out, nil

	case RemoveOp:
		dest := clampIndex(int(o.Loc), len(items))
		out := make([]Item, 0, len(items)+1)
		out = append(out, items[:dest]...)
		out = append(out, o.Item)
		out = append(out, items[dest:]...)
		return out, nil

	case EditOp:
		idx := findItem(items, o.New.ID)
		if idx < 0 {
			return nil, NotFoundError{ID: o.New.ID}
		}
		out := make([]Item, len(items))
		copy(out, items)
		out[idx] = o.Old
		return out, nil

	case MoveToOp:
		idx := findItem(items, o.ID)
		if idx < 0 {
			return nil, NotFoundError{ID: o.ID}
		}
		out := make([]Item, 0, len(items))
		out = append(out, items[:idx]...)
		out = append(out, items[idx+1:]...)
		dest := clampIndex(int(o.OldLoc), len(out))
		out = append(out, Item{})
		copy(out[dest+1:], out[dest:])
		out[dest] = items[idx]
		return out, nil

	default:
		panic(InvariantViolation{What: "revertOperation: unknown operation type"})
	}
}

// applyBatch applies every op in ops in order, rolling back to the
// original items (discarding all partial effects) if any one of them
// fails: both a replica's local edit batches and a root's commits are
// all-or-nothing.
func applyBatch(items []Item, ops []Operation) ([]Item, error) {
	cur := items
	for _, op := range ops {
		next, err := applyOperation(cur, op)
		if err != nil {
			return items, err
		}
		cur = next
	}
	return cur, nil
}
