package list

import "fmt"

// Transform rebases incoming onto confirmed, the operations committed by
// others since incoming's author forked. It returns the
// slice that should actually be applied to the root (and, later, to every
// other replica that needs to catch up): some incoming operations are
// dropped ("skipped") because confirmed already achieved their effect, with
// later incoming operations redirected to the surviving item via an
// internal id remap.
//
// Determinism: confirmed is scanned in reverse for each incoming operation,
// so the most recent conflicting confirmed operation always wins, and log
// ids are unique so there are no ties to break.
func Transform(confirmed, incoming []Operation) ([]Operation, error) {
	remap := make(map[ID]ID)
	out := make([]Operation, 0, len(incoming))

	for _, raw := range incoming {
		op := remapOperation(raw, remap)

		switch o := op.(type) {
		case AddOp:
			resolved, skip, err := transformAdd(confirmed, o, remap)
			if err != nil {
				return nil, err
			}
			if !skip {
				out = append(out, resolved)
			}

		case EditOp:
			resolved, skip, err := transformEdit(confirmed, o)
			if err != nil {
				return nil, err
			}
			if !skip {
				out = append(out, resolved)
			}

		case RemoveOp:
			resolved, skip := transformRemove(confirmed, o)
			if !skip {
				out = append(out, resolved)
			}

		case MoveToOp:
			// No confirmed operation ever conflicts with a move: it carries
			// no title and its id was already rewritten above.
			out = append(out, o)

		default:
			panic(InvariantViolation{What: "Transform: unknown operation type"})
		}
	}

	return out, nil
}

func transformAdd(confirmed []Operation, incoming AddOp, remap map[ID]ID) (Operation, bool, error) {
	conf, found := findByValue(confirmed, incoming.Item.Value)
	if !found {
		return incoming, false, nil
	}

	switch c := conf.(type) {
	case AddOp:
		// Same id is impossible: ids are unique per agent. Same value means
		// both sides independently added the same title; the confirmed one
		// already won, so the incoming add is skipped and redirected.
		remap[incoming.Item.ID] = c.Item.ID
		return nil, true, nil

	case EditOp:
		// Someone renamed an existing item to the exact title incoming is
		// trying to add; treat incoming as referring to that renamed item.
		remap[incoming.Item.ID] = c.New.ID
		return nil, true, nil

	case RemoveOp:
		// The title was freed by a confirmed remove; nothing to skip.
		return incoming, false, nil

	default:
		return incoming, false, nil
	}
}

func transformEdit(confirmed []Operation, incoming EditOp) (Operation, bool, error) {
	conf, found := findByID(confirmed, incoming.Old.ID)
	if !found {
		return incoming, false, nil
	}

	switch c := conf.(type) {
	case AddOp:
		if c.Item.Value == incoming.Old.Value {
			return incoming, false, nil
		}
		return nil, false, CannotCommitError{Reason: fmt.Sprintf(
			"edit of %s assumed value %q but the confirmed add used %q",
			incoming.Old.ID, incoming.Old.Value, c.Item.Value,
		)}

	case EditOp:
		if c.Old.Value == incoming.Old.Value {
			// Last-write-wins: the incoming edit applies over the confirmed
			// one since both started from the same prior value.
			return incoming, false, nil
		}
		return nil, false, CannotCommitError{Reason: fmt.Sprintf(
			"edit of %s assumed value %q but a confirmed edit already moved it to %q",
			incoming.Old.ID, incoming.Old.Value, c.New.Value,
		)}

	case RemoveOp:
		return nil, false, CannotCommitError{Reason: fmt.Sprintf(
			"edit of %s but it was removed by a confirmed operation", incoming.Old.ID,
		)}

	default:
		// MoveTo or anything else carries no title and doesn't conflict.
		return incoming, false, nil
	}
}

func transformRemove(confirmed []Operation, incoming RemoveOp) (Operation, bool) {
	conf, found := findByID(confirmed, incoming.Item.ID)
	if !found {
		return incoming, false
	}

	if _, ok := conf.(RemoveOp); ok {
		// Already removed by a confirmed operation; nothing left to do.
		return nil, true
	}

	// Add, Edit, or MoveTo on this id: the item still exists from the
	// remover's point of view, so the remove still applies.
	return incoming, false
}

// findByID scans confirmed in reverse for the most recent operation that
// touches id.
func findByID(confirmed []Operation, id ID) (Operation, bool) {
	for i := len(confirmed) - 1; i >= 0; i-- {
		if cid, ok := opItemID(confirmed[i]); ok && cid == id {
			return confirmed[i], true
		}
	}
	return nil, false
}

// findByValue scans confirmed in reverse for the most recent operation
// that produced or removed an item with the given value.
func findByValue(confirmed []Operation, value string) (Operation, bool) {
	for i := len(confirmed) - 1; i >= 0; i-- {
		switch o := confirmed[i].(type) {
		case AddOp:
			if o.Item.Value == value {
				return o, true
			}
		case EditOp:
			if o.New.Value == value {
				return o, true
			}
		case RemoveOp:
			if o.Item.Value == value {
				return o, true
			}
		}
	}
	return nil, false
}
