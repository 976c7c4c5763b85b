package list

// Replica is a mutable fork of a list paired with its own change log. A
// Replica is exclusively owned by a single caller at a time; this package
// adds no internal synchronization.
type Replica struct {
	Name string

	agent     uint32
	nextLocal uint32

	items []Item
	log   Log
}

// Agent returns the agent number assigned to this replica at snapshot
// time. Every id this replica mints carries this agent.
func (r *Replica) Agent() uint32 {
	return r.agent
}

// Items returns a copy of the replica's current items, in order.
func (r *Replica) Items() []Item {
	out := make([]Item, len(r.items))
	copy(out, r.items)
	return out
}

// Log exposes the replica's change log for inspection (e.g. by a caller
// building its own fork-anchor bookkeeping); mutating it is only ever done
// through the Replica's own methods.
func (r *Replica) Log() *Log {
	return &r.log
}

// nextID mints the next locally-unique id for this replica's agent.
func (r *Replica) nextID() ID {
	r.nextLocal++
	return ID{Agent: r.agent, Local: r.nextLocal}
}

func maxOrder(items []Item) float32 {
	var max float32
	for _, item := range items {
		if item.Order != nil && *item.Order > max {
			max = *item.Order
		}
	}
	return max
}

// Add introduces value at the tail of the list. If an item with the exact
// same value already exists, Add returns it unchanged and pushes nothing:
// adding a duplicate value coalesces onto the existing item rather than
// creating a second one.
func (r *Replica) Add(value string) Item {
	for _, item := range r.items {
		if item.Value == value {
			return item
		}
	}

	order := maxOrder(r.items) + 1
	item := Item{ID: r.nextID(), Value: value, Order: &order}

	r.log.discardRedoTail()
	r.log.push(AddOp{Item: item})
	r.items = append(r.items, item)
	return item
}

// Remove deletes the item with the given id. NotFoundError if no such item
// exists.
func (r *Replica) Remove(id ID) error {
	idx := findItem(r.items, id)
	if idx < 0 {
		return NotFoundError{ID: id}
	}
	item := r.items[idx]

	r.log.discardRedoTail()
	r.log.push(RemoveOp{Loc: uint32(idx), Item: item})

	out := make([]Item, 0, len(r.items)-1)
	out = append(out, r.items[:idx]...)
	out = append(out, r.items[idx+1:]...)
	r.items = out
	return nil
}

// Edit applies the set fields of update to the item with the given id.
// NotFoundError if no such item exists.
func (r *Replica) Edit(id ID, update ItemUpdate) (Item, error) {
	idx := findItem(r.items, id)
	if idx < 0 {
		return Item{}, NotFoundError{ID: id}
	}
	old := r.items[idx]
	newItem := update.apply(old)

	r.log.discardRedoTail()
	r.log.push(EditOp{Old: old, New: newItem})
	r.items[idx] = newItem
	return newItem, nil
}

// Move relocates the item with the given id to position, clamping to the
// end of the list if position is beyond it (matching the original
// lists.rs move_to behavior). NotFoundError if no such item exists.
func (r *Replica) Move(id ID, position int) error {
	idx := findItem(r.items, id)
	if idx < 0 {
		return NotFoundError{ID: id}
	}

	out := make([]Item, 0, len(r.items))
	out = append(out, r.items[:idx]...)
	out = append(out, r.items[idx+1:]...)
	dest := clampIndex(position, len(out))

	r.log.discardRedoTail()
	r.log.push(MoveToOp{ID: id, OldLoc: uint32(idx), NewLoc: uint32(dest)})

	moved := r.items[idx]
	out = append(out, Item{})
	copy(out[dest+1:], out[dest:])
	out[dest] = moved
	r.items = out
	return nil
}

// Undo reverts the most recent local operation. NoMoreOpsError if head is
// already at fork.
func (r *Replica) Undo() error {
	op, err := r.log.undoOperation()
	if err != nil {
		return err
	}
	items, err := revertOperation(r.items, op)
	if err != nil {
		return err
	}
	r.items = items
	r.log.retreatHead()
	return nil
}

// Redo re-applies the most recently undone local operation. NoMoreOpsError
// if head is already at the end of the log.
func (r *Replica) Redo() error {
	op, err := r.log.redoOperation()
	if err != nil {
		return err
	}
	items, err := applyOperation(r.items, op)
	if err != nil {
		return err
	}
	r.items = items
	r.log.advanceHead()
	return nil
}

// ChangesToCommit returns the records a caller should send to Root.Commit:
// the fork anchor followed by every local, unconfirmed operation.
func (r *Replica) ChangesToCommit() []Record {
	return r.log.changesToCommit()
}

// ApplyCommit integrates the slice returned by Root.Commit into this
// replica. changes supersedes the replica's own local, unconfirmed tail —
// it is either that tail unchanged, in the fast path, or a rebased
// combination of others' commits and a transformed version of it — so
// ApplyCommit first rolls the replica's items back to their state at fork,
// then replays changes on top of that base and adopts it as the new,
// fully-confirmed log tail. Any apply failure rolls back entirely and
// leaves the replica untouched.
func (r *Replica) ApplyCommit(changes []Record) error {
	base := r.items
	for i := r.log.head; i > r.log.fork; i-- {
		reverted, err := revertOperation(base, r.log.records[i].Operation)
		if err != nil {
			return err
		}
		base = reverted
	}

	ops := make([]Operation, len(changes))
	for i, rec := range changes {
		ops[i] = rec.Operation
	}
	items, err := applyBatch(base, ops)
	if err != nil {
		return err
	}

	r.items = items
	r.log.records = append(r.log.records[:r.log.fork+1], changes...)
	r.log.head = len(r.log.records) - 1
	r.log.fork = r.log.head
	return nil
}
