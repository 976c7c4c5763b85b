package list

// Squash folds adjacent compatible operations in a slice of records before
// they're transmitted. The only folding rule: an Add immediately followed
// by an Edit of the same item, with nothing else touching that item's id
// in between, collapses into a single Add of the final value. Everything
// else passes through unchanged, in order. Squash
// never touches record ids/stamps of operations it doesn't fold; a folded
// record keeps the id/stamp of the Add it absorbed into.
//
// Squash is idempotent: once an Add/Edit pair has folded there is no
// longer an Edit left in the sequence for a second pass to find.
func Squash(records []Record) []Record {
	out := make([]Record, 0, len(records))
	// foldable maps an id still open for folding to its Add's index in out.
	foldable := make(map[ID]int)

	for _, rec := range records {
		switch op := rec.Operation.(type) {
		case AddOp:
			out = append(out, rec)
			foldable[op.Item.ID] = len(out) - 1

		case EditOp:
			if pos, ok := foldable[op.Old.ID]; ok {
				addOp := out[pos].Operation.(AddOp)
				addOp.Item = op.New
				out[pos].Operation = addOp
				continue
			}
			out = append(out, rec)

		default:
			out = append(out, rec)
			if id, ok := opItemID(rec.Operation); ok {
				delete(foldable, id)
			}
		}
	}

	return out
}
