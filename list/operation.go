package list

import (
	"encoding/json"
	"fmt"
)

// Operation is the closed set of mutations a log can carry. There is no
// runtime dispatch on it beyond a type switch in apply/revert/transform;
// each concrete type carries exactly the fields needed to both apply and
// revert itself, per the no-dynamic-dispatch design of this package.
type Operation interface {
	isOperation()
}

// RootOp is the sentinel marking the origin of a log. It is never applied,
// reverted, or transformed; it only ever appears as records[0] and as the
// single record of a freshly snapshotted replica's log.
type RootOp struct{}

func (RootOp) isOperation() {}

// AddOp introduces Item at the tail of the list.
type AddOp struct {
	Item Item
}

func (AddOp) isOperation() {}

// RemoveOp removes the item with Item.ID. Loc is the index the item
// occupied at removal time, kept so Undo can re-insert it in place.
type RemoveOp struct {
	Loc  uint32
	Item Item
}

func (RemoveOp) isOperation() {}

// EditOp replaces the item matching Old.ID with New. Both are always fully
// resolved items in memory: when a caller supplies a partial ItemUpdate,
// Replica.Edit resolves it against the current item before logging.
type EditOp struct {
	Old Item
	New Item
}

func (EditOp) isOperation() {}

// MoveToOp relocates ID from OldLoc to NewLoc.
type MoveToOp struct {
	ID     ID     `json:"id"`
	OldLoc uint32 `json:"old_loc"`
	NewLoc uint32 `json:"new_loc"`
}

func (MoveToOp) isOperation() {}

// opItemID returns the id an operation's conflict-detection logic should
// key off of.
func opItemID(op Operation) (ID, bool) {
	switch o := op.(type) {
	case AddOp:
		return o.Item.ID, true
	case RemoveOp:
		return o.Item.ID, true
	case EditOp:
		return o.New.ID, true
	case MoveToOp:
		return o.ID, true
	default:
		return ID{}, false
	}
}

// remapOperation rewrites every id an operation carries using remap, leaving the
// operation unchanged if remap has nothing to say about its ids.
func remapOperation(op Operation, remap map[ID]ID) Operation {
	switch o := op.(type) {
	case AddOp:
		o.Item.ID = remapID(o.Item.ID, remap)
		return o
	case RemoveOp:
		o.Item.ID = remapID(o.Item.ID, remap)
		return o
	case EditOp:
		o.Old.ID = remapID(o.Old.ID, remap)
		o.New.ID = remapID(o.New.ID, remap)
		return o
	case MoveToOp:
		o.ID = remapID(o.ID, remap)
		return o
	default:
		return op
	}
}

func remapID(id ID, remap map[ID]ID) ID {
	if to, ok := remap[id]; ok {
		return to
	}
	return id
}

// marshalOperation encodes an Operation using external tagging: "Root" as a
// bare string, everything else as a single-key object keyed by its variant
// name.
func marshalOperation(op Operation) ([]byte, error) {
	switch o := op.(type) {
	case RootOp:
		return json.Marshal("Root")
	case AddOp:
		return json.Marshal(struct {
			Add Item `json:"Add"`
		}{Add: o.Item})
	case RemoveOp:
		return json.Marshal(struct {
			Remove [2]json.RawMessage `json:"Remove"`
		}{Remove: [2]json.RawMessage{
			mustMarshal(o.Loc),
			mustMarshal(o.Item),
		}})
	case EditOp:
		return json.Marshal(struct {
			Edit [2]Item `json:"Edit"`
		}{Edit: [2]Item{o.Old, o.New}})
	case MoveToOp:
		return json.Marshal(struct {
			MoveTo MoveToOp `json:"MoveTo"`
		}{MoveTo: o})
	default:
		return nil, fmt.Errorf("list: unknown operation type %T", op)
	}
}

func mustMarshal(v interface{}) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		panic(InvariantViolation{What: "could not marshal wire value: " + err.Error()})
	}
	return b
}

// unmarshalOperation decodes the external-tagged wire form back into a
// concrete Operation.
func unmarshalOperation(data []byte) (Operation, error) {
	var asString string
	if err := json.Unmarshal(data, &asString); err == nil {
		if asString == "Root" {
			return RootOp{}, nil
		}
		return nil, fmt.Errorf("list: unknown bare operation %q", asString)
	}

	var tagged map[string]json.RawMessage
	if err := json.Unmarshal(data, &tagged); err != nil {
		return nil, fmt.Errorf("list: operation is neither a bare string nor an object: %w", err)
	}

	if raw, ok := tagged["Add"]; ok {
		var item Item
		if err := json.Unmarshal(raw, &item); err != nil {
			return nil, err
		}
		return AddOp{Item: item}, nil
	}
	if raw, ok := tagged["Remove"]; ok {
		var pair [2]json.RawMessage
		if err := json.Unmarshal(raw, &pair); err != nil {
			return nil, err
		}
		var loc uint32
		var item Item
		if err := json.Unmarshal(pair[0], &loc); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(pair[1], &item); err != nil {
			return nil, err
		}
		return RemoveOp{Loc: loc, Item: item}, nil
	}
	if raw, ok := tagged["Edit"]; ok {
		var pair [2]json.RawMessage
		if err := json.Unmarshal(raw, &pair); err != nil {
			return nil, err
		}
		var old Item
		if err := json.Unmarshal(pair[0], &old); err != nil {
			return nil, err
		}
		// The second element may be a full item or a partial update. A full
		// item carries an "id" and is taken as is; anything else is a
		// partial update resolved against old.
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(pair[1], &fields); err != nil {
			return nil, err
		}
		if _, full := fields["id"]; full {
			var item Item
			if err := json.Unmarshal(pair[1], &item); err != nil {
				return nil, err
			}
			return EditOp{Old: old, New: item}, nil
		}
		var update ItemUpdate
		if err := json.Unmarshal(pair[1], &update); err != nil {
			return nil, err
		}
		return EditOp{Old: old, New: update.apply(old)}, nil
	}
	if raw, ok := tagged["MoveTo"]; ok {
		var mv MoveToOp
		if err := json.Unmarshal(raw, &mv); err != nil {
			return nil, err
		}
		return mv, nil
	}

	return nil, fmt.Errorf("list: operation object had no recognized tag")
}
