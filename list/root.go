package list

import "encoding/json"

// Root is the authoritative replica. It is a replica with agent 0 whose
// log.fork always equals log.head: the root never carries unconfirmed
// local operations of its own, so unlike Replica it does not expose
// Add/Remove/Edit/Move/Undo/Redo — only Snapshot and Commit, the way the
// original lists.rs kept RootList's inner List private and only exposed
// `new` and `snapshot`. It additionally hands out agent numbers to the
// replicas it spawns.
type Root struct {
	Name string

	items []Item
	log   Log

	nextAgent uint32
}

// NewRoot creates an empty root with a single Root record at index 0.
func NewRoot(name string) *Root {
	return &Root{
		Name:      name,
		log:       newLog(rootRecord()),
		nextAgent: 1,
	}
}

// Items returns a copy of the root's current items, in order.
func (root *Root) Items() []Item {
	out := make([]Item, len(root.items))
	copy(out, root.items)
	return out
}

// HeadID returns the record id of the root's current log head, which a
// caller may use directly as a fork anchor for a read-only snapshot.
func (root *Root) HeadID() uint32 {
	return root.log.Head().ID
}

// Snapshot forks a fresh Replica from the root's current state: a newly
// minted agent number strictly greater than any handed out before, a copy
// of the root's current items, and a log containing exactly one record —
// the root's current last record with its operation replaced by the Root
// sentinel, which becomes the new log's fork and head point simultaneously.
func (root *Root) Snapshot() *Replica {
	agent := root.nextAgent
	root.nextAgent++

	anchor := root.log.Head()
	anchor.Operation = RootOp{}

	return &Replica{
		Name:  root.Name,
		agent: agent,
		items: root.Items(),
		log:   newLog(anchor),
	}
}

// Commit ingests a replica's changes-to-commit slice (fork anchor followed
// by its local operations), reconciles it against whatever the root has
// confirmed since that anchor, applies the result, and returns the slice
// the replica must integrate via Replica.ApplyCommit to catch up. The root
// is left untouched if anything fails.
func (root *Root) Commit(incoming []Record) ([]Record, error) {
	if len(incoming) == 0 {
		panic(InvariantViolation{What: "Commit called with an empty slice; it must at least contain the fork anchor"})
	}

	// The anchor is kept out of Squash so no local operation folds into it.
	anchor := incoming[0]
	rest := Squash(incoming[1:])

	if anchor.ID == root.log.Head().ID {
		return root.commitFastPath(rest)
	}
	return root.commitRebasePath(anchor.ID, rest)
}

// commitFastPath handles the case where no intervening commits happened:
// the replica's operations apply directly and are copied verbatim into the
// root's log, keeping their original record ids since those already
// continue the root's sequence exactly.
func (root *Root) commitFastPath(rest []Record) ([]Record, error) {
	ops := recordOps(rest)
	items, err := applyBatch(root.items, ops)
	if err != nil {
		return nil, err
	}

	root.items = items
	root.log.records = append(root.log.records, rest...)
	root.log.head = len(root.log.records) - 1
	root.log.fork = root.log.head

	out := make([]Record, len(rest))
	copy(out, rest)
	return out, nil
}

// commitRebasePath handles the case where other commits landed since the
// replica forked: it transforms the replica's operations against what it
// missed, applies the transformed result, and returns both what it missed
// and its own (possibly remapped) operations so the replica can adopt
// exactly what the root now holds.
func (root *Root) commitRebasePath(anchorID uint32, rest []Record) ([]Record, error) {
	confirmed, err := root.log.changesSince(anchorID)
	if err != nil {
		return nil, err
	}

	newOps, err := Transform(recordOps(confirmed), recordOps(rest))
	if err != nil {
		return nil, err
	}

	items, err := applyBatch(root.items, newOps)
	if err != nil {
		return nil, err
	}
	root.items = items

	newRecords := make([]Record, len(newOps))
	for i, op := range newOps {
		newRecords[i] = root.log.push(op)
	}
	root.log.fork = root.log.head

	out := make([]Record, 0, len(confirmed)+len(newRecords))
	out = append(out, confirmed...)
	out = append(out, newRecords...)
	return out, nil
}

// recordOps extracts the Operation of each record, in order.
func recordOps(records []Record) []Operation {
	ops := make([]Operation, len(records))
	for i, r := range records {
		ops[i] = r.Operation
	}
	return ops
}

// rootWire is the on-disk shape of a Root: its name, the agent counter, and
// the full log. Items are never stored directly; they are always rebuilt by
// replaying the log, so the log remains the single source of truth the same
// way txlogs.DB persists only its transaction slice.
type rootWire struct {
	Name      string   `json:"name"`
	NextAgent uint32   `json:"next_agent"`
	Records   []Record `json:"records"`
}

// MarshalJSON implements json.Marshaler.
func (root *Root) MarshalJSON() ([]byte, error) {
	return json.Marshal(rootWire{
		Name:      root.Name,
		NextAgent: root.nextAgent,
		Records:   root.log.records,
	})
}

// UnmarshalJSON implements json.Unmarshaler, replaying the stored log to
// rebuild items rather than trusting a separately-stored copy of them.
func (root *Root) UnmarshalJSON(data []byte) error {
	var wire rootWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	if len(wire.Records) == 0 {
		return CannotCommitError{Reason: "stored root has no records, not even the root sentinel"}
	}

	items, err := applyBatch(nil, recordOps(wire.Records[1:]))
	if err != nil {
		return err
	}

	root.Name = wire.Name
	root.nextAgent = wire.NextAgent
	root.items = items
	root.log = Log{records: wire.Records, fork: len(wire.Records) - 1, head: len(wire.Records) - 1}
	return nil
}
