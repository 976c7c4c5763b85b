package list

import (
	"encoding/json"
	"time"
)

// Record is an Operation tagged with a monotonic per-log sequence number
// and a wall-clock timestamp.
type Record struct {
	ID        uint32
	Stamp     time.Time
	Operation Operation
}

// newRecord timestamps operation with the current time, the way
// txlogs.appendLog stamps every Tx it appends.
func newRecord(id uint32, operation Operation) Record {
	return Record{ID: id, Stamp: time.Now().UTC(), Operation: operation}
}

// rootRecord is the sentinel record every fresh log starts with.
func rootRecord() Record {
	return Record{ID: 0, Stamp: time.Now().UTC(), Operation: RootOp{}}
}

type recordWire struct {
	ID        uint32          `json:"id"`
	Stamp     time.Time       `json:"stamp"`
	Operation json.RawMessage `json:"operation"`
}

// MarshalJSON encodes the operation with its external tag alongside the
// record's id and timestamp.
func (r Record) MarshalJSON() ([]byte, error) {
	opBytes, err := marshalOperation(r.Operation)
	if err != nil {
		return nil, err
	}
	return json.Marshal(recordWire{ID: r.ID, Stamp: r.Stamp, Operation: opBytes})
}

// UnmarshalJSON decodes a record and its tagged operation.
func (r *Record) UnmarshalJSON(data []byte) error {
	var wire recordWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	op, err := unmarshalOperation(wire.Operation)
	if err != nil {
		return err
	}
	r.ID = wire.ID
	r.Stamp = wire.Stamp
	r.Operation = op
	return nil
}

// Log is an ordered sequence of records with two cursors: fork (the last
// record known to be committed) and head (the current position; records in
// (fork, head] are local, unconfirmed operations).
type Log struct {
	records []Record
	fork    int
	head    int
}

// newLog builds a log containing exactly one record: the fork anchor a
// fresh Snapshot starts from, or the Root sentinel for a brand-new root.
func newLog(record Record) Log {
	return Log{records: []Record{record}, fork: 0, head: 0}
}

// Head returns the current head record.
func (l *Log) Head() Record {
	return l.records[l.head]
}

// Len returns the number of records in the log.
func (l *Log) Len() int {
	return len(l.records)
}

// Fork returns the fork-cursor record.
func (l *Log) Fork() Record {
	return l.records[l.fork]
}

// AtHead reports whether head is at the end of the log, the precondition
// for push and the invariant a Root's log always holds.
func (l *Log) AtHead() bool {
	return l.head == len(l.records)-1
}

// discardRedoTail drops every record after head, invalidating any pending
// redo. A new local edit after an undo takes this branch rather than
// erroring, the same way most editors retire the redo stack on a fresh
// edit; it is what keeps push's "head == last" precondition satisfiable by
// ordinary Replica use instead of turning every post-undo edit into a
// caller-visible error.
func (l *Log) discardRedoTail() {
	if l.AtHead() {
		return
	}
	l.records = l.records[:l.head+1]
}

// push appends a new record built from operation and advances head. It
// panics via InvariantViolation if head is not at the end of the log: every
// Replica call site calls discardRedoTail immediately beforehand and a
// Root's log is always at head, so reaching here with head behind the end
// is this package's own bug.
func (l *Log) push(operation Operation) Record {
	if !l.AtHead() {
		panic(InvariantViolation{What: "push called with head not at the end of the log"})
	}
	record := newRecord(l.records[len(l.records)-1].ID+1, operation)
	l.records = append(l.records, record)
	l.head++
	return record
}

// canUndo reports whether head can retreat without passing fork.
func (l *Log) canUndo() bool {
	return l.head > l.fork
}

// canRedo reports whether head can advance without passing the log's end.
func (l *Log) canRedo() bool {
	return l.head < len(l.records)-1
}

// undoOperation returns the operation that would be reverted by an undo,
// without mutating the log. The caller reverts it against its own state
// first and only calls retreatHead once that succeeds, so a failed revert
// never leaves the log's cursor out of sync with the items it describes.
func (l *Log) undoOperation() (Operation, error) {
	if !l.canUndo() {
		return nil, NoMoreOpsError{Redo: false}
	}
	return l.records[l.head].Operation, nil
}

// retreatHead commits the head decrement for a successful undo.
func (l *Log) retreatHead() {
	l.head--
}

// redoOperation returns the operation that would be (re)applied by a redo,
// without mutating the log; see undoOperation for why this is split from
// the cursor move.
func (l *Log) redoOperation() (Operation, error) {
	if !l.canRedo() {
		return nil, NoMoreOpsError{Redo: true}
	}
	return l.records[l.head+1].Operation, nil
}

// advanceHead commits the head increment for a successful redo.
func (l *Log) advanceHead() {
	l.head++
}

// advanceFork moves fork one step closer to head. Exposed for callers that
// track acknowledgement themselves; Root.Commit does not need it since the
// root's fork and head are always equal.
func (l *Log) advanceFork() error {
	if l.fork >= l.head {
		return NoMoreOpsError{Redo: true}
	}
	l.fork++
	return nil
}

// changesToCommit returns records[fork..=head]: the fork anchor followed by
// every local, unconfirmed operation, in order.
func (l *Log) changesToCommit() []Record {
	out := make([]Record, l.head-l.fork+1)
	copy(out, l.records[l.fork:l.head+1])
	return out
}

// changesSince returns the records strictly after the one with the given
// id. CannotCommitError if the id is not present: a commit's anchor must be
// a record the root has actually seen, and a caller-supplied anchor the
// root never produced is a commit-level failure, not a bug in this package.
func (l *Log) changesSince(anchorID uint32) ([]Record, error) {
	for i, r := range l.records {
		if r.ID == anchorID {
			out := make([]Record, len(l.records)-i-1)
			copy(out, l.records[i+1:])
			return out, nil
		}
	}
	return nil, CannotCommitError{Reason: "fork anchor is not a record this root has seen"}
}
