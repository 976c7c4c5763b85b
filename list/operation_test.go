package list

import (
	"encoding/json"
	"reflect"
	"testing"
)

func f32(f float32) *float32 { return &f }

func TestMarshalOperationRoot(t *testing.T) {
	data, err := marshalOperation(RootOp{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != `"Root"` {
		t.Fatalf("want %q, got %q", `"Root"`, string(data))
	}

	op, err := unmarshalOperation(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := op.(RootOp); !ok {
		t.Fatalf("want RootOp, got %T", op)
	}
}

func TestOperationWireRoundTrip(t *testing.T) {
	item := Item{ID: NewID(1, 2), Value: "milk", Order: f32(1)}
	other := Item{ID: NewID(1, 3), Value: "eggs", Order: f32(2)}

	tests := []struct {
		Name string
		Op   Operation
	}{
		{"add", AddOp{Item: item}},
		{"remove", RemoveOp{Loc: 3, Item: item}},
		{"edit", EditOp{Old: item, New: other}},
		{"moveto", MoveToOp{ID: item.ID, OldLoc: 1, NewLoc: 4}},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			data, err := marshalOperation(test.Op)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}

			got, err := unmarshalOperation(data)
			if err != nil {
				t.Fatalf("unmarshal: %v", err)
			}

			if !reflect.DeepEqual(got, test.Op) {
				t.Fatalf("round-trip mismatch: want %#v, got %#v", test.Op, got)
			}
		})
	}
}

func TestOperationWireShape(t *testing.T) {
	item := Item{ID: NewID(1, 2), Value: "milk"}

	tests := []struct {
		Name string
		Op   Operation
		Want string
	}{
		{"add", AddOp{Item: item}, `{"Add":{"id":"1:2","value":"milk","done":false}}`},
		{"remove", RemoveOp{Loc: 0, Item: item}, `{"Remove":[0,{"id":"1:2","value":"milk","done":false}]}`},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			data, err := marshalOperation(test.Op)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			if string(data) != test.Want {
				t.Fatalf("want %s, got %s", test.Want, string(data))
			}
		})
	}
}

func TestRecordJSONRoundTrip(t *testing.T) {
	item := Item{ID: NewID(2, 1), Value: "bread", Order: f32(1)}
	rec := newRecord(5, AddOp{Item: item})

	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var got Record
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if got.ID != rec.ID {
		t.Fatalf("ID mismatch: want %d, got %d", rec.ID, got.ID)
	}
	if !got.Stamp.Equal(rec.Stamp) {
		t.Fatalf("Stamp mismatch: want %v, got %v", rec.Stamp, got.Stamp)
	}
	gotAdd, ok := got.Operation.(AddOp)
	if !ok {
		t.Fatalf("want AddOp, got %T", got.Operation)
	}
	if gotAdd.Item.ID != item.ID || gotAdd.Item.Value != item.Value {
		t.Fatalf("Operation mismatch: want %#v, got %#v", item, gotAdd.Item)
	}
}

func TestRemapOperation(t *testing.T) {
	from := NewID(2, 1)
	to := NewID(1, 1)
	remap := map[ID]ID{from: to}

	tests := []struct {
		Name string
		In   Operation
		Want Operation
	}{
		{"add", AddOp{Item: Item{ID: from, Value: "x"}}, AddOp{Item: Item{ID: to, Value: "x"}}},
		{"moveto", MoveToOp{ID: from, OldLoc: 0, NewLoc: 1}, MoveToOp{ID: to, OldLoc: 0, NewLoc: 1}},
		{"unrelated", AddOp{Item: Item{ID: NewID(9, 9), Value: "y"}}, AddOp{Item: Item{ID: NewID(9, 9), Value: "y"}}},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			got := remapOperation(test.In, remap)
			if got != test.Want {
				t.Fatalf("want %#v, got %#v", test.Want, got)
			}
		})
	}
}
