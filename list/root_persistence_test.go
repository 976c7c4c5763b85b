package list

import "testing"

func TestRootJSONRoundTrip(t *testing.T) {
	root := NewRoot("groceries")
	r := root.Snapshot()
	r.Add("milk")
	r.Add("eggs")
	if _, err := root.Commit(r.ChangesToCommit()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := root.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	loaded := new(Root)
	if err := loaded.UnmarshalJSON(data); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if loaded.Name != root.Name {
		t.Fatalf("want name %q, got %q", root.Name, loaded.Name)
	}
	if !sliceEqual(itemValues(loaded.Items()), itemValues(root.Items())) {
		t.Fatalf("want items %v, got %v", itemValues(root.Items()), itemValues(loaded.Items()))
	}

	// A snapshot from the reloaded root must mint an agent distinct from
	// any handed out before persisting.
	snap := loaded.Snapshot()
	if snap.Agent() != root.nextAgent {
		t.Fatalf("want the reloaded root to continue the agent sequence at %d, got %d", root.nextAgent, snap.Agent())
	}
}

func TestRootUnmarshalRejectsEmptyRecords(t *testing.T) {
	loaded := new(Root)
	err := loaded.UnmarshalJSON([]byte(`{"name":"x","next_agent":1,"records":[]}`))
	if !IsCannotCommit(err) {
		t.Fatalf("want CannotCommitError, got %v", err)
	}
}
