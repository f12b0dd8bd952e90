package core

import "testing"

func TestPriority_Valid(t *testing.T) {
	for _, p := range []Priority{PriorityLow, PriorityMedium, PriorityHigh} {
		if !p.Valid() {
			t.Errorf("%v should be valid", p)
		}
	}
	for _, p := range []Priority{0, 4, -2} {
		if p.Valid() {
			t.Errorf("%v should be invalid", p)
		}
	}
}

func TestEnvelopeFilter_Match(t *testing.T) {
	env := Envelope{Sender: "a", Recipient: "b", Type: MessageControl}

	cases := []struct {
		name   string
		filter EnvelopeFilter
		want   bool
	}{
		{"empty matches everything", EnvelopeFilter{}, true},
		{"sender match", EnvelopeFilter{Sender: "a"}, true},
		{"sender mismatch", EnvelopeFilter{Sender: "x"}, false},
		{"all fields match", EnvelopeFilter{Sender: "a", Recipient: "b", Type: MessageControl}, true},
		{"type mismatch", EnvelopeFilter{Sender: "a", Type: MessageConversational}, false},
	}
	for _, tc := range cases {
		if got := tc.filter.Match(env); got != tc.want {
			t.Errorf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestDelegation_Completion(t *testing.T) {
	d := Delegation{ID: "d1", Delegator: "lead", Tasks: []Task{
		{Description: "one", Assignee: "b"},
		{Description: "two", Assignee: "c"},
		{Description: "three", Assignee: "b"},
	}}

	if d.Complete() {
		t.Error("fresh delegation should be incomplete")
	}
	if got := d.Remaining(); got != 3 {
		t.Errorf("Remaining = %d, want 3", got)
	}

	d.Tasks[2].Done = true
	d.Tasks[0].Done = true
	if d.Complete() {
		t.Error("delegation with a pending task should be incomplete")
	}
	d.Tasks[1].Done = true
	if !d.Complete() {
		t.Error("delegation with all tasks done should be complete")
	}

	// No tasks means never complete; emptiness is rejected upstream.
	if (Delegation{}).Complete() {
		t.Error("empty delegation should not report complete")
	}
}

func TestDelegation_AssigneesDistinctOrdered(t *testing.T) {
	d := Delegation{Tasks: []Task{
		{Assignee: "b"}, {Assignee: "c"}, {Assignee: "b"},
	}}
	got := d.Assignees()
	if len(got) != 2 || got[0] != "b" || got[1] != "c" {
		t.Errorf("Assignees = %v, want [b c]", got)
	}
}

func TestDelegation_CloneIsIndependent(t *testing.T) {
	d := Delegation{Tasks: []Task{{Description: "one"}}}
	clone := d.Clone()
	clone.Tasks[0].Done = true
	if d.Tasks[0].Done {
		t.Error("mutating the clone must not change the original")
	}
}

func TestManifest_HasCapabilityAndClone(t *testing.T) {
	m := Manifest{Name: "scout", Capabilities: []string{"search", "search", "summarize"}}
	if !m.HasCapability("search") || !m.HasCapability("summarize") {
		t.Error("declared capabilities should match")
	}
	if m.HasCapability("paint") {
		t.Error("undeclared capability should not match")
	}

	clone := m.Clone()
	clone.Capabilities[0] = "mutated"
	if m.Capabilities[0] != "search" {
		t.Error("mutating the clone must not change the original")
	}
}

func TestEventPayload_TypeTags(t *testing.T) {
	// payload variant -> taxonomy tag, the contract observers switch on
	cases := map[EventType]EventPayload{
		EventFloorRequest:      FloorRequested{},
		EventFloorGranted:      FloorGranted{},
		EventFloorYielded:      FloorYielded{},
		EventEnvelopeCreated:   EnvelopeCreated{},
		EventEnvelopeDelivered: EnvelopeDelivered{},
		EventTaskDelegation:    TaskDelegated{},
		EventTaskCompleted:     TaskCompleted{},
		EventManifestPublished: ManifestPublished{},
		EventProcessingError:   ProcessingError{},
	}
	for want, payload := range cases {
		if got := payload.EventType(); got != want {
			t.Errorf("%T.EventType() = %s, want %s", payload, got, want)
		}
	}
}
