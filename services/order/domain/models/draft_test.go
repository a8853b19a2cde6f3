package models

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestOrderDraft_MarshalJSON(t *testing.T) {
	toppings, err := NewToppingSet("3", "1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	d := OrderDraft{FullName: "Alice", Size: "M", Toppings: toppings}

	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("json.Marshal failed: %v", err)
	}

	want := `{"fullName":"Alice","size":"M","toppings":["1","3"]}`
	if string(data) != want {
		t.Fatalf("expected %s, got %s", want, data)
	}
}

func TestOrderDraft_MarshalJSON_EmptyToppingsIsArray(t *testing.T) {
	data, err := json.Marshal(NewDraft())
	if err != nil {
		t.Fatalf("json.Marshal failed: %v", err)
	}
	want := `{"fullName":"","size":"","toppings":[]}`
	if string(data) != want {
		t.Fatalf("expected %s, got %s", want, data)
	}
}

func TestOrderDraft_UnmarshalJSON(t *testing.T) {
	var d OrderDraft
	if err := json.Unmarshal([]byte(`{"fullName":"Bob","size":"L","toppings":["2","2","4"]}`), &d); err != nil {
		t.Fatalf("json.Unmarshal failed: %v", err)
	}
	if d.FullName != "Bob" || d.Size != "L" {
		t.Fatalf("unexpected scalars: %+v", d)
	}
	if diff := cmp.Diff([]string{"2", "4"}, d.Toppings.IDs()); diff != "" {
		t.Fatalf("toppings mismatch (-want +got):\n%s", diff)
	}
}

func TestOrderDraft_UnmarshalJSON_UnknownTopping(t *testing.T) {
	var d OrderDraft
	if err := json.Unmarshal([]byte(`{"toppings":["9"]}`), &d); err == nil {
		t.Fatal("expected error for unknown topping id")
	}
}

func TestOrderDraft_IsEmpty(t *testing.T) {
	if !NewDraft().IsEmpty() {
		t.Fatal("new draft must be empty")
	}
	if (OrderDraft{Size: "S"}).IsEmpty() {
		t.Fatal("draft with size must not be empty")
	}
}

func TestSubmissionResult(t *testing.T) {
	if NoResult().Succeeded() || NoResult().Failed() {
		t.Fatal("NoResult must be neither success nor failure")
	}
	if !Success("ok").Succeeded() {
		t.Fatal("Success must succeed")
	}
	if !Failure("nope").Failed() {
		t.Fatal("Failure must fail")
	}
}
