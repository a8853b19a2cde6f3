package models

import (
	"encoding/json"
	"fmt"
)

// OrderDraft is the in-progress, not yet submitted form state.
type OrderDraft struct {
	FullName string
	Size     string
	Toppings ToppingSet
}

// NewDraft returns the initial, empty draft.
func NewDraft() OrderDraft {
	return OrderDraft{}
}

// IsEmpty reports whether d equals the initial draft.
func (d OrderDraft) IsEmpty() bool {
	return d.FullName == "" && d.Size == "" && d.Toppings.Len() == 0
}

type draftJSON struct {
	FullName string   `json:"fullName"`
	Size     string   `json:"size"`
	Toppings []string `json:"toppings"`
}

// MarshalJSON encodes the draft as the order request body.
func (d OrderDraft) MarshalJSON() ([]byte, error) {
	return json.Marshal(draftJSON{
		FullName: d.FullName,
		Size:     d.Size,
		Toppings: d.Toppings.IDs(),
	})
}

// UnmarshalJSON decodes an order request body. Unknown topping ids are rejected.
func (d *OrderDraft) UnmarshalJSON(data []byte) error {
	var raw draftJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	toppings, err := NewToppingSet(raw.Toppings...)
	if err != nil {
		return fmt.Errorf("decode draft: %w", err)
	}
	*d = OrderDraft{FullName: raw.FullName, Size: raw.Size, Toppings: toppings}
	return nil
}

// FieldErrors holds per-field validation messages; "" means no error.
type FieldErrors struct {
	FullName string `json:"fullName"`
	Size     string `json:"size"`
}

// Empty reports whether no field carries a message.
func (e FieldErrors) Empty() bool {
	return e.FullName == "" && e.Size == ""
}

// Receipt is the decoded body of a successful order submission.
type Receipt struct {
	Message string `json:"message"`
}
