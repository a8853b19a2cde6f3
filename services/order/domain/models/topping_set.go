package models

import (
	"fmt"
	"sort"
)

// ToppingSet is an immutable set of topping ids. Add and Remove return a new
// set so OrderDraft values can be copied freely.
type ToppingSet struct {
	ids map[string]struct{}
}

// NewToppingSet builds a set from ids, rejecting ids outside the default menu.
// Duplicates collapse.
func NewToppingSet(ids ...string) (ToppingSet, error) {
	s := ToppingSet{}
	for _, id := range ids {
		next, err := s.Add(id)
		if err != nil {
			return ToppingSet{}, err
		}
		s = next
	}
	return s, nil
}

// Add returns the union of s and {id}.
func (s ToppingSet) Add(id string) (ToppingSet, error) {
	if !DefaultMenu().HasTopping(id) {
		return s, fmt.Errorf("topping %q is not on the menu", id)
	}
	if s.Has(id) {
		return s, nil
	}
	out := s.clone(len(s.ids) + 1)
	out.ids[id] = struct{}{}
	return out, nil
}

// Remove returns s minus {id}. Removing an absent id is a no-op.
func (s ToppingSet) Remove(id string) ToppingSet {
	if !s.Has(id) {
		return s
	}
	out := s.clone(len(s.ids))
	delete(out.ids, id)
	return out
}

// Has reports membership.
func (s ToppingSet) Has(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of toppings in the set.
func (s ToppingSet) Len() int {
	return len(s.ids)
}

// IDs returns the members in menu order. Never nil.
func (s ToppingSet) IDs() []string {
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	menu := DefaultMenu()
	sort.Slice(out, func(i, j int) bool {
		return menu.position(out[i]) < menu.position(out[j])
	})
	return out
}

// Equal reports set equality.
func (s ToppingSet) Equal(o ToppingSet) bool {
	if len(s.ids) != len(o.ids) {
		return false
	}
	for id := range s.ids {
		if !o.Has(id) {
			return false
		}
	}
	return true
}

func (s ToppingSet) clone(capacity int) ToppingSet {
	out := ToppingSet{ids: make(map[string]struct{}, capacity)}
	for id := range s.ids {
		out.ids[id] = struct{}{}
	}
	return out
}
