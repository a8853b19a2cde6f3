package models

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefaultMenu_Toppings(t *testing.T) {
	want := []Topping{
		{ID: "1", Label: "Pepperoni"},
		{ID: "2", Label: "Green Peppers"},
		{ID: "3", Label: "Pineapple"},
		{ID: "4", Label: "Mushrooms"},
		{ID: "5", Label: "Ham"},
	}
	if diff := cmp.Diff(want, DefaultMenu().Toppings); diff != "" {
		t.Fatalf("toppings mismatch (-want +got):\n%s", diff)
	}
}

func TestDefaultMenu_SizeLabels(t *testing.T) {
	menu := DefaultMenu()
	for code, label := range map[Size]string{SizeSmall: "Small", SizeMedium: "Medium", SizeLarge: "Large"} {
		if got := menu.SizeLabel(code); got != label {
			t.Errorf("SizeLabel(%q) = %q, want %q", code, got, label)
		}
	}
	if got := menu.SizeLabel("XL"); got != "" {
		t.Errorf("SizeLabel(XL) = %q, want empty", got)
	}
}

func TestMenu_Topping(t *testing.T) {
	top, ok := DefaultMenu().Topping("3")
	if !ok {
		t.Fatal("expected topping 3 to exist")
	}
	if top.Label != "Pineapple" {
		t.Fatalf("expected Pineapple, got %q", top.Label)
	}
	if _, ok := DefaultMenu().Topping("6"); ok {
		t.Fatal("topping 6 must not exist")
	}
}

func TestParseMenu_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"malformed", "toppings: [\n"},
		{"no toppings", "sizes:\n  - code: S\n    label: Small\n"},
		{"invalid size", "sizes:\n  - code: XL\n    label: Huge\ntoppings:\n  - id: \"1\"\n    label: Ham\n"},
		{"empty topping id", "toppings:\n  - id: \"\"\n    label: Ham\n"},
		{"duplicate topping id", "toppings:\n  - id: \"1\"\n    label: Ham\n  - id: \"1\"\n    label: Pepperoni\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseMenu([]byte(tt.yaml)); err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}
