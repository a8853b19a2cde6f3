package main

import (
	"context"
	"testing"
	"time"

	"github.com/ghuser/pizzaorder/services/order/application/controller"
	"github.com/ghuser/pizzaorder/services/order/domain/gateways"
	"github.com/ghuser/pizzaorder/services/order/domain/models"
	domainsvcs "github.com/ghuser/pizzaorder/services/order/domain/services"
)

func newController() *controller.Controller {
	return controller.New(gateways.GatewayFunc(func(context.Context, models.OrderDraft) (*models.Receipt, error) {
		return &models.Receipt{Message: "ok"}, nil
	}))
}

func TestApply(t *testing.T) {
	menu := models.DefaultMenu()
	ctrl := newController()
	if err := ctrl.OnFieldChange(domainsvcs.FieldFullName, "Jane Doe", false, false); err != nil {
		t.Fatalf("name: %v", err)
	}

	if err := apply(ctrl, menu, "Large", []string{"Ham", "Pepperoni"}); err != nil {
		t.Fatalf("apply: %v", err)
	}
	st := ctrl.State()
	if st.Draft.Size != "L" {
		t.Errorf("size: got %q", st.Draft.Size)
	}
	if got := st.Draft.Toppings.IDs(); len(got) != 2 || got[0] != "1" || got[1] != "5" {
		t.Errorf("toppings: got %v", got)
	}
	if !ctrl.SubmitEnabled() {
		t.Error("expected submit to be enabled")
	}
}

func TestApply_UnknownTopping(t *testing.T) {
	if err := apply(newController(), models.DefaultMenu(), "Small", []string{"Anchovies"}); err == nil {
		t.Fatal("expected error for unknown topping label")
	}
}

func TestSummary(t *testing.T) {
	menu := models.DefaultMenu()
	tests := []struct {
		name     string
		toppings []string
		want     string
	}{
		{"no toppings", nil, "Jane Doe, Medium, no toppings"},
		{"two toppings", []string{"4", "2"}, "Jane Doe, Medium, with Green Peppers, Mushrooms"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := models.NewToppingSet(tt.toppings...)
			if err != nil {
				t.Fatalf("toppings: %v", err)
			}
			got := summary(menu, models.OrderDraft{FullName: "Jane Doe", Size: "M", Toppings: set})
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRootCmd_Flags(t *testing.T) {
	cmd := newRootCmd()
	if err := cmd.ParseFlags([]string{"--endpoint", "https://orders.example.com/api/order", "--timeout", "3s"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	if got, _ := cmd.Flags().GetString("endpoint"); got != "https://orders.example.com/api/order" {
		t.Errorf("endpoint: got %q", got)
	}
	if got, _ := cmd.Flags().GetDuration("timeout"); got != 3*time.Second {
		t.Errorf("timeout: got %v", got)
	}
}
