package search

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/drivelane/showroom/internal/catalog"
	"github.com/drivelane/showroom/internal/domain/query"
	"github.com/drivelane/showroom/internal/domain/vehicle"
	"github.com/drivelane/showroom/internal/nlu"
)

func testIndex() *catalog.Index {
	return catalog.NewIndex([]vehicle.Vehicle{
		{
			ID: "camry", Make: "Toyota", Model: "Camry", Trim: "LE Hybrid",
			MSRP: 30000, BodyType: "Sedan", FuelType: "Hybrid", Electrified: true,
			MPG: vehicle.Mileage{Combined: 51},
		},
		{
			ID: "accord", Make: "Honda", Model: "Accord", Trim: "Hybrid",
			MSRP: 32000, BodyType: "Sedan", FuelType: "Hybrid", Electrified: true,
			MPG: vehicle.Mileage{Combined: 48},
		},
		{
			ID: "rav4", Make: "Toyota", Model: "RAV4", Trim: "XLE",
			MSRP: 31500, BodyType: "SUV", Category: "Compact", FuelType: "Gasoline",
			Drivetrain: "AWD",
			MPG:        vehicle.Mileage{Combined: 30},
		},
		{
			ID: "f150", Make: "Ford", Model: "F-150", Trim: "XLT",
			MSRP: 46500, BodyType: "Truck", FuelType: "Gasoline", Drivetrain: "4WD",
			MPG: vehicle.Mileage{Combined: 21},
		},
	})
}

func newService(t *testing.T) *Service {
	t.Helper()
	idx := testIndex()
	return New(nlu.NewParser(idx), idx, zap.NewNop())
}

func TestSearch_Filtered(t *testing.T) {
	svc := newService(t)

	resp, err := svc.Search(context.Background(), "hybrid sedan under $35k")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.Intent != query.IntentSearch {
		t.Errorf("intent = %s, want search", resp.Intent)
	}
	if len(resp.Vehicles) != 2 {
		t.Fatalf("expected 2 hybrid sedans, got %d: %v", len(resp.Vehicles), resp.VehicleIDs)
	}
	for _, v := range resp.Vehicles {
		if v.FuelType != "Hybrid" || v.BodyType != "Sedan" {
			t.Errorf("vehicle %s does not match the filters", v.ID)
		}
	}
	if len(resp.VehicleIDs) != len(resp.Vehicles) {
		t.Error("ids and vehicles must align")
	}
}

func TestSearch_ModelNamed(t *testing.T) {
	svc := newService(t)

	resp, err := svc.Search(context.Background(), "toyota camry")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Vehicles) != 1 || resp.Vehicles[0].ID != "camry" {
		t.Errorf("expected only the camry, got %v", resp.VehicleIDs)
	}
	if resp.Filters.Model == nil || *resp.Filters.Model != "Camry" {
		t.Errorf("model filter = %v, want Camry", resp.Filters.Model)
	}
}

func TestSearch_MakeOnly(t *testing.T) {
	svc := newService(t)

	resp, err := svc.Search(context.Background(), "show me toyota cars")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Filters.Model != nil {
		t.Errorf("make-only query set model filter %q", *resp.Filters.Model)
	}
	if resp.Filters.Make == nil || *resp.Filters.Make != "Toyota" {
		t.Fatalf("make filter = %v, want Toyota", resp.Filters.Make)
	}
	if len(resp.Vehicles) != 2 {
		t.Fatalf("expected both Toyotas, got %v", resp.VehicleIDs)
	}
	for _, v := range resp.Vehicles {
		if v.Make != "Toyota" {
			t.Errorf("vehicle %s is not a Toyota", v.ID)
		}
	}
}

func TestSearch_UnconstrainedReturnsEverything(t *testing.T) {
	svc := newService(t)

	resp, err := svc.Search(context.Background(), "what do you have")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Vehicles) != 4 {
		t.Errorf("unconstrained query should return the whole catalog, got %d", len(resp.Vehicles))
	}
}

func TestSearch_Limit(t *testing.T) {
	svc := newService(t).WithLimit(1)

	resp, err := svc.Search(context.Background(), "what do you have")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Vehicles) != 1 {
		t.Errorf("expected limit of 1, got %d", len(resp.Vehicles))
	}
}

func TestSearch_NoMatches(t *testing.T) {
	svc := newService(t)

	resp, err := svc.Search(context.Background(), "diesel minivan")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Vehicles) != 0 {
		t.Errorf("expected no matches, got %v", resp.VehicleIDs)
	}
}
