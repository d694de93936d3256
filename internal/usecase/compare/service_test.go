package compare

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/drivelane/showroom/internal/catalog"
	"github.com/drivelane/showroom/internal/domain"
	"github.com/drivelane/showroom/internal/domain/vehicle"
	"github.com/drivelane/showroom/internal/nlu"
)

func testIndex() *catalog.Index {
	return catalog.NewIndex([]vehicle.Vehicle{
		{
			ID: "camry", Make: "Toyota", Model: "Camry", Trim: "LE Hybrid",
			MSRP:   30000,
			Engine: vehicle.Engine{Horsepower: 225},
			MPG:    vehicle.Mileage{Combined: 51},
			ColorList: []vehicle.ColorVariant{
				{Name: "Blueprint", Code: "8X8"},
			},
		},
		{
			ID: "accord", Make: "Honda", Model: "Accord", Trim: "Hybrid",
			MSRP:   32000,
			Engine: vehicle.Engine{Horsepower: 204},
			MPG:    vehicle.Mileage{Combined: 48},
			ColorList: []vehicle.ColorVariant{
				{Name: "Lunar Silver Metallic", Code: "SM"},
			},
		},
	})
}

func newService() *Service {
	idx := testIndex()
	return New(idx, nlu.NewParser(idx), zap.NewNop())
}

func TestCompareText_Resolved(t *testing.T) {
	svc := newService()

	res, err := svc.CompareText(context.Background(), "blue camry vs silver accord")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Resolved {
		t.Fatal("expected a resolved comparison")
	}

	if res.First.Vehicle.ID != "camry" || res.Second.Vehicle.ID != "accord" {
		t.Fatalf("sides = %s / %s, want camry / accord", res.First.Vehicle.ID, res.Second.Vehicle.ID)
	}

	// Differences are second minus first.
	if res.Differences.Price != 2000 {
		t.Errorf("price difference = %g, want 2000", res.Differences.Price)
	}
	if res.Differences.CombinedMPG != -3 {
		t.Errorf("mpg difference = %d, want -3", res.Differences.CombinedMPG)
	}
	if res.Differences.Horsepower != -21 {
		t.Errorf("horsepower difference = %d, want -21", res.Differences.Horsepower)
	}

	if res.First.Color.Name != "Blueprint" {
		t.Errorf("first color = %q, want Blueprint", res.First.Color.Name)
	}
	if res.Second.Color.Name != "Lunar Silver Metallic" {
		t.Errorf("second color = %q, want Lunar Silver Metallic", res.Second.Color.Name)
	}
}

func TestCompareText_Unresolved(t *testing.T) {
	svc := newService()

	res, err := svc.CompareText(context.Background(), "compare the camry and something unknown")
	if err != nil {
		t.Fatalf("resolution failure must not be an error: %v", err)
	}
	if res.Resolved {
		t.Fatal("expected an unresolved comparison")
	}
	if len(res.Suggestions) > MaxSuggestions {
		t.Errorf("suggestions = %d, want at most %d", len(res.Suggestions), MaxSuggestions)
	}
}

func TestCompareByIDs(t *testing.T) {
	svc := newService()

	res, err := svc.CompareByIDs(context.Background(), "camry", "accord", "blue", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Resolved {
		t.Fatal("expected a resolved comparison")
	}
	if res.Differences.Price != 2000 {
		t.Errorf("price difference = %g, want 2000", res.Differences.Price)
	}
	if res.First.Color.Name != "Blueprint" {
		t.Errorf("first color = %q, want Blueprint", res.First.Color.Name)
	}
	// No color requested: the first variant wins.
	if res.Second.Color.Name != "Lunar Silver Metallic" {
		t.Errorf("second color = %q, want Lunar Silver Metallic", res.Second.Color.Name)
	}
}

func TestCompareByIDs_NotFound(t *testing.T) {
	svc := newService()

	_, err := svc.CompareByIDs(context.Background(), "camry", "missing", "", "")
	if !errors.Is(err, domain.ErrVehicleNotFound) {
		t.Errorf("expected ErrVehicleNotFound, got %v", err)
	}
}
