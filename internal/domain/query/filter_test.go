package query

import (
	"testing"

	"github.com/drivelane/showroom/internal/domain/vehicle"
)

func fptr(v float64) *float64 { return &v }
func sptr(v string) *string   { return &v }
func iptr(v int) *int         { return &v }
func bptr(v bool) *bool       { return &v }

func TestPriceRange_Contains(t *testing.T) {
	tests := []struct {
		name  string
		r     PriceRange
		price float64
		want  bool
	}{
		{"unbounded", PriceRange{}, 99999, true},
		{"within max", PriceRange{Max: fptr(30000)}, 28000, true},
		{"above max", PriceRange{Max: fptr(30000)}, 31000, false},
		{"at max", PriceRange{Max: fptr(30000)}, 30000, true},
		{"below min", PriceRange{Min: fptr(60000)}, 45000, false},
		{"in range", PriceRange{Min: fptr(25000), Max: fptr(35000)}, 30000, true},
		{"out of range", PriceRange{Min: fptr(25000), Max: fptr(35000)}, 40000, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.Contains(tt.price); got != tt.want {
				t.Errorf("Contains(%g) = %v, want %v", tt.price, got, tt.want)
			}
		})
	}
}

func TestFilterSet_IsEmpty(t *testing.T) {
	if !(FilterSet{}).IsEmpty() {
		t.Error("zero FilterSet should be empty")
	}
	if (FilterSet{Make: sptr("Toyota")}).IsEmpty() {
		t.Error("FilterSet with make should not be empty")
	}
}

func TestFilterSet_Matches(t *testing.T) {
	camry := vehicle.Vehicle{
		ID:          "camry",
		Make:        "Toyota",
		Model:       "Camry",
		BodyType:    "Sedan",
		Category:    "Midsize",
		FuelType:    "Hybrid",
		Drivetrain:  "FWD",
		Electrified: true,
		MSRP:        30000,
		MPG:         vehicle.Mileage{Combined: 51},
		ColorList: []vehicle.ColorVariant{
			{Name: "Blueprint", Code: "8X8"},
		},
	}

	tests := []struct {
		name string
		f    FilterSet
		want bool
	}{
		{"empty matches everything", FilterSet{}, true},
		{"type case-insensitive", FilterSet{Type: sptr("sedan")}, true},
		{"type mismatch", FilterSet{Type: sptr("SUV")}, false},
		{"make", FilterSet{Make: sptr("toyota")}, true},
		{"model mismatch", FilterSet{Model: sptr("Accord")}, false},
		{"price on msrp", FilterSet{Price: &PriceRange{Max: fptr(30000)}}, true},
		{"price excludes", FilterSet{Price: &PriceRange{Max: fptr(29000)}}, false},
		{"min mpg met", FilterSet{MinMPG: iptr(50)}, true},
		{"min mpg not met", FilterSet{MinMPG: iptr(60)}, false},
		{"electrified", FilterSet{Electrified: bptr(true)}, true},
		{"color substring", FilterSet{Color: sptr("blue")}, true},
		{"color absent", FilterSet{Color: sptr("red")}, false},
		{"color by code", FilterSet{Color: sptr("8X8")}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.f.Matches(camry); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}
