package nlu

import (
	"strings"
	"testing"

	"github.com/drivelane/showroom/internal/catalog"
	"github.com/drivelane/showroom/internal/domain/vehicle"
)

func testIndex() *catalog.Index {
	return catalog.NewIndex([]vehicle.Vehicle{
		{
			ID: "camry", Make: "Toyota", Model: "Camry", Trim: "LE Hybrid",
			MSRP: 30000,
			ColorList: []vehicle.ColorVariant{
				{Name: "Blueprint", Code: "8X8"},
				{Name: "Wind Chill Pearl", Code: "089"},
			},
			Description: "Efficient midsize sedan.",
		},
		{
			ID: "accord", Make: "Honda", Model: "Accord", Trim: "Hybrid",
			MSRP: 32000,
			ColorList: []vehicle.ColorVariant{
				{Name: "Lunar Silver Metallic", Code: "SM"},
				{Name: "Still Night Pearl", Code: "BP"},
			},
			Description: "Refined midsize sedan.",
		},
		{
			ID: "rav4", Make: "Toyota", Model: "RAV4", Trim: "XLE",
			MSRP:        31500,
			Description: "Popular compact SUV.",
		},
	})
}

func TestParseComparison_VsSeparator(t *testing.T) {
	cmp := ParseComparison("blue Camry vs silver Accord", testIndex())
	if cmp == nil {
		t.Fatal("expected a comparison")
	}

	if !cmp.First.Resolved() || cmp.First.Vehicle.ID != "camry" {
		t.Fatalf("first subject = %+v, want camry", cmp.First)
	}
	if !cmp.Second.Resolved() || cmp.Second.Vehicle.ID != "accord" {
		t.Fatalf("second subject = %+v, want accord", cmp.Second)
	}

	if cmp.First.Color == nil || cmp.First.Color.Name != "Blueprint" {
		t.Errorf("first color = %+v, want Blueprint", cmp.First.Color)
	}
	if cmp.Second.Color == nil || cmp.Second.Color.Name != "Lunar Silver Metallic" {
		t.Errorf("second color = %+v, want Lunar Silver Metallic", cmp.Second.Color)
	}
}

func TestParseComparison_BareCompare(t *testing.T) {
	cmp := ParseComparison("compare camery and accord", testIndex())
	if cmp == nil {
		t.Fatal("expected a comparison")
	}
	if !cmp.First.Resolved() || cmp.First.Vehicle.Model != "Camry" {
		t.Errorf("first subject = %+v, want Camry via alias", cmp.First)
	}
	if !cmp.Second.Resolved() || cmp.Second.Vehicle.Model != "Accord" {
		t.Errorf("second subject = %+v, want Accord", cmp.Second)
	}
}

func TestParseComparison_SingleSubject(t *testing.T) {
	cmp := ParseComparison("compare the camry", testIndex())
	if cmp == nil {
		t.Fatal("expected a comparison")
	}
	if !cmp.First.Resolved() {
		t.Error("first subject should resolve")
	}
	if cmp.Second.Resolved() {
		t.Error("second subject should stay unresolved")
	}
}

func TestParseComparison_UnresolvedSubject(t *testing.T) {
	cmp := ParseComparison("the red one vs the blue one", testIndex())
	if cmp == nil {
		t.Fatal("split should still succeed")
	}
	if cmp.First.Resolved() || cmp.Second.Resolved() {
		t.Error("junk subjects must not resolve to vehicles")
	}
	// Bare colors still surface for presentation.
	if cmp.Second.Color == nil || cmp.Second.Color.Name != "blue" {
		t.Errorf("second color = %+v, want bare blue", cmp.Second.Color)
	}
}

func TestParseComparison_NotAComparison(t *testing.T) {
	if cmp := ParseComparison("show me a red suv", testIndex()); cmp != nil {
		t.Errorf("expected nil, got %+v", cmp)
	}
}

func TestSplitComparison_CaseFoldingChangesByteLength(t *testing.T) {
	// "Ⱥ" grows and "İ" shrinks under ToLower, so separator offsets
	// found in the lowered text must never slice the original bytes.
	first, second, ok := splitComparison(strings.Repeat("Ⱥ", 10) + " vs camry")
	if !ok {
		t.Fatal("expected a split")
	}
	if first != strings.Repeat("ⱥ", 10) {
		t.Errorf("first = %q, want ten lowered runes", first)
	}
	if second != "camry" {
		t.Errorf("second = %q, want camry", second)
	}

	first, second, ok = splitComparison("İİİ Camry vs Accord")
	if !ok {
		t.Fatal("expected a split")
	}
	if !strings.HasSuffix(first, "camry") {
		t.Errorf("first = %q, want a camry subject", first)
	}
	if second != "accord" {
		t.Errorf("second = %q, want accord", second)
	}
}

func TestParseComparison_MixedCaseSubjects(t *testing.T) {
	cmp := ParseComparison("Blue CAMRY Vs Silver ACCORD", testIndex())
	if cmp == nil {
		t.Fatal("expected a comparison")
	}
	if !cmp.First.Resolved() || cmp.First.Vehicle.ID != "camry" {
		t.Errorf("first subject = %+v, want camry", cmp.First)
	}
	if !cmp.Second.Resolved() || cmp.Second.Vehicle.ID != "accord" {
		t.Errorf("second subject = %+v, want accord", cmp.Second)
	}
}

func TestSplitComparison_FirstSeparatorWins(t *testing.T) {
	first, second, ok := splitComparison("camry vs accord vs rav4")
	if !ok {
		t.Fatal("expected a split")
	}
	if first != "camry" {
		t.Errorf("first = %q, want camry", first)
	}
	// Two-way only: the trailing separator stays inside the second subject.
	if second != "accord vs rav4" {
		t.Errorf("second = %q, want %q", second, "accord vs rav4")
	}
}
