package nlu

import (
	"reflect"
	"testing"

	"github.com/drivelane/showroom/internal/domain/query"
)

func TestParser_Parse_Search(t *testing.T) {
	p := NewParser(testIndex())

	res := p.Parse("blue camry under $30k")

	if res.Intent != query.IntentSearch {
		t.Errorf("intent = %s, want search", res.Intent)
	}
	if res.Filters.Model == nil || *res.Filters.Model != "Camry" {
		t.Errorf("model = %v, want Camry", res.Filters.Model)
	}
	if res.Filters.Make == nil || *res.Filters.Make != "Toyota" {
		t.Errorf("make = %v, want Toyota", res.Filters.Make)
	}
	if res.Filters.Color == nil || *res.Filters.Color != "blue" {
		t.Errorf("color = %v, want blue", res.Filters.Color)
	}
	if res.Filters.Price == nil || res.Filters.Price.Max == nil || *res.Filters.Price.Max != 30000 {
		t.Errorf("price = %+v, want max 30000", res.Filters.Price)
	}
	if res.Comparison != nil {
		t.Error("search parse must not carry a comparison")
	}

	// Vehicle + color + price on top of the base: the cap applies.
	if res.Confidence != 1.0 {
		t.Errorf("confidence = %g, want 1.0", res.Confidence)
	}
}

func TestParser_Parse_Compare(t *testing.T) {
	p := NewParser(testIndex())

	res := p.Parse("camry vs accord")

	if res.Intent != query.IntentCompare {
		t.Fatalf("intent = %s, want compare", res.Intent)
	}
	if res.Comparison == nil {
		t.Fatal("expected a comparison")
	}
	if !res.Comparison.First.Resolved() || !res.Comparison.Second.Resolved() {
		t.Error("both subjects should resolve")
	}
	if res.Confidence != 0.8 {
		t.Errorf("confidence = %g, want 0.8", res.Confidence)
	}
}

func TestParser_Parse_BaseConfidence(t *testing.T) {
	p := NewParser(testIndex())

	res := p.Parse("something entirely unrelated")
	if res.Confidence != 0.5 {
		t.Errorf("confidence = %g, want base 0.5", res.Confidence)
	}
}

func TestParser_Parse_Deterministic(t *testing.T) {
	p := NewParser(testIndex())

	a := p.Parse("blue camry vs silver accord under $35k")
	b := p.Parse("blue camry vs silver accord under $35k")
	if !reflect.DeepEqual(a, b) {
		t.Errorf("same input produced different parses:\n%+v\n%+v", a, b)
	}
}
