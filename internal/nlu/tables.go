// Package nlu turns free-text shopping queries into structured filters,
// comparison targets and color selections. All matching is rule and
// fuzzy-string based; every extractor is a pure function over its input
// and a read-only catalog index.
//
// Matching order is data, not code: each concern is an ordered table in
// this file, evaluated top to bottom, first match wins.
package nlu

import (
	"regexp"

	"github.com/drivelane/showroom/internal/domain/query"
)

// colorEntry maps a canonical color to the substrings that imply it,
// including manufacturer marketing names.
type colorEntry struct {
	Canonical string
	Synonyms  []string
}

// colorTable is evaluated in order; the first canonical whose synonym
// appears in the query wins.
var colorTable = []colorEntry{
	{"black", []string{"black", "midnight", "onyx", "ebony"}},
	{"white", []string{"white", "pearl", "ivory", "wind chill"}},
	{"silver", []string{"silver", "celestial", "lunar"}},
	{"gray", []string{"gray", "grey", "graphite", "magnetic", "gunmetal"}},
	{"blue", []string{"blue", "blueprint", "reservoir", "cavalry", "navy"}},
	{"red", []string{"red", "ruby", "crimson", "scarlet", "supersonic"}},
	{"green", []string{"green", "army", "emerald"}},
	{"brown", []string{"brown", "bronze", "mocha"}},
	{"orange", []string{"orange", "solar"}},
	{"yellow", []string{"yellow"}},
	{"beige", []string{"beige", "tan", "sand"}},
}

// Qualitative price keywords and their fixed thresholds.
const (
	affordableMaxPrice = 30000
	luxuryMinPrice     = 60000
)

// priceKeyword maps a qualitative keyword onto one price bound.
type priceKeyword struct {
	Keyword string
	Min     float64 // 0 = unset
	Max     float64 // 0 = unset
}

// priceKeywordTable is evaluated first; explicit numeric patterns found
// later override the bounds it sets.
var priceKeywordTable = []priceKeyword{
	{Keyword: "affordable", Max: affordableMaxPrice},
	{Keyword: "budget", Max: affordableMaxPrice},
	{Keyword: "cheap", Max: affordableMaxPrice},
	{Keyword: "inexpensive", Max: affordableMaxPrice},
	{Keyword: "luxury", Min: luxuryMinPrice},
	{Keyword: "premium", Min: luxuryMinPrice},
	{Keyword: "high-end", Min: luxuryMinPrice},
}

// Explicit price patterns. Amounts allow comma grouping and k/thousand
// suffixes: "under $30k", "over 25,000 dollars", "$25,000-$35,000".
var (
	priceUnderRe = regexp.MustCompile(`(?:under|below|less than|at most|up to)\s*\$?([\d,]+(?:\.\d+)?)\s*(k|thousand)?`)
	priceOverRe  = regexp.MustCompile(`(?:over|above|more than|at least|starting at)\s*\$?([\d,]+(?:\.\d+)?)\s*(k|thousand)?`)
	priceRangeRe = regexp.MustCompile(`\$?([\d,]+(?:\.\d+)?)\s*(k|thousand)?\s*(?:-|to)\s*\$?([\d,]+(?:\.\d+)?)\s*(k|thousand)?`)
)

// typeEntry maps query substrings to a body type. Order matters:
// "compact suv" must be seen before bare "compact".
type typeEntry struct {
	Phrases  []string
	BodyType string
	Category string // optional extra category constraint
}

var typeTable = []typeEntry{
	{Phrases: []string{"compact suv", "small suv", "crossover"}, BodyType: "SUV", Category: "Compact"},
	{Phrases: []string{"suv", "sport utility"}, BodyType: "SUV"},
	{Phrases: []string{"sedan", "saloon"}, BodyType: "Sedan"},
	{Phrases: []string{"truck", "pickup"}, BodyType: "Truck"},
	{Phrases: []string{"compact", "hatchback"}, BodyType: "Compact"},
	{Phrases: []string{"minivan", "van"}, BodyType: "Minivan"},
}

// drivetrainTable is matched as whole tokens only, so "awd" never fires
// inside an unrelated word.
var drivetrainTable = []struct {
	Token      string
	Drivetrain string
}{
	{"awd", "AWD"},
	{"all-wheel", "AWD"},
	{"4wd", "4WD"},
	{"4x4", "4WD"},
	{"four-wheel", "4WD"},
	{"fwd", "FWD"},
	{"front-wheel", "FWD"},
	{"rwd", "RWD"},
	{"rear-wheel", "RWD"},
}

// fuelEntry maps query substrings to a fuel type. Plug-in hybrid must
// precede plain hybrid to disambiguate.
type fuelEntry struct {
	Phrases     []string
	FuelType    string
	Electrified bool
}

var fuelTable = []fuelEntry{
	{Phrases: []string{"plug-in hybrid", "plugin hybrid", "plug in hybrid", "phev"}, FuelType: "Plug-in Hybrid", Electrified: true},
	{Phrases: []string{"hybrid", "hev"}, FuelType: "Hybrid", Electrified: true},
	{Phrases: []string{"electric", " ev ", "battery"}, FuelType: "Electric", Electrified: true},
	{Phrases: []string{"gasoline", "gas engine", "petrol"}, FuelType: "Gasoline"},
	{Phrases: []string{"diesel"}, FuelType: "Diesel"},
}

// defaultMinMPG is the threshold applied when a query asks for
// efficiency without naming a number.
const defaultMinMPG = 30

var (
	mpgRe              = regexp.MustCompile(`(\d+)\s*\+?\s*mpg`)
	efficiencyKeywords = []string{"efficient", "fuel efficient", "good gas mileage", "good mileage", "economical"}
)

// makeAliases maps lowercase aliases to canonical manufacturer names.
// Matching walks makeAliasOrder, longest alias first, so "land rover"
// can never lose to a shorter alias embedded in it.
var makeAliases = map[string]string{
	"toyota":        "Toyota",
	"honda":         "Honda",
	"ford":          "Ford",
	"chevrolet":     "Chevrolet",
	"chevy":         "Chevrolet",
	"nissan":        "Nissan",
	"hyundai":       "Hyundai",
	"kia":           "Kia",
	"mazda":         "Mazda",
	"subaru":        "Subaru",
	"volkswagen":    "Volkswagen",
	"vw":            "Volkswagen",
	"bmw":           "BMW",
	"mercedes":      "Mercedes-Benz",
	"mercedes-benz": "Mercedes-Benz",
	"benz":          "Mercedes-Benz",
	"audi":          "Audi",
	"lexus":         "Lexus",
	"acura":         "Acura",
	"tesla":         "Tesla",
	"jeep":          "Jeep",
	"land rover":    "Land Rover",
	"volvo":         "Volvo",
}

// modelAliases maps common misspellings and abbreviations to canonical
// model names. An alias hit takes precedence over raw fuzzy score.
var modelAliases = map[string]string{
	"camery":    "Camry",
	"camrey":    "Camry",
	"corola":    "Corolla",
	"accrd":     "Accord",
	"acord":     "Accord",
	"civc":      "Civic",
	"rav 4":     "RAV4",
	"rav-4":     "RAV4",
	"crv":       "CR-V",
	"cr v":      "CR-V",
	"hrv":       "HR-V",
	"f150":      "F-150",
	"f 150":     "F-150",
	"4 runner":  "4Runner",
	"highlnder": "Highlander",
	"pathfnder": "Pathfinder",
}

// intentRule maps keyword patterns to an intent. The table is evaluated
// in precedence order: compare wins outright even when finance or
// search verbs are present, because a misrouted comparison produces a
// useless single-list response.
type intentRule struct {
	Intent   query.Intent
	Keywords []string
}

var intentTable = []intentRule{
	{query.IntentCompare, []string{" vs ", " vs. ", "versus", "compare", "compared to"}},
	{query.IntentFinance, []string{"payment", "lease", "finance", "financing", "loan", "afford", "monthly", "per month", "buy", "cost", "cost to own"}},
	{query.IntentFilter, []string{"only ", " with ", "must "}},
}

// comparisonSeparators split a comparison query into its two subjects,
// first occurrence wins. A model or trim whose own name contains a
// separator token would split wrong; known fragility.
var comparisonSeparators = []string{" vs. ", " vs ", " versus ", " compared to ", " compared with "}

// bareCompareConnectors split the remainder of a leading "compare ..."
// query that uses no explicit separator: "compare X and Y".
var bareCompareConnectors = []string{" and ", " to ", " with ", " against "}
