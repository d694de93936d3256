// Package vehicle defines the immutable catalog record and its color variants.
package vehicle

import (
	"strconv"
	"strings"
)

// Engine describes the powertrain of a vehicle.
type Engine struct {
	Displacement float64 `json:"displacement"`
	Cylinders    int     `json:"cylinders"`
	Horsepower   int     `json:"horsepower"`
	Torque       int     `json:"torque"`
}

// Mileage holds the EPA city/highway/combined MPG triple.
type Mileage struct {
	City     int `json:"city"`
	Highway  int `json:"highway"`
	Combined int `json:"combined"`
}

// Dimensions holds exterior measurements in inches.
type Dimensions struct {
	Length    float64 `json:"length"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Wheelbase float64 `json:"wheelbase"`
}

// ColorVariant is a factory color option for a vehicle.
// Name and Code are unique within a vehicle's color list.
type ColorVariant struct {
	Name     string `json:"name"`
	Code     string `json:"code"`
	Hex      string `json:"hex"`
	ImageURL string `json:"image_url"`
}

// PlaceholderColor is the synthesized variant for records that carry no colors.
// Every vehicle exposes at least one variant through Colors().
var PlaceholderColor = ColorVariant{
	Name: "Standard",
	Code: "STD",
	Hex:  "#808080",
}

// Vehicle is an immutable catalog record. Instances are shared across
// concurrent callers and must never be mutated after load.
type Vehicle struct {
	ID          string         `json:"id"`
	Make        string         `json:"make"`
	Model       string         `json:"model"`
	Trim        string         `json:"trim"`
	Year        int            `json:"year"`
	MSRP        float64        `json:"msrp"`
	DealerPrice float64        `json:"dealer_price"`
	BodyType    string         `json:"body_type"`
	Category    string         `json:"category"`
	FuelType    string         `json:"fuel_type"`
	Drivetrain  string         `json:"drivetrain"`
	Electrified bool           `json:"electrified"`
	Engine      Engine         `json:"engine"`
	MPG         Mileage        `json:"mpg"`
	Dimensions  Dimensions     `json:"dimensions"`
	ColorList   []ColorVariant `json:"colors"`
	Features    []string       `json:"features"`
	Description string         `json:"description"`
}

// DisplayName returns "Year Make Model Trim" with empty parts omitted.
func (v Vehicle) DisplayName() string {
	parts := make([]string, 0, 4)
	if v.Year > 0 {
		parts = append(parts, strconv.Itoa(v.Year))
	}
	for _, p := range []string{v.Make, v.Model, v.Trim} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// Colors returns the vehicle's color variants, falling back to the
// placeholder so the at-least-one-variant invariant always holds.
func (v Vehicle) Colors() []ColorVariant {
	if len(v.ColorList) == 0 {
		return []ColorVariant{PlaceholderColor}
	}
	return v.ColorList
}
