package footprint_v1_dto

import (
	"encoding/json"

	"ecovision/internal/footprint"
)

// Quantity is a usage amount that accepts JSON numbers and numeric strings.
// Anything else, including null, reads as 0.
type Quantity float64

func (q *Quantity) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		*q = 0
		return nil
	}
	switch v := raw.(type) {
	case float64:
		*q = Quantity(footprint.Sanitize(v))
	case string:
		*q = Quantity(footprint.ParseQuantity(v))
	default:
		*q = 0
	}
	return nil
}

// FootprintRequest dto of footprint api
type FootprintRequest struct {
	Electricity Quantity `json:"electricity"`
	CarTravel   Quantity `json:"carTravel"`
	MeatMeals   Quantity `json:"meatMeals"`
	Flights     Quantity `json:"flights"`
}

func (r FootprintRequest) ToInput() footprint.UsageInput {
	return footprint.UsageInput{
		ElectricityKwh: float64(r.Electricity),
		CarTravelKm:    float64(r.CarTravel),
		MeatMeals:      float64(r.MeatMeals),
		FlightHours:    float64(r.Flights),
	}
}

// Emissions kg of CO2 per category
type Emissions struct {
	Electricity float64 `json:"electricity"`
	Transport   float64 `json:"transport"`
	Diet        float64 `json:"diet"`
	Flights     float64 `json:"flights"`
	Total       float64 `json:"total"`
}

// Display emissions formatted for the page
type Display struct {
	Electricity string `json:"electricity"`
	Transport   string `json:"transport"`
	Diet        string `json:"diet"`
	Flights     string `json:"flights"`
	Total       string `json:"total"`
}

// FootprintResponse structure for response
type FootprintResponse struct {
	Emissions         Emissions `json:"emissions"`
	Display           Display   `json:"display"`
	Rating            string    `json:"rating"`
	Color             string    `json:"color"`
	Severity          string    `json:"severity"`
	ComparisonPercent float64   `json:"comparisonPercent"`
}
