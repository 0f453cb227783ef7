package dashboard

import "time"

// DefaultConfig is the content the dashboard ships with.
func DefaultConfig() Config {
	return Config{
		Indicators: []IndicatorSpec{
			{ID: "co2", Label: "CO2 Level", Unit: "ppm", Priority: 1, Precision: 0, Initial: 419},
			{ID: "temperature", Label: "Temperature Anomaly", Unit: "°C", Priority: 2, Precision: 1, Initial: 1.2},
			{ID: "sea-level", Label: "Sea Level Rise", Unit: "mm", Priority: 3, Precision: 1, Initial: 101.4},
			{ID: "arctic-ice", Label: "Arctic Sea Ice", Unit: "M km²", Priority: 4, Precision: 2, Initial: 4.28},
		},
		Disasters: []DisasterEvent{
			{ID: "california-wildfire", Title: "California Wildfire", Kind: DisasterWildfire},
			{ID: "bangladesh-flood", Title: "Bangladesh Flood", Kind: DisasterFlood},
			{ID: "atlantic-hurricane", Title: "Atlantic Hurricane", Kind: DisasterHurricane},
			{ID: "horn-of-africa-drought", Title: "Horn of Africa Drought", Kind: DisasterDrought},
		},
		Solutions: []Solution{
			{ID: "energy-optimizer", Title: "AI Energy Optimizer"},
			{ID: "carbon-tracker", Title: "Smart Carbon Tracker"},
			{ID: "crop-advisor", Title: "Climate-Smart Crop Advisor"},
		},
		AnimationDuration: time.Second,
		Frame:             DefaultFrame,
	}
}
