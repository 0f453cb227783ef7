package schema

import "time"

// Measurement model of an indicator value
type Measurement struct {
	Value      float64
	Unit       string
	ObservedAt time.Time
}

// Reading model of a climate indicator with priority
type Reading struct {
	IndicatorId string
	Priority    int
	Measurement Measurement
}
