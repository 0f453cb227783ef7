package indicators_v2_dto

import "time"

type RequestRow struct {
	IndicatorID string `json:"indicatorId"`
	Priority    int    `json:"priority,omitempty"`
}

type RequestBody struct {
	Rows []RequestRow `json:"rows"`
}

type Reading struct {
	Value      float64   `json:"value"`
	Unit       string    `json:"unit"`
	ObservedAt time.Time `json:"observedAt"`
}

type ResponseRow struct {
	IndicatorID string  `json:"indicatorId"`
	Reading     Reading `json:"reading"`
}

type ResponseBody struct {
	Rows []ResponseRow `json:"rows"`
}
