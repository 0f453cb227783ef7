package main

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type requestRow struct {
	IndicatorID string `json:"indicatorId"`
	Priority    int    `json:"priority"`
}

type requestBody struct {
	Rows []requestRow `json:"rows"`
}

type reading struct {
	Value      float64   `json:"value"`
	Unit       string    `json:"unit"`
	ObservedAt time.Time `json:"observedAt"`
}

type responseRow struct {
	IndicatorID string  `json:"indicatorId"`
	Reading     reading `json:"reading"`
}

type responseBody struct {
	Rows []responseRow `json:"rows"`
}

type indicatorRange struct {
	min, max float64
	unit     string
}

var ranges = map[string]indicatorRange{
	"co2":         {min: 418, max: 424, unit: "ppm"},
	"temperature": {min: 1.1, max: 1.4, unit: "°C"},
	"sea-level":   {min: 100, max: 104, unit: "mm"},
	"arctic-ice":  {min: 4.0, max: 4.6, unit: "M km²"},
}

func indicatorsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Invalid request method", http.StatusMethodNotAllowed)
		return
	}

	var request requestBody
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	time.Sleep(300 * time.Millisecond)

	now := time.Now().UTC()
	rows := make([]responseRow, 0, len(request.Rows))
	for _, row := range request.Rows {
		rng, ok := ranges[row.IndicatorID]
		if !ok {
			continue
		}
		rows = append(rows, responseRow{
			IndicatorID: row.IndicatorID,
			Reading: reading{
				Value:      rng.min + rand.Float64()*(rng.max-rng.min),
				Unit:       rng.unit,
				ObservedAt: now,
			},
		})
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(responseBody{Rows: rows}); err != nil {
		log.Error().Err(err).Msg("couldn't encode a response")
	}
}

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})

	http.HandleFunc("/v2/indicators", indicatorsHandler)
	log.Info().Msg("Mock climate API running on :8081")
	if err := http.ListenAndServe(":8081", nil); err != nil {
		log.Fatal().Err(err).Msg("mock server crashed")
	}
}
