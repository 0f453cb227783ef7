package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"sort"
	"sync"
	"time"

	"ecovision/internal/env"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type footprintPayload struct {
	Electricity any `json:"electricity"`
	CarTravel   any `json:"carTravel"`
	MeatMeals   any `json:"meatMeals"`
	Flights     any `json:"flights"`
}

// randomQuantity mixes numbers with the string forms browsers submit.
func randomQuantity(limit float64) any {
	v := rand.Float64() * limit
	switch rand.Intn(4) {
	case 0:
		return fmt.Sprintf("%.1f", v)
	case 1:
		return fmt.Sprintf("%.0fkg", v)
	default:
		return v
	}
}

func generateRandomPayload(scale float64) ([]byte, error) {
	return json.Marshal(footprintPayload{
		Electricity: randomQuantity(1000 * scale),
		CarTravel:   randomQuantity(2000 * scale),
		MeatMeals:   randomQuantity(60 * scale),
		Flights:     randomQuantity(20 * scale),
	})
}

func main() {

	env.LoadEnv()
	if needTest := os.Getenv("NEED_TEST"); needTest != "true" {
		return
	}
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})

	url := "http://localhost:8080/api/v1/footprint"
	concurrency := flag.Int("concurrency", 100, "Number of concurrent workers")
	duration := flag.Duration("duration", 5*time.Second, "Duration of the load test")
	scale := flag.Float64("scale", 1, "Multiplier of the random usage amounts")
	flag.Parse()

	if envURL := os.Getenv("TARGET_URL"); envURL != "" {
		url = envURL
	}

	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	log.Info().
		Str("target", url).
		Int("concurrency", *concurrency).
		Dur("duration", *duration).
		Msg("Starting load test")

	startTime := time.Now()
	var wg sync.WaitGroup
	var reqCount int
	var reqMu sync.Mutex

	latencyChan := make(chan time.Duration, 100000)
	statuses := make(map[int]int)
	var statusMu sync.Mutex

	var latencies []time.Duration
	var latMu sync.Mutex
	var aggWg sync.WaitGroup
	aggWg.Add(1)
	go func() {
		defer aggWg.Done()
		for lat := range latencyChan {
			latMu.Lock()
			latencies = append(latencies, lat)
			latMu.Unlock()
			reqMu.Lock()
			reqCount++
			reqMu.Unlock()
		}

	}()

	for i := 0; i < *concurrency; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			client := &http.Client{}
			for {
				select {
				case <-ctx.Done():
					return
				default:
				}

				payload, err := generateRandomPayload(*scale)
				if err != nil {
					log.Error().Err(err).Int("worker", workerID).Msg("Error generating payload")
					continue
				}

				req, err := http.NewRequest("POST", url, bytes.NewBuffer(payload))
				if err != nil {
					log.Error().Err(err).Int("worker", workerID).Msg("Error creating request")
					continue
				}
				req.Header.Set("Content-Type", "application/json")
				req = req.WithContext(ctx)

				reqStart := time.Now()
				resp, err := client.Do(req)
				latency := time.Since(reqStart)
				latencyChan <- latency

				if err != nil {
					if ctx.Err() == nil {
						log.Error().Err(err).Int("worker", workerID).Msg("Error sending request")
					}
					continue
				}
				if resp.StatusCode != http.StatusOK {
					statusMu.Lock()
					statuses[resp.StatusCode]++
					statusMu.Unlock()
				}
				_ = resp.Body.Close()
			}
		}(i)
	}

	wg.Wait()
	close(latencyChan)
	aggWg.Wait()

	if len(latencies) > 0 {
		sort.Slice(latencies, func(i, j int) bool { return latencies[i] < latencies[j] })
		index := int(float64(len(latencies)) * 0.99)
		if index >= len(latencies) {
			index = len(latencies) - 1
		}
		log.Info().Str("99th_percentile", latencies[index].String()).Msg("99th percentile latency")
	}

	totalTime := time.Since(startTime).Seconds()
	rps := float64(reqCount) / totalTime
	for status, count := range statuses {
		log.Warn().Int("status", status).Int("count", count).Msg("non-OK responses")
	}
	log.Info().
		Int("total_requests", reqCount).
		Float64("rps", rps).
		Msg("Load test completed")
}
