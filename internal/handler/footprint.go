package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"ecovision/internal/dashboard"
	"ecovision/internal/dto/footprint_v1_dto"
	"ecovision/internal/footprint"
	"ecovision/internal/metrics"

	"github.com/rs/zerolog/log"
)

type FootprintHandler struct {
	estimator estimator
	view      dashboard.View
}

func NewFootprint(estimator estimator, view dashboard.View) *FootprintHandler {
	return &FootprintHandler{
		estimator: estimator,
		view:      view,
	}
}

// Handle estimates a footprint from a JSON or form body. Form posts come from
// the dashboard page and are redirected back to the footprint panel.
func (h *FootprintHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Invalid request method", http.StatusMethodNotAllowed)
		return
	}

	form := isForm(r)
	input, err := decodeUsage(r, form)
	if err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	result := h.estimator.Estimate(input)
	metrics.RecordEstimate(string(result.Band), result.Total)
	log.Debug().Float64("total", result.Total).Str("band", string(result.Band)).Msg("footprint estimated")

	view := h.view.RenderResult(result)

	if form {
		if err := h.view.ShowPanel(dashboard.PanelFootprint); err != nil {
			log.Error().Err(err).Msg("couldn't show footprint panel")
		}
		http.Redirect(w, r, "/?panel="+string(dashboard.PanelFootprint), http.StatusSeeOther)
		return
	}

	writeJSON(w, http.StatusOK, toResponse(result, view))
}

func decodeUsage(r *http.Request, form bool) (footprint.UsageInput, error) {
	if form {
		if err := r.ParseForm(); err != nil {
			return footprint.UsageInput{}, err
		}
		return footprint.UsageInput{
			ElectricityKwh: footprint.ParseQuantity(r.PostFormValue("electricity")),
			CarTravelKm:    footprint.ParseQuantity(r.PostFormValue("carTravel")),
			MeatMeals:      footprint.ParseQuantity(r.PostFormValue("meatMeals")),
			FlightHours:    footprint.ParseQuantity(r.PostFormValue("flights")),
		}, nil
	}

	var request footprint_v1_dto.FootprintRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil && !errors.Is(err, io.EOF) {
		return footprint.UsageInput{}, err
	}
	return request.ToInput(), nil
}

func toResponse(result footprint.Result, view dashboard.ResultView) footprint_v1_dto.FootprintResponse {
	return footprint_v1_dto.FootprintResponse{
		Emissions: footprint_v1_dto.Emissions{
			Electricity: result.Electricity,
			Transport:   result.Transport,
			Diet:        result.Diet,
			Flights:     result.Flights,
			Total:       result.Total,
		},
		Display: footprint_v1_dto.Display{
			Electricity: view.Electricity,
			Transport:   view.Transport,
			Diet:        view.Diet,
			Flights:     view.Flights,
			Total:       view.Total,
		},
		Rating:            view.Rating,
		Color:             view.Color,
		Severity:          view.Severity,
		ComparisonPercent: view.ComparisonPercent,
	}
}
