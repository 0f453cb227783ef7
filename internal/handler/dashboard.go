package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"ecovision/internal/dashboard"
	"ecovision/internal/dto/dashboard_v1_dto"

	"github.com/rs/zerolog/log"
)

type DashboardHandler struct {
	board          board
	refreshTimeout time.Duration
}

func NewDashboard(board board, refreshTimeout time.Duration) *DashboardHandler {
	return &DashboardHandler{
		board:          board,
		refreshTimeout: refreshTimeout,
	}
}

// controlFunc applies a control request and returns an optional notice.
type controlFunc func(req dashboard_v1_dto.ControlRequest) (string, error)

// State returns the current dashboard state.
func (h *DashboardHandler) State(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Invalid request method", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, h.board.Snapshot())
}

func (h *DashboardHandler) Panel(w http.ResponseWriter, r *http.Request) {
	h.control(w, r, func(req dashboard_v1_dto.ControlRequest) (string, error) {
		return "", h.board.ShowPanel(dashboard.PanelID(req.ID))
	})
}

func (h *DashboardHandler) MapLayer(w http.ResponseWriter, r *http.Request) {
	h.control(w, r, func(req dashboard_v1_dto.ControlRequest) (string, error) {
		return "", h.board.SelectMapLayer(dashboard.MapLayer(req.ID))
	})
}

func (h *DashboardHandler) DisasterFilter(w http.ResponseWriter, r *http.Request) {
	h.control(w, r, func(req dashboard_v1_dto.ControlRequest) (string, error) {
		return "", h.board.FilterDisasters(dashboard.DisasterKind(req.ID))
	})
}

func (h *DashboardHandler) DisasterDetails(w http.ResponseWriter, r *http.Request) {
	h.control(w, r, func(req dashboard_v1_dto.ControlRequest) (string, error) {
		return h.board.ShowDisasterDetails(req.ID)
	})
}

func (h *DashboardHandler) FeedFilter(w http.ResponseWriter, r *http.Request) {
	h.control(w, r, func(req dashboard_v1_dto.ControlRequest) (string, error) {
		return "", h.board.FilterFeed(dashboard.FeedFilter(req.ID))
	})
}

func (h *DashboardHandler) FeedAction(w http.ResponseWriter, r *http.Request) {
	h.control(w, r, func(req dashboard_v1_dto.ControlRequest) (string, error) {
		return "", h.board.HandlePostAction(req.PostID, dashboard.PostAction(req.ID))
	})
}

func (h *DashboardHandler) LaunchSolution(w http.ResponseWriter, r *http.Request) {
	h.control(w, r, func(req dashboard_v1_dto.ControlRequest) (string, error) {
		return h.board.LaunchSolution(dashboard.SolutionID(req.ID))
	})
}

// Refresh pulls the latest indicator readings within the refresh timeout.
func (h *DashboardHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Invalid request method", http.StatusMethodNotAllowed)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.refreshTimeout)
	defer cancel()

	reqStart := time.Now()
	updated, err := h.board.Refresh(ctx)
	log.Info().Str("latency", time.Since(reqStart).String()).Int("updated", updated).Msg("refresh latency")

	if err != nil {
		if errors.Is(err, dashboard.ErrRefreshInProgress) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		log.Error().Err(err).Msg("refresh failed")
		http.Error(w, "Couldn't refresh indicators", http.StatusBadGateway)
		return
	}

	if isForm(r) {
		http.Redirect(w, r, "/?panel="+string(dashboard.PanelDashboard), http.StatusSeeOther)
		return
	}
	writeJSON(w, http.StatusOK, dashboard_v1_dto.RefreshResponse{
		Updated: updated,
		State:   h.board.Snapshot(),
	})
}

func (h *DashboardHandler) control(w http.ResponseWriter, r *http.Request, apply controlFunc) {
	if r.Method != http.MethodPost {
		http.Error(w, "Invalid request method", http.StatusMethodNotAllowed)
		return
	}

	form := isForm(r)
	var req dashboard_v1_dto.ControlRequest
	if form {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		req.ID = r.PostFormValue("id")
		req.PostID = r.PostFormValue("postId")
	} else if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	notice, err := apply(req)
	if err != nil {
		status := statusFor(err)
		if status == http.StatusBadRequest {
			http.Error(w, err.Error(), status)
			return
		}
		log.Error().Err(err).Msg("control failed")
		http.Error(w, "Internal server error", status)
		return
	}

	state := h.board.Snapshot()
	if form {
		http.Redirect(w, r, "/?panel="+string(state.ActivePanel), http.StatusSeeOther)
		return
	}
	writeJSON(w, http.StatusOK, dashboard_v1_dto.ControlResponse{Notice: notice, State: state})
}
