package dashboard_v1_dto

import "ecovision/internal/dashboard"

// ControlRequest selects a control of the dashboard
type ControlRequest struct {
	ID     string `json:"id"`
	PostID string `json:"postId,omitempty"`
}

// ControlResponse dashboard state after a control change
type ControlResponse struct {
	Notice string          `json:"notice,omitempty"`
	State  dashboard.State `json:"state"`
}

// RefreshResponse dashboard state after a refresh
type RefreshResponse struct {
	Updated int             `json:"updated"`
	State   dashboard.State `json:"state"`
}
