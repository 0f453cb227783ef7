package handler

import (
	"context"

	"ecovision/internal/dashboard"
	"ecovision/internal/footprint"
)

type estimator interface {
	Estimate(in footprint.UsageInput) footprint.Result
}

type board interface {
	dashboard.View
	SelectMapLayer(layer dashboard.MapLayer) error
	FilterDisasters(kind dashboard.DisasterKind) error
	ShowDisasterDetails(eventID string) (string, error)
	FilterFeed(filter dashboard.FeedFilter) error
	HandlePostAction(postID string, action dashboard.PostAction) error
	LaunchSolution(id dashboard.SolutionID) (string, error)
	Refresh(ctx context.Context) (int, error)
	Snapshot() dashboard.State
}
