package handler

import (
	"context"

	"ecovision/internal/dashboard"
	"ecovision/internal/footprint"
)

type boardMock struct {
	showPanelFunc        func(id dashboard.PanelID) error
	setActiveControlFunc func(group dashboard.ControlGroup, id string) error
	selectMapLayerFunc   func(layer dashboard.MapLayer) error
	filterDisastersFunc  func(kind dashboard.DisasterKind) error
	showDetailsFunc      func(eventID string) (string, error)
	filterFeedFunc       func(filter dashboard.FeedFilter) error
	postActionFunc       func(postID string, action dashboard.PostAction) error
	launchSolutionFunc   func(id dashboard.SolutionID) (string, error)
	refreshFunc          func(ctx context.Context) (int, error)

	rendered []footprint.Result
	state    dashboard.State
}

func (m *boardMock) ShowPanel(id dashboard.PanelID) error {
	if m.showPanelFunc == nil {
		m.state.ActivePanel = id
		return nil
	}
	return m.showPanelFunc(id)
}

func (m *boardMock) SetActiveControl(group dashboard.ControlGroup, id string) error {
	if m.setActiveControlFunc == nil {
		return nil
	}
	return m.setActiveControlFunc(group, id)
}

func (m *boardMock) RenderResult(r footprint.Result) dashboard.ResultView {
	m.rendered = append(m.rendered, r)
	return dashboard.NewResultView(r, footprint.New().ComparisonPercent(r.Total))
}

func (m *boardMock) SelectMapLayer(layer dashboard.MapLayer) error {
	if m.selectMapLayerFunc == nil {
		return nil
	}
	return m.selectMapLayerFunc(layer)
}

func (m *boardMock) FilterDisasters(kind dashboard.DisasterKind) error {
	if m.filterDisastersFunc == nil {
		return nil
	}
	return m.filterDisastersFunc(kind)
}

func (m *boardMock) ShowDisasterDetails(eventID string) (string, error) {
	if m.showDetailsFunc == nil {
		return "", nil
	}
	return m.showDetailsFunc(eventID)
}

func (m *boardMock) FilterFeed(filter dashboard.FeedFilter) error {
	if m.filterFeedFunc == nil {
		return nil
	}
	return m.filterFeedFunc(filter)
}

func (m *boardMock) HandlePostAction(postID string, action dashboard.PostAction) error {
	if m.postActionFunc == nil {
		return nil
	}
	return m.postActionFunc(postID, action)
}

func (m *boardMock) LaunchSolution(id dashboard.SolutionID) (string, error) {
	if m.launchSolutionFunc == nil {
		return "", nil
	}
	return m.launchSolutionFunc(id)
}

func (m *boardMock) Refresh(ctx context.Context) (int, error) {
	if m.refreshFunc == nil {
		return 0, nil
	}
	return m.refreshFunc(ctx)
}

func (m *boardMock) Snapshot() dashboard.State {
	return m.state
}
