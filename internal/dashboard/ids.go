package dashboard

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownPanel    = errors.New("unknown panel")
	ErrUnknownLayer    = errors.New("unknown map layer")
	ErrUnknownDisaster = errors.New("unknown disaster kind")
	ErrUnknownEvent    = errors.New("unknown disaster event")
	ErrUnknownFeed     = errors.New("unknown feed filter")
	ErrUnknownAction   = errors.New("unknown post action")
	ErrUnknownPost     = errors.New("unknown post")
	ErrUnknownSolution = errors.New("unknown solution")
	ErrUnknownControl  = errors.New("unknown control group")
)

type PanelID string

const (
	PanelDashboard PanelID = "dashboard"
	PanelFootprint PanelID = "footprint"
	PanelSolutions PanelID = "solutions"
	PanelDisasters PanelID = "disasters"
	PanelCommunity PanelID = "community"
)

// Panels lists the panels in navigation order.
var Panels = []PanelID{PanelDashboard, PanelFootprint, PanelSolutions, PanelDisasters, PanelCommunity}

type MapLayer string

const (
	LayerTemperature   MapLayer = "temperature"
	LayerCO2           MapLayer = "co2"
	LayerDeforestation MapLayer = "deforestation"
	LayerSeaLevel      MapLayer = "sea-level"
)

var MapLayers = []MapLayer{LayerTemperature, LayerCO2, LayerDeforestation, LayerSeaLevel}

type DisasterKind string

const (
	DisasterAll       DisasterKind = "all"
	DisasterWildfire  DisasterKind = "wildfire"
	DisasterFlood     DisasterKind = "flood"
	DisasterHurricane DisasterKind = "hurricane"
	DisasterDrought   DisasterKind = "drought"
)

var DisasterKinds = []DisasterKind{DisasterAll, DisasterWildfire, DisasterFlood, DisasterHurricane, DisasterDrought}

type FeedFilter string

const (
	FeedAll       FeedFilter = "all"
	FeedTrending  FeedFilter = "trending"
	FeedFollowing FeedFilter = "following"
)

var FeedFilters = []FeedFilter{FeedAll, FeedTrending, FeedFollowing}

type PostAction string

const (
	ActionLike    PostAction = "like"
	ActionComment PostAction = "comment"
	ActionShare   PostAction = "share"
)

var PostActions = []PostAction{ActionLike, ActionComment, ActionShare}

type SolutionID string

// Solution is an entry of the solutions panel.
type Solution struct {
	ID    SolutionID `json:"id"`
	Title string     `json:"title"`
}

// ControlGroup names a set of mutually exclusive controls; at most one
// control per group is active.
type ControlGroup string

const (
	GroupNav            ControlGroup = "nav"
	GroupMapLayer       ControlGroup = "map-layer"
	GroupDisasterFilter ControlGroup = "disaster-filter"
	GroupFeedFilter     ControlGroup = "feed-filter"
)

func parseID[T ~string](s string, known []T, errUnknown error) (T, error) {
	for _, k := range known {
		if string(k) == s {
			return k, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("%w: %q", errUnknown, s)
}

func ParsePanelID(s string) (PanelID, error) {
	return parseID(s, Panels, ErrUnknownPanel)
}

func ParseMapLayer(s string) (MapLayer, error) {
	return parseID(s, MapLayers, ErrUnknownLayer)
}

func ParseDisasterKind(s string) (DisasterKind, error) {
	return parseID(s, DisasterKinds, ErrUnknownDisaster)
}

func ParseFeedFilter(s string) (FeedFilter, error) {
	return parseID(s, FeedFilters, ErrUnknownFeed)
}

func ParsePostAction(s string) (PostAction, error) {
	return parseID(s, PostActions, ErrUnknownAction)
}

// validControl reports whether id names a control of group.
func validControl(group ControlGroup, id string) error {
	var err error
	switch group {
	case GroupNav:
		_, err = ParsePanelID(id)
	case GroupMapLayer:
		_, err = ParseMapLayer(id)
	case GroupDisasterFilter:
		_, err = ParseDisasterKind(id)
	case GroupFeedFilter:
		_, err = ParseFeedFilter(id)
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownControl, group)
	}
	return err
}
