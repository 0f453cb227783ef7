package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"ecovision/internal/footprint"
	"ecovision/internal/schema"

	"github.com/rs/zerolog/log"
)

const dateLayout = "Monday, January 2, 2006"

var ErrRefreshInProgress = errors.New("refresh already in progress")

// IndicatorSpec describes a headline climate indicator of the dashboard panel.
type IndicatorSpec struct {
	ID        string
	Label     string
	Unit      string
	Priority  int
	Precision int
	Initial   float64
}

// DisasterEvent is a marker of the disaster tracker.
type DisasterEvent struct {
	ID    string       `json:"id"`
	Title string       `json:"title"`
	Kind  DisasterKind `json:"kind"`
}

// IndicatorState is the displayed value of an indicator.
type IndicatorState struct {
	ID         string     `json:"id"`
	Label      string     `json:"label"`
	Value      float64    `json:"value"`
	Display    string     `json:"display"`
	Unit       string     `json:"unit"`
	Animating  bool       `json:"animating"`
	ObservedAt *time.Time `json:"observedAt,omitempty"`
}

// State is a point-in-time copy of everything the dashboard displays.
type State struct {
	Date           string                  `json:"date"`
	ActivePanel    PanelID                 `json:"activePanel"`
	ActiveControls map[ControlGroup]string `json:"activeControls"`
	Indicators     []IndicatorState        `json:"indicators"`
	Disasters      []DisasterEvent         `json:"disasters"`
	Solutions      []Solution              `json:"solutions"`
	Footprint      *ResultView             `json:"footprint,omitempty"`
	Notice         string                  `json:"notice,omitempty"`
	Refreshing     bool                    `json:"refreshing"`
	LastRefresh    *time.Time              `json:"lastRefresh,omitempty"`
}

type readingGetter interface {
	Get(ctx context.Context, indicators []schema.Reading) ([]schema.Reading, error)
}

type percentCalculator interface {
	ComparisonPercent(total float64) float64
}

type indicator struct {
	spec       IndicatorSpec
	value      float64
	unit       string
	observedAt *time.Time
	animator   *Animator
}

// Config holds the content and timing of a Board.
type Config struct {
	Indicators        []IndicatorSpec
	Disasters         []DisasterEvent
	Solutions         []Solution
	AnimationDuration time.Duration
	Frame             time.Duration
}

// Board is the server-side state of the dashboard. It implements View.
type Board struct {
	readings  readingGetter
	estimator percentCalculator
	duration  time.Duration
	now       func() time.Time

	mu          sync.RWMutex
	activePanel PanelID
	controls    map[ControlGroup]string
	order       []string
	indicators  map[string]*indicator
	disasters   []DisasterEvent
	solutions   []Solution
	result      *ResultView
	notice      string
	refreshing  bool
	lastRefresh *time.Time
}

var _ View = (*Board)(nil)

func NewBoard(cfg Config, readings readingGetter, estimator percentCalculator) *Board {
	b := &Board{
		readings:    readings,
		estimator:   estimator,
		duration:    cfg.AnimationDuration,
		now:         time.Now,
		activePanel: PanelDashboard,
		controls: map[ControlGroup]string{
			GroupNav:            string(PanelDashboard),
			GroupMapLayer:       string(LayerTemperature),
			GroupDisasterFilter: string(DisasterAll),
			GroupFeedFilter:     string(FeedAll),
		},
		indicators: make(map[string]*indicator, len(cfg.Indicators)),
		disasters:  cfg.Disasters,
		solutions:  cfg.Solutions,
	}
	for _, spec := range cfg.Indicators {
		b.order = append(b.order, spec.ID)
		b.indicators[spec.ID] = &indicator{
			spec:     spec,
			value:    spec.Initial,
			unit:     spec.Unit,
			animator: NewAnimator(cfg.Frame),
		}
	}
	return b
}

func (b *Board) ShowPanel(id PanelID) error {
	if _, err := ParsePanelID(string(id)); err != nil {
		return err
	}

	b.mu.Lock()
	b.activePanel = id
	b.controls[GroupNav] = string(id)
	b.mu.Unlock()
	return nil
}

func (b *Board) SetActiveControl(group ControlGroup, id string) error {
	if err := validControl(group, id); err != nil {
		return err
	}
	if group == GroupNav {
		return b.ShowPanel(PanelID(id))
	}

	b.mu.Lock()
	b.controls[group] = id
	b.mu.Unlock()
	return nil
}

func (b *Board) RenderResult(r footprint.Result) ResultView {
	view := NewResultView(r, b.estimator.ComparisonPercent(r.Total))

	b.mu.Lock()
	b.result = &view
	b.mu.Unlock()
	return view
}

// SelectMapLayer switches the map to layer.
func (b *Board) SelectMapLayer(layer MapLayer) error {
	if err := b.SetActiveControl(GroupMapLayer, string(layer)); err != nil {
		return err
	}
	log.Info().Str("layer", string(layer)).Msg("switched map layer")
	return nil
}

// FilterDisasters restricts the disaster tracker to kind.
func (b *Board) FilterDisasters(kind DisasterKind) error {
	if err := b.SetActiveControl(GroupDisasterFilter, string(kind)); err != nil {
		return err
	}
	log.Info().Str("filter", string(kind)).Msg("filtering disasters")
	return nil
}

// ShowDisasterDetails returns the notice for the marker of eventID.
func (b *Board) ShowDisasterDetails(eventID string) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ev := range b.disasters {
		if ev.ID == eventID {
			b.notice = "Showing details for: " + ev.Title
			return b.notice, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownEvent, eventID)
}

// FilterFeed switches the community feed to filter.
func (b *Board) FilterFeed(filter FeedFilter) error {
	if err := b.SetActiveControl(GroupFeedFilter, string(filter)); err != nil {
		return err
	}
	log.Info().Str("filter", string(filter)).Msg("showing feed posts")
	return nil
}

// HandlePostAction records action on the community post postID.
func (b *Board) HandlePostAction(postID string, action PostAction) error {
	if postID == "" {
		return ErrUnknownPost
	}
	if _, err := ParsePostAction(string(action)); err != nil {
		return err
	}
	log.Info().Str("post", postID).Str("action", string(action)).Msg("post action")
	return nil
}

// LaunchSolution returns the notice for launching the solution id.
func (b *Board) LaunchSolution(id SolutionID) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, s := range b.solutions {
		if s.ID == id {
			b.notice = "Launching: " + s.Title
			return b.notice, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSolution, id)
}

// Refresh fetches the latest indicator readings and animates the displayed
// values towards them. Indicators without a fresh reading keep their value.
func (b *Board) Refresh(ctx context.Context) (int, error) {
	b.mu.Lock()
	if b.refreshing {
		b.mu.Unlock()
		return 0, ErrRefreshInProgress
	}
	b.refreshing = true
	request := make([]schema.Reading, 0, len(b.order))
	for _, id := range b.order {
		request = append(request, schema.Reading{
			IndicatorId: id,
			Priority:    b.indicators[id].spec.Priority,
		})
	}
	b.mu.Unlock()

	readings, err := b.readings.Get(ctx, request)

	b.mu.Lock()
	b.refreshing = false
	if err != nil {
		b.mu.Unlock()
		return 0, fmt.Errorf("refresh indicators: %w", err)
	}
	now := b.now()
	b.lastRefresh = &now

	type pending struct {
		ind        *indicator
		start, end float64
	}
	animations := make([]pending, 0, len(readings))
	for _, r := range readings {
		ind, ok := b.indicators[r.IndicatorId]
		if !ok {
			continue
		}
		if r.Measurement.Unit != "" {
			ind.unit = r.Measurement.Unit
		}
		if !r.Measurement.ObservedAt.IsZero() {
			observed := r.Measurement.ObservedAt
			ind.observedAt = &observed
		}
		animations = append(animations, pending{ind: ind, start: ind.value, end: r.Measurement.Value})
	}
	b.mu.Unlock()

	// animators call back into the board, so start them without holding mu
	for _, p := range animations {
		ind := p.ind
		ind.animator.Animate(p.start, p.end, b.duration, func(v float64) {
			b.mu.Lock()
			ind.value = v
			b.mu.Unlock()
		})
	}

	log.Info().Int("updated", len(animations)).Int("requested", len(request)).Msg("dashboard refreshed")
	return len(animations), nil
}

// Snapshot returns a copy of the displayed state.
func (b *Board) Snapshot() State {
	state, animators := b.snapshot()
	// animators call back into the board, so query them without holding mu
	for i, a := range animators {
		state.Indicators[i].Animating = a.Running()
	}
	return state
}

func (b *Board) snapshot() (State, []*Animator) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	controls := make(map[ControlGroup]string, len(b.controls))
	for k, v := range b.controls {
		controls[k] = v
	}

	indicators := make([]IndicatorState, 0, len(b.order))
	animators := make([]*Animator, 0, len(b.order))
	for _, id := range b.order {
		ind := b.indicators[id]
		indicators = append(indicators, IndicatorState{
			ID:         id,
			Label:      ind.spec.Label,
			Value:      ind.value,
			Display:    FormatDecimal(ind.value, ind.spec.Precision),
			Unit:       ind.unit,
			ObservedAt: ind.observedAt,
		})
		animators = append(animators, ind.animator)
	}

	disasters := make([]DisasterEvent, 0, len(b.disasters))
	filter := DisasterKind(b.controls[GroupDisasterFilter])
	for _, ev := range b.disasters {
		if filter == DisasterAll || ev.Kind == filter {
			disasters = append(disasters, ev)
		}
	}

	var result *ResultView
	if b.result != nil {
		r := *b.result
		result = &r
	}

	return State{
		Date:           b.now().Format(dateLayout),
		ActivePanel:    b.activePanel,
		ActiveControls: controls,
		Indicators:     indicators,
		Disasters:      disasters,
		Solutions:      append([]Solution(nil), b.solutions...),
		Footprint:      result,
		Notice:         b.notice,
		Refreshing:     b.refreshing,
		LastRefresh:    b.lastRefresh,
	}, animators
}
