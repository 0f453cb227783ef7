// Package dashboard is the presentation layer of the EcoVision dashboard: it
// keeps which panel and controls are active, the displayed indicator values
// and the last rendered footprint, independently of how they are drawn.
package dashboard

import "ecovision/internal/footprint"

// View is the set of capabilities the handlers need from the presentation layer.
type View interface {
	// ShowPanel makes id the only visible panel and activates its nav control.
	ShowPanel(id PanelID) error
	// SetActiveControl activates id and deactivates its siblings in group.
	SetActiveControl(group ControlGroup, id string) error
	// RenderResult displays a footprint estimate and returns what is shown.
	RenderResult(r footprint.Result) ResultView
}
