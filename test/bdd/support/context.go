package support

import (
	"github.com/inkbar/formscan/internal/decode"
	"github.com/inkbar/formscan/internal/sheet"
)

// ScenarioContext holds the state threaded through one scenario's steps.
type ScenarioContext struct {
	Layout      sheet.Layout
	InkedBarIDs map[int]bool

	Warped bool

	Result decode.LayoutResult
	Err    error
}

// NewScenarioContext returns a fresh, empty scenario context.
func NewScenarioContext() *ScenarioContext {
	return &ScenarioContext{InkedBarIDs: make(map[int]bool)}
}

// findEntry returns the layout entry for the given field descriptor.
func (sc *ScenarioContext) findEntry(descriptor string) (sheet.Entry, bool) {
	for i, d := range sc.Layout.Descriptors {
		if d.Text == descriptor {
			return sc.Layout.Entries[i], true
		}
	}
	return sheet.Entry{}, false
}
