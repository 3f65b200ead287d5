package composer

import "github.com/GregMSThompson/serrano-dashboard/internal/dto"

// WidgetState is the independent fetch state of one active widget.
type WidgetState struct {
	Loading    bool
	Generation uint64
	Response   *dto.WidgetResponse
	// Err is set when the fetch itself failed; the envelope was never received.
	Err error
}

// Blank reports whether the card should show the neutral "nothing to show"
// state. Failed envelopes, transport errors and empty payloads all qualify.
func (s WidgetState) Blank() bool {
	if s.Loading {
		return false
	}
	if s.Err != nil || s.Response == nil {
		return true
	}
	return !s.Response.OK || s.Response.IsEmpty()
}

// Message returns the inline text for a blank card.
func (s WidgetState) Message() string {
	switch {
	case s.Err != nil:
		return "Could not load this widget."
	case s.Response == nil:
		return ""
	case !s.Response.OK:
		return s.Response.Error
	case s.Response.IsEmpty():
		return s.Response.Payload.Reason
	}
	return ""
}

type KPIState struct {
	Loading    bool
	Generation uint64
	Response   *dto.KPIsResponse
	Err        error
}

// Card is one resolved entry of the rendered dashboard.
type Card struct {
	Definition dto.WidgetDefinition
	Size       dto.Size
	State      WidgetState
}

// Snapshot is a consistent copy of the engine state.
type Snapshot struct {
	SessionID  string
	Generation uint64
	Layout     dto.DashboardLayout
	Filters    dto.WidgetFilters
	Cards      []Card
	KPIs       KPIState
}
