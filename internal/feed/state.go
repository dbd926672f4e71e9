package feed

import "github.com/tinytelemetry/tabfeed/internal/model"

// LoadFailedMessage is the only failure text shown to users. Transport errors,
// non-2xx statuses and undecodable bodies are deliberately not distinguished.
const LoadFailedMessage = "Failed to load content."

// Phase is the tag of State.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseLoaded
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseLoaded:
		return "loaded"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// State describes the fetch for one tab. Articles is set only in PhaseLoaded
// and Message only in PhaseFailed.
type State struct {
	Phase    Phase
	TabID    int
	Articles []model.Article
	Message  string
}

func (s State) Loading() bool { return s.Phase == PhaseLoading }
func (s State) Failed() bool  { return s.Phase == PhaseFailed }
