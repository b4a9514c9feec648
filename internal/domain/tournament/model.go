package tournament

import "time"

type Phase string

const (
	PhaseNotStarted Phase = "not_started"
	PhaseReady      Phase = "ready"
	PhaseReset      Phase = "reset"
)

// State is the single tournament status document. CurrentRound and
// TeamsCount are recomputed from the live documents when the status is
// read; the stored record is authoritative for phase and timestamps.
type State struct {
	Phase        Phase
	CurrentRound string
	TeamsCount   int
	Champion     string
	CreatedAt    *time.Time
	ResetAt      *time.Time
}
