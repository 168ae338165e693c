package domain

import "fmt"

// PhaseKind discriminates the game phase variants.
type PhaseKind int

const (
	// PhaseIdle indicates a player not engaged in a challenge or match.
	PhaseIdle PhaseKind = iota
	// PhaseChallenging indicates an outgoing challenge awaiting a response.
	PhaseChallenging
	// PhaseInMatch indicates an active match.
	PhaseInMatch
)

func (k PhaseKind) String() string {
	switch k {
	case PhaseIdle:
		return "Idle"
	case PhaseChallenging:
		return "Challenging"
	case PhaseInMatch:
		return "InMatch"
	default:
		return "Unknown"
	}
}

// Phase is a player's game phase as a tagged variant. Target is set only
// for PhaseChallenging; Match only for PhaseInMatch.
type Phase struct {
	Kind   PhaseKind
	Target int64
	Match  int64
}

// Idle returns the idle phase.
func Idle() Phase {
	return Phase{Kind: PhaseIdle}
}

// Challenging returns the phase of a player with an outgoing challenge.
func Challenging(target int64) Phase {
	return Phase{Kind: PhaseChallenging, Target: target}
}

// InMatch returns the phase of a match participant.
func InMatch(match int64) Phase {
	return Phase{Kind: PhaseInMatch, Match: match}
}

func (p Phase) String() string {
	switch p.Kind {
	case PhaseIdle:
		return "Idle"
	case PhaseChallenging:
		return fmt.Sprintf("Challenging(%d)", p.Target)
	case PhaseInMatch:
		return fmt.Sprintf("InMatch(%d)", p.Match)
	default:
		return "Unknown"
	}
}
