package domain

// RoundResult is a participant-facing projection of the match after an
// action: either the match ended or it continues into another round. It is
// a closed variant consumed with exhaustive type switches.
type RoundResult interface {
	isRoundResult()
}

// MatchEnded reports the terminal outcome to a participant.
type MatchEnded struct {
	End EndState
}

func (MatchEnded) isRoundResult() {}

// NextRound reports a participant's full state alongside the opponent's
// redacted state. The opponent's hand composition and commit never leak.
type NextRound struct {
	Own      PlayerState
	Opponent RedactedState
}

func (NextRound) isRoundResult() {}

// RedactedState is the subset of an opponent's match state safe to reveal.
type RedactedState struct {
	CardCount int
	Health    int
}

// Redact projects a participant's state for their opponent. A card held as
// an uncommitted choice still counts so a commit is not observable through
// the count.
func Redact(state PlayerState) RedactedState {
	count := state.Hand.Total()
	if state.Chosen != CardUnspecified {
		count++
	}
	return RedactedState{CardCount: count, Health: state.Health}
}

// RoundResultFor projects the match for one participant.
func (m *Match) RoundResultFor(playerID int64) (RoundResult, error) {
	mine, theirs, err := m.seat(playerID)
	if err != nil {
		return nil, err
	}
	if m.End != nil {
		return MatchEnded{End: *m.End}, nil
	}
	own := *mine
	if mine.RewardChoice != nil {
		own.RewardChoice = append([]Card(nil), mine.RewardChoice...)
	}
	return NextRound{Own: own, Opponent: Redact(*theirs)}, nil
}
