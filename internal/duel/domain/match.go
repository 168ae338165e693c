package domain

import "errors"

// MaxHealth is the health every participant starts a match with.
const MaxHealth = 5

var (
	// ErrSameParticipant indicates a match with a player on both seats.
	ErrSameParticipant = errors.New("match requires two distinct players")
	// ErrMatchConcluded indicates an action against a finished match.
	ErrMatchConcluded = errors.New("match already concluded")
	// ErrNotParticipant indicates the acting player is not in the match.
	ErrNotParticipant = errors.New("player is not a match participant")
	// ErrRewardPending indicates a play attempted before resolving a reward choice.
	ErrRewardPending = errors.New("pending reward choice must be resolved first")
	// ErrCardUnavailable indicates the requested card has no copies in hand.
	ErrCardUnavailable = errors.New("card is not available in hand")
	// ErrNoPendingChoice indicates a pick without an offered reward choice.
	ErrNoPendingChoice = errors.New("no pending reward choice")
	// ErrChoiceNotOffered indicates a pick outside the offered options.
	ErrChoiceNotOffered = errors.New("card is not among the offered options")
	// ErrInvalidCard indicates a card value outside the closed enum.
	ErrInvalidCard = errors.New("invalid card")
)

// EndKind discriminates how a match concluded.
type EndKind int

const (
	// EndDraw indicates both players reached zero health simultaneously.
	EndDraw EndKind = iota
	// EndVictory indicates exactly one player survived.
	EndVictory
)

// EndState captures a concluded match outcome. WinnerID is set only for
// EndVictory.
type EndState struct {
	Kind     EndKind
	WinnerID int64
}

// PlayerState is one participant's view of a match in progress.
type PlayerState struct {
	PlayerID int64
	Hand     Hand
	Chosen   Card // CardUnspecified when no commit is outstanding
	Health   int
	// RewardChoice holds the two offered cards while a choice reward is
	// unresolved; nil otherwise.
	RewardChoice []Card
}

// Match is the state machine for a single duel. A nil End means the match
// is still resolving rounds; once End is set the match is immutable.
type Match struct {
	ID    int64
	Seats [2]PlayerState
	End   *EndState
}

// NewMatch creates a match between two distinct players with fresh state.
func NewMatch(id, first, second int64) (*Match, error) {
	if first == second {
		return nil, ErrSameParticipant
	}
	return &Match{
		ID: id,
		Seats: [2]PlayerState{
			{PlayerID: first, Hand: StartingHand(), Health: MaxHealth},
			{PlayerID: second, Hand: StartingHand(), Health: MaxHealth},
		},
	}, nil
}

// Finished reports whether the match has concluded.
func (m *Match) Finished() bool {
	return m.End != nil
}

// Participants returns both player ids.
func (m *Match) Participants() (int64, int64) {
	return m.Seats[0].PlayerID, m.Seats[1].PlayerID
}

// Opponent returns the other participant's id.
func (m *Match) Opponent(playerID int64) (int64, error) {
	switch playerID {
	case m.Seats[0].PlayerID:
		return m.Seats[1].PlayerID, nil
	case m.Seats[1].PlayerID:
		return m.Seats[0].PlayerID, nil
	default:
		return 0, ErrNotParticipant
	}
}

func (m *Match) seat(playerID int64) (mine, theirs *PlayerState, err error) {
	switch playerID {
	case m.Seats[0].PlayerID:
		return &m.Seats[0], &m.Seats[1], nil
	case m.Seats[1].PlayerID:
		return &m.Seats[1], &m.Seats[0], nil
	default:
		return nil, nil, ErrNotParticipant
	}
}

// PlayCard commits a card for the round. A prior uncommitted choice is
// refunded to the hand before the new card is drawn, so a player may change
// their commit until the opponent has also committed. The round resolves
// when both seats hold a commit; resolved reports whether that happened.
//
// Validation never leaves partial state: an unavailable card or a pending
// reward choice rejects the play with the match untouched.
func (m *Match) PlayCard(playerID int64, card Card) (resolved bool, err error) {
	if m.Finished() {
		return false, ErrMatchConcluded
	}
	if !card.Valid() {
		return false, ErrInvalidCard
	}
	mine, theirs, err := m.seat(playerID)
	if err != nil {
		return false, err
	}
	if mine.RewardChoice != nil {
		return false, ErrRewardPending
	}

	// Availability is judged against the hand with any prior commit refunded.
	hand := mine.Hand
	if mine.Chosen != CardUnspecified {
		hand = hand.Add(mine.Chosen)
	}
	if hand.Count(card) == 0 {
		return false, ErrCardUnavailable
	}
	mine.Hand = hand.Remove(card)
	mine.Chosen = card

	if mine.Chosen == CardUnspecified || theirs.Chosen == CardUnspecified {
		return false, nil
	}
	m.resolveRound()
	return true, nil
}

// resolveRound applies the interaction table to both commits simultaneously,
// clears the commits, applies rewards, and detects termination.
func (m *Match) resolveRound() {
	first, second := &m.Seats[0], &m.Seats[1]
	deltaFirst, rewardsFirst := Resolve(first.Chosen, second.Chosen)
	deltaSecond, rewardsSecond := Resolve(second.Chosen, first.Chosen)

	first.Chosen = CardUnspecified
	second.Chosen = CardUnspecified

	first.applyDelta(deltaFirst)
	second.applyDelta(deltaSecond)
	first.applyRewards(rewardsFirst)
	second.applyRewards(rewardsSecond)

	switch {
	case first.Health == 0 && second.Health == 0:
		m.End = &EndState{Kind: EndDraw}
	case first.Health == 0:
		m.End = &EndState{Kind: EndVictory, WinnerID: second.PlayerID}
	case second.Health == 0:
		m.End = &EndState{Kind: EndVictory, WinnerID: first.PlayerID}
	}
}

func (p *PlayerState) applyDelta(delta int) {
	p.Health += delta
	if p.Health < 0 {
		p.Health = 0
	}
}

func (p *PlayerState) applyRewards(rewards []Reward) {
	for _, reward := range rewards {
		switch r := reward.(type) {
		case FixedReward:
			p.Hand = p.Hand.Add(r.Card)
		case ChoiceReward:
			p.RewardChoice = []Card{r.Options[0], r.Options[1]}
		}
	}
}

// PickCard resolves a pending reward choice by adding the chosen card to the
// hand. The choice must have been offered.
func (m *Match) PickCard(playerID int64, card Card) error {
	if m.Finished() {
		return ErrMatchConcluded
	}
	mine, _, err := m.seat(playerID)
	if err != nil {
		return err
	}
	if mine.RewardChoice == nil {
		return ErrNoPendingChoice
	}
	offered := false
	for _, option := range mine.RewardChoice {
		if option == card {
			offered = true
			break
		}
	}
	if !offered {
		return ErrChoiceNotOffered
	}
	mine.Hand = mine.Hand.Add(card)
	mine.RewardChoice = nil
	return nil
}

// Forfeit concludes the match with a victory for the opponent of playerID.
// Used when a participant disconnects mid-match.
func (m *Match) Forfeit(playerID int64) error {
	if m.Finished() {
		return ErrMatchConcluded
	}
	winner, err := m.Opponent(playerID)
	if err != nil {
		return err
	}
	m.End = &EndState{Kind: EndVictory, WinnerID: winner}
	return nil
}
