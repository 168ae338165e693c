package domain

import (
	"errors"
	"testing"
)

func newTestMatch(t *testing.T) *Match {
	t.Helper()
	m, err := NewMatch(1, 10, 20)
	if err != nil {
		t.Fatalf("new match: %v", err)
	}
	return m
}

func mustPlay(t *testing.T, m *Match, playerID int64, card Card) bool {
	t.Helper()
	resolved, err := m.PlayCard(playerID, card)
	if err != nil {
		t.Fatalf("player %d play %v: %v", playerID, card, err)
	}
	return resolved
}

func TestNewMatchRejectsSamePlayer(t *testing.T) {
	if _, err := NewMatch(1, 7, 7); !errors.Is(err, ErrSameParticipant) {
		t.Fatalf("expected ErrSameParticipant, got %v", err)
	}
}

func TestNewMatchStartingState(t *testing.T) {
	m := newTestMatch(t)
	for _, seat := range m.Seats {
		if seat.Hand != (Hand{Attacks: 2, Counters: 1, Rests: 1}) {
			t.Fatalf("expected starting hand, got %+v", seat.Hand)
		}
		if seat.Health != MaxHealth {
			t.Fatalf("expected health %d, got %d", MaxHealth, seat.Health)
		}
		if seat.Chosen != CardUnspecified || seat.RewardChoice != nil {
			t.Fatalf("expected no commit and no pending choice, got %+v", seat)
		}
	}
}

func TestRestVersusAttack(t *testing.T) {
	m := newTestMatch(t)

	if resolved := mustPlay(t, m, 10, CardRest); resolved {
		t.Fatal("round must not resolve after a single commit")
	}
	if resolved := mustPlay(t, m, 20, CardAttack); !resolved {
		t.Fatal("round must resolve once both players commit")
	}

	rester, attacker := m.Seats[0], m.Seats[1]
	if rester.Health != 4 {
		t.Fatalf("expected rester health 4, got %d", rester.Health)
	}
	if attacker.Health != 5 {
		t.Fatalf("expected attacker health 5, got %d", attacker.Health)
	}
	// Rest vs Attack is a fixed reward: Attack plus Rest, no choice.
	if rester.Hand != (Hand{Attacks: 3, Counters: 1, Rests: 1}) {
		t.Fatalf("expected rester hand {3 1 1}, got %+v", rester.Hand)
	}
	if rester.RewardChoice != nil {
		t.Fatalf("expected no pending choice, got %v", rester.RewardChoice)
	}
	if attacker.Hand != (Hand{Attacks: 1, Counters: 1, Rests: 1}) {
		t.Fatalf("expected attacker hand {1 1 1}, got %+v", attacker.Hand)
	}
	if m.Finished() {
		t.Fatal("match must keep resolving")
	}
}

func TestRestVersusRestGrantsChoice(t *testing.T) {
	m := newTestMatch(t)
	mustPlay(t, m, 10, CardRest)
	mustPlay(t, m, 20, CardRest)

	for i, seat := range m.Seats {
		if seat.Health != 5 {
			t.Fatalf("seat %d: expected no health change, got %d", i, seat.Health)
		}
		// Unconditional Rest restores the played card.
		if seat.Hand.Rests != 1 {
			t.Fatalf("seat %d: expected rest back in hand, got %+v", i, seat.Hand)
		}
		if len(seat.RewardChoice) != 2 || seat.RewardChoice[0] != CardAttack || seat.RewardChoice[1] != CardCounter {
			t.Fatalf("seat %d: expected attack/counter choice, got %v", i, seat.RewardChoice)
		}
	}

	// Choice gating: no card may be played until the choice is resolved.
	for _, card := range []Card{CardAttack, CardCounter, CardRest} {
		if _, err := m.PlayCard(10, card); !errors.Is(err, ErrRewardPending) {
			t.Fatalf("expected ErrRewardPending for %v, got %v", card, err)
		}
	}

	if err := m.PickCard(10, CardRest); !errors.Is(err, ErrChoiceNotOffered) {
		t.Fatalf("expected ErrChoiceNotOffered, got %v", err)
	}
	if err := m.PickCard(10, CardCounter); err != nil {
		t.Fatalf("pick counter: %v", err)
	}
	if m.Seats[0].Hand.Counters != 2 {
		t.Fatalf("expected picked counter in hand, got %+v", m.Seats[0].Hand)
	}
	if m.Seats[0].RewardChoice != nil {
		t.Fatal("expected pending choice cleared after pick")
	}
	if err := m.PickCard(10, CardAttack); !errors.Is(err, ErrNoPendingChoice) {
		t.Fatalf("expected ErrNoPendingChoice, got %v", err)
	}

	// Player two still has their own choice pending.
	if _, err := m.PlayCard(20, CardAttack); !errors.Is(err, ErrRewardPending) {
		t.Fatalf("expected ErrRewardPending for second seat, got %v", err)
	}
}

func TestMutualAttacksEndInDraw(t *testing.T) {
	m := newTestMatch(t)
	m.Seats[0].Hand = Hand{Attacks: 5}
	m.Seats[1].Hand = Hand{Attacks: 5}

	for round := 1; round <= 5; round++ {
		mustPlay(t, m, 10, CardAttack)
		resolved := mustPlay(t, m, 20, CardAttack)
		if !resolved {
			t.Fatalf("round %d did not resolve", round)
		}
		wantHealth := 5 - round
		if m.Seats[0].Health != wantHealth || m.Seats[1].Health != wantHealth {
			t.Fatalf("round %d: expected health %d/%d, got %d/%d",
				round, wantHealth, wantHealth, m.Seats[0].Health, m.Seats[1].Health)
		}
		if round < 5 && m.Finished() {
			t.Fatalf("round %d: match finished early", round)
		}
	}

	if !m.Finished() {
		t.Fatal("expected finished match")
	}
	if m.End.Kind != EndDraw {
		t.Fatalf("expected draw, got %+v", m.End)
	}
}

func TestCounteredAttacksEndInVictory(t *testing.T) {
	m := newTestMatch(t)
	m.Seats[0].Hand = Hand{Counters: 5}
	m.Seats[1].Hand = Hand{Attacks: 5}

	for round := 1; round <= 5; round++ {
		mustPlay(t, m, 10, CardCounter)
		mustPlay(t, m, 20, CardAttack)
	}

	if !m.Finished() {
		t.Fatal("expected finished match")
	}
	if m.End.Kind != EndVictory || m.End.WinnerID != 10 {
		t.Fatalf("expected victory for player 10, got %+v", m.End)
	}
	if m.Seats[0].Health != 5 {
		t.Fatalf("expected counterer untouched, got %d", m.Seats[0].Health)
	}
	// Counter vs Attack grants a free counter each round.
	if m.Seats[0].Hand.Counters != 5 {
		t.Fatalf("expected counters replenished, got %+v", m.Seats[0].Hand)
	}
}

func TestHealthNeverGoesNegative(t *testing.T) {
	m := newTestMatch(t)
	m.Seats[0].Health = 1
	m.Seats[1].Health = 1

	mustPlay(t, m, 10, CardAttack)
	mustPlay(t, m, 20, CardAttack)

	if m.Seats[0].Health != 0 || m.Seats[1].Health != 0 {
		t.Fatalf("expected both at zero, got %d/%d", m.Seats[0].Health, m.Seats[1].Health)
	}
	if m.End == nil || m.End.Kind != EndDraw {
		t.Fatalf("expected draw, got %+v", m.End)
	}
}

func TestRecommitRefundsPriorCard(t *testing.T) {
	m := newTestMatch(t)

	total := func() int {
		seat := m.Seats[0]
		count := seat.Hand.Total()
		if seat.Chosen != CardUnspecified {
			count++
		}
		return count
	}
	before := total()

	for _, card := range []Card{CardAttack, CardCounter, CardRest, CardAttack} {
		mustPlay(t, m, 10, card)
		if m.Seats[0].Chosen != card {
			t.Fatalf("expected commit %v, got %v", card, m.Seats[0].Chosen)
		}
		if got := total(); got != before {
			t.Fatalf("hand conservation violated: expected %d cards, got %d", before, got)
		}
	}
	// Re-committing the only copy of a card is a valid no-op swap.
	mustPlay(t, m, 10, CardCounter)
	mustPlay(t, m, 10, CardCounter)
	if m.Seats[0].Hand.Counters != 0 || m.Seats[0].Chosen != CardCounter {
		t.Fatalf("expected counter held as commit, got %+v chosen %v", m.Seats[0].Hand, m.Seats[0].Chosen)
	}
}

func TestPlayCardUnavailableRejectedWithoutMutation(t *testing.T) {
	m := newTestMatch(t)
	m.Seats[0].Hand = Hand{Attacks: 1, Counters: 1}

	if _, err := m.PlayCard(10, CardRest); !errors.Is(err, ErrCardUnavailable) {
		t.Fatalf("expected ErrCardUnavailable, got %v", err)
	}
	if m.Seats[0].Hand != (Hand{Attacks: 1, Counters: 1}) || m.Seats[0].Chosen != CardUnspecified {
		t.Fatalf("expected untouched state, got %+v chosen %v", m.Seats[0].Hand, m.Seats[0].Chosen)
	}

	// A rejected change of commit keeps the prior commit and hand intact.
	mustPlay(t, m, 10, CardAttack)
	if _, err := m.PlayCard(10, CardRest); !errors.Is(err, ErrCardUnavailable) {
		t.Fatalf("expected ErrCardUnavailable, got %v", err)
	}
	if m.Seats[0].Chosen != CardAttack {
		t.Fatalf("expected attack commit preserved, got %v", m.Seats[0].Chosen)
	}
	if m.Seats[0].Hand != (Hand{Counters: 1}) {
		t.Fatalf("expected hand unchanged, got %+v", m.Seats[0].Hand)
	}
}

func TestPlayCardRejectsInvalidInputs(t *testing.T) {
	m := newTestMatch(t)

	if _, err := m.PlayCard(99, CardAttack); !errors.Is(err, ErrNotParticipant) {
		t.Fatalf("expected ErrNotParticipant, got %v", err)
	}
	if _, err := m.PlayCard(10, CardUnspecified); !errors.Is(err, ErrInvalidCard) {
		t.Fatalf("expected ErrInvalidCard, got %v", err)
	}
	if err := m.PickCard(99, CardAttack); !errors.Is(err, ErrNotParticipant) {
		t.Fatalf("expected ErrNotParticipant, got %v", err)
	}
}

func TestFinishedMatchIsImmutable(t *testing.T) {
	m := newTestMatch(t)
	if err := m.Forfeit(20); err != nil {
		t.Fatalf("forfeit: %v", err)
	}
	if m.End.Kind != EndVictory || m.End.WinnerID != 10 {
		t.Fatalf("expected victory for remaining player, got %+v", m.End)
	}

	if _, err := m.PlayCard(10, CardAttack); !errors.Is(err, ErrMatchConcluded) {
		t.Fatalf("expected ErrMatchConcluded, got %v", err)
	}
	if err := m.PickCard(10, CardAttack); !errors.Is(err, ErrMatchConcluded) {
		t.Fatalf("expected ErrMatchConcluded, got %v", err)
	}
	if err := m.Forfeit(10); !errors.Is(err, ErrMatchConcluded) {
		t.Fatalf("expected ErrMatchConcluded, got %v", err)
	}
}

func TestRoundResultForRedactsOpponent(t *testing.T) {
	m := newTestMatch(t)
	mustPlay(t, m, 20, CardAttack)

	result, err := m.RoundResultFor(10)
	if err != nil {
		t.Fatalf("round result: %v", err)
	}
	next, ok := result.(NextRound)
	if !ok {
		t.Fatalf("expected NextRound, got %T", result)
	}
	if next.Own.PlayerID != 10 {
		t.Fatalf("expected own state for player 10, got %d", next.Own.PlayerID)
	}
	// The opponent's commit stays hidden: the count includes the held card.
	if next.Opponent.CardCount != 4 {
		t.Fatalf("expected opponent card count 4, got %d", next.Opponent.CardCount)
	}
	if next.Opponent.Health != 5 {
		t.Fatalf("expected opponent health 5, got %d", next.Opponent.Health)
	}

	if _, err := m.RoundResultFor(99); !errors.Is(err, ErrNotParticipant) {
		t.Fatalf("expected ErrNotParticipant, got %v", err)
	}
}

func TestRoundResultForFinishedMatch(t *testing.T) {
	m := newTestMatch(t)
	if err := m.Forfeit(10); err != nil {
		t.Fatalf("forfeit: %v", err)
	}
	result, err := m.RoundResultFor(20)
	if err != nil {
		t.Fatalf("round result: %v", err)
	}
	ended, ok := result.(MatchEnded)
	if !ok {
		t.Fatalf("expected MatchEnded, got %T", result)
	}
	if ended.End.Kind != EndVictory || ended.End.WinnerID != 20 {
		t.Fatalf("expected victory for player 20, got %+v", ended.End)
	}
}
