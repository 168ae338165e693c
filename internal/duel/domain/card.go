package domain

// Card identifies one of the three playable card kinds.
type Card int

const (
	// CardUnspecified represents an invalid card value.
	CardUnspecified Card = iota
	// CardAttack deals damage unless countered.
	CardAttack
	// CardCounter negates an attack at no cost.
	CardCounter
	// CardRest recovers nothing but earns cards.
	CardRest
)

func (c Card) String() string {
	switch c {
	case CardUnspecified:
		return "Unspecified"
	case CardAttack:
		return "Attack"
	case CardCounter:
		return "Counter"
	case CardRest:
		return "Rest"
	default:
		return "Unknown"
	}
}

// Valid reports whether c is one of the three playable kinds.
func (c Card) Valid() bool {
	switch c {
	case CardAttack, CardCounter, CardRest:
		return true
	default:
		return false
	}
}

// Hand holds a player's card counts by kind. All counts are non-negative.
type Hand struct {
	Attacks  int
	Counters int
	Rests    int
}

// StartingHand is the hand every participant receives at match start.
func StartingHand() Hand {
	return Hand{Attacks: 2, Counters: 1, Rests: 1}
}

// Count returns how many copies of card the hand holds.
func (h Hand) Count(card Card) int {
	switch card {
	case CardAttack:
		return h.Attacks
	case CardCounter:
		return h.Counters
	case CardRest:
		return h.Rests
	default:
		return 0
	}
}

// Total returns the number of cards in the hand.
func (h Hand) Total() int {
	return h.Attacks + h.Counters + h.Rests
}

// Add returns a hand with one more copy of card.
func (h Hand) Add(card Card) Hand {
	switch card {
	case CardAttack:
		h.Attacks++
	case CardCounter:
		h.Counters++
	case CardRest:
		h.Rests++
	}
	return h
}

// Remove returns a hand with one copy of card removed. The caller must
// ensure the card is available; counts never go negative.
func (h Hand) Remove(card Card) Hand {
	switch card {
	case CardAttack:
		if h.Attacks > 0 {
			h.Attacks--
		}
	case CardCounter:
		if h.Counters > 0 {
			h.Counters--
		}
	case CardRest:
		if h.Rests > 0 {
			h.Rests--
		}
	}
	return h
}
