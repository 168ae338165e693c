package domain

// Reward is a card grant earned from the interaction table. It is a closed
// variant: either a FixedReward added to the hand immediately or a
// ChoiceReward the player must resolve before playing again.
type Reward interface {
	isReward()
}

// FixedReward grants a specific card.
type FixedReward struct {
	Card Card
}

func (FixedReward) isReward() {}

// ChoiceReward grants one card chosen from two options.
type ChoiceReward struct {
	Options [2]Card
}

func (ChoiceReward) isReward() {}

// Resolve maps a pair of committed cards to the health delta and rewards for
// the player who committed own. It is pure and total over valid cards.
//
// Delta table (row = own card, column = opponent card):
//
//	         Attack  Counter  Rest
//	Attack    -1       -1      0
//	Counter    0        0      0
//	Rest      -1        0      0
func Resolve(own, opponent Card) (delta int, rewards []Reward) {
	switch own {
	case CardAttack:
		switch opponent {
		case CardAttack, CardCounter:
			delta = -1
		case CardRest:
			delta = 0
		}
	case CardCounter:
		if opponent == CardAttack {
			rewards = []Reward{FixedReward{Card: CardCounter}}
		}
	case CardRest:
		switch opponent {
		case CardAttack:
			delta = -1
			rewards = []Reward{
				FixedReward{Card: CardAttack},
				FixedReward{Card: CardRest},
			}
		case CardCounter, CardRest:
			rewards = []Reward{
				ChoiceReward{Options: [2]Card{CardAttack, CardCounter}},
				FixedReward{Card: CardRest},
			}
		}
	}
	return delta, rewards
}
