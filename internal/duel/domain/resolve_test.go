package domain

import (
	"reflect"
	"testing"
)

func TestResolveDeltaTable(t *testing.T) {
	tests := []struct {
		name     string
		own      Card
		opponent Card
		want     int
	}{
		{"attack vs attack", CardAttack, CardAttack, -1},
		{"attack vs counter", CardAttack, CardCounter, -1},
		{"attack vs rest", CardAttack, CardRest, 0},
		{"counter vs attack", CardCounter, CardAttack, 0},
		{"counter vs counter", CardCounter, CardCounter, 0},
		{"counter vs rest", CardCounter, CardRest, 0},
		{"rest vs attack", CardRest, CardAttack, -1},
		{"rest vs counter", CardRest, CardCounter, 0},
		{"rest vs rest", CardRest, CardRest, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			delta, _ := Resolve(tc.own, tc.opponent)
			if delta != tc.want {
				t.Fatalf("expected delta %d, got %d", tc.want, delta)
			}
		})
	}
}

func TestResolveRewardTable(t *testing.T) {
	tests := []struct {
		name     string
		own      Card
		opponent Card
		want     []Reward
	}{
		{"counter vs attack grants counter", CardCounter, CardAttack, []Reward{
			FixedReward{Card: CardCounter},
		}},
		{"rest vs attack grants attack and rest", CardRest, CardAttack, []Reward{
			FixedReward{Card: CardAttack},
			FixedReward{Card: CardRest},
		}},
		{"rest vs counter grants choice and rest", CardRest, CardCounter, []Reward{
			ChoiceReward{Options: [2]Card{CardAttack, CardCounter}},
			FixedReward{Card: CardRest},
		}},
		{"rest vs rest grants choice and rest", CardRest, CardRest, []Reward{
			ChoiceReward{Options: [2]Card{CardAttack, CardCounter}},
			FixedReward{Card: CardRest},
		}},
		{"attack vs attack grants nothing", CardAttack, CardAttack, nil},
		{"attack vs counter grants nothing", CardAttack, CardCounter, nil},
		{"attack vs rest grants nothing", CardAttack, CardRest, nil},
		{"counter vs counter grants nothing", CardCounter, CardCounter, nil},
		{"counter vs rest grants nothing", CardCounter, CardRest, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, rewards := Resolve(tc.own, tc.opponent)
			if !reflect.DeepEqual(rewards, tc.want) {
				t.Fatalf("expected rewards %v, got %v", tc.want, rewards)
			}
		})
	}
}

func TestResolveIsDeterministic(t *testing.T) {
	cards := []Card{CardAttack, CardCounter, CardRest}
	for _, own := range cards {
		for _, opponent := range cards {
			firstDelta, firstRewards := Resolve(own, opponent)
			secondDelta, secondRewards := Resolve(own, opponent)
			if firstDelta != secondDelta {
				t.Fatalf("delta for %v vs %v changed between calls", own, opponent)
			}
			if !reflect.DeepEqual(firstRewards, secondRewards) {
				t.Fatalf("rewards for %v vs %v changed between calls", own, opponent)
			}
		}
	}
}
