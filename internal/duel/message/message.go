// Package message defines the decoded domain message vocabulary exchanged
// between connection sessions and the state store.
//
// Inbound and Outbound are closed variants: the store consumes inbound
// messages and produces outbound notifications with exhaustive type
// switches, while wire encoding stays a transport concern.
package message

import "github.com/louisbranch/cardspar/internal/duel/domain"

// Inbound is a client request decoded from the wire.
type Inbound interface {
	isInbound()
}

// Chat relays a direct text message to another player.
type Chat struct {
	To   int64
	Text string
}

func (Chat) isInbound() {}

// ChallengeRequest asks another player for a match.
type ChallengeRequest struct {
	Target int64
}

func (ChallengeRequest) isInbound() {}

// ChallengeResponse accepts or rejects an incoming challenge.
type ChallengeResponse struct {
	Challenger int64
	Accepted   bool
}

func (ChallengeResponse) isInbound() {}

// PlayCard commits a card for the current round.
type PlayCard struct {
	Card domain.Card
}

func (PlayCard) isInbound() {}

// PickCard resolves a pending reward choice.
type PickCard struct {
	Card domain.Card
}

func (PickCard) isInbound() {}

// Outbound is a server notification delivered to one session.
type Outbound interface {
	isOutbound()
}

// Connected informs a new session of its assigned player id.
type Connected struct {
	ID int64
}

func (Connected) isOutbound() {}

// Err reports a rejected request to its sender.
type Err struct {
	Code string
	Text string
}

func (Err) isOutbound() {}

// PhaseUpdate informs a player of their new game phase.
type PhaseUpdate struct {
	Phase domain.Phase
}

func (PhaseUpdate) isOutbound() {}

// Direct delivers a relayed chat message.
type Direct struct {
	From int64
	Text string
}

func (Direct) isOutbound() {}

// Challenge notifies a player of an incoming challenge.
type Challenge struct {
	From int64
}

func (Challenge) isOutbound() {}

// ChallengeAccepted notifies the challenger that their challenge was
// accepted and a match begins.
type ChallengeAccepted struct{}

func (ChallengeAccepted) isOutbound() {}

// RoundResult delivers a participant's projection of the match.
type RoundResult struct {
	Result domain.RoundResult
}

func (RoundResult) isOutbound() {}
