// Package wire maps the domain message vocabulary to and from the JSON
// frame envelope used on the WebSocket. The state store never sees the
// envelope; sessions never see game rules.
package wire

import (
	"encoding/json"
	"fmt"

	"github.com/louisbranch/cardspar/internal/duel/domain"
	"github.com/louisbranch/cardspar/internal/duel/message"
)

// Frame is the wire envelope for every message in either direction.
type Frame struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Frame type identifiers. Client-to-server and server-to-client frames
// share the duel.challenge type; the payload differs by direction.
const (
	TypeChat              = "duel.chat"
	TypeChallenge         = "duel.challenge"
	TypeChallengeResponse = "duel.challenge_response"
	TypePlay              = "duel.play"
	TypePick              = "duel.pick"

	TypeConnected         = "duel.connected"
	TypeError             = "duel.error"
	TypePhase             = "duel.phase"
	TypeDirect            = "duel.direct"
	TypeChallengeAccepted = "duel.challenge_accepted"
	TypeRound             = "duel.round"
)

type chatPayload struct {
	To   int64  `json:"to"`
	Text string `json:"text"`
}

type challengeRequestPayload struct {
	Target int64 `json:"target"`
}

type challengeResponsePayload struct {
	Challenger int64 `json:"challenger"`
	Accepted   bool  `json:"accepted"`
}

type cardPayload struct {
	Card string `json:"card"`
}

type connectedPayload struct {
	PlayerID int64 `json:"player_id"`
}

type errorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type phasePayload struct {
	Phase  string `json:"phase"`
	Target int64  `json:"target,omitempty"`
	// Match is a pointer so a zero match id still appears on the wire.
	Match *int64 `json:"match,omitempty"`
}

type directPayload struct {
	From int64  `json:"from"`
	Text string `json:"text"`
}

type challengePayload struct {
	From int64 `json:"from"`
}

type roundPayload struct {
	MatchEnded *matchEndedPayload `json:"match_ended,omitempty"`
	NextRound  *nextRoundPayload  `json:"next_round,omitempty"`
}

type matchEndedPayload struct {
	Result string `json:"result"`
	Winner int64  `json:"winner,omitempty"`
}

type nextRoundPayload struct {
	You      ownStatePayload      `json:"you"`
	Opponent opponentStatePayload `json:"opponent"`
}

type ownStatePayload struct {
	Hand         handPayload `json:"hand"`
	Health       int         `json:"health"`
	Chosen       string      `json:"chosen,omitempty"`
	RewardChoice []string    `json:"reward_choice,omitempty"`
}

type handPayload struct {
	Attacks  int `json:"attacks"`
	Counters int `json:"counters"`
	Rests    int `json:"rests"`
}

type opponentStatePayload struct {
	CardCount int `json:"card_count"`
	Health    int `json:"health"`
}

// ParseCard maps a wire card name to the domain enum.
func ParseCard(name string) (domain.Card, error) {
	switch name {
	case "attack":
		return domain.CardAttack, nil
	case "counter":
		return domain.CardCounter, nil
	case "rest":
		return domain.CardRest, nil
	default:
		return domain.CardUnspecified, fmt.Errorf("unknown card %q", name)
	}
}

// CardName maps a domain card to its wire name.
func CardName(card domain.Card) string {
	switch card {
	case domain.CardAttack:
		return "attack"
	case domain.CardCounter:
		return "counter"
	case domain.CardRest:
		return "rest"
	default:
		return ""
	}
}

// DecodeInbound parses a raw client payload into a domain message.
func DecodeInbound(payload string) (message.Inbound, error) {
	var frame Frame
	if err := json.Unmarshal([]byte(payload), &frame); err != nil {
		return nil, fmt.Errorf("decode frame: %w", err)
	}

	switch frame.Type {
	case TypeChat:
		var body chatPayload
		if err := json.Unmarshal(frame.Payload, &body); err != nil {
			return nil, fmt.Errorf("decode chat payload: %w", err)
		}
		return message.Chat{To: body.To, Text: body.Text}, nil
	case TypeChallenge:
		var body challengeRequestPayload
		if err := json.Unmarshal(frame.Payload, &body); err != nil {
			return nil, fmt.Errorf("decode challenge payload: %w", err)
		}
		return message.ChallengeRequest{Target: body.Target}, nil
	case TypeChallengeResponse:
		var body challengeResponsePayload
		if err := json.Unmarshal(frame.Payload, &body); err != nil {
			return nil, fmt.Errorf("decode challenge response payload: %w", err)
		}
		return message.ChallengeResponse{Challenger: body.Challenger, Accepted: body.Accepted}, nil
	case TypePlay:
		card, err := decodeCardPayload(frame.Payload)
		if err != nil {
			return nil, err
		}
		return message.PlayCard{Card: card}, nil
	case TypePick:
		card, err := decodeCardPayload(frame.Payload)
		if err != nil {
			return nil, err
		}
		return message.PickCard{Card: card}, nil
	default:
		return nil, fmt.Errorf("unsupported frame type %q", frame.Type)
	}
}

func decodeCardPayload(raw json.RawMessage) (domain.Card, error) {
	var body cardPayload
	if err := json.Unmarshal(raw, &body); err != nil {
		return domain.CardUnspecified, fmt.Errorf("decode card payload: %w", err)
	}
	card, err := ParseCard(body.Card)
	if err != nil {
		return domain.CardUnspecified, err
	}
	return card, nil
}

// EncodeOutbound builds the wire frame for a server notification.
func EncodeOutbound(msg message.Outbound) (Frame, error) {
	switch msg := msg.(type) {
	case message.Connected:
		return marshalFrame(TypeConnected, connectedPayload{PlayerID: msg.ID})
	case message.Err:
		return marshalFrame(TypeError, errorPayload{Code: msg.Code, Message: msg.Text})
	case message.PhaseUpdate:
		return marshalFrame(TypePhase, encodePhase(msg.Phase))
	case message.Direct:
		return marshalFrame(TypeDirect, directPayload{From: msg.From, Text: msg.Text})
	case message.Challenge:
		return marshalFrame(TypeChallenge, challengePayload{From: msg.From})
	case message.ChallengeAccepted:
		return Frame{Type: TypeChallengeAccepted}, nil
	case message.RoundResult:
		return marshalFrame(TypeRound, encodeRound(msg.Result))
	default:
		return Frame{}, fmt.Errorf("unsupported outbound message %T", msg)
	}
}

func marshalFrame(frameType string, payload any) (Frame, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Frame{}, fmt.Errorf("encode %s payload: %w", frameType, err)
	}
	return Frame{Type: frameType, Payload: raw}, nil
}

func encodePhase(phase domain.Phase) phasePayload {
	switch phase.Kind {
	case domain.PhaseChallenging:
		return phasePayload{Phase: "challenging", Target: phase.Target}
	case domain.PhaseInMatch:
		match := phase.Match
		return phasePayload{Phase: "in_match", Match: &match}
	default:
		return phasePayload{Phase: "idle"}
	}
}

func encodeRound(result domain.RoundResult) roundPayload {
	switch result := result.(type) {
	case domain.MatchEnded:
		ended := matchEndedPayload{Result: "draw"}
		if result.End.Kind == domain.EndVictory {
			ended.Result = "victory"
			ended.Winner = result.End.WinnerID
		}
		return roundPayload{MatchEnded: &ended}
	case domain.NextRound:
		choices := make([]string, 0, len(result.Own.RewardChoice))
		for _, card := range result.Own.RewardChoice {
			choices = append(choices, CardName(card))
		}
		if len(choices) == 0 {
			choices = nil
		}
		return roundPayload{NextRound: &nextRoundPayload{
			You: ownStatePayload{
				Hand: handPayload{
					Attacks:  result.Own.Hand.Attacks,
					Counters: result.Own.Hand.Counters,
					Rests:    result.Own.Hand.Rests,
				},
				Health:       result.Own.Health,
				Chosen:       CardName(result.Own.Chosen),
				RewardChoice: choices,
			},
			Opponent: opponentStatePayload{
				CardCount: result.Opponent.CardCount,
				Health:    result.Opponent.Health,
			},
		}}
	default:
		return roundPayload{}
	}
}
