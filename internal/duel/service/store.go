// Package service implements the authoritative state store: the single
// serialization point that owns all player and match data.
//
// The store is an actor. Lifecycle events and client payloads enter through
// a queue drained by one goroutine, so every mutation of players and matches
// is applied in full before the next begins. Sessions interact with the
// store only by enqueueing events and by receiving outbound notifications
// through their Publisher.
package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/louisbranch/cardspar/internal/duel/domain"
	"github.com/louisbranch/cardspar/internal/duel/message"
	apperrors "github.com/louisbranch/cardspar/internal/errors"
)

// eventQueueSize bounds the store's inbound queue. Senders block only under
// sustained backpressure.
const eventQueueSize = 256

// Publisher delivers outbound notifications to one session. Implementations
// must not block the caller; the store runs on a single goroutine.
type Publisher interface {
	Publish(msg message.Outbound)
}

// Decoder turns a raw transport payload into a domain message. Decoding is
// a collaborator concern; the store only consumes the result.
type Decoder func(payload string) (message.Inbound, error)

type player struct {
	id      int64
	session Publisher
	phase   domain.Phase
}

type event interface {
	isEvent()
}

type createEvent struct {
	session Publisher
}

func (createEvent) isEvent() {}

type deleteEvent struct {
	playerID int64
}

func (deleteEvent) isEvent() {}

type receiveEvent struct {
	playerID int64
	payload  string
}

func (receiveEvent) isEvent() {}

// Store owns the Players and Matches collections. No other component ever
// mutates them.
type Store struct {
	decode Decoder
	events chan event

	// stopped closes when Run returns so enqueuers stop blocking on a
	// drained loop.
	stopped chan struct{}

	players      map[int64]*player
	matches      map[int64]*domain.Match
	nextPlayerID int64
}

// NewStore creates a store that decodes inbound payloads with decode.
func NewStore(decode Decoder) *Store {
	return &Store{
		decode:       decode,
		events:       make(chan event, eventQueueSize),
		stopped:      make(chan struct{}),
		players:      make(map[int64]*player),
		matches:      make(map[int64]*domain.Match),
		nextPlayerID: 1,
	}
}

// Run drains the event queue until the context ends. Run must be called
// exactly once per store; events enqueued after it returns are discarded.
func (s *Store) Run(ctx context.Context) {
	defer close(s.stopped)
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-s.events:
			s.handle(ev)
		}
	}
}

// Create registers a new session. The store assigns the next player id and
// notifies the session with a Connected message.
func (s *Store) Create(session Publisher) {
	s.enqueue(createEvent{session: session})
}

// Delete removes a player after their connection closed.
func (s *Store) Delete(playerID int64) {
	s.enqueue(deleteEvent{playerID: playerID})
}

// Receive hands a raw inbound payload from an established session to the
// store.
func (s *Store) Receive(playerID int64, payload string) {
	s.enqueue(receiveEvent{playerID: playerID, payload: payload})
}

func (s *Store) enqueue(ev event) {
	select {
	case s.events <- ev:
	case <-s.stopped:
	}
}

func (s *Store) handle(ev event) {
	switch ev := ev.(type) {
	case createEvent:
		s.handleCreate(ev.session)
	case deleteEvent:
		s.handleDelete(ev.playerID)
	case receiveEvent:
		s.handleReceive(ev.playerID, ev.payload)
	}
}

func (s *Store) handleCreate(session Publisher) {
	id := s.nextPlayerID
	s.nextPlayerID++
	s.players[id] = &player{id: id, session: session, phase: domain.Idle()}
	session.Publish(message.Connected{ID: id})
}

func (s *Store) handleDelete(playerID int64) {
	p, ok := s.players[playerID]
	if !ok {
		return
	}
	delete(s.players, playerID)

	// A departed participant forfeits their live match.
	if p.phase.Kind == domain.PhaseInMatch {
		if m, ok := s.matches[p.phase.Match]; ok && !m.Finished() {
			if err := m.Forfeit(playerID); err != nil {
				log.Printf("duel: forfeit match %d for player %d: %v", m.ID, playerID, err)
			} else {
				s.finishMatch(m)
			}
		}
	}

	// Challenges aimed at the departed player can never be answered.
	for _, challenger := range s.players {
		if challenger.phase.Kind == domain.PhaseChallenging && challenger.phase.Target == playerID {
			s.setPhase(challenger, domain.Idle())
		}
	}
}

func (s *Store) handleReceive(playerID int64, payload string) {
	p, ok := s.players[playerID]
	if !ok {
		log.Printf("duel: dropping payload from unknown player %d", playerID)
		return
	}

	msg, err := s.decode(payload)
	if err != nil {
		s.reject(p, apperrors.Wrap(apperrors.CodeMessageUndecodable, "message could not be decoded", err))
		return
	}

	switch msg := msg.(type) {
	case message.Chat:
		s.handleChat(p, msg)
	case message.ChallengeRequest:
		s.handleChallengeRequest(p, msg)
	case message.ChallengeResponse:
		s.handleChallengeResponse(p, msg)
	case message.PlayCard:
		s.handlePlayCard(p, msg)
	case message.PickCard:
		s.handlePickCard(p, msg)
	default:
		s.reject(p, apperrors.New(apperrors.CodeMessageUndecodable, "unsupported message"))
	}
}

func (s *Store) handleChat(p *player, msg message.Chat) {
	target, ok := s.players[msg.To]
	if !ok {
		s.reject(p, notFound(msg.To))
		return
	}
	target.session.Publish(message.Direct{From: p.id, Text: msg.Text})
}

func (s *Store) handleChallengeRequest(p *player, msg message.ChallengeRequest) {
	if p.phase.Kind != domain.PhaseIdle {
		s.reject(p, invalid(fmt.Sprintf("cannot challenge while %s", p.phase)))
		return
	}
	if msg.Target == p.id {
		s.reject(p, invalid("cannot challenge yourself"))
		return
	}
	target, ok := s.players[msg.Target]
	if !ok {
		s.reject(p, notFound(msg.Target))
		return
	}

	s.setPhase(p, domain.Challenging(target.id))
	target.session.Publish(message.Challenge{From: p.id})
}

func (s *Store) handleChallengeResponse(p *player, msg message.ChallengeResponse) {
	challenger, ok := s.players[msg.Challenger]
	if !ok {
		s.reject(p, notFound(msg.Challenger))
		return
	}
	if challenger.phase.Kind != domain.PhaseChallenging || challenger.phase.Target != p.id {
		s.reject(p, invalid("player is not challenging you"))
		return
	}

	if !msg.Accepted {
		s.setPhase(challenger, domain.Idle())
		return
	}

	if p.phase.Kind == domain.PhaseInMatch {
		s.reject(p, invalid("cannot accept a challenge while in a match"))
		return
	}

	matchID := int64(len(s.matches))
	m, err := domain.NewMatch(matchID, challenger.id, p.id)
	if err != nil {
		s.reject(p, invalid(err.Error()))
		return
	}
	s.matches[matchID] = m

	challenger.session.Publish(message.ChallengeAccepted{})
	s.setPhase(challenger, domain.InMatch(matchID))
	s.setPhase(p, domain.InMatch(matchID))
	s.publishRound(m)
}

func (s *Store) handlePlayCard(p *player, msg message.PlayCard) {
	m, appErr := s.liveMatch(p)
	if appErr != nil {
		s.reject(p, appErr)
		return
	}
	resolved, err := m.PlayCard(p.id, msg.Card)
	if err != nil {
		s.reject(p, invalidCause(err))
		return
	}
	if !resolved {
		return
	}
	if m.Finished() {
		s.finishMatch(m)
		return
	}
	s.publishRound(m)
}

func (s *Store) handlePickCard(p *player, msg message.PickCard) {
	m, appErr := s.liveMatch(p)
	if appErr != nil {
		s.reject(p, appErr)
		return
	}
	if err := m.PickCard(p.id, msg.Card); err != nil {
		s.reject(p, invalidCause(err))
		return
	}
	// Refresh only the picker; the opponent's view did not change in a way
	// that is visible to them until the next resolution.
	if result, err := m.RoundResultFor(p.id); err == nil {
		p.session.Publish(message.RoundResult{Result: result})
	}
}

// liveMatch resolves the caller's current match, validating phase and match
// liveness.
func (s *Store) liveMatch(p *player) (*domain.Match, *apperrors.Error) {
	if p.phase.Kind != domain.PhaseInMatch {
		return nil, invalid("not in a match")
	}
	m, ok := s.matches[p.phase.Match]
	if !ok {
		return nil, apperrors.WithMetadata(apperrors.CodeIDNotFound, "match not found",
			map[string]string{"match_id": fmt.Sprintf("%d", p.phase.Match)})
	}
	if m.Finished() {
		return nil, invalidCause(domain.ErrMatchConcluded)
	}
	return m, nil
}

// publishRound fans the per-participant projection out to both sessions.
func (s *Store) publishRound(m *domain.Match) {
	first, second := m.Participants()
	for _, id := range []int64{first, second} {
		p, ok := s.players[id]
		if !ok {
			continue
		}
		result, err := m.RoundResultFor(id)
		if err != nil {
			log.Printf("duel: project match %d for player %d: %v", m.ID, id, err)
			continue
		}
		p.session.Publish(message.RoundResult{Result: result})
	}
}

// finishMatch delivers the terminal result and returns both participants to
// idle. The match record is retained.
func (s *Store) finishMatch(m *domain.Match) {
	s.publishRound(m)
	first, second := m.Participants()
	for _, id := range []int64{first, second} {
		if p, ok := s.players[id]; ok {
			s.setPhase(p, domain.Idle())
		}
	}
}

func (s *Store) setPhase(p *player, phase domain.Phase) {
	p.phase = phase
	p.session.Publish(message.PhaseUpdate{Phase: phase})
}

func (s *Store) reject(p *player, appErr *apperrors.Error) {
	p.session.Publish(message.Err{Code: string(appErr.Code), Text: appErr.Message})
}

func notFound(id int64) *apperrors.Error {
	return apperrors.WithMetadata(apperrors.CodeIDNotFound,
		fmt.Sprintf("player %d not found", id),
		map[string]string{"player_id": fmt.Sprintf("%d", id)})
}

func invalid(reason string) *apperrors.Error {
	return apperrors.New(apperrors.CodeInvalidRequest, reason)
}

func invalidCause(err error) *apperrors.Error {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return apperrors.Wrap(apperrors.CodeInvalidRequest, err.Error(), err)
}
