// Package duel serves as an umbrella for the card-battle engine core logic,
// including the card resolution table, match state machine, and the
// authoritative state store.
//
// The package is organized into three primary subpackages:
//   - domain: Implements the core mechanics of a duel, including the card
//     interaction table, round resolution, and reward handling.
//   - message: Defines the decoded inbound/outbound message vocabulary
//     exchanged between sessions and the state store.
//   - service: Implements the serialized state store that owns all player
//     and match data.
package duel
