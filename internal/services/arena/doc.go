// Package arena implements the real-time transport for duels.
//
// It keeps WebSocket lifecycle, wire encoding, and per-connection session
// actors isolated from game logic so the state store remains the single
// source of truth for players and matches.
package arena
