// Package domain implements the rules of a duel: cards, hands, the
// interaction table, and the match state machine.
//
// Everything here is pure state manipulation. The package never performs
// I/O and has no knowledge of sessions or transports; callers apply
// operations and project results for delivery.
package domain
