// Package concrete implements solsym's bit-width-annotated literal values:
// the Solidity built-in scalar kinds (uintN, intN, bool, address, bytesN,
// string) plus exact 256-bit arithmetic over them.
//
// Every Value carries its own bit width so that e.g. a uint8 literal and a
// uint256 literal holding the same magnitude are never confused by the
// range algebra in package srange: arithmetic wraps at the operands' bit
// width rather than reporting overflow.
//
// Values are immutable: every arithmetic method returns a new Value rather
// than mutating the receiver, matching the graph's append-only discipline
// (package pgraph never rewrites a Concrete node's value in place).
package concrete
