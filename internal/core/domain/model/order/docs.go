// Package order provides domain entities and business logic for print order
// fulfillment. It implements the Order aggregate root with lifecycle management
// and a status state machine covering the whole path from payment confirmation
// through production, shipping or pickup, and terminal resolution.
//
// The package includes:
//   - Order: The aggregate root that manages order identity, properties, and lifecycle
//   - Status: A closed enumeration with a fixed transition table
//   - StatusHistoryEntry: An immutable audit record appended on every transition
//
// Key business rules:
//   - Status is never set directly; every change goes through a validated transition
//   - Each applied transition appends exactly one StatusHistoryEntry
//   - Transition-specific fields (tracking data, vendor assignment, hold reason) are
//     set only by the mutating method for that transition kind
//   - Cancelled and Refunded are terminal: no outgoing transitions
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
