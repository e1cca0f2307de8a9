// Package services provides domain services that orchestrate business
// operations across the order aggregate.
//
// The package includes:
//   - OrderStateMachine: applies actor-scoped negotiation commands to an
//     Order and maps each transition to the notification intents it owes
//
// The state machine holds the rules that depend on who acts (admin-only
// commands, accepting the other side's suggestion); the rules that depend
// only on order state live on the aggregate itself.
package services
