// Package notification provides the Notification entity of the portal's
// pull-based inbox and the Intent value object the state machine emits as a
// transition side effect.
//
// Intents are addressed to an Audience (customer or admin) rather than a
// concrete user; the dispatcher resolves the audience to a user id when the
// notification record is written. Dispatch is best-effort and decoupled from
// the order transaction: a failed dispatch is logged, never rolled back into
// the domain.
package notification
