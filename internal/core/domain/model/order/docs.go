// Package order provides the Order aggregate of the shopping portal: the
// delivery-date negotiation state machine, the item list with its mutation
// guards, and soft deletion.
//
// The package includes:
//   - Order: the aggregate root owning negotiation state and items
//   - Status: the derived negotiation state with its transition guards
//   - Actor: the role (customer or admin) performing a transition
//   - Item and ImageRef: the order's lines and their image references
//
// Key business rules:
//   - A delivery date is negotiated: either side suggests, only the other
//     side may accept, and the admin may force a date unilaterally
//   - A final date locks the order; an admin may also lock it explicitly
//   - Cancellation is possible only while no final date exists
//   - Orders are soft-deleted and restorable; a deleted order rejects every
//     command except Restore
//   - The item list is never empty
//
// The aggregate is pure: it performs no I/O and no locking. Concurrent
// writers are serialized by the repository's optimistic version check.
package order
