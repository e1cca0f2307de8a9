// Package kernel provides the shared value objects of the domain model:
// UUID identifiers and the DeliveryDate pair of calendar day and time slot
// with its canonical wire codec.
//
// All types in this package are immutable value objects. Zero values are
// invalid; construction goes through validating factory functions, and
// Validate() detects instances that bypassed them.
package kernel
