// Package order holds the lifecycle side of a garment-care order.
//
// The package includes:
//   - Status: the closed set of lifecycle stages
//   - Graph: the transition table between stages, configurable with options
//   - HistoryEntry: one append-only line of the status ledger
//   - Order: the aggregate root tying status, ledger and sorting window state together
//
// Key business rules:
//   - Orders move Received -> Queued -> Washing -> Drying -> Ironing -> QualityCheck
//     -> Packaging -> Ready, then either OutForDelivery -> Delivered or Collected
//   - Delivered and Collected are terminal
//   - the ledger is never empty and its last entry always equals the current status
//   - a rejected transition leaves the order untouched
package order
