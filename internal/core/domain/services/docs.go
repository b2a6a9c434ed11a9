// Package services provides domain services that orchestrate business rules
// across multiple aggregates of the fulfillment system. It implements logic
// that does not naturally belong to a single aggregate root.
//
// The package includes:
//   - StatusMapper: translates courier shipment statuses into sub-order and
//     order status targets
//   - CompletionPolicy: decides when a whole order counts as completed
//   - RedeliveryScheduler: computes the next delivery attempt slot
//   - ShipperDispatcher: picks the best available shipper for a shipment
package services
