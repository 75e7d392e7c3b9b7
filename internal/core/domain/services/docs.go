// Package services provides domain services of the garment-care order engine:
// logic that reads several aggregates, or that is a pure decision over data
// handed in by the caller.
//
// The package includes:
//   - LifecycleAnalytics: dwell time, urgency, overdue flags, bottlenecks and pipeline snapshots
//   - SortingWindow: the buffer between arrival at a processing branch and hand-off
//   - DeliveryFeeEngine: prioritized, conditional delivery pricing
//   - BatchDispatcher: batch eligibility, creation and driver matching
//   - RoutePlanner: validation and policy around the external route optimizer
//
// None of the services keep state between calls; configuration and rule sets
// are explicit inputs.
package services
