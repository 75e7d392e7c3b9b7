// Package driver provides the Driver aggregate used by batch assignment.
//
// A driver works out of one branch, can be on or off shift, and carries a
// count of active batches. Automatic assignment picks the available driver
// with the lowest count; explicit assignment fails with ErrDriverUnavailable
// when the chosen driver cannot serve the batch's origin.
package driver
