// Package feerule holds delivery fee rules: conditions that select a rule and
// the calculation that prices delivery once it is selected.
//
// Rules are immutable after NewRule. Choosing among rules (priority order,
// first full match, system default) is the job of the fee engine service.
package feerule
