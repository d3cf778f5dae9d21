// Package controller drives a multi-section form. State holds the active
// section, the collected values and the current validation errors; the
// package-level transition functions are pure and return a new State. The
// Controller type wraps one State for callers that want a stateful handle
// bound to a submission sink.
package controller
