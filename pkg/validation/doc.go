// Package validation checks collected values against the rules a form field
// declares. ValidateField applies the rules in a fixed precedence (required,
// minLength, maxLength, email, phone) and reports only the first failure;
// ValidateSection runs every field of a section and gathers all failures into
// a fresh Errors map. Both are pure functions.
package validation
