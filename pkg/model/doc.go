// Package model defines the form schema fetched from the remote form service
// and the value types collected against it. A FormStructure is an ordered list
// of sections, each an ordered list of fields; field identifiers are unique
// across the whole form and double as keys in the flat Values map. Field types
// form a closed set (see FieldType) and the value held for a field is a tagged
// union: checkbox groups hold a Set, every other type holds a Scalar. JSON tags
// follow the remote service payloads (`dataTestId`, nested `validation.message`)
// so responses decode without an intermediate DTO.
package model
