// Package config defines the format-agnostic model of a service catalog: the
// services themselves, their input fields, and the selector constraints each
// field carries. Loaders for concrete manifest formats (HCL, YAML) translate
// their documents into this model, and the rest of the engine never touches a
// manifest format directly.
//
// The package also owns definition-time validation: a ServiceSpec produced by
// a loader is checked for internal consistency (defaults matching selectors,
// sane number ranges, unique names) before it is allowed anywhere near the
// registry. This is validation of the schema itself, distinct from the
// per-call argument validation in the validator package.
package config
