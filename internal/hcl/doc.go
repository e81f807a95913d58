// Package hcl implements the HCL-backed manifest loader. It discovers .hcl
// files, decodes their service blocks against the schema package, and
// translates them into the format-agnostic config model, evaluating default
// expressions and rejecting malformed definitions along the way.
package hcl
