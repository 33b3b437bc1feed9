// Package schema implements the property-descriptor validation engine
// for virtual JSON values: a [Descriptor] names one object property, the JSON types it
// may take, and a [*jsonschema.Schema] fragment of value constraints; an
// [Object] groups descriptors into one shape. [ValidateObject] walks a
// [tree.Handle] against an [Object] and reports every violation found, not
// just the first.
//
// Constraints reuse [github.com/google/jsonschema-go/jsonschema.Schema] as
// the carrier type rather than a bespoke constraint struct, and
// [MergeConstraints] follows the same "lower priority fills gaps" layering
// discipline as a schema-generation pipeline, adapted so that for numeric
// bounds the tighter of two layers always wins rather than the
// higher-priority one unconditionally overriding the lower.
package schema
