// Package ir provides the in-memory representation of YAML documents.
//
// # Overview
//
// A [Document] owns an arena of [Node]s addressed by [NodeID]. Containers
// refer to their children by ID and an alias is a node of [AliasKind]
// whose Target is the ID of the anchored node, so a document never holds
// two pointers to the same subtree. A [Stream] is the ordered list of
// documents of one input.
//
// # Node Kinds
//
//   - NullKind, BoolKind, IntKind, FloatKind, StringKind: scalars
//   - SequenceKind: ordered Items
//   - MappingKind: ordered Pairs whose keys are arbitrary nodes
//   - AliasKind: a reference to Target
//
// # Building
//
// Documents are built bottom-up: a container may only reference nodes
// that already exist and are complete, so walking Items and Pairs never
// cycles. Aliases are the only back references and cycle-aware code
// detects them by kind. [Document.Reserve] and [Document.Fill] allow a
// node ID to be known before its content, which lets an alias inside a
// collection refer to the collection itself.
//
// Documents returned by the parser are frozen. Builder methods panic on a
// frozen document; [Document.Clone] returns a mutable copy.
//
// # Resolution
//
// Plain scalars are resolved to null, bool, int, float or string by a
// [Schema]. [CoreSchema] implements the YAML 1.2 core schema and is the
// default; [YAML11Schema] additionally accepts the YAML 1.1 forms such
// as yes/no booleans.
//
// # Paths
//
// [Document.Lookup] addresses nodes with paths such as a.b[0] or
// $.a.'dotted.key'[2].
package ir
