// Package ir is the in-memory document model shared by every codec in
// this module: the SISL parser and writer, the JSON and XML converters,
// and the splitter and joiner.
//
// A document is a tree of *Node values. Every Node carries exactly one
// Kind (§3 of the spec): Str, Int, Float, Bool, Null, Obj, or List.
// Obj and List are the only container kinds; every other kind is a
// scalar leaf.
//
// Obj preserves insertion order and supports O(1) key lookup through an
// auxiliary index, never a plain unordered map. List is dense: index i
// implies indices 0..i-1 exist.
package ir
