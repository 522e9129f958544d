// Package pact implements the PACT (Pathfinder) product carbon footprint
// data model: primitive value types, closed enumerations, URN identifiers,
// uniqueness-constrained identifier lists and the composite records that
// make up a ProductFootprint.
//
// Every type is produced by a constructor that validates it completely.
// Setters validate a candidate copy and only commit it when every field and
// cross-field rule still holds, so a value is never observed in an invalid
// state. Validation is fail-fast: the first violated rule is returned as a
// *ValidationError naming the offending wire field.
//
// Requirements that depend on the reporting year are evaluated against the
// record's reference period, never against the wall clock, so historical
// records validate the same way forever.
package pact
