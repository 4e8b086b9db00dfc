// Package rules implements the declarative validation engine behind jsonvet.
//
// A Schema describes up to five rule families over a flat JSON document:
// required fields, at-least-one-of groups, either-or groups, exactly-one
// groups, and allowed-value enumerations. Rules are data-driven RuleDef
// values registered from the checks subpackage; the Validator evaluates
// them in a fixed order and stops at the first failing family.
//
// Two presence predicates drive the checks: HasKey (key existence only,
// used by the required-fields family) and IsPresentTruthy (key exists and
// the value is not a falsy sentinel, used by the choice families). The
// asymmetry is part of the contract, not an accident.
package rules
