// Package checks contains the built-in rule families. Each file defines
// one data-driven rule and registers it from init(); importing the package
// for side effects is enough to populate the registry.
package checks
