// Package kernel contains shared value objects used across all domain models:
// UUID identifiers, actor identity with its closed role enumeration, and the
// delivery address snapshot. Everything here is immutable and constructed
// through validating factory functions.
package kernel
