// Package services holds domain logic that spans aggregates, such as deciding
// courier availability from the set of active orders.
package services
