// Package inventory contains the pharmacy catalog: one Record per
// (medicine, pharmacy) pair with price, discount and stock, plus the demand
// types used for atomic all-or-nothing stock deduction when an order becomes
// ready.
package inventory
