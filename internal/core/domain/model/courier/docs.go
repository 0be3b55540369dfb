// Package courier contains the Courier aggregate: a registered delivery
// agent. Busy/free state is derived from orders, not stored on the courier.
package courier
