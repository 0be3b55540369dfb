// Package ports declares the interfaces the core depends on: repositories,
// the unit of work and the notification side channel. Adapters implement
// them; the core never imports an adapter.
package ports
