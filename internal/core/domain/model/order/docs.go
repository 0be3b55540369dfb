// Package order contains the Order aggregate: the priced item snapshot taken
// at placement, the status state machine with its role-gated transition
// table, the courier offer/accept/reject workflow and the audit trail of
// every status change.
package order
