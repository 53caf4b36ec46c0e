// Package request contains the Request aggregate root of the quotation
// workflow: the transport request itself, its Package line items, the
// Status state machine and the ServiceRequirements handling rules.
//
// A Request owns its packages; totals (pieces, weight, volume) are computed
// from the lines and can never drift from them. All lifecycle changes go
// through transition methods backed by the Status state machine.
package request
