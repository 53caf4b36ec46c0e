// Package kernel provides the shared domain primitives of the freight
// quotation service.
//
// The package includes:
//   - UUID: identifier value object for entities and aggregates
//   - AccessToken: unguessable token granting a carrier access to one invitation
//   - Money: euro amount stored as integer cents with exact tax arithmetic
//   - Address: postal address of a pickup or delivery site
//   - GeoPoint: WGS84 coordinates with great-circle distance
//   - TimeWindow: an HH:MM..HH:MM slot within a day
//
// All types are immutable value objects. Their zero values are invalid; use
// the constructor functions, which validate invariants at creation time.
package kernel
