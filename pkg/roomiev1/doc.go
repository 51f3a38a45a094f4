// Package roomiev1 defines the Roomie Board API messages.
//
// Messages are plain Go structs carried as JSON by the Connect protocol
// (see Codec). Amounts are decimal strings, dates are YYYY-MM-DD and
// timestamps are RFC 3339.
package roomiev1
