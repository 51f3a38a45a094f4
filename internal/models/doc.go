// Package models defines the core domain models for Roomie Board.
//
// # Models
//
//   - Bill: a shared household expense, paid by one roommate and shared
//     either evenly (SplitEvenly) or owed in full by one roommate (FullyOwedBy)
//   - Comment: a discussion entry appended to a bill
//   - Roommate: a household member, keyed by the identifier issued by the
//     external identity provider
//   - Notification: an entry in the household activity feed
//
// # Design Principles
//
//  1. Roommates are referenced by ID strings, never by pointer
//  2. Money is always decimal.Decimal, never float64
//  3. The split mode is a closed variant: a bill cannot carry both an even
//     split and a full debtor
package models
