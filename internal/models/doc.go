// Package models defines the core domain models for GroupTab.
//
// # Models
//
//   - Expense: a shared cost fronted by one payer and split equally
//     among its participants
//   - SettlementPair: a recorded fact that one participant's share of an
//     expense has been paid back to the payer
//   - Group: a named set of members who share expenses
//   - SimplifiedDebt: a suggested payment produced by debt simplification
//
// Members are identified by opaque id strings. Resolving an id to display
// data (name, avatar) is the member directory's job; nothing in the ledger
// ever inspects an id beyond equality checks.
//
// # Design Principles
//
//  1. Balances are derived, never stored: every balance snapshot is
//     recomputed from the live expense list, so deleting an expense needs
//     no cascading cleanup.
//  2. Settlement state is presence/absence only: no per-entry amount or
//     timestamp. The amount owed is always the expense's current
//     AmountPerPerson at the time of query.
//  3. Avoid circular references: relationships use id strings, not
//     pointers.
package models
