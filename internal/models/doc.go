// Package models defines the core domain models for fintrack.
//
// # Ledger Models
//
// The following models take part in the balance invariant:
//   - Account: A named balance-holding entity owned by one user
//   - Transaction: A dated income or expense affecting exactly one Account
//
// An Account's Balance always equals its OpeningBalance plus the signed sum of
// the effects of every Transaction that references it. Only the ledger package
// writes Transactions or Account balances.
//
// # Plain Models
//
// Budget, Goal, Category and Profile are independent documents with no
// cross-entity consistency requirement. User is the identity record owned by
// the auth package.
//
// # Design Principles
//
// 1. **Money is decimal**: amounts use decimal.Decimal, never float64
// 2. **Direction lives in Type**: Transaction.Amount is always a positive magnitude
// 3. **Relationships by ID**: documents reference each other by ID strings
// 4. **Wire names are stable**: JSON tags match the stored document fields
package models
