// Package models defines the core domain models for splitledger.
//
// # Models
//
//   - Member: A participant in the shared ledger
//   - Expense: One shared cost, with who paid (Contributions) and who is
//     responsible (Shares)
//   - Transfer: A recommended settlement payment between two members
//   - Snapshot: The full authoritative state (members + expenses), which is
//     also the JSON import/export shape
//
// # Design Principles
//
//  1. **One expense schema**: single-payer and equal-split expenses are the
//     general model with a one-element contribution list and uniform weight 1,
//     not separate schemas.
//  2. **Integer money**: all amounts are int64 minor currency units (cents).
//     Decimal strings exist only at the API boundary, see the money package.
//  3. **Avoid circular references**: relationships use ID strings, not
//     pointers.
package models
