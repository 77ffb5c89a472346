// Package ledger keeps account balances for the chain.
//
// # Core Components
//
// Ledger: A balance table from Account to decimal amount, stored in a
// hashmap.Map with xxhash key placement.
//
// Account: An opaque account identifier.
//
// # Absent Accounts
//
// An account that was never credited or debited does not exist in the
// table. HasFunds treats it as unable to pay any amount, including zero.
// Deposit and Withdraw treat it as holding zero and create it, which is the
// only place where absence becomes a zero balance.
//
// # Sufficiency
//
// Withdraw does not check funds. Callers, in practice the blockchain's
// append path, must call HasFunds first.
package ledger
