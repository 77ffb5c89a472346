// Package blockchain implements an append-only chain of transfer blocks
// backed by a balance ledger.
//
// # Core Components
//
// Transaction: A single transfer of an amount from a sender to a receiver.
// Transactions compare and fingerprint structurally.
//
// Block: An ordered list of transactions plus a link holding the
// fingerprint of the block that preceded it when it was appended.
//
// Blockchain: The list of blocks, starting at a genesis block that mints
// the total supply to the root account, together with the ledger of
// balances.
//
// # Appending
//
// Append admits a block only if every sender can pay its amount out of the
// balance it held before the block. Admission is all-or-nothing: a rejected
// block leaves the chain and the ledger untouched. Accepted blocks apply
// their transfers in order, are linked to the fingerprint of the current
// tail and are appended.
//
// # Tamper Detection
//
// Blocks are stored by pointer and stay mutable. Validate walks the chain
// and reports every block whose stored link no longer matches the
// recomputed fingerprint of its predecessor. It never repairs the chain.
package blockchain
