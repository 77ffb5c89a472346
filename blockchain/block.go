package blockchain

import (
	"iter"
	"slices"
	"strings"

	"github.com/luca-patrignani/coinchain/fingerprint"
)

// Block is an ordered list of transactions linked to its predecessor.
type Block struct {
	transactions []*Transaction
	prevLink     fingerprint.Fingerprint
	linked       bool
}

// NewBlock creates an unlinked block holding txs in order.
func NewBlock(txs ...Transaction) *Block {
	b := &Block{transactions: make([]*Transaction, 0, len(txs))}
	for _, tx := range txs {
		b.AddTransaction(tx)
	}
	return b
}

// AddTransaction appends tx to the end of the block.
func (b *Block) AddTransaction(tx Transaction) {
	b.transactions = append(b.transactions, &tx)
}

// Len returns the number of transactions.
func (b *Block) Len() int {
	return len(b.transactions)
}

// Transaction returns the i-th transaction for in-place correction. The
// pointer stays valid across later AddTransaction calls. It panics if i is
// out of range.
func (b *Block) Transaction(i int) *Transaction {
	return b.transactions[i]
}

// Transactions yields copies of the transactions in block order.
func (b *Block) Transactions() iter.Seq[Transaction] {
	return func(yield func(Transaction) bool) {
		for _, tx := range b.transactions {
			if !yield(*tx) {
				return
			}
		}
	}
}

// PreviousLink returns the stored predecessor fingerprint. The boolean is
// false while the block is unlinked, and always for an intact genesis block.
func (b *Block) PreviousLink() (fingerprint.Fingerprint, bool) {
	return b.prevLink, b.linked
}

func (b *Block) SetPreviousLink(link fingerprint.Fingerprint) {
	b.prevLink = link
	b.linked = true
}

func (b *Block) ClearPreviousLink() {
	b.prevLink = 0
	b.linked = false
}

// Equal reports whether both blocks hold equal transactions in the same
// order. Links are not compared. A nil block only equals nil.
func (b *Block) Equal(other *Block) bool {
	if b == nil || other == nil {
		return b == other
	}
	return slices.EqualFunc(b.transactions, other.transactions, func(x, y *Transaction) bool {
		return x.Equal(*y)
	})
}

// Fingerprint digests the ordered transaction fingerprints. The link is
// not part of it, so appending a block does not change its fingerprint.
func (b *Block) Fingerprint(h fingerprint.Hasher) fingerprint.Fingerprint {
	parts := make([]fingerprint.Fingerprint, len(b.transactions))
	for i, tx := range b.transactions {
		parts[i] = tx.Fingerprint(h)
	}
	return fingerprint.Sequence(h, parts...)
}

func (b *Block) String() string {
	var sb strings.Builder
	sb.WriteString("Block: [")
	for i, tx := range b.transactions {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(tx.String())
	}
	sb.WriteString("]")
	return sb.String()
}
