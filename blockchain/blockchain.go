package blockchain

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/luca-patrignani/coinchain/fingerprint"
	"github.com/luca-patrignani/coinchain/ledger"
)

const (
	// RootAccount receives the genesis supply and pays block rewards.
	RootAccount ledger.Account = "ROOT"
	// TotalSupply is minted to RootAccount by the genesis block.
	TotalSupply = 999999
	// BlockReward is paid from RootAccount by DistributeReward.
	BlockReward = 1000
)

var (
	ErrInsufficientFunds = errors.New("blockchain: insufficient funds")
	ErrIndexOutOfRange   = errors.New("blockchain: index out of range")
	ErrNilBlock          = errors.New("blockchain: nil block")
)

// Blockchain is an append-only list of blocks with the ledger their
// transfers produce. It is meant for a single writer and is not safe for
// concurrent use; callers sharing one must serialize Append themselves.
type Blockchain struct {
	blocks []*Block
	ledger *ledger.Ledger

	hasher fingerprint.Hasher
	logger *slog.Logger
	root   ledger.Account
	supply decimal.Decimal
	reward decimal.Decimal
}

// NewBlockchain creates a chain holding only the genesis block: a single
// root-to-root transaction of the total supply, with no link, whose amount
// is deposited to the root account without a funds check.
func NewBlockchain(opts ...option) *Blockchain {
	cfg := Blockchain{
		hasher: fingerprint.XXHash,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		root:   RootAccount,
		supply: decimal.NewFromInt(TotalSupply),
		reward: decimal.NewFromInt(BlockReward),
	}
	for _, opt := range opts {
		cfg = opt(cfg)
	}

	bc := &cfg
	bc.ledger = ledger.New()

	genesis := NewBlock(Transaction{sender: bc.root, receiver: bc.root, amount: bc.supply})
	bc.blocks = append(bc.blocks, genesis)
	bc.ledger.Deposit(bc.root, bc.supply)

	bc.logger.Debug("genesis block created",
		"root", bc.root,
		"supply", bc.supply.String(),
		"fingerprint", bc.Fingerprint(genesis).String())
	return bc
}

// Admit runs the admission check of Append without changing anything. Each
// transaction's sender must hold at least its amount in the current
// ledger; balances are read before any transfer of the block is applied.
func (bc *Blockchain) Admit(block *Block) error {
	if block == nil {
		return ErrNilBlock
	}
	for i, tx := range block.transactions {
		if !bc.ledger.HasFunds(tx.sender, tx.amount) {
			return fmt.Errorf("%w: transaction %d: %s cannot pay %s", ErrInsufficientFunds, i, tx.sender, tx.amount)
		}
	}
	return nil
}

// Append admits block, applies its transfers in order, links it to the
// current tail and appends it. It returns false, leaving the chain and the
// ledger untouched, when any sender lacks funds. A rejected block may be
// submitted again later. Appending a block that is already in the chain
// overwrites its link, so Validate then reports its earlier height.
func (bc *Blockchain) Append(block *Block) bool {
	if err := bc.Admit(block); err != nil {
		bc.logger.Debug("block rejected", "height", len(bc.blocks), "err", err)
		return false
	}

	for _, tx := range block.transactions {
		bc.ledger.Withdraw(tx.sender, tx.amount)
		bc.ledger.Deposit(tx.receiver, tx.amount)
	}

	link := bc.Fingerprint(bc.blocks[len(bc.blocks)-1])
	block.SetPreviousLink(link)
	bc.blocks = append(bc.blocks, block)

	bc.logger.Debug("block appended",
		"height", len(bc.blocks)-1,
		"transactions", block.Len(),
		"link", link.String())
	return true
}

// DistributeReward pays the block reward from the root account to account
// through a regular single-transaction block.
func (bc *Blockchain) DistributeReward(account ledger.Account) bool {
	tx := Transaction{sender: bc.root, receiver: account, amount: bc.reward}
	return bc.Append(NewBlock(tx))
}

// Validate returns, in chain order, every block whose link disagrees with
// the chain: a genesis block that carries a link, and any later block whose
// link differs from the recomputed fingerprint of its predecessor.
func (bc *Blockchain) Validate() []*Block {
	var tampered []*Block
	for _, height := range bc.TamperedHeights() {
		tampered = append(tampered, bc.blocks[height])
	}
	return tampered
}

// TamperedHeights returns, in ascending order, the positions of the blocks
// Validate reports. Unlike the blocks themselves, positions stay distinct
// when one block sits at several heights.
func (bc *Blockchain) TamperedHeights() []int {
	var heights []int
	if _, linked := bc.blocks[0].PreviousLink(); linked {
		heights = append(heights, 0)
	}

	for i := 1; i < len(bc.blocks); i++ {
		want := bc.Fingerprint(bc.blocks[i-1])
		got, linked := bc.blocks[i].PreviousLink()
		if !linked || got != want {
			heights = append(heights, i)
		}
	}
	return heights
}

// Len returns the number of blocks, genesis included.
func (bc *Blockchain) Len() int {
	return len(bc.blocks)
}

// GetByIndex returns the block at position index; 0 is genesis.
func (bc *Blockchain) GetByIndex(index int) (*Block, error) {
	if index < 0 || index >= len(bc.blocks) {
		return nil, fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, index, len(bc.blocks))
	}
	return bc.blocks[index], nil
}

// GetLatest returns the tail block.
func (bc *Blockchain) GetLatest() *Block {
	return bc.blocks[len(bc.blocks)-1]
}

// Balance returns the balance of account and whether it exists.
func (bc *Blockchain) Balance(account ledger.Account) (decimal.Decimal, bool) {
	return bc.ledger.Balance(account)
}

// Ledger exposes the balance table for inspection. Mutating it bypasses
// admission.
func (bc *Blockchain) Ledger() *ledger.Ledger {
	return bc.ledger
}

// Root returns the reserved root account.
func (bc *Blockchain) Root() ledger.Account {
	return bc.root
}

// Fingerprint returns the fingerprint of block under the chain's hasher.
func (bc *Blockchain) Fingerprint(block *Block) fingerprint.Fingerprint {
	return block.Fingerprint(bc.hasher)
}

func (bc *Blockchain) String() string {
	parts := make([]string, len(bc.blocks))
	for i, b := range bc.blocks {
		parts[i] = b.String()
	}
	return "Blockchain: [" + strings.Join(parts, ", ") + "]"
}
