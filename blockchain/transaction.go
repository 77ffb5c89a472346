package blockchain

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/luca-patrignani/coinchain/fingerprint"
	"github.com/luca-patrignani/coinchain/ledger"
)

// Transaction moves an amount from a sender to a receiver. Fields can be
// corrected after construction through the setters.
type Transaction struct {
	sender   ledger.Account
	receiver ledger.Account
	amount   decimal.Decimal
}

// txRecord is the canonical encoding of a transaction for fingerprinting.
type txRecord struct {
	Sender   string
	Receiver string
	Amount   string
}

// NewTransaction builds a transaction. amount must be a numeric value as
// accepted by ledger.ParseAmount; anything else fails with
// ledger.ErrInvalidAmount.
func NewTransaction(sender, receiver ledger.Account, amount any) (Transaction, error) {
	a, err := ledger.ParseAmount(amount)
	if err != nil {
		return Transaction{}, fmt.Errorf("new transaction from %s to %s: %w", sender, receiver, err)
	}
	return Transaction{sender: sender, receiver: receiver, amount: a}, nil
}

func (t Transaction) Sender() ledger.Account   { return t.sender }
func (t Transaction) Receiver() ledger.Account { return t.receiver }
func (t Transaction) Amount() decimal.Decimal  { return t.amount }

func (t *Transaction) SetSender(sender ledger.Account) {
	t.sender = sender
}

func (t *Transaction) SetReceiver(receiver ledger.Account) {
	t.receiver = receiver
}

// SetAmount replaces the amount. On error the transaction is unchanged.
func (t *Transaction) SetAmount(amount any) error {
	a, err := ledger.ParseAmount(amount)
	if err != nil {
		return err
	}
	t.amount = a
	return nil
}

// Equal reports whether both transactions have the same sender, receiver
// and amount. Amounts compare numerically, so 1 and 1.0 are equal.
func (t Transaction) Equal(other Transaction) bool {
	return t.sender == other.sender &&
		t.receiver == other.receiver &&
		t.amount.Equal(other.amount)
}

// Fingerprint digests the (sender, receiver, amount) triple. Equal
// transactions fingerprint identically.
func (t Transaction) Fingerprint(h fingerprint.Hasher) fingerprint.Fingerprint {
	return fingerprint.Record(h, &txRecord{
		Sender:   string(t.sender),
		Receiver: string(t.receiver),
		Amount:   t.amount.String(),
	})
}

func (t Transaction) String() string {
	return fmt.Sprintf("[Transaction: from %s to %s: $%s]", t.sender, t.receiver, t.amount)
}
