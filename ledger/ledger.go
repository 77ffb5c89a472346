package ledger

import (
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/luca-patrignani/coinchain/hashmap"
)

// Account identifies a balance holder.
type Account string

// Ledger tracks the balance of every account that has taken part in a
// transfer. It is not safe for concurrent use.
type Ledger struct {
	balances *hashmap.Map[Account, decimal.Decimal]
}

// New creates an empty ledger. Options tune the underlying table.
func New(opts ...hashmap.Option) *Ledger {
	return &Ledger{
		balances: hashmap.New[Account, decimal.Decimal](hashmap.String[Account], opts...),
	}
}

// HasFunds reports whether account exists and holds at least amount.
func (l *Ledger) HasFunds(account Account, amount decimal.Decimal) bool {
	balance, ok := l.balances.Get(account)
	if !ok {
		return false
	}
	return balance.GreaterThanOrEqual(amount)
}

// Deposit credits amount to account, creating it if needed.
func (l *Ledger) Deposit(account Account, amount decimal.Decimal) {
	balance, _ := l.balances.Get(account)
	l.balances.Set(account, balance.Add(amount))
}

// Withdraw debits amount from account, creating it if needed. It does not
// check that the account can afford the debit.
func (l *Ledger) Withdraw(account Account, amount decimal.Decimal) {
	balance, _ := l.balances.Get(account)
	l.balances.Set(account, balance.Sub(amount))
}

// Balance returns the balance of account and whether the account exists.
func (l *Ledger) Balance(account Account) (decimal.Decimal, bool) {
	return l.balances.Get(account)
}

// Len returns the number of known accounts.
func (l *Ledger) Len() int {
	return l.balances.Len()
}

// Accounts returns every known account in lexical order.
func (l *Ledger) Accounts() []Account {
	accounts := make([]Account, 0, l.balances.Len())
	for account := range l.balances.All() {
		accounts = append(accounts, account)
	}
	slices.Sort(accounts)
	return accounts
}

// Stats describes the bucket layout of the balance table.
func (l *Ledger) Stats() hashmap.Stats {
	return l.balances.Stats()
}

func (l *Ledger) String() string {
	var sb strings.Builder
	sb.WriteString("Ledger: {")
	for i, account := range l.Accounts() {
		if i > 0 {
			sb.WriteString(", ")
		}
		balance, _ := l.balances.Get(account)
		fmt.Fprintf(&sb, "%s: %s", account, balance)
	}
	sb.WriteString("}")
	return sb.String()
}
