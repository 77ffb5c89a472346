package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/luca-patrignani/coinchain/blockchain"
	"github.com/luca-patrignani/coinchain/fingerprint"
	"github.com/luca-patrignani/coinchain/ledger"
)

// parseBlock builds a block from lines of the form "sender receiver amount".
// Blank lines are skipped.
func parseBlock(text string) (*blockchain.Block, error) {
	block := blockchain.NewBlock()
	for n, line := range strings.Split(text, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 3 {
			return nil, fmt.Errorf("line %d: expected \"sender receiver amount\", got %q", n+1, line)
		}
		amount, err := decimal.NewFromString(fields[2])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w: %q", n+1, ledger.ErrInvalidAmount, fields[2])
		}
		tx, err := blockchain.NewTransaction(ledger.Account(fields[0]), ledger.Account(fields[1]), amount)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n+1, err)
		}
		block.AddTransaction(tx)
	}
	if block.Len() == 0 {
		return nil, fmt.Errorf("no transactions given")
	}
	return block, nil
}

// parseTamper reads "index link" where link is a hexadecimal fingerprint,
// or "index -" to clear the link.
func parseTamper(text string) (int, fingerprint.Fingerprint, bool, error) {
	fields := strings.Fields(text)
	if len(fields) != 2 {
		return 0, 0, false, fmt.Errorf("expected \"index link\", got %q", text)
	}
	index, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, false, fmt.Errorf("invalid index %q: %w", fields[0], err)
	}
	if fields[1] == "-" {
		return index, 0, false, nil
	}
	link, err := strconv.ParseUint(fields[1], 16, 64)
	if err != nil {
		return 0, 0, false, fmt.Errorf("invalid link %q: %w", fields[1], err)
	}
	return index, fingerprint.Fingerprint(link), true, nil
}
