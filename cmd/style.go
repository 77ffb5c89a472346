package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pterm/pterm"

	"github.com/luca-patrignani/coinchain/blockchain"
	"github.com/luca-patrignani/coinchain/hashmap"
	"github.com/luca-patrignani/coinchain/ledger"
)

func chainTable(bc *blockchain.Blockchain) pterm.TableData {
	data := pterm.TableData{{"#", "Previous link", "Fingerprint", "Transactions"}}
	for i := 0; i < bc.Len(); i++ {
		b, _ := bc.GetByIndex(i)
		link := "-"
		if l, ok := b.PreviousLink(); ok {
			link = l.String()
		}
		var txs []string
		for tx := range b.Transactions() {
			txs = append(txs, fmt.Sprintf("%s -> %s: %s", tx.Sender(), tx.Receiver(), tx.Amount()))
		}
		data = append(data, []string{strconv.Itoa(i), link, bc.Fingerprint(b).String(), strings.Join(txs, "\n")})
	}
	return data
}

func ledgerTable(l *ledger.Ledger) pterm.TableData {
	data := pterm.TableData{{"Account", "Balance"}}
	for _, account := range l.Accounts() {
		balance, _ := l.Balance(account)
		data = append(data, []string{string(account), balance.String()})
	}
	return data
}

func statsPanel(s hashmap.Stats) string {
	pbox := pterm.DefaultBox.WithHorizontalPadding(4).WithTopPadding(1).WithBottomPadding(1)
	return pbox.WithTitle(pterm.LightYellow("|BALANCE TABLE|")).WithTitleTopCenter().Sprintf(
		"Entries: %d\nBuckets: %d (%d empty)\nLoad factor: %.2f\nChain length: mean %.2f, std-dev %.2f, max %d",
		s.Entries, s.Buckets, s.EmptyBuckets, s.LoadFactor, s.MeanChain, s.StdDevChain, s.LongestChain)
}

func printValidation(bc *blockchain.Blockchain) {
	heights := bc.TamperedHeights()
	if len(heights) == 0 {
		pterm.Success.Printfln("Chain of %d blocks is intact", bc.Len())
		return
	}
	pterm.Warning.Printfln("%d tampered block(s) at positions %v", len(heights), heights)
	for _, h := range heights {
		b, _ := bc.GetByIndex(h)
		pterm.Println(pterm.LightRed(b.String()))
	}
}

func printChain(bc *blockchain.Blockchain) {
	if err := pterm.DefaultTable.WithHasHeader().WithRowSeparator("-").WithData(chainTable(bc)).Render(); err != nil {
		pterm.Error.Println(err)
	}
}

func printLedger(l *ledger.Ledger) {
	if err := pterm.DefaultTable.WithHasHeader().WithData(ledgerTable(l)).Render(); err != nil {
		pterm.Error.Println(err)
	}
}
