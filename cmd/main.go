package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"

	"github.com/luca-patrignani/coinchain/blockchain"
	"github.com/luca-patrignani/coinchain/fingerprint"
	"github.com/luca-patrignani/coinchain/ledger"
)

const (
	actionReward   = "Distribute reward"
	actionTransfer = "Submit block"
	actionChain    = "Show chain"
	actionLedger   = "Show ledger"
	actionInspect  = "Inspect balance table"
	actionTamper   = "Tamper with a link"
	actionValidate = "Validate chain"
	actionQuit     = "Quit"
)

func main() {
	suiteName := flag.String("suite", "", "kyber suite whose hash fingerprints blocks (default: xxhash)")
	debug := flag.Bool("debug", false, "log chain events")
	flag.Parse()

	plogger := pterm.DefaultLogger.WithLevel(pterm.LogLevelInfo)
	if *debug {
		plogger = plogger.WithLevel(pterm.LogLevelDebug)
	}
	logger := slog.New(pterm.NewSlogHandler(plogger))

	hasher := fingerprint.XXHash
	if *suiteName != "" {
		h, err := fingerprint.Suite(*suiteName)
		if err != nil {
			logger.Error("failed to load fingerprint suite", "suite", *suiteName, "err", err)
			os.Exit(1)
		}
		hasher = h
	}

	pterm.DefaultBigText.WithLetters(
		putils.LettersFromStringWithStyle("Coin", pterm.FgYellow.ToStyle()),
		putils.LettersFromStringWithStyle("chain", pterm.FgDarkGray.ToStyle()),
	).Render()

	bc := blockchain.NewBlockchain(blockchain.WithHasher(hasher), blockchain.WithLogger(logger))
	pterm.Info.Printfln("Genesis minted %d to %s", blockchain.TotalSupply, bc.Root())

	options := []string{actionReward, actionTransfer, actionChain, actionLedger, actionInspect, actionTamper, actionValidate, actionQuit}
	for {
		choice, err := pterm.DefaultInteractiveSelect.WithOptions(options).Show("Choose an action")
		if err != nil {
			logger.Error("failed to read action", "err", err)
			os.Exit(1)
		}
		pterm.Println()

		switch choice {
		case actionReward:
			account, _ := pterm.DefaultInteractiveTextInput.WithDefaultText("Account to reward").Show()
			if bc.DistributeReward(ledger.Account(account)) {
				pterm.Success.Printfln("%s received %d", account, blockchain.BlockReward)
			} else {
				pterm.Error.Printfln("%s has run out of funds", bc.Root())
			}
		case actionTransfer:
			text, _ := pterm.DefaultInteractiveTextInput.WithMultiLine().WithDefaultText("One transfer per line: sender receiver amount").Show()
			submitBlock(bc, text)
		case actionChain:
			printChain(bc)
		case actionLedger:
			printLedger(bc.Ledger())
		case actionInspect:
			pterm.Println(statsPanel(bc.Ledger().Stats()))
		case actionTamper:
			text, _ := pterm.DefaultInteractiveTextInput.WithDefaultText("Block index and new link in hex (- clears it)").Show()
			tamper(bc, text)
		case actionValidate:
			printValidation(bc)
		case actionQuit:
			return
		}
		pterm.Println()
	}
}

func submitBlock(bc *blockchain.Blockchain, text string) {
	block, err := parseBlock(text)
	if err != nil {
		pterm.Error.Println(err)
		return
	}
	if err := bc.Admit(block); err != nil {
		pterm.Error.Printfln("Block rejected: %v", err)
		return
	}
	if !bc.Append(block) {
		pterm.Error.Println("Block rejected")
		return
	}
	link, _ := block.PreviousLink()
	pterm.Success.Printfln("Block %d appended, linked to %s", bc.Len()-1, link)
}

func tamper(bc *blockchain.Blockchain, text string) {
	index, link, set, err := parseTamper(text)
	if err != nil {
		pterm.Error.Println(err)
		return
	}
	block, err := bc.GetByIndex(index)
	if err != nil {
		pterm.Error.Println(err)
		return
	}
	if set {
		block.SetPreviousLink(link)
		pterm.Warning.Printfln("Block %d now links to %s", index, link)
	} else {
		block.ClearPreviousLink()
		pterm.Warning.Printfln("Block %d link cleared", index)
	}
}
