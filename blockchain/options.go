package blockchain

import (
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/luca-patrignani/coinchain/fingerprint"
	"github.com/luca-patrignani/coinchain/ledger"
)

type option func(Blockchain) Blockchain

// WithHasher sets the fingerprint function used for block links.
func WithHasher(h fingerprint.Hasher) option {
	return func(bc Blockchain) Blockchain {
		if h != nil {
			bc.hasher = h
		}
		return bc
	}
}

func WithLogger(logger *slog.Logger) option {
	return func(bc Blockchain) Blockchain {
		if logger != nil {
			bc.logger = logger
		}
		return bc
	}
}

// WithRootAccount renames the account that receives the genesis supply and
// pays out rewards.
func WithRootAccount(root ledger.Account) option {
	return func(bc Blockchain) Blockchain {
		bc.root = root
		return bc
	}
}

// WithSupply sets the amount minted by the genesis block.
func WithSupply(supply decimal.Decimal) option {
	return func(bc Blockchain) Blockchain {
		bc.supply = supply
		return bc
	}
}

// WithReward sets the amount paid by DistributeReward.
func WithReward(reward decimal.Decimal) option {
	return func(bc Blockchain) Blockchain {
		bc.reward = reward
		return bc
	}
}
