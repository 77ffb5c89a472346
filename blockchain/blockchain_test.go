package blockchain

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/luca-patrignani/coinchain/fingerprint"
	"github.com/luca-patrignani/coinchain/ledger"
)

type fixture struct {
	trans1, trans2, trans3, trans4, trans5, trans6 Transaction

	block1, block11, block12, block2, block3, block4, block5 *Block
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	f := fixture{
		trans1: mustTx(t, "bill", "jane", 100),
		trans2: mustTx(t, "bob", "jane", 99),
		trans3: mustTx(t, "person1", "kyle", 123),
		trans4: mustTx(t, "jimmy", "jimmie", 9999999999),
		trans5: mustTx(t, "spongebob", "sandy", 0),
		trans6: mustTx(t, "a", "sandy", 3),
	}
	f.block1 = NewBlock(f.trans1)
	f.block11 = NewBlock(f.trans2)
	f.block12 = NewBlock(f.trans3)
	f.block2 = NewBlock(f.trans1, f.trans1, f.trans1)
	f.block3 = NewBlock(f.trans1, f.trans2, f.trans3)
	f.block4 = NewBlock(f.trans2, f.trans3, f.trans5, f.trans6)
	f.block5 = NewBlock(f.trans1, f.trans2, f.trans3, f.trans4, f.trans5, f.trans6)
	return f
}

func requireBalance(t *testing.T, bc *Blockchain, account ledger.Account, want int64) {
	t.Helper()
	got, ok := bc.Balance(account)
	require.True(t, ok, "account %s missing", account)
	require.True(t, got.Equal(decimal.NewFromInt(want)), "balance of %s: want %d, got %s", account, want, got)
}

func requireLinked(t *testing.T, bc *Blockchain) {
	t.Helper()
	for i := 0; i < bc.Len()-1; i++ {
		prev, err := bc.GetByIndex(i)
		require.NoError(t, err)
		next, err := bc.GetByIndex(i + 1)
		require.NoError(t, err)
		link, linked := next.PreviousLink()
		require.True(t, linked, "block %d unlinked", i+1)
		require.Equal(t, bc.Fingerprint(prev), link, "block %d link", i+1)
	}
}

func TestNewBlockchain(t *testing.T) {
	for range 2 {
		bc := NewBlockchain()
		require.Equal(t, 1, bc.Len())
		require.Equal(t, 1, bc.Ledger().Len())
		requireBalance(t, bc, RootAccount, TotalSupply)

		genesis, err := bc.GetByIndex(0)
		require.NoError(t, err)
		_, linked := genesis.PreviousLink()
		require.False(t, linked)
		require.True(t, genesis.Equal(NewBlock(mustTx(t, RootAccount, RootAccount, TotalSupply))))
		require.Same(t, genesis, bc.GetLatest())
		require.Empty(t, bc.Validate())
	}
}

func TestAppend(t *testing.T) {
	f := newFixture(t)
	bc := NewBlockchain()

	require.True(t, bc.DistributeReward("bill"))
	require.Equal(t, 2, bc.Len())
	requireBalance(t, bc, "bill", BlockReward)
	requireBalance(t, bc, RootAccount, TotalSupply-BlockReward)

	require.True(t, bc.Append(f.block1))
	require.Equal(t, 3, bc.Len())
	got, err := bc.GetByIndex(2)
	require.NoError(t, err)
	require.Same(t, f.block1, got)

	// Each of the three transfers is checked against bill's balance before the block.
	require.True(t, bc.Append(f.block2))
	require.Equal(t, 4, bc.Len())
	requireBalance(t, bc, "bill", 600)
	requireBalance(t, bc, "jane", 400)

	require.False(t, bc.Append(f.block3), "bob and person1 have no funds")
	require.Equal(t, 4, bc.Len())
	requireBalance(t, bc, "bill", 600)
	_, ok := bc.Balance("bob")
	require.False(t, ok, "a rejected block must not create accounts")
	_, linked := f.block3.PreviousLink()
	require.False(t, linked, "a rejected block stays unlinked")

	for _, account := range []ledger.Account{"bill", "bob", "person1", "jimmy", "spongebob", "a"} {
		require.True(t, bc.DistributeReward(account))
	}
	require.Equal(t, 10, bc.Len())

	require.False(t, bc.Append(f.block5), "jimmy cannot pay 9999999999")
	require.Equal(t, 10, bc.Len())

	require.True(t, bc.Append(f.block4))
	require.Equal(t, 11, bc.Len())
	requireBalance(t, bc, "sandy", 3)
	requireBalance(t, bc, "spongebob", BlockReward)
	requireLinked(t, bc)
}

func TestAppendChecksAgainstPreBlockBalances(t *testing.T) {
	bc := NewBlockchain()
	require.True(t, bc.DistributeReward("bill"))

	// Every transaction alone is affordable from 1000, their sum is not.
	block := NewBlock(
		mustTx(t, "bill", "jane", 600),
		mustTx(t, "bill", "jane", 600),
	)
	require.True(t, bc.Append(block))
	requireBalance(t, bc, "bill", -200)
	requireBalance(t, bc, "jane", 1200)

	// Funds received earlier in the block do not count.
	chained := NewBlock(
		mustTx(t, "jane", "carol", 10),
		mustTx(t, "carol", "dave", 10),
	)
	require.False(t, bc.Append(chained))
	_, ok := bc.Balance("carol")
	require.False(t, ok)
}

func TestAppendEmptyAndNilBlocks(t *testing.T) {
	bc := NewBlockchain()
	require.False(t, bc.Append(nil))
	require.ErrorIs(t, bc.Admit(nil), ErrNilBlock)

	empty := NewBlock()
	require.True(t, bc.Append(empty))
	require.Equal(t, 2, bc.Len())
	requireLinked(t, bc)
}

func TestAdmit(t *testing.T) {
	bc := NewBlockchain()
	require.True(t, bc.DistributeReward("bill"))

	ok := NewBlock(mustTx(t, "bill", "jane", 1000))
	require.NoError(t, bc.Admit(ok))

	bad := NewBlock(mustTx(t, "bill", "jane", 1), mustTx(t, "ghost", "jane", 1))
	err := bc.Admit(bad)
	require.ErrorIs(t, err, ErrInsufficientFunds)
	require.Contains(t, err.Error(), "transaction 1")
	require.Contains(t, err.Error(), "ghost")

	require.Equal(t, 2, bc.Len(), "Admit must not append")
	requireBalance(t, bc, "bill", BlockReward)
	_, linked := ok.PreviousLink()
	require.False(t, linked)
}

func TestZeroAmountNeedsAnAccount(t *testing.T) {
	bc := NewBlockchain()
	require.False(t, bc.Append(NewBlock(mustTx(t, "nobody", "x", 0))))
	require.True(t, bc.DistributeReward("nobody"))
	require.True(t, bc.Append(NewBlock(mustTx(t, "nobody", "x", 0))))
}

func TestRootCanBeExhausted(t *testing.T) {
	bc := NewBlockchain(WithSupply(decimal.NewFromInt(2500)))
	require.True(t, bc.DistributeReward("a"))
	require.True(t, bc.DistributeReward("b"))
	require.False(t, bc.DistributeReward("c"))
	requireBalance(t, bc, RootAccount, 500)
	require.Equal(t, 3, bc.Len())
}

func TestPreviousLinks(t *testing.T) {
	f := newFixture(t)
	bc := NewBlockchain()
	for _, account := range []ledger.Account{"bill", "bob", "person1"} {
		require.True(t, bc.DistributeReward(account))
	}
	require.Equal(t, 4, bc.Len())

	_, linked := f.block1.PreviousLink()
	require.False(t, linked)

	require.True(t, bc.Append(f.block1))
	require.True(t, bc.Append(f.block11))
	link, _ := f.block11.PreviousLink()
	require.Equal(t, bc.Fingerprint(f.block1), link)

	require.True(t, bc.Append(f.block2))
	link, _ = f.block2.PreviousLink()
	require.Equal(t, bc.Fingerprint(f.block11), link)

	require.True(t, bc.Append(f.block3))
	link, _ = f.block3.PreviousLink()
	require.Equal(t, bc.Fingerprint(f.block2), link)

	require.False(t, bc.Append(f.block4), "a has no funds yet")
	_, linked = f.block4.PreviousLink()
	require.False(t, linked)

	require.False(t, bc.Append(f.block5))
	_, linked = f.block5.PreviousLink()
	require.False(t, linked)

	require.True(t, bc.Append(f.block12))
	link, _ = f.block12.PreviousLink()
	require.Equal(t, bc.Fingerprint(f.block3), link)

	requireLinked(t, bc)
	require.Empty(t, bc.Validate())
}

func TestResubmitRejectedBlock(t *testing.T) {
	f := newFixture(t)
	bc := NewBlockchain()

	require.False(t, bc.Append(f.block11), "bob has no account yet")
	_, linked := f.block11.PreviousLink()
	require.False(t, linked)
	require.Equal(t, 1, bc.Len())

	require.True(t, bc.DistributeReward("bob"))
	reward := bc.GetLatest()
	require.True(t, bc.Append(f.block11))
	require.Same(t, f.block11, bc.GetLatest())

	link, linked := f.block11.PreviousLink()
	require.True(t, linked)
	require.Equal(t, bc.Fingerprint(reward), link)
	require.Empty(t, bc.Validate())
	requireBalance(t, bc, "bob", 901)
	requireBalance(t, bc, "jane", 99)
}

func TestAppendSameBlockTwice(t *testing.T) {
	f := newFixture(t)
	bc := NewBlockchain()
	require.True(t, bc.DistributeReward("bill"))
	require.True(t, bc.Append(f.block1))
	require.True(t, bc.DistributeReward("jane"))
	require.True(t, bc.Append(f.block1))
	require.Equal(t, 5, bc.Len())
	requireBalance(t, bc, "bill", 800)

	third, err := bc.GetByIndex(3)
	require.NoError(t, err)
	link, _ := f.block1.PreviousLink()
	require.Equal(t, bc.Fingerprint(third), link, "second append overwrites the shared link")

	require.Equal(t, []*Block{f.block1}, bc.Validate())
	require.Equal(t, []int{2}, bc.TamperedHeights())

	t.Run("restoring the earlier link breaks the later height", func(t *testing.T) {
		first, err := bc.GetByIndex(1)
		require.NoError(t, err)
		f.block1.SetPreviousLink(bc.Fingerprint(first))
		require.Equal(t, []*Block{f.block1}, bc.Validate())
		require.Equal(t, []int{4}, bc.TamperedHeights())
	})
}

func TestValidate(t *testing.T) {
	f := newFixture(t)
	bc := NewBlockchain()
	for _, account := range []ledger.Account{"bill", "bob", "person1"} {
		require.True(t, bc.DistributeReward(account))
	}
	require.Empty(t, bc.Validate())

	require.True(t, bc.Append(f.block1))
	require.True(t, bc.Append(f.block11))
	require.Empty(t, bc.Validate())

	original, _ := f.block1.PreviousLink()
	f.block1.SetPreviousLink(12345)
	require.Equal(t, []*Block{f.block1}, bc.Validate())

	rewardBob, err := bc.GetByIndex(2)
	require.NoError(t, err)
	rewardBob.SetPreviousLink(0)
	tampered := bc.Validate()
	require.Len(t, tampered, 2)
	require.True(t, tampered[0].Equal(NewBlock(mustTx(t, RootAccount, "bob", BlockReward))))
	require.Same(t, f.block1, tampered[1])

	require.False(t, bc.Append(f.block4))
	require.Len(t, bc.Validate(), 2)

	require.True(t, bc.Append(f.block12))
	require.True(t, bc.Append(f.block3))
	require.Len(t, bc.Validate(), 2)

	f.block3.SetPreviousLink(9999999)
	require.Equal(t, []*Block{rewardBob, f.block1, f.block3}, bc.Validate())

	f.block12.ClearPreviousLink()
	require.Equal(t, []*Block{rewardBob, f.block1, f.block12, f.block3}, bc.Validate())

	t.Run("restoring links clears the report", func(t *testing.T) {
		f.block1.SetPreviousLink(original)
		require.Equal(t, []*Block{rewardBob, f.block12, f.block3}, bc.Validate())

		for i := 1; i < bc.Len(); i++ {
			prev, _ := bc.GetByIndex(i - 1)
			cur, _ := bc.GetByIndex(i)
			cur.SetPreviousLink(bc.Fingerprint(prev))
		}
		require.Empty(t, bc.Validate())
	})
}

func TestValidateGenesisWithLink(t *testing.T) {
	bc := NewBlockchain()
	require.True(t, bc.DistributeReward("bill"))

	genesis, _ := bc.GetByIndex(0)
	genesis.SetPreviousLink(1)
	require.Equal(t, []*Block{genesis}, bc.Validate())

	genesis.ClearPreviousLink()
	require.Empty(t, bc.Validate())
}

func TestValidateDetectsContentChange(t *testing.T) {
	f := newFixture(t)
	bc := NewBlockchain()
	require.True(t, bc.DistributeReward("bill"))
	require.True(t, bc.Append(f.block1))
	require.True(t, bc.DistributeReward("jane"))

	require.NoError(t, f.block1.Transaction(0).SetAmount(1))
	tail := bc.GetLatest()
	require.Equal(t, []*Block{tail}, bc.Validate())
}

func TestGetByIndex(t *testing.T) {
	bc := NewBlockchain()
	_, err := bc.GetByIndex(-1)
	require.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = bc.GetByIndex(1)
	require.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestOptions(t *testing.T) {
	suite, err := fingerprint.Suite("Ed25519")
	require.NoError(t, err)

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	bc := NewBlockchain(
		WithHasher(suite),
		WithLogger(logger),
		WithRootAccount("mint"),
		WithSupply(decimal.NewFromInt(50)),
		WithReward(decimal.NewFromInt(20)),
	)
	require.Equal(t, ledger.Account("mint"), bc.Root())
	requireBalance(t, bc, "mint", 50)
	_, ok := bc.Balance(RootAccount)
	require.False(t, ok)

	require.True(t, bc.DistributeReward("bill"))
	require.True(t, bc.DistributeReward("bill"))
	require.False(t, bc.DistributeReward("bill"))
	requireBalance(t, bc, "bill", 40)

	genesis, _ := bc.GetByIndex(0)
	next, _ := bc.GetByIndex(1)
	link, _ := next.PreviousLink()
	require.Equal(t, genesis.Fingerprint(suite), link)
	require.NotEqual(t, genesis.Fingerprint(fingerprint.XXHash), link)
	require.Empty(t, bc.Validate())

	require.Contains(t, logs.String(), "genesis block created")
	require.Contains(t, logs.String(), "block appended")
	require.Contains(t, logs.String(), "block rejected")

	t.Run("nil options keep defaults", func(t *testing.T) {
		bc := NewBlockchain(WithHasher(nil), WithLogger(nil))
		require.True(t, bc.DistributeReward("x"))
		require.Empty(t, bc.Validate())
	})
}

func TestIndependentChains(t *testing.T) {
	a := NewBlockchain()
	b := NewBlockchain()
	require.True(t, a.DistributeReward("bill"))
	require.Equal(t, 2, a.Len())
	require.Equal(t, 1, b.Len())
	_, ok := b.Balance("bill")
	require.False(t, ok)
}

func TestBlockchainString(t *testing.T) {
	bc := NewBlockchain()
	require.True(t, bc.DistributeReward("bill"))
	require.Equal(t,
		"Blockchain: [Block: [[Transaction: from ROOT to ROOT: $999999]], Block: [[Transaction: from ROOT to bill: $1000]]]",
		bc.String())
}
