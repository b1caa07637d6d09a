package hand

import (
	"io"
	"testing"

	"github.com/decred/slog"
	"github.com/stretchr/testify/require"

	"github.com/privatehold/engine/pkg/cards"
	"github.com/privatehold/engine/pkg/commitment"
	"github.com/privatehold/engine/pkg/protocol"
	"github.com/privatehold/engine/pkg/runtime"
)

func testLogger() slog.Logger {
	backend := slog.NewBackend(io.Discard)
	log := backend.Logger("HAND")
	log.SetLevel(slog.LevelError)
	return log
}

type recordingTableCaller struct {
	joins   []protocol.JoinTableMsg
	bets    []protocol.BetActionMsg
	reveals []protocol.RevealCardsMsg
}

func (r *recordingTableCaller) RelayJoinTable(sender runtime.PartitionID, handApp runtime.ApplicationID, msg protocol.JoinTableMsg) error {
	r.joins = append(r.joins, msg)
	return nil
}

func (r *recordingTableCaller) RelayBetAction(sender runtime.PartitionID, msg protocol.BetActionMsg) error {
	r.bets = append(r.bets, msg)
	return nil
}

func (r *recordingTableCaller) RelayReveal(sender runtime.PartitionID, msg protocol.RevealCardsMsg) error {
	r.reveals = append(r.reveals, msg)
	return nil
}

func TestRelayForwardsAllowListedKinds(t *testing.T) {
	rt := runtime.NewMemory(testLogger())
	caller := &recordingTableCaller{}
	cfg := Config{TableChain: "dealer", TableApp: "table"}

	New(cfg, "dealer", "hand", rt, caller, testLogger())

	playerOutbox := rt.Outbox("p1", "hand")
	require.NoError(t, playerOutbox.Send("dealer", "hand", protocol.JoinTableMsg{Stake: 100}))
	require.Len(t, caller.joins, 1)
	require.Equal(t, uint64(100), caller.joins[0].Stake)

	require.NoError(t, playerOutbox.Send("dealer", "hand", protocol.BetActionMsg{
		GameID: 1,
		Action: protocol.BetAction{Kind: protocol.Check},
	}))
	require.Len(t, caller.bets, 1)
}

func TestRelaySwallowsUnrecognizedKind(t *testing.T) {
	rt := runtime.NewMemory(testLogger())
	caller := &recordingTableCaller{}
	cfg := Config{TableChain: "dealer", TableApp: "table"}

	New(cfg, "dealer", "hand", rt, caller, testLogger())

	playerOutbox := rt.Outbox("p1", "hand")
	require.NoError(t, playerOutbox.Send("dealer", "hand", protocol.YourTurnMsg{GameID: 1}))
	require.Empty(t, caller.joins)
	require.Empty(t, caller.bets)
	require.Empty(t, caller.reveals)
}

func TestPlayerInstanceStoresDealAndSubmitsBetOnlyOnTurn(t *testing.T) {
	rt := runtime.NewMemory(testLogger())
	cfg := Config{TableChain: "dealer", TableApp: "table"}
	player := New(cfg, "p1", "hand", rt, nil, testLogger())

	tableOutbox := rt.Outbox("dealer", "table")
	hole := [2]cards.Card{{Suit: cards.Hearts, Rank: cards.Ace}, {Suit: cards.Spades, Rank: cards.King}}

	err := player.SubmitBet(protocol.BetAction{Kind: protocol.Check})
	require.ErrorIs(t, err, ErrNotMyTurn)

	require.NoError(t, tableOutbox.Send("p1", "hand", protocol.DealCardsMsg{
		GameID:             1,
		CardsOrCommitments: hole,
		DealerMaterial:     commitment.MaterialToPlayer{Cards: hole, Opening: [2][]byte{{1}, {2}}},
	}))
	require.Equal(t, hole, *player.View().HoleCards)

	require.NoError(t, tableOutbox.Send("p1", "hand", protocol.YourTurnMsg{GameID: 1, Pot: 15, ToCall: 5, MinRaise: 10}))

	require.NoError(t, player.SubmitBet(protocol.BetAction{Kind: protocol.Call}))
	// myTurn is consumed by SubmitBet; a second submit without a new
	// YourTurn must fail.
	err = player.SubmitBet(protocol.BetAction{Kind: protocol.Check})
	require.ErrorIs(t, err, ErrNotMyTurn)
}

func TestRevealRequiresRequestReveal(t *testing.T) {
	rt := runtime.NewMemory(testLogger())
	cfg := Config{TableChain: "dealer", TableApp: "table"}
	player := New(cfg, "p1", "hand", rt, nil, testLogger())

	err := player.Reveal()
	require.ErrorIs(t, err, ErrNoRevealPending)

	tableOutbox := rt.Outbox("dealer", "table")
	hole := [2]cards.Card{{Suit: cards.Clubs, Rank: cards.Two}, {Suit: cards.Diamonds, Rank: cards.Three}}
	require.NoError(t, tableOutbox.Send("p1", "hand", protocol.DealCardsMsg{
		GameID:             1,
		CardsOrCommitments: hole,
		DealerMaterial:     commitment.MaterialToPlayer{Cards: hole, Opening: [2][]byte{{9}, {9}}},
	}))
	require.NoError(t, tableOutbox.Send("p1", "hand", protocol.RequestRevealMsg{GameID: 1}))

	require.NoError(t, player.Reveal())
}

func TestGameResultFinalizesView(t *testing.T) {
	rt := runtime.NewMemory(testLogger())
	cfg := Config{TableChain: "dealer", TableApp: "table"}
	player := New(cfg, "p1", "hand", rt, nil, testLogger())

	tableOutbox := rt.Outbox("dealer", "table")
	require.NoError(t, tableOutbox.Send("p1", "hand", protocol.DealCardsMsg{GameID: 1}))
	require.NoError(t, tableOutbox.Send("p1", "hand", protocol.GameResultMsg{GameID: 1, Won: true, Payout: 40}))

	res := player.View().Result
	require.NotNil(t, res)
	require.True(t, res.Won)
	require.Equal(t, uint64(40), res.Payout)
}
