package table

import (
	"io"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/decred/slog"
	"github.com/stretchr/testify/require"

	"github.com/privatehold/engine/pkg/protocol"
	"github.com/privatehold/engine/pkg/runtime"
)

func testLogger() slog.Logger {
	backend := slog.NewBackend(io.Discard)
	log := backend.Logger("TABLE")
	log.SetLevel(slog.LevelError)
	return log
}

func defaultConfig() Config {
	return Config{MinStake: 100, MaxStake: 100, SmallBlind: 5, BigBlind: 10, Deadline: 10}
}

func newTestTable(t *testing.T) (*Table, *runtime.Memory) {
	t.Helper()
	rt := runtime.NewMemory(testLogger())
	tbl, err := New(defaultConfig(), "dealer", "table", rt, testLogger())
	require.NoError(t, err)
	return tbl, rt
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, defaultConfig().Validate())
	require.Error(t, Config{MinStake: 100, MaxStake: 100, SmallBlind: 10, BigBlind: 10}.Validate())
	require.Error(t, Config{MinStake: 5, MaxStake: 100, SmallBlind: 5, BigBlind: 10}.Validate())
}

func TestJoinProtocolDealsOnSecondPlayer(t *testing.T) {
	tbl, _ := newTestTable(t)

	require.NoError(t, tbl.RelayJoinTable("p1", "hand", protocol.JoinTableMsg{Stake: 100}))
	require.Equal(t, protocol.WaitingForPlayers, tbl.Phase())

	require.NoError(t, tbl.RelayJoinTable("p2", "hand", protocol.JoinTableMsg{Stake: 100}))
	require.Equal(t, protocol.PreFlop, tbl.Phase())

	proj := tbl.Projection()
	require.Equal(t, uint64(15), proj.Pot) // small_blind + big_blind
	require.Equal(t, uint64(10), proj.CurrentBet)
	require.NotNil(t, proj.TurnSeat)
	require.Equal(t, protocol.Player1, *proj.TurnSeat) // dealer acts first preflop
}

func TestJoinRejectsOutOfRangeStake(t *testing.T) {
	tbl, _ := newTestTable(t)
	err := tbl.RelayJoinTable("p1", "hand", protocol.JoinTableMsg{Stake: 1})
	require.ErrorIs(t, err, ErrStakeOutOfRange)
}

func TestJoinRejectsMismatchedStake(t *testing.T) {
	tbl, err := New(Config{MinStake: 50, MaxStake: 200, SmallBlind: 5, BigBlind: 10, Deadline: 10}, "dealer", "table", runtime.NewMemory(testLogger()), testLogger())
	require.NoError(t, err)

	require.NoError(t, tbl.RelayJoinTable("p1", "hand", protocol.JoinTableMsg{Stake: 100}))
	err = tbl.RelayJoinTable("p2", "hand", protocol.JoinTableMsg{Stake: 150})
	require.ErrorIs(t, err, ErrStakeMismatch)
}

func TestJoinRejectsDuplicatePartition(t *testing.T) {
	tbl, _ := newTestTable(t)
	require.NoError(t, tbl.RelayJoinTable("p1", "hand", protocol.JoinTableMsg{Stake: 100}))
	err := tbl.RelayJoinTable("p1", "hand", protocol.JoinTableMsg{Stake: 100})
	require.ErrorIs(t, err, ErrAlreadySeated)
}

// A preflop raise followed by a fold ends the hand immediately and
// awards the pot to the raiser without reaching showdown.
func TestScenarioA_PreflopFoldByBigBlindAfterRaise(t *testing.T) {
	tbl, _ := newTestTable(t)
	require.NoError(t, tbl.RelayJoinTable("p1", "hand", protocol.JoinTableMsg{Stake: 100}))
	require.NoError(t, tbl.RelayJoinTable("p2", "hand", protocol.JoinTableMsg{Stake: 100}))

	// P1 is dealer_button and acts first preflop; raises to 30.
	require.NoError(t, tbl.RelayBetAction("p1", protocol.BetActionMsg{
		GameID: tbl.GameID(),
		Action: protocol.BetAction{Kind: protocol.Raise, Amount: 30},
	}))
	// P2 folds.
	require.NoError(t, tbl.RelayBetAction("p2", protocol.BetActionMsg{
		GameID: tbl.GameID(),
		Action: protocol.BetAction{Kind: protocol.Fold},
	}))

	proj := tbl.Projection()
	require.Equal(t, protocol.Finished, proj.Phase, "final projection:\n%s", spew.Sdump(proj))
	require.NotNil(t, proj.Winner)
	require.Equal(t, protocol.Player1, *proj.Winner)
	require.Equal(t, uint64(40), proj.Pot) // 30 (P1) + 10 (P2 big blind)
}

// A seat that stalls past its deadline on its own turn is auto-folded
// by a timeout check, ending the hand in the opponent's favor.
func TestScenarioE_AutoForfeitOnTurnTimeout(t *testing.T) {
	tbl, rt := newTestTable(t)
	require.NoError(t, tbl.RelayJoinTable("p1", "hand", protocol.JoinTableMsg{Stake: 100}))
	require.NoError(t, tbl.RelayJoinTable("p2", "hand", protocol.JoinTableMsg{Stake: 100}))

	gameID := tbl.GameID()

	// Preflop: P1 (button) calls, P2 checks to close the round.
	require.NoError(t, tbl.RelayBetAction("p1", protocol.BetActionMsg{GameID: gameID, Action: protocol.BetAction{Kind: protocol.Call}}))
	require.NoError(t, tbl.RelayBetAction("p2", protocol.BetActionMsg{GameID: gameID, Action: protocol.BetAction{Kind: protocol.Check}}))
	require.Equal(t, protocol.Flop, tbl.Phase())

	// Flop: non-button (P2) acts first; both check.
	require.NoError(t, tbl.RelayBetAction("p2", protocol.BetActionMsg{GameID: gameID, Action: protocol.BetAction{Kind: protocol.Check}}))
	require.NoError(t, tbl.RelayBetAction("p1", protocol.BetActionMsg{GameID: gameID, Action: protocol.BetAction{Kind: protocol.Check}}))
	require.Equal(t, protocol.Turn, tbl.Phase())

	// Turn: P2 is to act and stalls.
	proj := tbl.Projection()
	require.Equal(t, protocol.Player2, *proj.TurnSeat)

	rt.Tick(100)
	require.NoError(t, tbl.TriggerTimeoutCheck(gameID))

	final := tbl.Projection()
	require.Equal(t, protocol.Finished, final.Phase)
	require.NotNil(t, final.Winner)
	require.Equal(t, protocol.Player1, *final.Winner)
}

// StartNewGame on a table where both seats are still present (a
// rematch) alternates the dealer button, increments game_id, and
// re-enters dealing immediately rather than waiting on fresh joins.
func TestStartNewGameRematchAlternatesButtonAndReDeals(t *testing.T) {
	tbl, _ := newTestTable(t)
	require.NoError(t, tbl.RelayJoinTable("p1", "hand", protocol.JoinTableMsg{Stake: 100}))
	require.NoError(t, tbl.RelayJoinTable("p2", "hand", protocol.JoinTableMsg{Stake: 100}))

	firstGame := tbl.GameID()
	firstButton := *tbl.Projection().TurnSeat // dealer_button acts first preflop

	// Fold the first hand to reach Finished quickly.
	require.NoError(t, tbl.RelayBetAction(partitionForSeat(tbl, firstButton), protocol.BetActionMsg{
		GameID: firstGame,
		Action: protocol.BetAction{Kind: protocol.Fold},
	}))
	require.Equal(t, protocol.Finished, tbl.Phase())

	require.NoError(t, tbl.StartNewGame())

	require.Equal(t, firstGame+1, tbl.GameID())
	require.Equal(t, protocol.PreFlop, tbl.Phase(), "both seats still present, a rematch deals immediately")

	secondButton := *tbl.Projection().TurnSeat
	require.NotEqual(t, firstButton, secondButton, "dealer button must alternate between games")
}

func partitionForSeat(tbl *Table, seat protocol.Seat) runtime.PartitionID {
	for _, p := range tbl.state.Players {
		if p.Seat == seat {
			return p.Partition
		}
	}
	return ""
}
