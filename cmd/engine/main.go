// Command engine runs a local, single-process demonstration of the
// dealer/player partition wiring: one Table application and two Hand
// applications (a relay co-resident with Table, and one player
// instance per seat) connected over an in-memory runtime. It plays a
// single hand to completion using a trivial check/call bot and prints
// the settlement result.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/decred/slog"

	"github.com/privatehold/engine/pkg/hand"
	"github.com/privatehold/engine/pkg/protocol"
	"github.com/privatehold/engine/pkg/runtime"
	"github.com/privatehold/engine/pkg/table"
)

func main() {
	var (
		stake      uint64
		smallBlind uint64
		bigBlind   uint64
		deadline   uint64
		debugLevel string
	)
	flag.Uint64Var(&stake, "stake", 100, "stake both seats buy in for")
	flag.Uint64Var(&smallBlind, "smallblind", 5, "small blind size")
	flag.Uint64Var(&bigBlind, "bigblind", 10, "big blind size")
	flag.Uint64Var(&deadline, "deadline", 50, "blocks before a stalled seat is auto-forfeited")
	flag.StringVar(&debugLevel, "debuglevel", "info", "logging level: trace, debug, info, warn, error")
	flag.Parse()

	backend := slog.NewBackend(os.Stdout)
	log := backend.Logger("ENGINE")
	log.SetLevel(parseLevel(debugLevel))

	cfg := table.Config{MinStake: stake, MaxStake: stake, SmallBlind: smallBlind, BigBlind: bigBlind, Deadline: deadline}
	rt := runtime.NewMemory(backend.Logger("RUNTIME"))

	tbl, err := table.New(cfg, "dealer", "table", rt, backend.Logger("TABLE"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "engine: bad config: %v\n", err)
		os.Exit(1)
	}

	handCfg := hand.Config{TableChain: "dealer", TableApp: "table"}
	hand.New(handCfg, "dealer", "hand", rt, tbl, backend.Logger("RELAY"))
	p1 := hand.New(handCfg, "p1", "hand", rt, nil, backend.Logger("P1"))
	p2 := hand.New(handCfg, "p2", "hand", rt, nil, backend.Logger("P2"))

	if err := p1.JoinTable(stake); err != nil {
		log.Errorf("p1 join: %v", err)
		os.Exit(1)
	}
	if err := p2.JoinTable(stake); err != nil {
		log.Errorf("p2 join: %v", err)
		os.Exit(1)
	}

	playCheckDownBot(tbl, p1, p2)
	printResult(log, "p1", p1)
	printResult(log, "p2", p2)
}

// playCheckDownBot drives both seats through every betting round with
// the cheapest legal action (call if behind, check otherwise), then
// reveals at showdown. It stops once the table reaches Finished or
// neither seat has a pending action, whichever comes first.
func playCheckDownBot(tbl *table.Table, p1, p2 *hand.Hand) {
	seats := map[protocol.Seat]*hand.Hand{protocol.Player1: p1, protocol.Player2: p2}

	for i := 0; i < 64 && tbl.Phase() != protocol.Finished; i++ {
		switch {
		case tbl.Phase().BettingRound():
			proj := tbl.Projection()
			if proj.TurnSeat == nil {
				continue
			}
			acting := seats[*proj.TurnSeat]
			action := protocol.BetAction{Kind: protocol.Check}
			if actingCurrentBet(proj, *proj.TurnSeat) < proj.CurrentBet {
				action = protocol.BetAction{Kind: protocol.Call}
			}
			_ = acting.SubmitBet(action)

		case tbl.Phase() == protocol.Showdown:
			_ = p1.Reveal()
			_ = p2.Reveal()

		default:
			return
		}
	}
}

// actingCurrentBet looks up one seat's already-committed current bet
// from a projection, so the bot only calls when it is actually behind
// rather than whenever the table's current bet is merely nonzero.
func actingCurrentBet(proj table.Projection, seat protocol.Seat) uint64 {
	for _, p := range proj.Players {
		if p.Seat == seat {
			return p.CurrentBet
		}
	}
	return 0
}

func parseLevel(name string) slog.Level {
	switch name {
	case "trace":
		return slog.LevelTrace
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func printResult(log slog.Logger, label string, h *hand.Hand) {
	res := h.View().Result
	if res == nil {
		log.Warnf("%s: no result", label)
		return
	}
	log.Infof("%s: won=%v payout=%d", label, res.Won, res.Payout)
}
