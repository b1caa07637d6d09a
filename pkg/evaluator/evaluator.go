// Package evaluator is the poker rules engine: it classifies a 7-card
// set into the best 5-card hand, producing a totally ordered category
// plus a kicker-ordered tiebreak vector.
//
// The combinatorial shape is enumerate every 5-card subset, classify
// each, keep the best; the classification exposes an explicit category
// and tiebreak vector rather than an opaque rank.
package evaluator

import (
	"fmt"
	"sort"

	"github.com/privatehold/engine/pkg/cards"
)

// Category is the ten-way rank class, low to high.
type Category int

const (
	HighCard Category = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

func (c Category) String() string {
	switch c {
	case RoyalFlush:
		return "Royal Flush"
	case StraightFlush:
		return "Straight Flush"
	case FourOfAKind:
		return "Four of a Kind"
	case FullHouse:
		return "Full House"
	case Flush:
		return "Flush"
	case Straight:
		return "Straight"
	case ThreeOfAKind:
		return "Three of a Kind"
	case TwoPair:
		return "Two Pair"
	case OnePair:
		return "One Pair"
	default:
		return "High Card"
	}
}

// rankValue maps a cards.Rank to its comparison integer, Two=2..Ace=14.
func rankValue(r cards.Rank) int {
	return int(r) + 2
}

// Result is a complete evaluation: category plus the descending
// tiebreak vector that orders hands within the same category.
type Result struct {
	Category Category
	Tiebreak []int
	Best     [5]cards.Card
}

// Less reports whether r is a strictly weaker hand than other.
func (r Result) Less(other Result) bool {
	if r.Category != other.Category {
		return r.Category < other.Category
	}
	for i := 0; i < len(r.Tiebreak) && i < len(other.Tiebreak); i++ {
		if r.Tiebreak[i] != other.Tiebreak[i] {
			return r.Tiebreak[i] < other.Tiebreak[i]
		}
	}
	return false
}

// Equal reports a tie: same category, same tiebreak vector.
func (r Result) Equal(other Result) bool {
	if r.Category != other.Category || len(r.Tiebreak) != len(other.Tiebreak) {
		return false
	}
	for i := range r.Tiebreak {
		if r.Tiebreak[i] != other.Tiebreak[i] {
			return false
		}
	}
	return true
}

// Evaluate classifies the best 5-card hand out of exactly 7 distinct
// cards (2 hole + 5 community): enumerate all C(7,5)=21 subsets,
// classify each, keep the lexicographic maximum.
func Evaluate(seven []cards.Card) (Result, error) {
	if len(seven) != 7 {
		return Result{}, fmt.Errorf("evaluator: need exactly 7 cards, got %d", len(seven))
	}
	if hasDuplicate(seven) {
		return Result{}, fmt.Errorf("evaluator: duplicate card in input")
	}

	var best Result
	haveBest := false
	for _, combo := range combinations5(seven) {
		res := classify5(combo)
		if !haveBest || best.Less(res) {
			best = res
			haveBest = true
		}
	}
	return best, nil
}

func hasDuplicate(cs []cards.Card) bool {
	seen := make(map[cards.Card]bool, len(cs))
	for _, c := range cs {
		if seen[c] {
			return true
		}
		seen[c] = true
	}
	return false
}

// combinations5 returns all C(7,5)=21 five-card subsets of a 7-card set.
func combinations5(seven []cards.Card) [][5]cards.Card {
	out := make([][5]cards.Card, 0, 21)
	n := len(seven)
	// Enumerate by choosing which 2 of the 7 indices to drop.
	idx := [2]int{}
	for idx[0] = 0; idx[0] < n; idx[0]++ {
		for idx[1] = idx[0] + 1; idx[1] < n; idx[1]++ {
			var combo [5]cards.Card
			pos := 0
			for i := 0; i < n; i++ {
				if i == idx[0] || i == idx[1] {
					continue
				}
				combo[pos] = seven[i]
				pos++
			}
			out = append(out, combo)
		}
	}
	return out
}

// classify5 classifies a single 5-card hand into its category and
// tiebreak vector.
func classify5(hand [5]cards.Card) Result {
	ranks := make([]int, 5)
	suitCounts := make(map[cards.Suit]int)
	rankCounts := make(map[int]int)
	for i, c := range hand {
		v := rankValue(c.Rank)
		ranks[i] = v
		suitCounts[c.Suit]++
		rankCounts[v]++
	}

	isFlush := len(suitCounts) == 1
	straightTop, isStraight := detectStraight(ranks)

	if isStraight && isFlush {
		if straightTop == 14 {
			return Result{Category: RoyalFlush, Tiebreak: []int{straightTop}, Best: hand}
		}
		return Result{Category: StraightFlush, Tiebreak: []int{straightTop}, Best: hand}
	}

	groups := groupByCount(rankCounts)

	if groups[0].count == 4 {
		kicker := otherRanksDescending(ranks, groups[0].rank)
		return Result{Category: FourOfAKind, Tiebreak: append([]int{groups[0].rank}, kicker...), Best: hand}
	}

	if groups[0].count == 3 && len(groups) > 1 && groups[1].count >= 2 {
		return Result{Category: FullHouse, Tiebreak: []int{groups[0].rank, groups[1].rank}, Best: hand}
	}

	if isFlush {
		desc := append([]int{}, ranks...)
		sort.Sort(sort.Reverse(sort.IntSlice(desc)))
		return Result{Category: Flush, Tiebreak: desc, Best: hand}
	}

	if isStraight {
		return Result{Category: Straight, Tiebreak: []int{straightTop}, Best: hand}
	}

	if groups[0].count == 3 {
		kicker := otherRanksDescending(ranks, groups[0].rank)
		return Result{Category: ThreeOfAKind, Tiebreak: append([]int{groups[0].rank}, kicker...), Best: hand}
	}

	if groups[0].count == 2 && len(groups) > 1 && groups[1].count == 2 {
		hi, lo := groups[0].rank, groups[1].rank
		if lo > hi {
			hi, lo = lo, hi
		}
		kicker := otherRanksDescending(ranks, hi, lo)
		return Result{Category: TwoPair, Tiebreak: append([]int{hi, lo}, kicker...), Best: hand}
	}

	if groups[0].count == 2 {
		kicker := otherRanksDescending(ranks, groups[0].rank)
		return Result{Category: OnePair, Tiebreak: append([]int{groups[0].rank}, kicker...), Best: hand}
	}

	desc := append([]int{}, ranks...)
	sort.Sort(sort.Reverse(sort.IntSlice(desc)))
	return Result{Category: HighCard, Tiebreak: desc, Best: hand}
}

type rankGroup struct {
	rank  int
	count int
}

// groupByCount returns rank groups sorted by (count desc, rank desc),
// so groups[0] is always the most significant group (quads/trips/top pair).
func groupByCount(rankCounts map[int]int) []rankGroup {
	groups := make([]rankGroup, 0, len(rankCounts))
	for r, c := range rankCounts {
		groups = append(groups, rankGroup{rank: r, count: c})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].count != groups[j].count {
			return groups[i].count > groups[j].count
		}
		return groups[i].rank > groups[j].rank
	})
	return groups
}

// otherRanksDescending returns the ranks in hand (with multiplicity)
// excluding any value in exclude, sorted descending.
func otherRanksDescending(ranks []int, exclude ...int) []int {
	excludeSet := make(map[int]bool, len(exclude))
	for _, e := range exclude {
		excludeSet[e] = true
	}
	out := make([]int, 0, len(ranks))
	for _, r := range ranks {
		if !excludeSet[r] {
			out = append(out, r)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(out)))
	return out
}

// detectStraight reports the top rank of a 5-high-or-better straight,
// including the A-2-3-4-5 wheel (where Five is the top). No other
// wraparound is permitted.
func detectStraight(ranks []int) (top int, ok bool) {
	seen := make(map[int]bool, 5)
	for _, r := range ranks {
		seen[r] = true
	}
	if len(seen) != 5 {
		return 0, false
	}

	sorted := make([]int, 0, 5)
	for r := range seen {
		sorted = append(sorted, r)
	}
	sort.Ints(sorted)

	if sorted[4]-sorted[0] == 4 {
		return sorted[4], true
	}

	// Wheel: A,2,3,4,5 -> sorted = [2,3,4,5,14]
	if sorted[0] == 2 && sorted[1] == 3 && sorted[2] == 4 && sorted[3] == 5 && sorted[4] == 14 {
		return 5, true
	}

	return 0, false
}
