package game

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sevens-sim/sevens/cards"
)

// Strategy decides which of the playable cards the search branches on.
type Strategy uint8

const (
	// NoConsequence plays a single no-consequence card when there is one,
	// then prefers in-sequence cards.
	NoConsequence Strategy = iota
	// Preferred keeps a single no-consequence card and all in-sequence
	// cards as alternatives.
	Preferred
	// Dumb treats all playable cards as equal. No pruning.
	Dumb
)

var ErrUnknownStrategy = errors.New("unknown strategy")

var strategyNames = map[Strategy]string{
	NoConsequence: "no-consequence",
	Preferred:     "preferred",
	Dumb:          "dumb",
}

// Strategies lists every strategy in declaration order.
var Strategies = []Strategy{NoConsequence, Preferred, Dumb}

func ParseStrategy(s string) (Strategy, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for st, name := range strategyNames {
		if s == name || s == strings.ReplaceAll(name, "-", "") {
			return st, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
}

func (st Strategy) String() string {
	if name, ok := strategyNames[st]; ok {
		return name
	}
	return fmt.Sprintf("strategy(%d)", uint8(st))
}

// Choose returns the cards to branch on and records which preference
// bucket supplied them in res.
func (st Strategy) Choose(p Playable, player int, res *Results) cards.Collection {
	var use cards.Collection
	// stat is the set used to decide between single and multi choice.
	stat := cards.Collection(0)
	statSet := false
	prefRank := 0

	switch st {
	case NoConsequence, Preferred:
		if first, ok := p.NoConsequence.First(); ok {
			use = cards.NewCollection(first)
			stat = p.NoConsequence
			if st == Preferred {
				use = use.Union(p.Sequence)
				stat = stat.Union(p.Sequence)
			}
			statSet = true
		} else if !p.Sequence.IsEmpty() {
			use = p.Sequence
			prefRank = 1
		} else {
			use = p.Any
			prefRank = 2
		}
	default:
		use = p.Any
	}

	if res != nil {
		if !statSet {
			stat = use
		}
		res.UpdateStatsFor(player, stat, prefRank)
	}
	return use
}

// MaxPrefRank is the highest preference bucket the strategy records.
func (st Strategy) MaxPrefRank() int {
	switch st {
	case NoConsequence, Preferred:
		return 2
	default:
		return 0
	}
}

// PrefRankDesc describes a preference bucket for display.
func (st Strategy) PrefRankDesc(prefRank int) string {
	switch {
	case st == Dumb && prefRank == 0:
		return "Playable"
	case st == Dumb:
		return "Unknown"
	}
	switch prefRank {
	case 0:
		if st == Preferred {
			return "No Cons+Seq"
		}
		return "No Cons"
	case 1:
		return "Sequence"
	case 2:
		return "Playable"
	}
	return "Unknown"
}
