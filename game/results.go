package game

import (
	"cmp"

	"github.com/sevens-sim/sevens/cards"
)

// PrefBuckets is the number of preference buckets a strategy can report.
const PrefBuckets = 3

// PlayerResults are the counters for one player.
type PlayerResults struct {
	Wins uint64 `yaml:"wins"`
	// Misses counts turns with nothing to play.
	Misses uint64 `yaml:"misses"`
	// Single and Multi count turns where the chosen preference bucket held
	// exactly one card or several.
	Single [PrefBuckets]uint64 `yaml:"single"`
	Multi  [PrefBuckets]uint64 `yaml:"multi"`
}

func (p *PlayerResults) add(o *PlayerResults) {
	p.Wins += o.Wins
	p.Misses += o.Misses
	for i := range PrefBuckets {
		p.Single[i] += o.Single[i]
		p.Multi[i] += o.Multi[i]
	}
}

// Results accumulates the outcome of a search. Merging with Add is
// commutative and associative, so branch results may be combined in any
// order.
type Results struct {
	players []PlayerResults
	games   uint64
}

func NewResults(numPlayers int) *Results {
	return &Results{players: make([]PlayerResults, numPlayers)}
}

// WinFor records a finished game won by player.
func (r *Results) WinFor(player int) {
	r.players[player].Wins++
	r.games++
}

// UpdateStatsFor records a turn for player where set was the candidate set
// taken from the given preference bucket.
func (r *Results) UpdateStatsFor(player int, set cards.Collection, prefRank int) {
	pr := &r.players[player]
	switch cmp.Compare(set.Len(), 1) {
	case -1:
		pr.Misses++
	case 0:
		pr.Single[prefRank]++
	default:
		pr.Multi[prefRank]++
	}
}

// Add merges o into r.
func (r *Results) Add(o *Results) {
	r.games += o.games
	for i := range r.players {
		r.players[i].add(&o.players[i])
	}
}

func (r *Results) Games() uint64 {
	return r.games
}

func (r *Results) NumPlayers() int {
	return len(r.players)
}

// Wins returns the win count for each player.
func (r *Results) Wins() []uint64 {
	w := make([]uint64, len(r.players))
	for i, p := range r.players {
		w[i] = p.Wins
	}
	return w
}

func (r *Results) Player(player int) PlayerResults {
	return r.players[player]
}

// WinPercentage is the share of games won by player, 0-100.
func (r *Results) WinPercentage(player int) float64 {
	if r.games == 0 {
		return 0
	}
	return float64(r.players[player].Wins) * 100 / float64(r.games)
}

type resultsYAML struct {
	Games   uint64          `yaml:"games"`
	Players []PlayerResults `yaml:"players"`
}

func (r *Results) MarshalYAML() (any, error) {
	return resultsYAML{Games: r.games, Players: r.players}, nil
}
