// Package solver exhaustively plays out a game of Sevens along every line
// a strategy leaves open and counts who wins each game.
package solver

import (
	"context"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/sevens-sim/sevens/cards"
	"github.com/sevens-sim/sevens/game"
)

// DefaultForkThreshold is the number of cards played after which branch
// points are searched inline rather than in new goroutines.
const DefaultForkThreshold = 8

// Each thread may have this many forked branches in flight.
const slotsPerThread = 4

type Solver struct {
	state    *game.State
	strategy game.Strategy

	forkThreshold int
	threads       int
	slots         *semaphore.Weighted
	trace         bool

	games atomic.Uint64
}

// Init sets up the solver to search from state with the given strategy.
// The state is not modified.
func (s *Solver) Init(state *game.State, strategy game.Strategy) {
	s.state = state
	s.strategy = strategy
	s.forkThreshold = DefaultForkThreshold
	s.threads = max(1, runtime.NumCPU())
}

// SetForkThreshold sets how many cards must have been played before branch
// points stop forking goroutines. Zero searches everything sequentially.
func (s *Solver) SetForkThreshold(n int) {
	s.forkThreshold = n
}

func (s *Solver) ForkThreshold() int {
	return s.forkThreshold
}

func (s *Solver) SetThreads(threads int) {
	s.threads = max(1, threads)
}

func (s *Solver) Threads() int {
	return s.threads
}

// Games is the number of finished games found so far. It is safe to call
// while Solve is running.
func (s *Solver) Games() uint64 {
	return s.games.Load()
}

// Solve runs the search to completion. The search has no time limit of its
// own; cancelling ctx abandons it and returns ctx.Err().
func (s *Solver) Solve(ctx context.Context) (*game.Results, error) {
	s.slots = semaphore.NewWeighted(int64(s.threads * slotsPerThread))
	s.trace = zerolog.GlobalLevel() <= zerolog.TraceLevel
	s.games.Store(0)

	log.Debug().
		Str("strategy", s.strategy.String()).
		Int("threads", s.threads).
		Int("fork-threshold", s.forkThreshold).
		Int("players", s.state.NumPlayers()).
		Msg("solve-config")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var results *game.Results
	g := &errgroup.Group{}
	if zerolog.GlobalLevel() <= zerolog.DebugLevel {
		g.Go(func() error {
			s.logProgress(ctx)
			return nil
		})
	}
	g.Go(func() error {
		defer cancel()
		var err error
		results, err = s.play(ctx, s.state.Copy(), 0)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	log.Debug().Uint64("games", results.Games()).Msg("solve-done")
	return results, nil
}

// Play searches every game reachable from state under strategy with the
// default settings.
func Play(ctx context.Context, state *game.State, strategy game.Strategy) (*game.Results, error) {
	s := &Solver{}
	s.Init(state, strategy)
	return s.Solve(ctx)
}

func (s *Solver) logProgress(ctx context.Context) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	var last uint64
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			games := s.games.Load()
			log.Debug().Uint64("games", games).Uint64("gps", games-last).Msg("games-per-second")
			last = games
		}
	}
}

// play continues the game in st, which it owns, until it ends or reaches a
// branch point.
func (s *Solver) play(ctx context.Context, st *game.State, depth int) (*game.Results, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	results := game.NewResults(st.NumPlayers())

	if s.trace {
		log.Trace().Int("depth", depth).Int("played", st.CardsPlayed()).Msg("enter")
	}

	for {
		player := st.PlayerOnTurn()
		use := s.strategy.Choose(st.PlayableCards(), player, results)

		if s.trace {
			log.Trace().
				Int("player", player+1).
				Stringer("board", st.Board()).
				Stringer("hand", st.Hand(player)).
				Stringer("choices", use).
				Msg("turn")
		}

		switch use.Len() {
		case 0:
			// Nothing to play; pass.
		case 1:
			c, _ := use.First()
			st.PlayCard(c)
			if st.HandEmpty() {
				results.WinFor(player)
				s.games.Add(1)
				if s.trace {
					log.Trace().Int("player", player+1).Int("depth", depth).Msg("win")
				}
				return results, nil
			}
		default:
			if err := s.branch(ctx, st, use, depth, results); err != nil {
				return nil, err
			}
			return results, nil
		}
		st.NextPlayer()
	}
}

// branch searches each card of use from its own copy of st and merges the
// outcomes into results.
func (s *Solver) branch(ctx context.Context, st *game.State, use cards.Collection,
	depth int, results *game.Results) error {

	fork := st.CardsPlayed() < s.forkThreshold
	choices := use.Cards()
	sub := make([]*game.Results, len(choices))
	g := &errgroup.Group{}

	for i, c := range choices {
		next := st.Copy()
		// The hand held at least two cards, so this cannot win.
		next.PlayCard(c)
		next.NextPlayer()

		if fork && s.slots.TryAcquire(1) {
			g.Go(func() error {
				defer s.slots.Release(1)
				r, err := s.play(ctx, next, depth+1)
				sub[i] = r
				return err
			})
			continue
		}
		r, err := s.play(ctx, next, depth+1)
		if err != nil {
			g.Wait()
			return err
		}
		sub[i] = r
	}
	if err := g.Wait(); err != nil {
		return err
	}
	for _, r := range sub {
		results.Add(r)
	}
	return nil
}
