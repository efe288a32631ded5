package game

import (
	"errors"
	"os"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"github.com/sevens-sim/sevens/cards"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

func mustParse(ss ...string) cards.Collection {
	var c cards.Collection
	for _, s := range ss {
		card, err := cards.ParseCard(s)
		if err != nil {
			panic(err)
		}
		c.Add(card)
	}
	return c
}

func TestNewStateDeal(t *testing.T) {
	is := is.New(t)
	s, err := NewState(2, cards.NewDeck())
	is.NoErr(err)
	is.Equal(s.NumPlayers(), 2)
	is.Equal(s.Hand(0).Len(), 26)
	is.Equal(s.Hand(1).Len(), 26)
	// 7♥ is the seventh card dealt, so player 0 gets it.
	is.Equal(s.PlayerOnTurn(), 0)
	is.True(s.Hand(0).Contains(cards.SevenOfHearts))
	is.Equal(s.Hand(0).Union(s.Hand(1)), cards.FullCollection())
	is.True(s.Board().IsEmpty())
	is.Equal(s.ValidMoves(), mustParse("7♥"))
	is.Equal(s.CardsPlayed(), 0)
}

func TestNewStateUnevenDeal(t *testing.T) {
	is := is.New(t)
	s, err := NewState(5, cards.NewDeck())
	is.NoErr(err)
	is.Equal(s.Hand(0).Len(), 11)
	is.Equal(s.Hand(1).Len(), 11)
	is.Equal(s.Hand(4).Len(), 10)
	is.Equal(s.PlayerOnTurn(), 1)
}

func TestNewStatePlayerCount(t *testing.T) {
	is := is.New(t)
	for _, n := range []int{-1, 0, 1, 53} {
		_, err := NewState(n, cards.NewDeck())
		is.True(errors.Is(err, ErrPlayerCount))
	}
	s, err := NewState(52, cards.NewDeck())
	is.NoErr(err)
	is.Equal(s.PlayerOnTurn(), 6)
}

func TestNewStateNoSevenOfHearts(t *testing.T) {
	is := is.New(t)
	d := cards.NewDeck()
	for {
		c, _ := d.Pop()
		if c == cards.SevenOfHearts {
			break
		}
	}
	_, err := NewState(4, d)
	is.True(errors.Is(err, ErrNoStartingPlayer))
}

func TestPlaySevenOfHearts(t *testing.T) {
	is := is.New(t)
	s, err := NewState(4, cards.NewDeck())
	is.NoErr(err)
	p := s.PlayerOnTurn()
	s.PlayCard(cards.SevenOfHearts)
	is.True(!s.Hand(p).Contains(cards.SevenOfHearts))
	is.Equal(s.Board(), mustParse("7♥"))
	is.Equal(s.ValidMoves(), mustParse("6♥", "8♥", "7♣", "7♦", "7♠"))
	is.Equal(s.CardsPlayed(), 1)

	s.NextPlayer()
	is.Equal(s.PlayerOnTurn(), (p+1)%4)
}

func TestEdgePlaysAddNoRealCards(t *testing.T) {
	is := is.New(t)
	hands := []cards.Collection{
		mustParse("A♣", "K♥"),
		cards.FullCollection().Without(mustParse("A♣", "K♥", "2♣", "3♣", "4♣", "5♣", "6♣", "7♣", "7♥", "8♥", "9♥", "10♥", "J♥", "Q♥")),
	}
	board := mustParse("2♣", "3♣", "4♣", "5♣", "6♣", "7♣", "7♥", "8♥", "9♥", "10♥", "J♥", "Q♥")
	s, err := NewStateFromPosition(board, hands, 0)
	is.NoErr(err)
	before := s.ValidMoves()
	s.PlayCard(cards.MustCard(cards.Clubs, cards.Ace))
	s.PlayCard(cards.MustCard(cards.Hearts, cards.King))
	is.Equal(s.ValidMoves(), before.Without(mustParse("A♣", "K♥")))
	is.True(s.HandEmpty())
}

func TestCopyIsIndependent(t *testing.T) {
	is := is.New(t)
	s, err := NewState(3, cards.NewDeck())
	is.NoErr(err)
	c := s.Copy()
	c.PlayCard(cards.SevenOfHearts)
	c.NextPlayer()
	is.True(s.Hand(s.PlayerOnTurn()).Contains(cards.SevenOfHearts))
	is.True(s.Board().IsEmpty())
	is.True(c.PlayerOnTurn() != s.PlayerOnTurn())
}

func TestNewStateFromPosition(t *testing.T) {
	is := is.New(t)
	hands := []cards.Collection{
		mustParse("3♥", "J♣", "A♥"),
		mustParse("2♥", "Q♣", "K♣"),
	}
	board := cards.FullCollection().Without(hands[0]).Without(hands[1])
	s, err := NewStateFromPosition(board, hands, 1)
	is.NoErr(err)
	is.Equal(s.PlayerOnTurn(), 1)
	is.Equal(s.CardsPlayed(), 46)
	is.Equal(s.ValidMoves(), mustParse("3♥", "J♣"))
}

func TestNewStateFromPositionErrors(t *testing.T) {
	is := is.New(t)
	full := cards.FullCollection()
	a := mustParse("3♥", "A♥")
	b := mustParse("2♥", "K♣")

	_, err := NewStateFromPosition(full.Without(a).Without(b), []cards.Collection{a, b}, 2)
	is.True(errors.Is(err, ErrInvalidPosition))

	_, err = NewStateFromPosition(full.Without(a).Without(b), []cards.Collection{a}, 0)
	is.True(errors.Is(err, ErrPlayerCount))

	// overlapping hands
	_, err = NewStateFromPosition(full.Without(a).Without(b), []cards.Collection{a, a.Union(b)}, 0)
	is.True(errors.Is(err, ErrInvalidPosition))

	// missing cards
	_, err = NewStateFromPosition(full.Without(a).Without(b).Without(mustParse("5♦")), []cards.Collection{a, b}, 0)
	is.True(errors.Is(err, ErrInvalidPosition))

	// 6♣ on the board without 7♣
	x := mustParse("7♣", "A♥")
	y := mustParse("2♥", "3♥")
	_, err = NewStateFromPosition(full.Without(x).Without(y), []cards.Collection{x, y}, 0)
	is.True(errors.Is(err, ErrInvalidPosition))
}

func TestPlayableCards(t *testing.T) {
	is := is.New(t)
	// Board: 7♥ 8♥ 7♣ 6♣ 5♣ 7♦, so the frontier is 6♥ 9♥ 4♣ 8♣ 6♦ 8♦ 7♠.
	board := mustParse("7♥", "8♥", "7♣", "6♣", "5♣", "7♦")
	p0 := mustParse("6♥", "5♥", "9♥", "J♥", "4♣", "8♣", "7♠", "8♠", "6♠", "A♦")
	p1 := cards.FullCollection().Without(board).Without(p0)
	s, err := NewStateFromPosition(board, []cards.Collection{p0, p1}, 0)
	is.NoErr(err)

	p := s.PlayableCards()
	is.Equal(p.Any, mustParse("6♥", "9♥", "4♣", "8♣", "7♠"))
	// 6♥: holds 5♥. 7♠: holds 6♠ and 8♠.
	is.Equal(p.NoConsequence, mustParse("6♥", "7♠"))
	// 6♥ and 9♥ lead to 5♥ and J♥; 7♠ to 6♠/8♠.
	is.Equal(p.Sequence, mustParse("6♥", "9♥", "7♠"))

	s.NextPlayer()
	p = s.PlayableCards()
	is.Equal(p.Any, mustParse("6♦", "8♦"))
}
