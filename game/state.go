package game

import (
	"errors"
	"fmt"

	"github.com/sevens-sim/sevens/cards"
)

const (
	MinPlayers = 2
	MaxPlayers = cards.NumCards
)

var (
	ErrPlayerCount      = errors.New("player count out of range")
	ErrNoStartingPlayer = errors.New("no player holds the seven of hearts")
	ErrInvalidPosition  = errors.New("invalid position")
)

// The other suits' sevens, unlocked once the seven of hearts is played.
var otherSevens = cards.NewCollection(
	cards.MustCard(cards.Clubs, cards.Seven),
	cards.MustCard(cards.Diamonds, cards.Seven),
	cards.MustCard(cards.Spades, cards.Seven),
)

// State is a game of Sevens in progress. A State is owned by exactly one
// search branch; use Copy before handing it to another.
type State struct {
	board cards.Collection
	// validMoves holds every card that may legally be played now, plus
	// cards already on the board and possibly guard bits. It is only ever
	// read through an intersection with a hand.
	validMoves  cards.Collection
	hands       []cards.Collection
	onTurn      int
	cardsPlayed int
}

// NewState deals the deck round-robin starting at player 0. The deck is
// consumed. The player holding the seven of hearts goes first.
func NewState(numPlayers int, deck *cards.Deck) (*State, error) {
	if numPlayers < MinPlayers || numPlayers > MaxPlayers {
		return nil, fmt.Errorf("%w: %d (must be %d-%d)", ErrPlayerCount, numPlayers, MinPlayers, MaxPlayers)
	}
	s := &State{
		validMoves: cards.NewCollection(cards.SevenOfHearts),
		hands:      make([]cards.Collection, numPlayers),
		onTurn:     -1,
	}
	dealTo := 0
	for {
		c, ok := deck.Pop()
		if !ok {
			break
		}
		if c == cards.SevenOfHearts {
			s.onTurn = dealTo
		}
		s.hands[dealTo].Add(c)
		dealTo = (dealTo + 1) % numPlayers
	}
	if s.onTurn < 0 {
		return nil, ErrNoStartingPlayer
	}
	return s, nil
}

// NewStateFromPosition sets up a game part way through. board holds the
// cards already played and hands the cards still held; together they must
// make up the whole deck. The board must be reachable by legal play.
func NewStateFromPosition(board cards.Collection, hands []cards.Collection, onTurn int) (*State, error) {
	if len(hands) < MinPlayers || len(hands) > MaxPlayers {
		return nil, fmt.Errorf("%w: %d (must be %d-%d)", ErrPlayerCount, len(hands), MinPlayers, MaxPlayers)
	}
	if onTurn < 0 || onTurn >= len(hands) {
		return nil, fmt.Errorf("%w: player on turn %d", ErrInvalidPosition, onTurn)
	}
	board = board.Real()
	seen := board
	for i, h := range hands {
		if h.Real() != h {
			return nil, fmt.Errorf("%w: hand %d holds non-card bits", ErrInvalidPosition, i)
		}
		if dup := seen.Intersect(h); !dup.IsEmpty() {
			return nil, fmt.Errorf("%w: cards dealt twice: %v", ErrInvalidPosition, dup)
		}
		seen = seen.Union(h)
	}
	if missing := cards.FullCollection().Without(seen); !missing.IsEmpty() {
		return nil, fmt.Errorf("%w: cards missing: %v", ErrInvalidPosition, missing)
	}

	s := &State{
		validMoves: cards.NewCollection(cards.SevenOfHearts),
		hands:      make([]cards.Collection, len(hands)),
		onTurn:     onTurn,
	}
	copy(s.hands, hands)

	// Replay the board in any legal order until nothing more unlocks.
	pending := board
	for !pending.IsEmpty() {
		ready := pending.Intersect(s.validMoves)
		if ready.IsEmpty() {
			return nil, fmt.Errorf("%w: unreachable board cards: %v", ErrInvalidPosition, pending)
		}
		for c := range ready.All() {
			s.place(c)
			pending.Remove(c)
		}
	}
	return s, nil
}

// PlayCard plays c from the hand of the player on turn. c must be in both
// the player's hand and the valid moves.
func (s *State) PlayCard(c cards.Card) {
	s.hands[s.onTurn].Remove(c)
	s.place(c)
}

func (s *State) place(c cards.Card) {
	if c == cards.SevenOfHearts {
		s.validMoves = s.validMoves.Union(otherSevens)
	}
	s.validMoves.Add(c.OneLower())
	s.validMoves.Add(c.OneHigher())
	s.board.Add(c)
	s.cardsPlayed++
}

// NextPlayer passes the turn on. It does not check for the end of the game.
func (s *State) NextPlayer() {
	s.onTurn = (s.onTurn + 1) % len(s.hands)
}

// Copy returns a deep copy of the state.
func (s *State) Copy() *State {
	n := *s
	n.hands = make([]cards.Collection, len(s.hands))
	copy(n.hands, s.hands)
	return &n
}

func (s *State) PlayerOnTurn() int {
	return s.onTurn
}

func (s *State) NumPlayers() int {
	return len(s.hands)
}

func (s *State) Hand(player int) cards.Collection {
	return s.hands[player]
}

func (s *State) Board() cards.Collection {
	return s.board
}

// ValidMoves returns the real cards that may be played by whoever holds them.
func (s *State) ValidMoves() cards.Collection {
	return s.validMoves.Without(s.board).Real()
}

func (s *State) CardsPlayed() int {
	return s.cardsPlayed
}

// HandEmpty reports whether the player on turn has run out of cards.
func (s *State) HandEmpty() bool {
	return s.hands[s.onTurn].IsEmpty()
}

// Playable partitions the legal cards of the player on turn.
type Playable struct {
	// NoConsequence cards can be played without giving anything away.
	NoConsequence cards.Collection
	// Sequence cards lead towards other cards the player holds in that suit.
	Sequence cards.Collection
	// Any is every legal card.
	Any cards.Collection
}

// PlayableCards classifies the legal cards of the player on turn.
func (s *State) PlayableCards() Playable {
	hand := s.hands[s.onTurn]
	p := Playable{Any: hand.Intersect(s.validMoves)}
	for c := range p.Any.All() {
		if noConsequence(hand, c) {
			p.NoConsequence.Add(c)
		}
		if inSequence(hand, c) {
			p.Sequence.Add(c)
		}
	}
	return p
}

// noConsequence: Aces and Kings open nothing. Below the seven, holding the
// card one lower means the only card this play unlocks is ours; likewise one
// higher above the seven. A seven needs both neighbours in hand.
func noConsequence(hand cards.Collection, c cards.Card) bool {
	switch r := c.Rank(); {
	case r == cards.Ace || r == cards.King:
		return true
	case r < cards.Seven:
		return hand.Contains(c.OneLower())
	case r > cards.Seven:
		return hand.Contains(c.OneHigher())
	default:
		return hand.Contains(c.OneLower()) && hand.Contains(c.OneHigher())
	}
}

func inSequence(hand cards.Collection, c cards.Card) bool {
	switch r := c.Rank(); {
	case r < cards.Seven:
		return hand.HasOtherLow(c)
	case r > cards.Seven:
		return hand.HasOtherHigh(c)
	default:
		return hand.HasOtherLow(c) || hand.HasOtherHigh(c)
	}
}

func (s *State) String() string {
	str := fmt.Sprintf("board: %v\n", s.board)
	for i, h := range s.hands {
		marker := " "
		if i == s.onTurn {
			marker = "*"
		}
		str += fmt.Sprintf("%s player %d: %v\n", marker, i+1, h)
	}
	return str
}
