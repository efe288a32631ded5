// Package cards implements the packed 64-bit card and card-set
// representation used by the Sevens solver.
package cards

import (
	"errors"
	"fmt"
	"math/bits"
	"strings"
)

// Card is a single set bit inside a 64-bit word. Each suit owns a 16-bit
// lane; ranks occupy the low 13 bits of the lane and the top 3 bits are
// guard bits.
//
//	63   59   55   51   47   43   39   35   31   27   23   19   15   11    7    3
//	 gggS SSSS SSSS SSSS gggD DDDD DDDD DDDD gggC CCCC CCCC CCCC gggH HHHH HHHH HHHH
//
// Shifting a card up or down by one bit yields its rank neighbour in the same
// suit. Shifting a King up or an Ace down lands in a guard bit (or off the
// word entirely), which never matches a real card.
type Card uint64

type Suit uint8
type Rank uint8

const (
	Hearts Suit = iota
	Clubs
	Diamonds
	Spades
)

const (
	Ace Rank = iota
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

const (
	NumSuits = 4
	NumRanks = 13
	NumCards = NumSuits * NumRanks

	LaneWidth = 16
	// laneMask covers the 13 real rank bits of one lane.
	laneMask = 0x1fff
)

var (
	ErrInvalidCard = errors.New("invalid card")
)

var suitSymbols = [NumSuits]string{"♥", "♣", "♦", "♠"}
var suitLetters = [NumSuits]string{"H", "C", "D", "S"}
var rankNames = [NumRanks]string{"A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K"}

const SevenOfHearts = Card(1 << (uint(Seven) + uint(Hearts)*LaneWidth))

// NewCard returns the card for the given suit and rank.
func NewCard(suit Suit, rank Rank) (Card, error) {
	if suit >= NumSuits || rank >= NumRanks {
		return 0, fmt.Errorf("%w: suit %d rank %d", ErrInvalidCard, suit, rank)
	}
	return newCard(suit, rank), nil
}

// MustCard is like NewCard but panics on an out-of-range suit or rank.
func MustCard(suit Suit, rank Rank) Card {
	c, err := NewCard(suit, rank)
	if err != nil {
		panic(err)
	}
	return c
}

func newCard(suit Suit, rank Rank) Card {
	return Card(1) << (uint(rank) + uint(suit)*LaneWidth)
}

// CardFromRaw accepts a raw encoding. It must have exactly one bit set, in
// a rank position of some lane.
func CardFromRaw(raw uint64) (Card, error) {
	if bits.OnesCount64(raw) != 1 || raw&validMask == 0 {
		return 0, fmt.Errorf("%w: raw value %#x", ErrInvalidCard, raw)
	}
	return Card(raw), nil
}

// ParseCard parses strings such as "7♥", "10D" or "qs".
func ParseCard(s string) (Card, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for si := range NumSuits {
		for _, sym := range []string{suitSymbols[si], suitLetters[si]} {
			r, ok := strings.CutSuffix(s, sym)
			if !ok {
				continue
			}
			for ri, name := range rankNames {
				if r == name {
					return newCard(Suit(si), Rank(ri)), nil
				}
			}
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidCard, s)
}

func (c Card) Suit() Suit {
	return Suit(bits.TrailingZeros64(uint64(c)) / LaneWidth)
}

func (c Card) Rank() Rank {
	return Rank(bits.TrailingZeros64(uint64(c)) % LaneWidth)
}

// OneHigher returns the encoding one rank above c. For a King the result is
// a guard bit.
func (c Card) OneHigher() Card {
	return c << 1
}

// OneLower returns the encoding one rank below c. For an Ace the result is a
// guard bit of the previous lane (or zero for hearts).
func (c Card) OneLower() Card {
	return c >> 1
}

func (c Card) Raw() uint64 {
	return uint64(c)
}

// Index is the position of the card in a sorted deck: suit*13 + rank.
func (c Card) Index() int {
	return int(c.Suit())*NumRanks + int(c.Rank())
}

func (c Card) String() string {
	if uint64(c)&validMask == 0 {
		return fmt.Sprintf("?%x", uint64(c))
	}
	return c.Rank().String() + c.Suit().String()
}

func (s Suit) String() string {
	if s >= NumSuits {
		return "?"
	}
	return suitSymbols[s]
}

func (r Rank) String() string {
	if r >= NumRanks {
		return "?"
	}
	return rankNames[r]
}
