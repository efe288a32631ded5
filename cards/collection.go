package cards

import (
	"iter"
	"math/bits"
	"strings"
)

// validMask has a bit set for each of the 52 real card positions.
const validMask uint64 = laneMask | laneMask<<LaneWidth | laneMask<<(2*LaneWidth) | laneMask<<(3*LaneWidth)

// Per-suit rank range masks: Ace..6 and 8..King.
const (
	lowRanks  uint64 = 0x003f
	highRanks uint64 = 0x1f80
)

// Collection is a set of cards stored as the union of their encodings.
// Collections built from neighbour shifts (such as a valid-moves mask) may
// carry guard bits; All and Len only ever report real cards.
type Collection uint64

// NewCollection returns a collection holding the given cards.
func NewCollection(cs ...Card) Collection {
	var c Collection
	for _, card := range cs {
		c.Add(card)
	}
	return c
}

// FullCollection holds all 52 cards.
func FullCollection() Collection {
	return Collection(validMask)
}

func (c *Collection) Add(card Card) {
	*c |= Collection(card)
}

func (c *Collection) Remove(card Card) {
	*c &^= Collection(card)
}

func (c Collection) Contains(card Card) bool {
	return c&Collection(card) != 0
}

func (c Collection) Union(o Collection) Collection {
	return c | o
}

func (c Collection) Intersect(o Collection) Collection {
	return c & o
}

func (c Collection) Without(o Collection) Collection {
	return c &^ o
}

// Real drops any guard bits.
func (c Collection) Real() Collection {
	return c & Collection(validMask)
}

// First returns the lowest card in the collection, isolated with x & -x.
// It returns false for an empty collection.
func (c Collection) First() (Card, bool) {
	r := uint64(c.Real())
	if r == 0 {
		return 0, false
	}
	return Card(r & -r), true
}

func (c Collection) Len() int {
	return bits.OnesCount64(uint64(c.Real()))
}

func (c Collection) IsEmpty() bool {
	return c.Real() == 0
}

func (c Collection) Raw() uint64 {
	return uint64(c)
}

// All yields the cards in ascending order: suit-major, rank-minor.
func (c Collection) All() iter.Seq[Card] {
	return func(yield func(Card) bool) {
		r := uint64(c.Real())
		for r != 0 {
			low := r & -r
			r &^= low
			if !yield(Card(low)) {
				return
			}
		}
	}
}

// Cards returns the cards as a slice, in the order All yields them.
func (c Collection) Cards() []Card {
	out := make([]Card, 0, c.Len())
	for card := range c.All() {
		out = append(out, card)
	}
	return out
}

// HasOtherLow reports whether the collection holds any Ace..6 of card's suit
// other than card itself.
func (c Collection) HasOtherLow(card Card) bool {
	mask := lowRanks << (uint(card.Suit()) * LaneWidth)
	return uint64(c)&mask&^uint64(card) != 0
}

// HasOtherHigh reports whether the collection holds any 8..King of card's
// suit other than card itself.
func (c Collection) HasOtherHigh(card Card) bool {
	mask := highRanks << (uint(card.Suit()) * LaneWidth)
	return uint64(c)&mask&^uint64(card) != 0
}

func (c Collection) String() string {
	var sb strings.Builder
	for card := range c.All() {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(card.String())
	}
	return sb.String()
}
