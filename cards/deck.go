package cards

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"

	"lukechampine.com/frand"
)

var (
	ErrInvalidDeck = errors.New("invalid deck")
)

// Intner is the source of randomness used for shuffling. *frand.RNG
// satisfies it.
type Intner interface {
	Intn(n int) int
}

// Deck is an ordered sequence of all 52 cards. Cards are dealt from the
// front.
type Deck struct {
	cards []Card
}

// NewDeck returns a sorted deck: hearts, clubs, diamonds, spades, each from
// Ace to King.
func NewDeck() *Deck {
	d := &Deck{cards: make([]Card, 0, NumCards)}
	for s := range NumSuits {
		for r := range NumRanks {
			d.cards = append(d.cards, newCard(Suit(s), Rank(r)))
		}
	}
	return d
}

// NewDeckFromCards builds a deck with the given order. The cards must be a
// permutation of the full deck.
func NewDeckFromCards(cs ...Card) (*Deck, error) {
	if len(cs) != NumCards {
		return nil, fmt.Errorf("%w: %d cards, need %d", ErrInvalidDeck, len(cs), NumCards)
	}
	var seen Collection
	for _, c := range cs {
		if _, err := CardFromRaw(uint64(c)); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidDeck, err)
		}
		if seen.Contains(c) {
			return nil, fmt.Errorf("%w: duplicate card %v", ErrInvalidDeck, c)
		}
		seen.Add(c)
	}
	d := &Deck{cards: make([]Card, NumCards)}
	copy(d.cards, cs)
	return d, nil
}

// Shuffle permutes the deck using a cryptographically seeded RNG.
func (d *Deck) Shuffle() {
	d.ShuffleWith(frand.New())
}

// ShuffleWith permutes the deck by repeatedly drawing a uniformly random
// remaining card and appending it to a new sequence.
func (d *Deck) ShuffleWith(rng Intner) {
	shuffled := make([]Card, 0, len(d.cards))
	for len(d.cards) > 0 {
		i := rng.Intn(len(d.cards))
		shuffled = append(shuffled, d.cards[i])
		d.cards = append(d.cards[:i], d.cards[i+1:]...)
	}
	d.cards = shuffled
}

// NewSeededRNG returns a deterministic RNG so a shuffle can be repeated.
func NewSeededRNG(seed uint64) *frand.RNG {
	var b [32]byte
	binary.LittleEndian.PutUint64(b[:], seed)
	return frand.NewCustom(b[:], 1024, 12)
}

// Pop removes and returns the card at the front of the deck.
func (d *Deck) Pop() (Card, bool) {
	if len(d.cards) == 0 {
		return 0, false
	}
	c := d.cards[0]
	d.cards = d.cards[1:]
	return c, true
}

func (d *Deck) Len() int {
	return len(d.cards)
}

// Cards returns a copy of the remaining cards in deal order.
func (d *Deck) Cards() []Card {
	out := make([]Card, len(d.cards))
	copy(out, d.cards)
	return out
}

// Copy returns an independent deck with the same remaining cards.
func (d *Deck) Copy() *Deck {
	return &Deck{cards: d.Cards()}
}

func (d *Deck) String() string {
	parts := make([]string, len(d.cards))
	for i, c := range d.cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
