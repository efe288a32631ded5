package cards

import (
	"fmt"
	"strings"
)

// HashAlphabet maps each card to one symbol. The symbol for a card is at
// index suit*13 + rank.
const HashAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// HashSymbol returns the hash alphabet symbol for c.
func (c Card) HashSymbol() byte {
	return HashAlphabet[c.Index()]
}

// CardFromHashSymbol is the inverse of HashSymbol.
func CardFromHashSymbol(b byte) (Card, error) {
	i := strings.IndexByte(HashAlphabet, b)
	if i < 0 {
		return 0, fmt.Errorf("%w: hash symbol %q", ErrInvalidCard, b)
	}
	return newCard(Suit(i/NumRanks), Rank(i%NumRanks)), nil
}

// Hash encodes the deck order as a 52 character string, one symbol per card.
// It is only meaningful for a full, undealt deck.
func (d *Deck) Hash() string {
	var sb strings.Builder
	sb.Grow(len(d.cards))
	for _, c := range d.cards {
		sb.WriteByte(c.HashSymbol())
	}
	return sb.String()
}

// DeckFromHash decodes a string produced by Hash. Every symbol of the
// alphabet must appear exactly once.
func DeckFromHash(hash string) (*Deck, error) {
	if len(hash) != NumCards {
		return nil, fmt.Errorf("%w: hash has length %d, need %d", ErrInvalidDeck, len(hash), NumCards)
	}
	cs := make([]Card, 0, NumCards)
	var seen Collection
	for i := 0; i < len(hash); i++ {
		c, err := CardFromHashSymbol(hash[i])
		if err != nil {
			return nil, fmt.Errorf("%w: position %d: %w", ErrInvalidDeck, i, err)
		}
		if seen.Contains(c) {
			return nil, fmt.Errorf("%w: symbol %q repeated", ErrInvalidDeck, hash[i])
		}
		seen.Add(c)
		cs = append(cs, c)
	}
	return &Deck{cards: cs}, nil
}
