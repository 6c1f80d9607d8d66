package game

import (
	"math/rand"
	"time"
)

// Shuffler produces the shoe's card order. The shuffle lives outside the
// engine so it can be swapped for an audited fairness source; the Shoe only
// consumes cards in the order produced.
type Shuffler interface {
	Shuffle(deckCount int) []Card
}

// RandShuffler is the production Shuffler, backed by math/rand.
type RandShuffler struct {
	rnd *rand.Rand
}

func NewRandShuffler() *RandShuffler {
	return &RandShuffler{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (s *RandShuffler) Shuffle(deckCount int) []Card {
	cards := make([]Card, 0, deckCount*52)
	for i := 0; i < deckCount; i++ {
		cards = append(cards, NewDeck()...)
	}
	s.rnd.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
	return cards
}

// Shoe is an ordered, shrinking sequence of cards. A dealt card is removed
// and never redealt; the shoe is replaced between rounds, never mid-round.
type Shoe struct {
	cards []Card
}

func NewShoe(deckCount int, shuffler Shuffler) *Shoe {
	return &Shoe{cards: shuffler.Shuffle(deckCount)}
}

func (s *Shoe) Deal() (Card, error) {
	if len(s.cards) == 0 {
		return Card{}, ErrShoeExhausted
	}
	c := s.cards[0]
	s.cards = s.cards[1:]
	return c, nil
}

func (s *Shoe) Remaining() int {
	return len(s.cards)
}
