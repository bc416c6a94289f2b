// internal/models/card.go
package models

// Suit is one of the four standard card suits.
type Suit string

// Rank is a standard card rank, "2" through "A".
type Rank string

const (
	SuitHearts   Suit = "hearts"
	SuitDiamonds Suit = "diamonds"
	SuitClubs    Suit = "clubs"
	SuitSpades   Suit = "spades"
)

const (
	RankTwo   Rank = "2"
	RankThree Rank = "3"
	RankFour  Rank = "4"
	RankFive  Rank = "5"
	RankSix   Rank = "6"
	RankSeven Rank = "7"
	RankEight Rank = "8"
	RankNine  Rank = "9"
	RankTen   Rank = "10"
	RankJack  Rank = "J"
	RankQueen Rank = "Q"
	RankKing  Rank = "K"
	RankAce   Rank = "A"
)

// Suits lists all suits in canonical order.
var Suits = []Suit{SuitHearts, SuitDiamonds, SuitClubs, SuitSpades}

// Ranks lists all ranks in canonical order, lowest first.
var Ranks = []Rank{
	RankTwo, RankThree, RankFour, RankFive, RankSix, RankSeven, RankEight,
	RankNine, RankTen, RankJack, RankQueen, RankKing, RankAce,
}

// Card is an immutable suit/rank pair.
type Card struct {
	Suit Suit `json:"suit"`
	Rank Rank `json:"rank"`
}

var rankValues = map[Rank]int{
	RankTwo: 2, RankThree: 3, RankFour: 4, RankFive: 5, RankSix: 6,
	RankSeven: 7, RankEight: 8, RankNine: 9, RankTen: 10,
	RankJack: 11, RankQueen: 12, RankKing: 13, RankAce: 14,
}

// Value returns the rank's comparison value (2 low, Ace high). Only the
// dealer-selection flip compares ranks; play legality never orders them.
func (r Rank) Value() int {
	return rankValues[r]
}

// Valid reports whether s is one of the four suits.
func (s Suit) Valid() bool {
	for _, known := range Suits {
		if s == known {
			return true
		}
	}
	return false
}

// CrossColor returns the same-color partner suit (hearts<->diamonds,
// clubs<->spades). Used by the ten's suit-swap effect.
func (s Suit) CrossColor() Suit {
	switch s {
	case SuitHearts:
		return SuitDiamonds
	case SuitDiamonds:
		return SuitHearts
	case SuitClubs:
		return SuitSpades
	case SuitSpades:
		return SuitClubs
	}
	return s
}

func (c Card) String() string {
	return string(c.Rank) + " of " + string(c.Suit)
}
