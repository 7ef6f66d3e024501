package game

import "errors"

// Size is the side length of the board. Reversi is always played on 8x8.
const Size = 8

var (
	ErrOutOfRange  = errors.New("coordinates out of range")
	ErrIllegalMove = errors.New("illegal move")
	ErrGameOver    = errors.New("game is over")
)

type Cell uint8

const (
	Empty Cell = iota
	BlackDisc
	WhiteDisc
)

func (c Cell) String() string {
	switch c {
	case BlackDisc:
		return "B"
	case WhiteDisc:
		return "W"
	default:
		return "."
	}
}

// Owner returns the player holding the cell, false for an empty cell.
func (c Cell) Owner() (Player, bool) {
	switch c {
	case BlackDisc:
		return Black, true
	case WhiteDisc:
		return White, true
	}
	return 0, false
}

type Player uint8

const (
	Black Player = Player(BlackDisc)
	White Player = Player(WhiteDisc)
)

func (p Player) Opponent() Player {
	if p == Black {
		return White
	}
	return Black
}

func (p Player) Disc() Cell {
	return Cell(p)
}

func (p Player) String() string {
	switch p {
	case Black:
		return "black"
	case White:
		return "white"
	}
	return "unknown"
}

// ParsePlayer accepts the lowercase names used on the wire.
func ParsePlayer(s string) (Player, error) {
	switch s {
	case "black":
		return Black, nil
	case "white":
		return White, nil
	}
	return 0, errors.New("unknown player " + s)
}

type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

type Counts struct {
	Black int `json:"black"`
	White int `json:"white"`
}

// Of returns the count belonging to p.
func (c Counts) Of(p Player) int {
	if p == Black {
		return c.Black
	}
	return c.White
}

type Outcome uint8

const (
	Undecided Outcome = iota
	BlackWins
	WhiteWins
	Draw
)

func (o Outcome) String() string {
	switch o {
	case BlackWins:
		return "black"
	case WhiteWins:
		return "white"
	case Draw:
		return "draw"
	}
	return ""
}

// Evaluation scores a board from the perspective of a player. Higher is better
// for that player.
type Evaluation func(b Board, perspective Player) int
