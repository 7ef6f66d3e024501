package player

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"reversi/game"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

var ErrQuit = errors.New("player quit")

// Console plays a game on a terminal. It asks for a move whenever the backend
// hands the turn to a human.
type Console struct {
	backend  Backend
	in       *bufio.Scanner
	renderer *Renderer
}

func NewConsole(backend Backend, in io.Reader, renderer *Renderer) *Console {
	return &Console{
		backend:  backend,
		in:       bufio.NewScanner(in),
		renderer: renderer,
	}
}

// Run plays one game to the end. It returns ErrQuit if the player gives up and
// io.ErrUnexpectedEOF if the input ends first.
func (c *Console) Run(ctx context.Context) (*game.GameState, error) {
	id, gs, err := c.backend.Start(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to start game: %w", err)
	}
	log.Debug().Str("game", id).Msg("console game started")

	for !gs.Over {
		c.renderer.Render(gs)
		c.renderer.Printf("%s> ", gs.ToMove)
		if !c.in.Scan() {
			if err := c.in.Err(); err != nil {
				return gs, err
			}
			return gs, io.ErrUnexpectedEOF
		}
		line := strings.TrimSpace(c.in.Text())
		switch line {
		case "":
			continue
		case "q", "quit", "exit":
			return gs, ErrQuit
		}

		m, err := ParseMove(line)
		if err != nil {
			c.renderer.Printf("%v\n", err)
			continue
		}
		next, err := c.backend.Move(ctx, id, gs.ToMove, m)
		if err != nil {
			c.renderer.Printf("%s is not possible: %v\n", FormatMove(m), err)
			continue
		}
		gs = next
	}

	c.renderer.Render(gs)
	return gs, nil
}

// ParseMove reads "d3" style coordinates (column letter, row from 1) or a
// zero-based "row col" pair such as "2 3" or "2,3".
func ParseMove(s string) (game.Move, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) == 2 && s[0] >= 'a' && s[0] <= 'h' && s[1] >= '1' && s[1] <= '8' {
		return game.Move{Row: int(s[1] - '1'), Col: int(s[0] - 'a')}, nil
	}

	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ' ' || r == ',' })
	if len(fields) != 2 {
		return game.Move{}, fmt.Errorf("cannot read %q, type a move like d3 or \"2 3\"", s)
	}
	row, err := strconv.Atoi(fields[0])
	if err != nil {
		return game.Move{}, fmt.Errorf("row %q is not a number", fields[0])
	}
	col, err := strconv.Atoi(fields[1])
	if err != nil {
		return game.Move{}, fmt.Errorf("column %q is not a number", fields[1])
	}
	return game.Move{Row: row, Col: col}, nil
}
