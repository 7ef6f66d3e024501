// meta/meta.go
package meta

// MAX_TURNS bounds a game loop. Reversi has at most 60 moves; passes are not
// turns.
const MAX_TURNS = 64

// DEFAULT_ADDR is where the game server listens unless configured otherwise.
const DEFAULT_ADDR = ":8000"

// GAMES per experiment match-up unless configured otherwise.
const GAMES = 10
