// meta/meta.go
package meta

import "time"

// DEPTH defines the default search depth of minimax agents.
const DEPTH = 3

// MAX_TURNS defines how many moves a game may last before it is stopped.
const MAX_TURNS = 300

// GAMES defines how many games each arena matchup plays.
const GAMES = 10

// GO_ROUTINES defines how many games the arena plays at once.
const GO_ROUTINES = 8

// POLL_INTERVAL defines how often remote players check the match record.
const POLL_INTERVAL = 20 * time.Millisecond
