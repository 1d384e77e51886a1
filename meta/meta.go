// meta/meta.go
package meta

import (
	"os"
	"strconv"
)

// GO_ROUTINES defines the number of goroutines ranked exploration scores root moves with.
const GO_ROUTINES = 8

// MAX_DEPTH defines the default search depth in plies.
const MAX_DEPTH = 2

// MAX_RANK defines the lowest rank a training agent may sample.
const MAX_RANK = 3

// MAX_TURNS defines the number of moves after which a match is a draw.
const MAX_TURNS = 300

// GetenvInt reads an integer environment variable, falling back to def when it
// is unset or malformed.
func GetenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

// Getenv reads an environment variable, falling back to def when it is unset.
func Getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
