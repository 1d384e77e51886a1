package searcher

// Defaults for both search strategies

// Plies searched from the root: the mover's action and the opponent's reply
const DefaultDepth = 2

// Root children scored at once by ranked exploration
const DefaultGoroutines = 1
