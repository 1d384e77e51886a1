package game

// EvaluatePathDifference scores a board by how many more steps the opponent
// needs to reach its goal row than the given player does.
func EvaluatePathDifference(b Board, p Player) float64 {
	score := float64(b.Distance(Player2) - b.Distance(Player1))
	if p == Player2 {
		return -score
	}
	return score
}
