package engine

// Feedback is the per-cell scoring category a renderer maps to a color.
// The set is closed; there is no "unknown" variant and no runtime failure
// path for an unsupported value.
type Feedback int

const (
	// FeedbackBlank marks a cell with no settled letter behind it.
	FeedbackBlank Feedback = iota
	// FeedbackAbsent marks a settled letter that does not occur in the secret.
	FeedbackAbsent
	// FeedbackPresent marks a settled letter occurring elsewhere in the secret.
	FeedbackPresent
	// FeedbackCorrect marks a settled letter in its exact position.
	FeedbackCorrect
)

func (f Feedback) String() string {
	switch f {
	case FeedbackAbsent:
		return "absent"
	case FeedbackPresent:
		return "present"
	case FeedbackCorrect:
		return "correct"
	default:
		return "blank"
	}
}

// ScoreWord scores guess against secret with the standard two-pass algorithm.
//
// The first pass marks exact matches and counts the remaining secret letters.
// The second pass consumes those counts for out-of-position letters, so a
// letter is marked present at most as many times as it actually occurs in
// the secret beyond its exact matches.
func ScoreWord(secret, guess string) []Feedback {
	n := len(guess)
	res := make([]Feedback, n)
	if len(secret) != n {
		for i := range res {
			res[i] = FeedbackAbsent
		}
		return res
	}

	var counts [26]int
	for i := 0; i < n; i++ {
		if guess[i] == secret[i] {
			res[i] = FeedbackCorrect
		} else if j := letterIndex(secret[i]); j >= 0 {
			counts[j]++
		}
	}
	for i := 0; i < n; i++ {
		if res[i] == FeedbackCorrect {
			continue
		}
		if j := letterIndex(guess[i]); j >= 0 && counts[j] > 0 {
			res[i] = FeedbackPresent
			counts[j]--
		} else {
			res[i] = FeedbackAbsent
		}
	}
	return res
}

// Cell resolves the letter and feedback shown at (row, col) on one player's
// board. Rows below len(past) are settled and scored against the secret; the
// row at len(past) mirrors the in-progress guess with neutral feedback;
// everything beyond is blank. Pure: identical inputs always yield identical
// output and no argument is mutated.
//
// An empty secret (a projected opponent board before the match ends) renders
// settled letters with neutral feedback rather than guessing at colors.
func Cell(secret string, past []string, current string, row, col int) (byte, Feedback) {
	if row < 0 || col < 0 || col >= WordLength {
		return 0, FeedbackBlank
	}
	if row < len(past) {
		word := past[row]
		if col >= len(word) {
			return 0, FeedbackBlank
		}
		if len(secret) != WordLength {
			return word[col], FeedbackBlank
		}
		return word[col], ScoreWord(secret, word)[col]
	}
	if row == len(past) && col < len(current) {
		return current[col], FeedbackBlank
	}
	return 0, FeedbackBlank
}

func letterIndex(b byte) int {
	if b < 'a' || b > 'z' {
		return -1
	}
	return int(b - 'a')
}
