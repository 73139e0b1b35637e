package bot

import (
	"strings"

	"github.com/pkg/errors"
)

// Profile is a named parameter set for the bot: how positions are scored,
// how candidate moves are ordered and whether the search prunes.
type Profile struct {
	Name      string
	Evaluator Evaluator
	// Pruning enables alpha-beta cutoffs.
	Pruning bool
	// ThreatOrdering tries cells in the mover's threat set first and, in
	// the movement phase, searches only moves onto those cells.
	ThreatOrdering bool
}

// WithoutPruning returns a copy of p that searches the full tree.
func (p Profile) WithoutPruning() Profile {
	p.Pruning = false
	return p
}

var BotNames = map[string]string{
	"easy":   "Alice",
	"medium": "Bob",
	"hard":   "Charles",
}

func GetBotName(difficulty string) string {
	if name, ok := BotNames[difficulty]; ok {
		return name
	}
	return "BOT"
}

// ParseDifficulty maps "easy", "medium" or "hard" to its profile.
func ParseDifficulty(difficulty string) (Profile, error) {
	switch strings.ToLower(strings.TrimSpace(difficulty)) {
	case "easy":
		return Easy(), nil
	case "medium":
		return Medium(), nil
	case "hard":
		return Hard(), nil
	}
	return Profile{}, errors.Errorf("unknown difficulty %q", difficulty)
}
