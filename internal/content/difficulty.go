package content

import "fmt"

// Difficulty is the memory game difficulty label.
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
	Expert

	numDifficulties
)

var (
	difficultyNames = [numDifficulties]string{
		Easy:   "easy",
		Medium: "medium",
		Hard:   "hard",
		Expert: "expert",
	}
	difficultyLabels = [numDifficulties][numLanguages]string{
		Easy:   {Hungarian: "Könnyű", English: "Easy", German: "Einfach"},
		Medium: {Hungarian: "Közepes", English: "Medium", German: "Mittel"},
		Hard:   {Hungarian: "Nehéz", English: "Hard", German: "Schwer"},
		Expert: {Hungarian: "Szakértő", English: "Expert", German: "Experte"},
	}
)

// ParseDifficulty maps a stored name back to a Difficulty.
func ParseDifficulty(name string) (Difficulty, error) {
	for d, n := range difficultyNames {
		if n == name {
			return Difficulty(d), nil
		}
	}
	return Easy, fmt.Errorf("unknown difficulty %q", name)
}

// Valid reports whether d is a known difficulty.
func (d Difficulty) Valid() bool { return d >= 0 && d < numDifficulties }

// String returns the stable name used in persisted progress.
func (d Difficulty) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Difficulty(%d)", int(d))
	}
	return difficultyNames[d]
}

// Label returns the display label in lang.
func (d Difficulty) Label(lang Language) string {
	if !d.Valid() || !lang.Valid() {
		return d.String()
	}
	return difficultyLabels[d][lang]
}
