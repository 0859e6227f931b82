package content

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"slices"
)

//go:embed quiz_questions.json
var quizQuestionsJSON []byte

// Question is one multiple-choice quiz entry.
type Question struct {
	Category string   `json:"category"`
	Text     string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
}

var quizTables [numLanguages][]Question

func init() {
	tables, err := loadQuizTables(quizQuestionsJSON)
	if err != nil {
		panic(err)
	}
	quizTables = tables
}

func loadQuizTables(data []byte) ([numLanguages][]Question, error) {
	var tables [numLanguages][]Question

	var raw map[string][]Question
	if err := json.Unmarshal(data, &raw); err != nil {
		return tables, fmt.Errorf("failed to parse quiz questions: %w", err)
	}

	for _, lang := range Languages {
		questions, ok := raw[lang.String()]
		if !ok || len(questions) == 0 {
			return tables, fmt.Errorf("quiz table for %s is missing", lang)
		}
		for i, q := range questions {
			if !slices.Contains(q.Options, q.Answer) {
				return tables, fmt.Errorf("quiz %s #%d: answer %q is not an option", lang, i, q.Answer)
			}
		}
		tables[lang] = questions
	}

	// Same index must mean the same question in every language
	for _, lang := range Languages[1:] {
		if len(tables[lang]) != len(tables[Languages[0]]) {
			return tables, fmt.Errorf("quiz table for %s has %d questions, want %d",
				lang, len(tables[lang]), len(tables[Languages[0]]))
		}
	}

	return tables, nil
}

// Questions returns the quiz table for lang. Callers must not modify it.
func Questions(lang Language) []Question {
	if !lang.Valid() {
		lang = Hungarian
	}
	return quizTables[lang]
}
