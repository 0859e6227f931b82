// Package content holds the fixed tables that daily challenges are derived from.
// The tables ship with the binary so every install derives the same challenge
// for the same day.
package content

import (
	"fmt"

	"golang.org/x/text/language"
)

// Language is one of the supported interface languages.
type Language int

const (
	Hungarian Language = iota
	English
	German

	numLanguages
)

// Languages lists every supported language in table order.
var Languages = []Language{Hungarian, English, German}

var (
	languageTags = [numLanguages]language.Tag{
		Hungarian: language.Hungarian,
		English:   language.English,
		German:    language.German,
	}
	languageCodes = [numLanguages]string{
		Hungarian: "hu",
		English:   "en",
		German:    "de",
	}
	languageMatcher = language.NewMatcher(languageTags[:])
)

// ParseLanguage resolves a BCP 47 tag ("en", "de-AT", "hu-HU") to a supported language.
func ParseLanguage(s string) (Language, error) {
	tag, err := language.Parse(s)
	if err != nil {
		return Hungarian, fmt.Errorf("invalid language %q: %w", s, err)
	}
	_, idx, conf := languageMatcher.Match(tag)
	if conf == language.No {
		return Hungarian, fmt.Errorf("unsupported language %q (supported: hu, en, de)", s)
	}
	return Language(idx), nil
}

// Valid reports whether l is a known language.
func (l Language) Valid() bool { return l >= 0 && l < numLanguages }

// Tag returns the BCP 47 tag for l.
func (l Language) Tag() language.Tag {
	if !l.Valid() {
		return language.Und
	}
	return languageTags[l]
}

// String returns the two-letter code.
func (l Language) String() string {
	if !l.Valid() {
		return fmt.Sprintf("Language(%d)", int(l))
	}
	return languageCodes[l]
}
