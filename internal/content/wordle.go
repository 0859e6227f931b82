package content

import "fmt"

const (
	WordLength = 5
	MaxGuesses = 6
)

// wordLists holds unaccented five-letter words per language.
var wordLists = [numLanguages][]string{
	Hungarian: {
		"ablak", "babos", "barna", "cukor", "dalom", "egyes", "fajta", "galya", "halas", "ifjak",
		"kalap", "lakat", "magas", "napos", "olvas", "patak", "ravak", "savas", "talaj", "ugrat",
		"vacak", "zabos", "bajok", "cukos", "darab", "egyed", "falak", "garat", "hamar", "ingek",
		"javas", "kamat", "lapos", "marad", "napok", "oktat", "palya", "rakat", "salak", "takar",
		"utcak", "vagya", "zajos", "balos", "csata", "dolog", "ember", "farok", "gamma", "halad",
		"inger", "jatek", "kavar", "lapok", "marka", "nemas", "orias", "paros", "ramas", "sarga",
		"talal", "udvar", "varos", "zavar", "balra", "csiga", "enyhe", "favag", "gamba", "inter",
		"kazal", "labak", "orosz", "pazar", "rajta", "sator", "tanul", "ujabb", "varga", "zebra",
		"banda", "csepp", "draga",
	},
	English: {
		"about", "above", "abuse", "actor", "acute", "admit", "adopt", "adult", "after", "again",
		"agent", "agree", "ahead", "alarm", "album", "alert", "alike", "alive", "allow", "alone",
		"along", "alter", "among", "angry", "apart", "apple", "apply", "arena", "argue", "arise",
		"array", "aside", "asset", "avoid", "award", "aware", "badly", "baker", "bases", "basic",
		"basis", "beach", "began", "begin", "begun", "being", "below", "bench", "birth", "black",
		"blame", "blind", "block", "blood", "board", "boost", "bound", "brain", "brand", "bread",
		"break", "breed", "brief", "bring", "broad", "broke", "brown", "build", "built", "buyer",
		"cable", "carry", "catch", "cause", "chain", "chair", "chart", "chase", "cheap", "check",
		"chest", "chief", "child", "chose", "civil", "claim", "class", "clean", "clear", "click",
		"climb", "clock", "close", "coach", "coast", "could", "count",
	},
	German: {
		"abend", "alles", "alter", "damit", "daran", "dabei", "davon", "davor", "denen", "deren",
		"derer", "diese", "dinge", "durch", "ebene", "einem", "einen", "einer", "eines", "erste",
		"fahrt", "falle", "falls", "faser", "fehlt", "finde", "firma", "folge", "frage", "fragt",
		"freie", "fremd", "freut", "ganze", "geben", "gegen", "geher", "geist", "genau", "gerne",
		"glass", "gross", "grund", "gruss", "haben", "haelt", "halbe", "hallo", "halte", "handy",
		"haupt", "heute", "hilfe", "hinzu", "holen", "jahre", "jeden", "jeder", "jedes", "jetzt",
		"kampf", "karte", "kasse", "kaufe", "keine", "kennt", "kiste", "klare", "klein", "komme",
		"kraft", "kreis", "kurze", "lager", "lande", "lange", "lasse", "lauft", "legen", "lehre",
		"leide", "lesen", "letzt", "leute", "liebe", "liegt", "liste", "macht", "maler", "markt",
		"masse", "meist", "menge",
	},
}

var keyboardRows = [numLanguages][3]string{
	Hungarian: {"qwertzuiop", "asdfghjkl", "yxcvbnm"},
	English:   {"qwertyuiop", "asdfghjkl", "zxcvbnm"},
	German:    {"qwertzuiop", "asdfghjkl", "yxcvbnm"},
}

func init() {
	for _, lang := range Languages {
		if err := validateWords(wordLists[lang]); err != nil {
			panic(fmt.Sprintf("content: %s word list: %v", lang, err))
		}
	}
}

func validateWords(words []string) error {
	if len(words) == 0 {
		return fmt.Errorf("empty")
	}
	seen := make(map[string]bool, len(words))
	for _, w := range words {
		if !IsGuessable(w) {
			return fmt.Errorf("%q is not %d letters a-z", w, WordLength)
		}
		if seen[w] {
			return fmt.Errorf("duplicate %q", w)
		}
		seen[w] = true
	}
	return nil
}

// IsGuessable reports whether w has WordLength letters from a to z.
func IsGuessable(w string) bool {
	if len(w) != WordLength {
		return false
	}
	for i := 0; i < len(w); i++ {
		if w[i] < 'a' || w[i] > 'z' {
			return false
		}
	}
	return true
}

// Words returns a copy of the word list for lang.
func Words(lang Language) []string {
	if !lang.Valid() {
		lang = English
	}
	out := make([]string, len(wordLists[lang]))
	copy(out, wordLists[lang])
	return out
}

// KeyboardRows is the letter layout shown under the board, top row first.
func KeyboardRows(lang Language) [3]string {
	if !lang.Valid() {
		lang = English
	}
	return keyboardRows[lang]
}
