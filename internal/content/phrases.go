package content

// Phrase is a user-facing string with a fixed set of translations.
type Phrase int

const (
	PhraseQuizTitle Phrase = iota
	PhraseMemoryTitle
	PhraseMoves
	PhraseTime
	PhraseStreak
	PhraseBestStreak
	PhraseCorrect
	PhraseWrong
	PhraseCorrectAnswer
	PhraseAlreadyPlayed
	PhraseComeBackTomorrow
	PhraseWon
	PhraseTotalCorrect
	PhraseGamesWon
	PhraseDifficulty
	PhraseChooseChallenge
	PhraseShareCopied
	PhraseSaveFailed
	PhraseStreakAtRisk
	PhraseWordleTitle
	PhraseWordleLost
	PhraseWordleTooShort
	PhraseCoinHeads
	PhraseCoinTails

	numPhrases
)

var phrases = [numPhrases][numLanguages]string{
	PhraseQuizTitle:        {Hungarian: "Napi kvíz", English: "Daily Quiz", German: "Tägliches Quiz"},
	PhraseMemoryTitle:      {Hungarian: "Memóriajáték", English: "Memory Game", German: "Memory-Spiel"},
	PhraseMoves:            {Hungarian: "lépés", English: "moves", German: "Züge"},
	PhraseTime:             {Hungarian: "Idő", English: "Time", German: "Zeit"},
	PhraseStreak:           {Hungarian: "Sorozat", English: "Streak", German: "Serie"},
	PhraseBestStreak:       {Hungarian: "Legjobb sorozat", English: "Best streak", German: "Beste Serie"},
	PhraseCorrect:          {Hungarian: "Helyes!", English: "Correct!", German: "Richtig!"},
	PhraseWrong:            {Hungarian: "Nem talált!", English: "Wrong!", German: "Falsch!"},
	PhraseCorrectAnswer:    {Hungarian: "A helyes válasz", English: "The correct answer", German: "Die richtige Antwort"},
	PhraseAlreadyPlayed:    {Hungarian: "A mai kihívást már teljesítetted.", English: "You already played today's challenge.", German: "Du hast die heutige Herausforderung schon gespielt."},
	PhraseComeBackTomorrow: {Hungarian: "Gyere vissza holnap!", English: "Come back tomorrow!", German: "Komm morgen wieder!"},
	PhraseWon:              {Hungarian: "Nyertél!", English: "You won!", German: "Gewonnen!"},
	PhraseTotalCorrect:     {Hungarian: "Összes helyes", English: "Total correct", German: "Insgesamt richtig"},
	PhraseGamesWon:         {Hungarian: "Megnyert játékok", English: "Games won", German: "Gewonnene Spiele"},
	PhraseDifficulty:       {Hungarian: "Nehézség", English: "Difficulty", German: "Schwierigkeit"},
	PhraseChooseChallenge:  {Hungarian: "Válassz kihívást", English: "Choose a challenge", German: "Wähle eine Herausforderung"},
	PhraseShareCopied:      {Hungarian: "Eredmény kimásolva", English: "Result copied", German: "Ergebnis kopiert"},
	PhraseSaveFailed:       {Hungarian: "Az eredmény nem menthető, csak ebben a munkamenetben él.", English: "Result could not be saved; it lasts for this session only.", German: "Ergebnis konnte nicht gespeichert werden; es gilt nur für diese Sitzung."},
	PhraseStreakAtRisk:     {Hungarian: "%s: %d napos sorozatod ma véget ér, ha nem játszol.", English: "%s: your %d-day streak ends today unless you play.", German: "%s: Deine %d-Tage-Serie endet heute, wenn du nicht spielst."},
	PhraseWordleTitle:      {Hungarian: "Szókitaló", English: "Wordle", German: "Wortraten"},
	PhraseWordleLost:       {Hungarian: "A szó ez volt", English: "The word was", German: "Das Wort war"},
	PhraseWordleTooShort:   {Hungarian: "Nincs elég betű", English: "Not enough letters", German: "Zu wenige Buchstaben"},
	PhraseCoinHeads:        {Hungarian: "Fej: vedd meg!", English: "Heads: buy it!", German: "Kopf: kauf es!"},
	PhraseCoinTails:        {Hungarian: "Írás: tedd félre!", English: "Tails: save it!", German: "Zahl: spar es!"},
}

// Text returns p in lang.
func (p Phrase) Text(lang Language) string {
	if p < 0 || p >= numPhrases {
		return ""
	}
	if !lang.Valid() {
		lang = Hungarian
	}
	return phrases[p][lang]
}
