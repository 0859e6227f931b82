package calculator

import (
	"hash/fnv"

	"github.com/julianstephens/tivlo/internal/content"
	"github.com/julianstephens/tivlo/internal/models"
)

var adviceMessages = map[models.Decision]map[content.Language][]string{
	models.DecisionSaved: {
		content.Hungarian: {
			"Szép döntés! Ezeket az órákat most magadnak tartottad meg.",
			"Minden megspórolt óra egy kis szabadság.",
			"A pénztárcád és a jövőbeli éned is hálás.",
			"Kihagytad, és ez is egy győzelem.",
			"Egy lépéssel közelebb a nagyobb célokhoz.",
		},
		content.English: {
			"Nice call! You just kept those hours for yourself.",
			"Every hour saved is a little bit of freedom.",
			"Your wallet and your future self say thanks.",
			"Skipping it counts as a win too.",
			"One step closer to the bigger goals.",
		},
		content.German: {
			"Gute Entscheidung! Diese Stunden gehören jetzt dir.",
			"Jede gesparte Stunde ist ein Stück Freiheit.",
			"Dein Geldbeutel und dein zukünftiges Ich danken dir.",
			"Verzichten zählt auch als Sieg.",
			"Einen Schritt näher an den großen Zielen.",
		},
	},
	models.DecisionBought: {
		content.Hungarian: {
			"Élvezd! Megdolgoztál érte.",
			"Tudatos vásárlás: tudod, mennyi munkába került.",
			"Ha örömet okoz, megérte az órákat.",
			"Legközelebb is érdemes előbb kiszámolni.",
			"A lényeg, hogy te döntöttél, nem az impulzus.",
		},
		content.English: {
			"Enjoy it! You worked for it.",
			"A mindful purchase: you know what it cost in work.",
			"If it brings you joy, it was worth the hours.",
			"Worth running the numbers next time too.",
			"What matters is that you decided, not the impulse.",
		},
		content.German: {
			"Viel Spaß damit! Du hast dafür gearbeitet.",
			"Ein bewusster Kauf: Du weißt, wie viel Arbeit er gekostet hat.",
			"Wenn es dir Freude macht, war es die Stunden wert.",
			"Auch beim nächsten Mal lohnt sich das Nachrechnen.",
			"Wichtig ist, dass du entschieden hast, nicht der Impuls.",
		},
	},
}

// Advice picks a feedback message for a decision. The same key always yields
// the same message.
func Advice(decision models.Decision, lang content.Language, key string) string {
	byLang, ok := adviceMessages[decision]
	if !ok {
		return ""
	}
	messages := byLang[lang]
	if len(messages) == 0 {
		messages = byLang[content.Hungarian]
	}

	h := fnv.New32a()
	h.Write([]byte(key))
	return messages[h.Sum32()%uint32(len(messages))]
}
