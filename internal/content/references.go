package content

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
)

//go:embed price_references.json
var priceReferencesJSON []byte

type priceReference struct {
	MaxPrice float64 `json:"max_price"`
	HU       string  `json:"hu"`
	EN       string  `json:"en"`
	DE       string  `json:"de"`
}

func (r priceReference) text(lang Language) string {
	switch lang {
	case English:
		return r.EN
	case German:
		return r.DE
	default:
		return r.HU
	}
}

var priceReferences []priceReference

func init() {
	if err := json.Unmarshal(priceReferencesJSON, &priceReferences); err != nil {
		panic(fmt.Errorf("failed to parse price references: %w", err))
	}
	sort.Slice(priceReferences, func(i, j int) bool {
		return priceReferences[i].MaxPrice < priceReferences[j].MaxPrice
	})
}

var multipleFormats = [numLanguages]string{
	Hungarian: "%d budapesti lakás",
	English:   "%d apartments in Budapest",
	German:    "%d Wohnungen in Budapest",
}

// PriceReference returns an everyday item that costs about amount (in HUF).
// It reports false for non-positive amounts.
func PriceReference(amount float64, lang Language) (string, bool) {
	if amount <= 0 || len(priceReferences) == 0 {
		return "", false
	}
	if !lang.Valid() {
		lang = Hungarian
	}

	idx := sort.Search(len(priceReferences), func(i int) bool {
		return amount <= priceReferences[i].MaxPrice
	})
	if idx < len(priceReferences) {
		return priceReferences[idx].text(lang), true
	}

	top := priceReferences[len(priceReferences)-1]
	if multiplier := int(amount / top.MaxPrice); multiplier > 1 {
		return fmt.Sprintf(multipleFormats[lang], multiplier), true
	}
	return top.text(lang), true
}
