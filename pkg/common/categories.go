package common

import "strings"

const DefaultCategory = "Outros"

// Categories is the fixed taxonomy offered to the vision model for receipts.
var Categories = []string{
	"Alimentação",
	"Transporte",
	"Saúde",
	"Moradia",
	"Educação",
	"Lazer",
	"Vestuário",
	"Tecnologia",
	"Serviços",
	DefaultCategory,
}

// NormalizeCategory maps a free-text category onto the taxonomy, case and accent
// insensitively. Unknown values are kept as typed; empty ones become DefaultCategory.
func NormalizeCategory(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultCategory
	}

	folded := foldAccents(raw)
	for _, c := range Categories {
		if foldAccents(c) == folded {
			return c
		}
	}

	return raw
}

var accentReplacer = strings.NewReplacer(
	"á", "a", "à", "a", "ã", "a", "â", "a",
	"é", "e", "ê", "e",
	"í", "i",
	"ó", "o", "õ", "o", "ô", "o",
	"ú", "u", "ü", "u",
	"ç", "c",
)

func foldAccents(s string) string {
	return accentReplacer.Replace(strings.ToLower(s))
}
