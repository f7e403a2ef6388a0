package catalog

import "strings"

// PartySteps is the order in which the party builder walks the categories.
var PartySteps = []string{
	"Pratos", "Suportes", "Vasos", "Arranjos de Flor", "Piruliteiras", "Bolo (Maquetes)", "Cilindros",
	"Mesas", "Cubos", "Palcos", "Painéis de Tecido", "Suporte para Painéis", "Painéis de Madeira",
	"Tapetes", "Totens", "Elementos", "Outros",
}

const finishLabel = "Finalizar"

// WizardStep is one page of the party builder.
type WizardStep struct {
	Index    int       `json:"index"`
	Number   int       `json:"number"`
	Total    int       `json:"total"`
	Category string    `json:"category"`
	Next     string    `json:"next"`
	Last     bool      `json:"last"`
	Progress float64   `json:"progress"`
	Items    []Product `json:"items"`
}

// Step builds the wizard page at index from the party items. ok is false
// when index is outside PartySteps.
func Step(index int, items []Product) (WizardStep, bool) {
	if index < 0 || index >= len(PartySteps) {
		return WizardStep{}, false
	}
	total := len(PartySteps)
	category := PartySteps[index]

	next := finishLabel
	if index+1 < total {
		next = PartySteps[index+1]
	}

	matched := []Product{}
	for _, it := range items {
		if strings.EqualFold(it.Category, category) {
			it.ImageURL = ImageOr(it.ImageURL, ImageWizard)
			matched = append(matched, it)
		}
	}

	return WizardStep{
		Index:    index,
		Number:   index + 1,
		Total:    total,
		Category: category,
		Next:     next,
		Last:     index == total-1,
		Progress: float64(index+1) / float64(total) * 100,
		Items:    matched,
	}, true
}
