// Package knowledge is Jeff's read-only culinary knowledge base. Lookups are
// case-insensitive; not-found is the only miss mode. One Base is shared
// across concurrent requests without locking.
package knowledge

import (
	"fmt"
	"strings"
)

// IngredientInfo is one structured knowledge record.
type IngredientInfo struct {
	Name          string
	Category      string
	FlavorProfile []string
	Pairings      []string
	PrepNotes     string
	JeffNote      string
}

// Base holds the fixed knowledge tables.
type Base struct {
	byName map[string]IngredientInfo
}

// NewBase builds the knowledge base with Jeff's core repertoire.
func NewBase() *Base {
	records := []IngredientInfo{
		{
			Name:          "tomato",
			Category:      "vegetable",
			FlavorProfile: []string{"sweet", "acidic", "umami"},
			Pairings:      []string{"basil", "mozzarella", "garlic", "olive oil", "pasta"},
			PrepNotes:     "Store at room temperature; refrigeration dulls the flavor. Score and blanch to peel.",
			JeffNote:      "The crown jewel of the kitchen, my ruby beloved!",
		},
		{
			Name:          "garlic",
			Category:      "aromatic",
			FlavorProfile: []string{"pungent", "savory", "sweet when roasted"},
			Pairings:      []string{"tomato", "olive oil", "herbs", "chicken"},
			PrepNotes:     "Crush and rest ten minutes before cooking to develop allicin. Burns quickly over high heat.",
			JeffNote:      "Garlic serenades my tomatoes in every sauce worth its name.",
		},
		{
			Name:          "basil",
			Category:      "herb",
			FlavorProfile: []string{"sweet", "peppery", "anise"},
			Pairings:      []string{"tomato", "mozzarella", "lemon", "pasta"},
			PrepNotes:     "Tear rather than chop; add at the end of cooking to keep the aroma.",
			JeffNote:      "The poet laureate of herbs, forever courting the tomato.",
		},
		{
			Name:          "pasta",
			Category:      "grain",
			FlavorProfile: []string{"neutral", "wheaty"},
			Pairings:      []string{"tomato", "olive oil", "cheese", "garlic"},
			PrepNotes:     "Salt the water generously; finish cooking in the sauce with a splash of pasta water.",
			JeffNote:      "A blank canvas begging for a crimson tomato embrace.",
		},
		{
			Name:          "olive oil",
			Category:      "fat",
			FlavorProfile: []string{"fruity", "peppery", "grassy"},
			Pairings:      []string{"tomato", "bread", "garlic", "vegetables"},
			PrepNotes:     "Use extra virgin for finishing, a lighter grade for high-heat cooking.",
			JeffNote:      "Liquid gold that makes every ingredient glisten with romance.",
		},
		{
			Name:          "onion",
			Category:      "aromatic",
			FlavorProfile: []string{"pungent", "sweet when caramelized"},
			Pairings:      []string{"tomato", "garlic", "beef", "stock"},
			PrepNotes:     "Low and slow for caramelization, at least thirty minutes. Chill before slicing to spare your eyes.",
			JeffNote:      "The humble opening act before the tomato takes the stage.",
		},
		{
			Name:          "chicken",
			Category:      "protein",
			FlavorProfile: []string{"mild", "savory"},
			Pairings:      []string{"lemon", "garlic", "rosemary", "tomato"},
			PrepNotes:     "Rest after roasting; brine for juciness. Cook to 74°C in the thickest part.",
			JeffNote:      "Delightful on its own, transcendent when braised with tomatoes.",
		},
		{
			Name:          "mushroom",
			Category:      "vegetable",
			FlavorProfile: []string{"earthy", "umami"},
			Pairings:      []string{"butter", "thyme", "garlic", "cream"},
			PrepNotes:     "Do not crowd the pan; moisture must escape for browning.",
			JeffNote:      "Forest treasures that bow respectfully to a good tomato ragù.",
		},
		{
			Name:          "butter",
			Category:      "fat",
			FlavorProfile: []string{"rich", "creamy", "nutty when browned"},
			Pairings:      []string{"herbs", "garlic", "seafood", "pastry"},
			PrepNotes:     "Brown butter over medium heat until the milk solids turn hazelnut.",
			JeffNote:      "A pat of butter mellows even the boldest tomato sauce.",
		},
		{
			Name:          "braise",
			Category:      "technique",
			FlavorProfile: []string{"deep", "concentrated"},
			Pairings:      []string{"tough cuts", "root vegetables", "tomato"},
			PrepNotes:     "Sear first, then cook low and covered in liquid until fork tender.",
			JeffNote:      "Patience rewarded; a love letter written over three slow hours.",
		},
	}

	byName := make(map[string]IngredientInfo, len(records))
	for _, r := range records {
		byName[strings.ToLower(r.Name)] = r
	}
	return &Base{byName: byName}
}

// Lookup returns the record for a name, case-insensitively. ok is false when
// the base holds nothing for it.
func (b *Base) Lookup(name string) (IngredientInfo, bool) {
	info, ok := b.byName[strings.ToLower(strings.TrimSpace(name))]
	return info, ok
}

// Notes renders prompt-ready knowledge snippets for the given names,
// skipping unknown ones. Singular/plural mismatches are retried with a
// trailing s stripped.
func (b *Base) Notes(names []string) []string {
	notes := []string{}
	seen := map[string]bool{}
	for _, name := range names {
		info, ok := b.Lookup(name)
		if !ok {
			info, ok = b.Lookup(strings.TrimSuffix(strings.ToLower(name), "s"))
		}
		if !ok || seen[info.Name] {
			continue
		}
		seen[info.Name] = true
		notes = append(notes, fmt.Sprintf(
			"%s (%s): flavors %s; pairs with %s. %s",
			info.Name,
			info.Category,
			strings.Join(info.FlavorProfile, ", "),
			strings.Join(info.Pairings, ", "),
			info.PrepNotes,
		))
	}
	return notes
}
