package main

import (
	"fmt"
	"math/rand"

	"cardapio/internal/menu"

	"github.com/jaswdr/faker"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Fill a restaurant with a fake demo menu",
	RunE: func(cmd *cobra.Command, args []string) error {
		count, _ := cmd.Flags().GetInt("items")
		seed, _ := cmd.Flags().GetInt64("seed")
		if count <= 0 {
			return fmt.Errorf("--items must be positive")
		}

		return load(cmd, demoMenu(faker.NewWithSeed(rand.NewSource(seed)), count))
	},
}

func init() {
	seedCmd.Flags().Int("items", 20, "number of dishes to generate")
	seedCmd.Flags().Int64("seed", 42, "random seed")
}

var (
	demoCategories = []string{"Lanches", "Pratos", "Porções", "Bebidas", "Sobremesas"}
	demoDishes     = map[string][]string{
		"Lanches":    {"X-Burger", "X-Salada", "X-Bacon", "Misto Quente", "Bauru"},
		"Pratos":     {"Feijoada", "Moqueca", "Parmegiana", "Strogonoff", "Picanha"},
		"Porções":    {"Batata Frita", "Mandioca", "Calabresa", "Frango a Passarinho"},
		"Bebidas":    {"Refrigerante", "Suco Natural", "Água", "Cerveja", "Caipirinha"},
		"Sobremesas": {"Pudim", "Brigadeiro", "Açaí", "Petit Gâteau", "Mousse"},
	}
)

func demoPrice(fake faker.Faker, min, max int) string {
	cents := fake.IntBetween(min*100, max*100)
	return menu.FormatDecimal(decimal.New(int64(cents), -2))
}

// demoMenu builds count dishes. Every third dish gets a required size group
// and every other one an optional extras group.
func demoMenu(fake faker.Faker, count int) []*menu.MenuItem {
	items := make([]*menu.MenuItem, 0, count)

	for i := 0; i < count; i++ {
		category := demoCategories[i%len(demoCategories)]
		names := demoDishes[category]
		name := names[(i/len(demoCategories))%len(names)]
		if i >= len(demoCategories)*len(names) {
			name = fmt.Sprintf("%s %d", name, i)
		}

		item := &menu.MenuItem{
			Name:        name,
			Description: fake.Lorem().Sentence(8),
			Price:       demoPrice(fake, 5, 60),
			Category:    category,
			Tags:        []string{fake.Lorem().Word()},
			Featured:    fake.Bool(),
			Position:    i + 1,
		}

		if i%3 == 0 {
			item.ComplementGroups = append(item.ComplementGroups, menu.ComplementGroup{
				Title:         "Tamanho",
				Required:      true,
				MaxSelections: 1,
				Complements: []menu.Complement{
					{Name: "Pequeno", Price: "0,00"},
					{Name: "Grande", Price: demoPrice(fake, 3, 10)},
				},
			})
		}
		if i%2 == 0 {
			item.ComplementGroups = append(item.ComplementGroups, menu.ComplementGroup{
				Title:         "Adicionais",
				MaxSelections: 3,
				Complements: []menu.Complement{
					{Name: "Queijo", Price: demoPrice(fake, 2, 6)},
					{Name: "Bacon", Price: demoPrice(fake, 3, 8)},
					{Name: "Ovo", Price: demoPrice(fake, 1, 4)},
					{Name: "Cebola Caramelizada", Price: demoPrice(fake, 2, 5)},
				},
			})
		}

		items = append(items, item)
	}

	return items
}
