package menu

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// fold lowercases and strips diacritics so "Açaí" matches "acai".
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}

func searchScore(item *MenuItem, terms []string) int {
	name := fold(item.Name)

	var other strings.Builder
	other.WriteString(fold(item.Description))
	other.WriteByte(' ')
	other.WriteString(fold(item.Category))
	for _, c := range item.Categories {
		other.WriteByte(' ')
		other.WriteString(fold(c))
	}
	for _, t := range item.Tags {
		other.WriteByte(' ')
		other.WriteString(fold(t))
	}
	rest := other.String()

	score := 0
	for _, term := range terms {
		switch {
		case strings.HasPrefix(name, term):
			score += 3
		case strings.Contains(name, term):
			score += 2
		case strings.Contains(rest, term):
			score++
		default:
			return 0
		}
	}
	return score
}

// Search filters items where every query term appears in the name,
// description, categories or tags. Name hits rank first; ties keep menu order.
func Search(items []*MenuItem, query string) []*MenuItem {
	terms := strings.Fields(fold(query))
	if len(terms) == 0 {
		return items
	}

	type hit struct {
		item  *MenuItem
		score int
	}

	var hits []hit
	for _, item := range items {
		if s := searchScore(item, terms); s > 0 {
			hits = append(hits, hit{item: item, score: s})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].score > hits[j].score
	})

	out := make([]*MenuItem, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.item)
	}
	return out
}

// Categories returns the distinct categories in first-seen order.
func Categories(items []*MenuItem) []string {
	seen := make(map[string]bool)
	out := []string{}

	add := func(c string) {
		if c == "" || seen[c] {
			return
		}
		seen[c] = true
		out = append(out, c)
	}

	for _, item := range items {
		add(item.Category)
		for _, c := range item.Categories {
			add(c)
		}
	}
	return out
}
