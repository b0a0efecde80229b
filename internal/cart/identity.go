package cart

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"regexp"
	"strings"

	"cardapio/internal/menu"
)

// IdentityFunc derives a cart line id from a dish and its selection.
// Equal inputs (selection compared as sets) must give equal ids.
type IdentityFunc func(dish *menu.MenuItem, sel Selection) string

var unsafeIDChars = regexp.MustCompile(`[^a-zA-Z0-9\-_]`)

// canonical renders "title:a,b|title2:c" with groups and names sorted.
func canonical(sel Selection) string {
	norm := sel.Normalize()

	parts := make([]string, 0, len(norm))
	for _, group := range norm.Groups() {
		parts = append(parts, group+":"+strings.Join(norm[group], ","))
	}
	return strings.Join(parts, "|")
}

// fingerprint encodes the normalized selection as sorted [group, names]
// pairs. Separators inside titles or names cannot alias another selection.
func fingerprint(sel Selection) []byte {
	norm := sel.Normalize()

	pairs := make([][2]any, 0, len(norm))
	for _, group := range norm.Groups() {
		pairs = append(pairs, [2]any{group, norm[group]})
	}

	// strings and string slices always marshal
	data, _ := json.Marshal(pairs)
	return data
}

// GenerateItemID is the name-based identity: dish name plus the canonical
// selection, stripped to [a-zA-Z0-9-_]. Two dishes sharing a name collide,
// as do selections that only differ in stripped runes or separators.
func GenerateItemID(dish *menu.MenuItem, sel Selection) string {
	return unsafeIDChars.ReplaceAllString(dish.Name+"-"+canonical(sel), "")
}

// StableItemID keys identity on the catalog id with a fingerprint of the
// selection. Dishes without an id fall back to GenerateItemID.
func StableItemID(dish *menu.MenuItem, sel Selection) string {
	if dish.ID == "" {
		return GenerateItemID(dish, sel)
	}

	sum := sha256.Sum256(fingerprint(sel))
	return dish.ID + "-" + hex.EncodeToString(sum[:])[:16]
}
