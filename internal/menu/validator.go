package menu

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

var (
	ErrInvalidItem     = errors.New("invalid menu item")
	ErrInvalidImage    = errors.New("invalid image")
	ErrStorageDisabled = errors.New("image storage is not configured")
)

var allowedImageExt = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

// ValidateImageExtension returns the content type for an allowed dish image.
func ValidateImageExtension(filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	if ext == "" {
		return "", fmt.Errorf("%w: file extension missing", ErrInvalidImage)
	}

	contentType, ok := allowedImageExt[ext]
	if !ok {
		return "", fmt.Errorf("%w: file type not allowed", ErrInvalidImage)
	}

	return contentType, nil
}

// ValidateItem checks a dish before it enters the catalog.
func ValidateItem(item *MenuItem) error {
	if err := validateItem(item); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidItem, err)
	}
	return nil
}

func validateItem(item *MenuItem) error {
	if strings.TrimSpace(item.Name) == "" {
		return errors.New("name is required")
	}
	if _, err := ParsePrice(item.Price); err != nil {
		return err
	}

	seen := make(map[string]bool, len(item.ComplementGroups))
	for _, g := range item.ComplementGroups {
		if strings.TrimSpace(g.Title) == "" {
			return errors.New("complement group title is required")
		}
		if seen[g.Title] {
			return fmt.Errorf("duplicate complement group %q", g.Title)
		}
		seen[g.Title] = true

		if g.MaxSelections < 0 {
			return fmt.Errorf("group %q: max_selections cannot be negative", g.Title)
		}
		if g.Required && len(g.Complements) == 0 {
			return fmt.Errorf("group %q is required but has no complements", g.Title)
		}

		names := make(map[string]bool, len(g.Complements))
		for _, c := range g.Complements {
			if strings.TrimSpace(c.Name) == "" {
				return fmt.Errorf("group %q: complement name is required", g.Title)
			}
			if names[c.Name] {
				return fmt.Errorf("group %q: duplicate complement %q", g.Title, c.Name)
			}
			names[c.Name] = true

			if c.Price == "" {
				continue
			}
			if _, err := ParsePrice(c.Price); err != nil {
				return fmt.Errorf("group %q complement %q: %w", g.Title, c.Name, err)
			}
		}
	}

	return nil
}
