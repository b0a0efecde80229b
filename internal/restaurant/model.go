package restaurant

import (
	"time"

	"cardapio/internal/core"
)

type Restaurant struct {
	ID         string    `json:"id"`
	Slug       string    `json:"slug"`
	Name       string    `json:"name"`
	WhatsApp   string    `json:"whatsapp"`
	Address    string    `json:"address"`
	OwnerID    string    `json:"owner_id"`
	TableCount int       `json:"table_count"`
	CreatedAt  time.Time `json:"created_at"`
}

func (r *Restaurant) Info() *core.RestaurantInfo {
	return &core.RestaurantInfo{
		ID:         r.ID,
		Slug:       r.Slug,
		Name:       r.Name,
		WhatsApp:   r.WhatsApp,
		Address:    r.Address,
		TableCount: r.TableCount,
	}
}
