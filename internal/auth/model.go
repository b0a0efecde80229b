package auth

import "time"

const (
	RoleRestaurant = "RESTAURANT"
	RoleAdmin      = "ADMIN"
)

// User is a staff account.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}
