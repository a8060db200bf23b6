package types

import "time"

// HelpSupportContact is an entry in the staff help directory.
type HelpSupportContact struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Role      *string   `json:"role"`
	Phone     *string   `json:"phone"`
	Email     *string   `json:"email"`
	Website   *string   `json:"website"`
	CreatedBy *int      `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
}
