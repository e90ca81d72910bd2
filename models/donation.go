package models

import "time"

type Donation struct {
	ID            int       `json:"id" db:"id"`
	ParticipateID *int      `json:"participate_id,omitempty" db:"participate_id"`
	Amount        float64   `json:"amount" db:"amount"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}
