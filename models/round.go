package models

import "time"

// Round — одно пересечение финишной линии участником.
// RoundTime заполняется при записи: секунды с предыдущего круга того же
// участника; для первого круга остаётся NULL.
type Round struct {
	ID            int       `json:"id" db:"id"`
	ParticipateID int       `json:"participate_id" db:"participate_id"`
	Timestamp     time.Time `json:"round_timestamp" db:"round_timestamp"`
	RoundTime     *float64  `json:"round_time,omitempty" db:"round_time"`
}

// BestTime — лучший (минимальный) круг участника.
type BestTime struct {
	ParticipateID int     `json:"participate_id" db:"participate_id"`
	RoundID       int     `json:"round_id" db:"round_id"`
	BestTime      float64 `json:"best_time" db:"best_time"`
}
