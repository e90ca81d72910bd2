package models

import "time"

// Participate связывает команду, бегуна, забег, метку и категорию.
// Все внешние ссылки опциональны: запись без метки или без бегуна валидна.
type Participate struct {
	ID         int       `json:"id" db:"id"`
	TeamID     *int      `json:"team_id,omitempty" db:"team_id"`
	RunnerID   *int      `json:"runner_id,omitempty" db:"runner_id"`
	EventID    *int      `json:"event_id,omitempty" db:"event_id"`
	TagID      *TagKey   `json:"tag_id,omitempty" db:"tag_id"`
	CategoryID *int      `json:"category_id,omitempty" db:"category_id"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
