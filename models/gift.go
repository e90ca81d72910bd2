package models

import "time"

// Gift — приз за количество пройденных кругов. Requirement — сколько кругов
// нужно пройти, NULL означает «без порога».
type Gift struct {
	ID          int    `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	Requirement *int   `json:"requirement,omitempty" db:"requirement"`
}

// Receive фиксирует выдачу приза участнику. Хранится в БД как join-таблица,
// пара (participate_id, gift_id) уникальна.
type Receive struct {
	ParticipateID int       `json:"participate_id" db:"participate_id"`
	GiftID        int       `json:"gift_id" db:"gift_id"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}
