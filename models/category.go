package models

// Category представляет возрастную/дистанционную категорию забега.
type Category struct {
	ID   int    `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}
