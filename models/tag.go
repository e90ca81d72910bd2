package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// TagStatus соответствует ENUM tag_status в БД.
type TagStatus string

const (
	TagStatusTaken TagStatus = "taken"
	TagStatusFree  TagStatus = "free"
)

// ParseTagStatus приводит значение с провода к нижнему регистру. Допустимы
// только "taken" и "free", всё остальное — ошибка валидации, не переход.
func ParseTagStatus(s string) (TagStatus, error) {
	switch TagStatus(strings.ToLower(strings.TrimSpace(s))) {
	case TagStatusTaken:
		return TagStatusTaken, nil
	case TagStatusFree:
		return TagStatusFree, nil
	default:
		return "", fmt.Errorf("tag status must be 'taken' or 'free', got %q", s)
	}
}

// TagKey — числовой номер RFID-метки. По проводу передаётся строкой
// (клиенты считывателей шлют десятичные строки), в домене и БД — int64.
type TagKey int64

// ParseTagKey разбирает десятичную строковую форму. Нечисловое значение —
// ошибка валидации, а не отсутствие записи.
func ParseTagKey(s string) (TagKey, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid tag id %q: must be a decimal number", s)
	}
	return TagKey(n), nil
}

func (k TagKey) String() string {
	return strconv.FormatInt(int64(k), 10)
}

func (k TagKey) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(k.String())), nil
}

func (k *TagKey) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("tag id must be a string")
	}
	parsed, err := ParseTagKey(s)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Tag представляет RFID-метку.
type Tag struct {
	ID     TagKey    `json:"tag_id" db:"id"`
	Status TagStatus `json:"status" db:"status"`
}
