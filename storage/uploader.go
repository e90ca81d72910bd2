package storage

import (
	"context"
	"io"
)

type UploadResult struct {
	Key      string
	Location string
	ETag     string
}

// FileUploader — хранилище файлов забегов (логотипы событий). Когда R2 не
// сконфигурирован, сервис работает без загрузчика и ручки загрузки
// возвращают ошибку конфигурации.
type FileUploader interface {
	Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error)

	Delete(ctx context.Context, key string) error

	GetPublicURL(key string) string
}
