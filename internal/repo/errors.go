package repo

import "errors"

// Общие ошибки репозиториев.
var (
	// ErrNotFound — живая запись не найдена (нет в БД или мягко удалена).
	ErrNotFound = errors.New("not found")
)
