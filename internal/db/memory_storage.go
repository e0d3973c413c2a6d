package db

import (
	"github.com/fsdevblog/linkqr/internal/db/memory"
)

// MemoryStorage хранилище в памяти, выбирается при пустом DATABASE_DSN.
// Данные живут до остановки процесса.
type MemoryStorage struct {
	*memory.MStorage
}

func NewMemStorage() *MemoryStorage {
	return &MemoryStorage{
		MStorage: memory.NewMemStorage(),
	}
}
