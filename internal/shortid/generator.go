// Package shortid генерирует короткие идентификаторы ссылок.
package shortid

import (
	"crypto/rand"
	"fmt"
	"io"
	"slices"

	"github.com/fsdevblog/linkqr/internal/models"
)

// Alphabet URL-безопасный алфавит из 64 символов.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789_-"

// mask выделяет младшие 6 бит, len(Alphabet) == 64.
const mask = 63

// MaxLength предел длины идентификатора, совпадает с размером колонки short_id.
const MaxLength = 32

// ReservedIDs первые сегменты статических маршрутов, такой id мог бы быть перекрыт маршрутом.
var ReservedIDs = []string{"ping", "debug", "api", "shorten"}

// Generator генератор случайных идентификаторов фиксированной длины.
type Generator struct {
	length int
	random io.Reader
}

// New создает генератор. Если length <= 0, используется models.DefaultShortIDLength,
// длина больше MaxLength обрезается до MaxLength.
func New(length int) *Generator {
	if length <= 0 {
		length = models.DefaultShortIDLength
	}
	return &Generator{length: min(length, MaxLength), random: rand.Reader}
}

// Length возвращает длину генерируемых идентификаторов.
func (g *Generator) Length() int {
	return g.length
}

// Generate возвращает новый случайный идентификатор.
// Зарезервированные значения (ReservedIDs) выбрасываются и генерируются заново.
func (g *Generator) Generate() (string, error) {
	buf := make([]byte, g.length)
	for {
		if _, err := io.ReadFull(g.random, buf); err != nil {
			return "", fmt.Errorf("read random bytes: %w", err)
		}
		for i := range buf {
			buf[i] = Alphabet[buf[i]&mask]
		}
		if id := string(buf); !slices.Contains(ReservedIDs, id) {
			return id, nil
		}
	}
}

// IsWellFormed проверяет только алфавит и предел длины. Используется при редиректе,
// чтобы ссылки, выданные при другой SHORT_ID_LENGTH, оставались доступны.
func IsWellFormed(id string) bool {
	if id == "" || len(id) > MaxLength {
		return false
	}
	for i := range len(id) {
		if !inAlphabet(id[i]) {
			return false
		}
	}
	return true
}

func inAlphabet(c byte) bool {
	switch {
	case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9':
		return true
	case c == '_' || c == '-':
		return true
	default:
		return false
	}
}
