package memory

import (
	"context"
	"sync"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// MStorage потокобезопасное key/value хранилище с уникальными вторичными индексами.
// Значения хранятся сериализованными в json, наружу всегда отдаются копии.
type MStorage struct {
	data    map[string][]byte
	indexes map[string]map[string]string // имя индекса -> значение -> первичный ключ
	m       sync.RWMutex
}

func NewMemStorage() *MStorage {
	return &MStorage{
		data:    make(map[string][]byte),
		indexes: make(map[string]map[string]string),
	}
}

func (m *MStorage) Len() int {
	m.m.RLock()
	defer m.m.RUnlock()

	return len(m.data)
}

// SetOptions опции вставки.
type SetOptions struct {
	indexes map[string]string
}

// WithUniqueIndex добавляет значение value в уникальный индекс name.
func WithUniqueIndex(name, value string) func(*SetOptions) {
	return func(o *SetOptions) {
		if o.indexes == nil {
			o.indexes = make(map[string]string)
		}
		o.indexes[name] = value
	}
}

// Get возвращает значение по первичному ключу.
func Get[T any](ctx context.Context, key string, m *MStorage) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err //nolint:wrapcheck
	}
	m.m.RLock()
	defer m.m.RUnlock()

	return decodeAs[T](m, key)
}

// GetByIndex возвращает значение по уникальному индексу.
func GetByIndex[T any](ctx context.Context, name, value string, m *MStorage) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err //nolint:wrapcheck
	}
	m.m.RLock()
	defer m.m.RUnlock()

	key, ok := m.indexes[name][value]
	if !ok {
		return nil, ErrNotFound
	}
	return decodeAs[T](m, key)
}

// Set сохраняет новую пару ключ/значение. Проверка уникальности ключа и всех индексов
// и сама вставка выполняются под одной блокировкой. Нарушение уникальности - ErrDuplicateKey.
func Set[T any](ctx context.Context, key string, val *T, m *MStorage, opts ...func(*SetOptions)) error {
	if err := ctx.Err(); err != nil {
		return err //nolint:wrapcheck
	}
	var options SetOptions
	for _, opt := range opts {
		opt(&options)
	}

	bytes, err := json.Marshal(val)
	if err != nil {
		return errors.Wrapf(err, "failed to marshal json for object `%+v`", val)
	}

	m.m.Lock()
	defer m.m.Unlock()

	if _, exists := m.data[key]; exists {
		return errors.Wrapf(ErrDuplicateKey, "key `%s`", key)
	}
	for name, value := range options.indexes {
		if _, exists := m.indexes[name][value]; exists {
			return errors.Wrapf(ErrDuplicateKey, "index `%s` value `%s`", name, value)
		}
	}

	m.data[key] = bytes
	for name, value := range options.indexes {
		if m.indexes[name] == nil {
			m.indexes[name] = make(map[string]string)
		}
		m.indexes[name][value] = key
	}
	return nil
}

// decodeAs читает значение по ключу. Вызывающий должен держать блокировку.
func decodeAs[T any](m *MStorage, key string) (*T, error) {
	val, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	var result T
	if err := json.Unmarshal(val, &result); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal json by key `%s`", key)
	}
	return &result, nil
}
