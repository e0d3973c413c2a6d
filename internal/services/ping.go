package services

import (
	"context"
	"fmt"
)

// Pinger хранилище, которое умеет проверять соединение.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingService проверка живости хранилища ссылок для /ping.
type PingService struct {
	store Pinger
}

func NewPingService(store Pinger) *PingService {
	return &PingService{store: store}
}

// CheckConnection возвращает ErrStore, обернутую вокруг ошибки хранилища.
func (s *PingService) CheckConnection(ctx context.Context) error {
	if err := s.store.Ping(ctx); err != nil {
		return fmt.Errorf("%w: ping: %w", ErrStore, err)
	}
	return nil
}
