package error_notificator

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const notifyTimeout = 5 * time.Second

type Service struct {
	infra Notificator
	log   *zap.Logger
}

func NewService(infra Notificator, log *zap.Logger) *Service {
	return &Service{infra: infra, log: log}
}

// NotifyAsync не задерживает ответ пользователю
func (s *Service) NotifyAsync(ctx context.Context, err error, details string) {
	ctx = context.WithoutCancel(ctx)
	go func() {
		ctx, cancel := context.WithTimeout(ctx, notifyTimeout)
		defer cancel()
		if nErr := s.infra.Notify(ctx, err, details); nErr != nil {
			s.log.Warn("[error_notificator] async notify failed", zap.Error(nErr))
		}
	}()
}
