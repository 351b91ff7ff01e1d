package ai

import (
	"context"
	"errors"
	"strings"
)

// Diagnose — понятная операторам причина сбоя провайдера (в логи и админам).
func Diagnose(provider string, err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return provider + ": превышено время ожидания ответа."
	}

	msg := strings.ToLower(err.Error())
	switch {
	case containsAny(msg, "status code: 401", "error 401", "api key", "unauthenticated"):
		return provider + ": неверный API-ключ или учётные данные."
	case containsAny(msg, "status code: 403", "error 403", "permission"):
		return provider + ": нет доступа (403)."
	case containsAny(msg, "status code: 404", "error 404", "not found"):
		return provider + ": модель или ресурс не найдены."
	case containsAny(msg, "status code: 429", "error 429", "quota", "rate limit", "resource_exhausted"):
		return provider + ": превышен лимит запросов или квота."
	case containsAny(msg, "status code: 400", "error 400", "invalid_argument"):
		return provider + ": некорректный запрос."
	case containsAny(msg, "status code: 5", "error 5", "unavailable", "internal"):
		return provider + ": внутренняя ошибка провайдера."
	}
	return provider + ": неизвестная ошибка: " + err.Error()
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// diagError — ошибка провайдера с диагностикой, исходная ошибка доступна через errors.Is/As
type diagError struct {
	diag string
	err  error
}

func (e *diagError) Error() string { return e.diag + " (" + e.err.Error() + ")" }
func (e *diagError) Unwrap() error { return e.err }

func wrapDiag(provider string, err error) error {
	if err == nil {
		return nil
	}
	return &diagError{diag: Diagnose(provider, err), err: err}
}
