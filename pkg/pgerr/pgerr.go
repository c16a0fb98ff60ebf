package pgerr

import (
	"errors"

	"github.com/lib/pq"
)

// Коды ошибок PostgreSQL, на которые реагирует сервис
const (
	CodeUniqueViolation      pq.ErrorCode = "23505"
	CodeExclusionViolation   pq.ErrorCode = "23P01"
	CodeSerializationFailure pq.ErrorCode = "40001"
	CodeDeadlockDetected     pq.ErrorCode = "40P01"
)

// Code возвращает код ошибки PostgreSQL, если err (или обернутая в нее) является *pq.Error
func Code(err error) (pq.ErrorCode, bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code, true
	}
	return "", false
}

// IsUniqueViolation нарушение уникального индекса
func IsUniqueViolation(err error) bool {
	code, ok := Code(err)
	return ok && code == CodeUniqueViolation
}

// IsExclusionViolation нарушение exclusion-ограничения (пересечение интервалов)
func IsExclusionViolation(err error) bool {
	code, ok := Code(err)
	return ok && code == CodeExclusionViolation
}

// IsRetryable конфликт сериализации или дедлок: транзакцию можно повторить
func IsRetryable(err error) bool {
	code, ok := Code(err)
	return ok && (code == CodeSerializationFailure || code == CodeDeadlockDetected)
}
