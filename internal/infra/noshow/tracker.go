package noshow

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"
)

// recordScript атомарно увеличивает счетчик неявок и ставит флаг блокировки,
// когда счетчик достигает лимита. Возвращает {count, blocked}.
var recordScript = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
local limit = tonumber(ARGV[1])
if limit > 0 and count >= limit then
  redis.call("SET", KEYS[2], "1")
  return {count, 1}
end
return {count, 0}
`)

// Tracker хранит счетчики неявок и блок-лист телефонов в Redis отдельно для каждого бизнеса.
// Телефоны должны быть нормализованы (E.164) до обращения к трекеру.
type Tracker struct {
	rdb    redis.UniversalClient
	prefix string
}

// NewTracker создает трекер; prefix отделяет ключи сервиса в общей базе Redis
func NewTracker(rdb redis.UniversalClient, prefix string) *Tracker {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "noshow"
	}
	return &Tracker{rdb: rdb, prefix: prefix}
}

func (t *Tracker) countKey(businessID int64, phone string) string {
	return fmt.Sprintf("%s:%d:count:%s", t.prefix, businessID, phone)
}

func (t *Tracker) blockedKey(businessID int64, phone string) string {
	return fmt.Sprintf("%s:%d:blocked:%s", t.prefix, businessID, phone)
}

// IsPhoneBlocked проверяет наличие телефона в блок-листе
func (t *Tracker) IsPhoneBlocked(ctx context.Context, businessID int64, phone string) (bool, error) {
	if phone == "" {
		return false, ErrEmptyPhone
	}

	n, err := t.rdb.Exists(ctx, t.blockedKey(businessID, phone)).Result()
	if err != nil {
		return false, fmt.Errorf("%w: exists: %v", ErrRedisCommand, err)
	}

	return n > 0, nil
}

// RecordNoShow фиксирует неявку. При limit > 0 телефон блокируется, как только
// число неявок достигает limit; при limit <= 0 только растет счетчик.
func (t *Tracker) RecordNoShow(ctx context.Context, businessID int64, phone string, limit int) (count int64, blocked bool, err error) {
	if phone == "" {
		return 0, false, ErrEmptyPhone
	}

	res, err := recordScript.Run(ctx, t.rdb, []string{t.countKey(businessID, phone), t.blockedKey(businessID, phone)}, limit).Result()
	if err != nil {
		return 0, false, fmt.Errorf("%w: record: %v", ErrRedisCommand, err)
	}

	values, ok := res.([]interface{})
	if !ok || len(values) != 2 {
		return 0, false, fmt.Errorf("%w: %T", ErrScriptResult, res)
	}

	count, err = toInt64(values[0])
	if err != nil {
		return 0, false, err
	}
	flag, err := toInt64(values[1])
	if err != nil {
		return 0, false, err
	}

	return count, flag == 1, nil
}

// NoShowCount текущее число неявок телефона
func (t *Tracker) NoShowCount(ctx context.Context, businessID int64, phone string) (int64, error) {
	if phone == "" {
		return 0, ErrEmptyPhone
	}

	n, err := t.rdb.Get(ctx, t.countKey(businessID, phone)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%w: get: %v", ErrRedisCommand, err)
	}

	return n, nil
}

// Unblock снимает блокировку и обнуляет счетчик
func (t *Tracker) Unblock(ctx context.Context, businessID int64, phone string) error {
	if phone == "" {
		return ErrEmptyPhone
	}

	if err := t.rdb.Del(ctx, t.countKey(businessID, phone), t.blockedKey(businessID, phone)).Err(); err != nil {
		return fmt.Errorf("%w: del: %v", ErrRedisCommand, err)
	}

	return nil
}

func toInt64(v interface{}) (int64, error) {
	switch n := v.(type) {
	case int64:
		return n, nil
	case string:
		parsed, err := strconv.ParseInt(n, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrScriptResult, err)
		}
		return parsed, nil
	default:
		return 0, fmt.Errorf("%w: %T", ErrScriptResult, v)
	}
}
