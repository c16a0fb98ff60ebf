package noshow

import "errors"

var (
	ErrEmptyPhone   = errors.New("noshow: phone is empty")
	ErrRedisCommand = errors.New("noshow: redis command failed")
	ErrScriptResult = errors.New("noshow: unexpected script result")
)
