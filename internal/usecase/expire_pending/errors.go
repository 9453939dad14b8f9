package expire_pending

import "errors"

var (
	ErrInternal = errors.New("expire_pending.usecase: internal error")
)
