package lob

import "errors"

var (
	ErrInvalidParam   = errors.New("the param is invalid")
	ErrDuplicateOrder = errors.New("order id already exists")
	ErrOrderNotFound  = errors.New("order not found or no longer live")
	ErrOverExecute    = errors.New("executed quantity exceeds remaining quantity")
	ErrReentrantCall  = errors.New("engine re-entered from an event callback")
)
