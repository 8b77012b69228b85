package service

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrNotEditable     = errors.New("post can only be changed while scheduled")
	ErrUnknownAccounts = errors.New("one or more selected accounts do not belong to the user")
	ErrInvalidInput    = errors.New("invalid input")
	ErrUnsupportedFile = errors.New("unsupported file type")
)
