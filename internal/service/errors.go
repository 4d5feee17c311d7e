package service

import "errors"

var (
	ErrStudyNotFound    = errors.New("study not found")
	ErrStudyUnavailable = errors.New("study is not accepting signups")
	ErrStudyFull        = errors.New("study is full")
	ErrSignupNotFound   = errors.New("signup not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrUnauthorized     = errors.New("unauthorized")
)
