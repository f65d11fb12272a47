package service

import "errors"

var (
	ErrNoQuestionsAvailable = errors.New("no questions available")
	ErrTestNotFound         = errors.New("mock test not found")
	ErrAttemptNotFound      = errors.New("attempt not found")
	ErrAnalysisNotFound     = errors.New("analysis not found")
	ErrInvalidInput         = errors.New("invalid input")
)
