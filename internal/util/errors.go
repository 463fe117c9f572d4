package util

import "errors"

var (
	ErrEmailRegistered     = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrCourseNotFound      = errors.New("course not found")
	ErrModuleNotFound      = errors.New("module progress not found")
	ErrProgressNotFound    = errors.New("progress not found for this course")
	ErrCourseLocked        = errors.New("course already completed, modules can no longer be toggled")
	ErrQuizNotFound        = errors.New("quiz not found")
	ErrQuizAlreadyTaken    = errors.New("quiz already attempted")
	ErrQuizInvalidQuestion = errors.New("each question needs at least two options and a valid correct answer")
	ErrAttemptNotFound     = errors.New("no attempt recorded for this quiz")
	ErrPermissionDenied    = errors.New("permission denied")
	ErrAnswerCountMismatch = errors.New("answer count does not match question count")
	ErrUnknownRole         = errors.New("invalid user role")
)
