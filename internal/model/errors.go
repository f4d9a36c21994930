package model

import (
	"errors"
	"fmt"
)

// Общие ошибки доменного слоя.
var (
	ErrNotFound          = errors.New("not found")
	ErrAlreadyExists     = errors.New("already exists")
	ErrValidation        = errors.New("validation error")
	ErrUnsupportedFormat = errors.New("unsupported format")
)

// DuplicateNameError: имя тега уже занято.
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("tag %q already exists", e.Name)
}

func (e *DuplicateNameError) Unwrap() error { return ErrAlreadyExists }

// CaptureError: сбой конвейера захвата (чтение/классификация или запись в хранилище).
type CaptureError struct {
	Stage string
	Err   error
}

func (e *CaptureError) Error() string {
	return fmt.Sprintf("capture %s: %v", e.Stage, e.Err)
}

func (e *CaptureError) Unwrap() error { return e.Err }
