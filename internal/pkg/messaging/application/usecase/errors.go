package usecase

import (
	"errors"
	"fmt"
)

// ErrPersistence indicates an infrastructure/repository failure inside a use case
var ErrPersistence = fmt.Errorf("messaging use case persistence error")

// ErrForbidden indicates the acting user is not allowed to perform the operation
var ErrForbidden = errors.New("messaging: actor is not allowed to perform this operation")
