package repository

import "errors"

// ErrInsufficientStock is returned when a dispense asks for more units than
// the medicine currently holds. Nothing is written when this is returned.
var ErrInsufficientStock = errors.New("insufficient stock")
