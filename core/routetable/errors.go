package routetable

import "errors"

var (
	ErrEmptyTable     = errors.New("route table declares no routes")
	ErrMissingPattern = errors.New("route entry has no pattern")
	ErrDuplicateName  = errors.New("route name is declared twice")
	ErrRegister       = errors.New("failed to register route")
)
