package api

import "fmt"

func missingParam(key string) error {
	return fmt.Errorf("%w: missing param %s", ErrInvalidArgument, key)
}

func badParam(key string) error {
	return fmt.Errorf("%w: invalid param %s", ErrInvalidArgument, key)
}
