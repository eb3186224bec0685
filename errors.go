package fractly

import "errors"

var (
	//ErrNoTransformer is returned when data production runs without a transformer
	ErrNoTransformer = errors.New("no transformer specified")

	//ErrInvalidTransformation is returned when the resource kind is unset or unknown
	ErrInvalidTransformation = errors.New("invalid transformation")
)
