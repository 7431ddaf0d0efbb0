package mcts

import (
	"github.com/pkg/errors"

	"github.com/corridors/engine/corerr"
)

func errConfig(msg string) error {
	return errors.Wrap(corerr.ErrInvalidConfiguration, msg)
}

func errMissingEvaluator(msg string) error {
	return errors.Wrap(corerr.ErrMissingEvaluator, msg)
}
