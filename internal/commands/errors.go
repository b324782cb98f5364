package commands

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
)

const (
	surfValidationCode   = "SURF_COMMAND_VALIDATION_FAILED"
	surfContextCanceled  = "SURF_COMMAND_CONTEXT_CANCELED"
	surfContextTimeout   = "SURF_COMMAND_CONTEXT_TIMEOUT"
	surfContextErrorCode = "SURF_COMMAND_CONTEXT_ERROR"
	surfExecuteFailed    = "SURF_COMMAND_EXECUTION_FAILED"
)

func wrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "surf command validation failed").
		WithTextCode(surfValidationCode)
}

func wrapContextError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	switch err {
	case context.Canceled:
		return goerrors.Wrap(err, goerrors.CategoryCommand, "surf command cancelled").
			WithTextCode(surfContextCanceled)
	case context.DeadlineExceeded:
		return goerrors.Wrap(err, goerrors.CategoryCommand, "surf command deadline exceeded").
			WithTextCode(surfContextTimeout)
	default:
		return goerrors.Wrap(err, goerrors.CategoryCommand, "surf command context error").
			WithTextCode(surfContextErrorCode)
	}
}

func wrapExecuteError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "surf command execution failed").
		WithTextCode(surfExecuteFailed)
}
