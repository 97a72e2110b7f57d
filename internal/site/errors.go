package site

import (
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

var (
	ErrSourceNotFound   = errors.New("source directory not found")
	ErrTemplateNotFound = errors.New("template file not found")
)

const (
	codeSourceNotFound   = "SOURCE_NOT_FOUND"
	codeTemplateNotFound = "TEMPLATE_NOT_FOUND"
	codeConfigInvalid    = "CONFIG_INVALID"
	codeDiscoveryFailed  = "DISCOVERY_FAILED"
	codeBuildFailed      = "DOCUMENT_BUILD_FAILED"
	codeWriteFailed      = "OUTPUT_WRITE_FAILED"
)

// Input errors stop the run before anything is written.
func wrapInputError(err error, code, message string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, message).
		WithTextCode(code)
}

// Run errors abort the remaining documents; earlier output stays on disk.
func wrapRunError(err error, code, message string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, message).
		WithTextCode(code)
}
