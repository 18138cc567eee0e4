// Package services implements the consignment use cases: campaign links,
// contacts, message templates, listing prefill and WhatsApp exports.
//
// This file centralizes the service-level errors. Handlers translate them
// into HTTP status codes; the service layer itself never deals with
// transport concerns.
package services

import (
	"errors"
	"fmt"

	"github.com/tbourn/go-consignment-leads/internal/links"
	"github.com/tbourn/go-consignment-leads/internal/repo"
)

var (
	// ErrCampaignNotFound indicates that the campaign link does not exist.
	ErrCampaignNotFound = errors.New("campaign not found")

	// ErrContactNotFound indicates that the contact does not exist.
	ErrContactNotFound = errors.New("contact not found")

	// ErrTemplateNotFound indicates that the message template does not exist.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrExportNotFound indicates that no audit rows carry the batch id.
	ErrExportNotFound = errors.New("export batch not found")

	// ErrDuplicateListing is returned when another contact already uses the
	// listing URL. Nothing is written.
	ErrDuplicateListing = errors.New("listing already registered")

	// ErrNoImage is returned when no contact image has been scraped yet.
	ErrNoImage = errors.New("no contact image available")

	// ErrNoTemplates is a configuration error: an export was requested while
	// no message template exists. Nothing is written.
	ErrNoTemplates = links.ErrNoTemplates
)

// ValidationError is a user-correctable input problem. Message is meant to
// be shown to the operator as is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// StorageError wraps a database failure the service could not classify.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return "storage: " + e.Op + ": " + e.Err.Error() }

func (e *StorageError) Unwrap() error { return e.Err }

var sentinels = []error{
	ErrCampaignNotFound, ErrContactNotFound, ErrTemplateNotFound,
	ErrExportNotFound, ErrDuplicateListing, ErrNoTemplates, ErrNoImage,
}

// storageErr wraps err unless it is nil or already a service error.
func storageErr(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *StorageError
	if errors.As(err, &se) || IsValidation(err) {
		return err
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return err
		}
	}
	return &StorageError{Op: op, Err: err}
}

// notFound maps repo.ErrNotFound to target and wraps anything else.
func notFound(op string, err, target error) error {
	if errors.Is(err, repo.ErrNotFound) {
		return target
	}
	return storageErr(op, err)
}
