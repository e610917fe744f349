package entity

import (
	"errors"
	"fmt"
)

// Domain errors surfaced by the core use cases.
var (
	ErrCardNotFound        = errors.New("card not found")
	ErrFolderNotFound      = errors.New("folder not found")
	ErrDuplicateFolderName = errors.New("folder name already exists")
	ErrInvalidFolderName   = errors.New("invalid folder name")
	ErrProfileNotFound     = errors.New("profile not found")

	ErrEmptyExtraction     = errors.New("no vocabulary extracted")
	ErrInsufficientWords   = errors.New("not enough words for requested pool")
	ErrRecordingTooShort   = errors.New("recording too short")
	ErrSpeechNotRecognized = errors.New("speech not recognized")
	ErrNoImageGenerated    = errors.New("no image generated")
	ErrNoAudioGenerated    = errors.New("no audio generated")
)

// CollaboratorError wraps a failed or unparsable external-collaborator
// call. Rate-limit retries happen below this boundary; a surfaced
// CollaboratorError is final.
type CollaboratorError struct {
	Op  string // e.g. "gemini.extract", "elevenlabs.synthesize"
	Err error
}

func (e *CollaboratorError) Error() string {
	return fmt.Sprintf("collaborator %s: %v", e.Op, e.Err)
}

func (e *CollaboratorError) Unwrap() error { return e.Err }

// NewCollaboratorError wraps err with the failing operation name.
func NewCollaboratorError(op string, err error) error {
	return &CollaboratorError{Op: op, Err: err}
}
