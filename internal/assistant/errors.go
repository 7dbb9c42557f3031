package assistant

import "errors"

var (
	// ErrBusy is returned by Greet while an earlier greeting is still
	// being synthesized or played.
	ErrBusy = errors.New("greeting already in progress")
	// ErrEmptyResponse indicates the model answered without usable content.
	ErrEmptyResponse = errors.New("empty response from model")
	// ErrStale marks a search answer superseded by a newer submission.
	ErrStale = errors.New("superseded by a newer search")
)
