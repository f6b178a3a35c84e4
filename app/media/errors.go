package media

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindUpstreamUnavailable Kind = "upstream_unavailable"
	KindUpstreamBadResponse Kind = "upstream_bad_response"
	KindMalformedRecord     Kind = "malformed_record"
	KindNoSuitableSource    Kind = "no_suitable_source"
	KindGenerationFailure   Kind = "generation_failure"
)

// Sentinels for errors.Is. An *Error matches the sentinel of its Kind.
var (
	ErrUpstreamUnavailable = &Error{Kind: KindUpstreamUnavailable}
	ErrUpstreamBadResponse = &Error{Kind: KindUpstreamBadResponse}
	ErrMalformedRecord     = &Error{Kind: KindMalformedRecord}
	ErrNoSuitableSource    = &Error{Kind: KindNoSuitableSource}
	ErrGenerationFailure   = &Error{Kind: KindGenerationFailure}
)

// Error is a pipeline failure of a known kind, optionally scoped to one media item.
type Error struct {
	Kind    Kind
	MediaID string
	Op      string
	Err     error
}

func (e *Error) Error() string {
	msg := string(e.Kind)
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.MediaID != "" {
		msg = fmt.Sprintf("%s (media %s)", msg, e.MediaID)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.MediaID == "" && t.Op == "" && t.Err == nil
}

// KindOf reports the Kind of the first *Error in err's chain, or "" if there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
