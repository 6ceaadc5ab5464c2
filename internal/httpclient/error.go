package httpclient

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Kind classifies a request failure.
type Kind int

const (
	// KindAuth means the session was rejected and could not be refreshed;
	// the user must re-authenticate.
	KindAuth Kind = iota + 1

	// KindValidation is a server-reported request error (4xx other than
	// 401/404), possibly with per-field messages.
	KindValidation

	// KindNotFound is a 404 for the addressed resource.
	KindNotFound

	// KindServer is a 5xx.
	KindServer

	// KindNetwork is a timeout or connectivity failure.
	KindNetwork
)

// Error is the typed failure returned by Client.Do.
type Error struct {
	Kind    Kind
	Status  int // HTTP status, 0 for network failures
	Message string
	Fields  map[string]string // field name -> first server message
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		switch e.Kind {
		case KindAuth:
			msg = "session expired (run: taskhub login)"
		case KindNotFound:
			msg = "not found"
		case KindNetwork:
			msg = "network error"
		default:
			msg = fmt.Sprintf("request failed with status %d", e.Status)
		}
	}
	if len(e.Fields) == 0 {
		return msg
	}
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+e.Fields[name])
	}
	return msg + " (" + strings.Join(parts, "; ") + ")"
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, k Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}

// IsAuth reports whether err means the user must log in again.
func IsAuth(err error) bool { return IsKind(err, KindAuth) }

// IsNotFound reports whether err is a 404.
func IsNotFound(err error) bool { return IsKind(err, KindNotFound) }
