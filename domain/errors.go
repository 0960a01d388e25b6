package domain

import "fmt"

type Kind uint8

const (
	KindInvalidInput Kind = iota + 1
	KindTransportUnavailable
	KindStoreUnavailable
)

// Error is the closed taxonomy surfaced to callers. Callers match on Kind
// via errors.Is against the kind sentinels below instead of comparing
// strings.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	return e.Msg
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

var (
	ErrInvalidInput         = &Error{Kind: KindInvalidInput, Msg: "invalid input"}
	ErrTransportUnavailable = &Error{Kind: KindTransportUnavailable, Msg: "push transport unavailable"}
	ErrStoreUnavailable     = &Error{Kind: KindStoreUnavailable, Msg: "registry store unavailable"}
)

func InvalidInputf(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidInput, Msg: fmt.Sprintf(format, args...)}
}

func TransportUnavailable(err error) *Error {
	return &Error{Kind: KindTransportUnavailable, Msg: fmt.Sprintf("push transport unavailable: %v", err)}
}

func StoreUnavailable(err error) *Error {
	return &Error{Kind: KindStoreUnavailable, Msg: fmt.Sprintf("registry store unavailable: %v", err)}
}
