package domain

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so callers can branch without inspecting messages.
type Kind string

const (
	KindMissingField     Kind = "MissingField"
	KindInvalidField     Kind = "InvalidField"
	KindAuthorNotFound   Kind = "AuthorNotFound"
	KindArticleNotFound  Kind = "ArticleNotFound"
	KindSlugConflict     Kind = "SlugConflict"
	KindEmptyPatch       Kind = "EmptyPatch"
	KindStoreUnavailable Kind = "StoreUnavailable"
	KindUnauthorized     Kind = "Unauthorized"
)

// Store contract errors. Repositories return these (possibly wrapped);
// the service turns them into kinded errors.
var (
	ErrNoRecord     = errors.New("record not found")
	ErrDuplicate    = errors.New("unique constraint violation")
	ErrBadReference = errors.New("foreign key violation")
)

type Error struct {
	Kind  Kind
	Field string
	Msg   string
	Err   error
}

func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = string(e.Kind)
	}
	if e.Field != "" {
		msg = e.Field + ": " + msg
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

func NewError(kind Kind, field, msg string) *Error {
	return &Error{Kind: kind, Field: field, Msg: msg}
}

func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, or "" if there is none.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}

func IsKind(err error, k Kind) bool { return err != nil && KindOf(err) == k }
