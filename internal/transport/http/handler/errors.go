package handler

import (
	"errors"

	"go-gin-blog/internal/domain"
	"go-gin-blog/internal/transport/http/ez"
)

// actionErr maps a service error onto the envelope code for its kind.
func actionErr(err error) error {
	var de *domain.Error
	if !errors.As(err, &de) {
		return ez.Internal("internal error", err)
	}
	msg := de.Error()
	switch de.Kind {
	case domain.KindMissingField, domain.KindInvalidField, domain.KindEmptyPatch:
		return ez.BadRequest(msg)
	case domain.KindUnauthorized:
		return ez.Unauthorized(msg)
	case domain.KindAuthorNotFound, domain.KindArticleNotFound:
		return ez.NotFound(msg)
	case domain.KindSlugConflict:
		return ez.Conflict(msg)
	default:
		return ez.Internal("store unavailable", err)
	}
}
