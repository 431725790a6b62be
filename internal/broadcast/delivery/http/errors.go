package http

import (
	"net/http"

	"broadcast-srv/internal/broadcast"
	pkgErrors "broadcast-srv/pkg/errors"

	"github.com/friendsofgo/errors"
)

var (
	errMissingScope = pkgErrors.NewHTTPError(http.StatusUnauthorized,
		"Missing actor identity", http.StatusUnauthorized)
	errInvalidBody = pkgErrors.NewHTTPError(http.StatusBadRequest,
		"Invalid request body", http.StatusBadRequest)
	errInvalidQuery = pkgErrors.NewHTTPError(http.StatusBadRequest,
		"Invalid query parameters", http.StatusBadRequest)
)

func (h *Handler) mapError(err error) error {
	switch {
	case errors.Is(err, broadcast.ErrBroadcastNotFound):
		return pkgErrors.NewNotFoundHTTPError("Broadcast not found")
	case errors.Is(err, broadcast.ErrInvalidTransition):
		return pkgErrors.NewConflictHTTPError("Broadcast is not in a state that allows this operation")
	case errors.Is(err, broadcast.ErrSendInProgress):
		return pkgErrors.NewConflictHTTPError("Broadcast send already in progress")
	case errors.Is(err, broadcast.ErrNotSent):
		return pkgErrors.NewConflictHTTPError("Broadcast has not been sent")
	case errors.Is(err, broadcast.ErrAckNotRequired):
		return pkgErrors.NewHTTPError(http.StatusBadRequest,
			"Broadcast does not require acknowledgment", http.StatusBadRequest)
	case errors.Is(err, broadcast.ErrRecipientResolution):
		return pkgErrors.NewHTTPError(http.StatusBadGateway,
			"Recipient directory unavailable", http.StatusBadGateway)
	default:
		return err
	}
}
