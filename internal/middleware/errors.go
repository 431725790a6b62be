package middleware

import (
	"net/http"

	pkgErrors "broadcast-srv/pkg/errors"
)

var errMissingActor = pkgErrors.NewHTTPError(
	http.StatusUnauthorized, "Missing X-Actor-ID header", http.StatusUnauthorized)
