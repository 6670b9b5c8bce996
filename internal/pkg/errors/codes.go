package errors

import "net/http"

var (
	ErrMissingCredential = New(
		"MISSING_CREDENTIAL",
		"Google API key environment variable is not set",
		http.StatusUnauthorized,
	)

	ErrLocationNotFound = New(
		"LOCATION_NOT_FOUND",
		"Location could not be geocoded",
		http.StatusNotFound,
	)

	ErrRemoteService = New(
		"REMOTE_SERVICE_ERROR",
		"Google Maps API returned an error",
		http.StatusBadGateway,
	)

	ErrInvalidQuery = New(
		"INVALID_QUERY",
		"Search query must not be empty",
		http.StatusBadRequest,
	)

	ErrInvalidRadius = New(
		"INVALID_RADIUS",
		"Radius must be a positive number of meters",
		http.StatusBadRequest,
	)

	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrPageTokenNotReady = New(
		"PAGE_TOKEN_NOT_READY",
		"Continuation token is not accepted by Google yet",
		http.StatusBadGateway,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrStreamError = New(
		"STREAM_ERROR",
		"Stream operation failed",
		http.StatusInternalServerError,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
