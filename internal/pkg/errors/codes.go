package errors

import "net/http"

// Transport / backend errors
var (
	ErrNetwork = New(
		"NETWORK_ERROR",
		"Backend is unreachable",
		http.StatusBadGateway,
	)

	ErrUnauthorized = New(
		"UNAUTHORIZED",
		"Authentication required",
		http.StatusUnauthorized,
	)

	ErrNotFound = New(
		"NOT_FOUND",
		"Resource not found",
		http.StatusNotFound,
	)

	ErrServer = New(
		"SERVER_ERROR",
		"The server could not process the request",
		http.StatusBadGateway,
	)
)

// Client-side errors
var (
	ErrValidation = New(
		"VALIDATION_ERROR",
		"Required fields are missing or invalid",
		http.StatusBadRequest,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInvalidMonumentID = New(
		"INVALID_MONUMENT_ID",
		"Invalid monument ID",
		http.StatusBadRequest,
	)

	ErrTooManyAttachments = New(
		"TOO_MANY_ATTACHMENTS",
		"Too many attachments",
		http.StatusBadRequest,
	)

	ErrStorage = New(
		"STORAGE_ERROR",
		"Local storage operation failed",
		http.StatusInternalServerError,
	)

	ErrBridgeUnavailable = New(
		"BRIDGE_UNAVAILABLE",
		"Map bridge is not accepting messages",
		http.StatusServiceUnavailable,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
