package errors

import "net/http"

var (
	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrInvalidRadius = New(
		"INVALID_RADIUS",
		"Invalid radius value",
		http.StatusBadRequest,
	)

	ErrInvalidTarget = New(
		"INVALID_TARGET",
		"Navigation target must have a name and valid coordinates",
		http.StatusBadRequest,
	)

	ErrInvalidThresholds = New(
		"INVALID_THRESHOLDS",
		"Navigation thresholds must be positive",
		http.StatusBadRequest,
	)

	ErrInvalidDeviceID = New(
		"INVALID_DEVICE_ID",
		"Device identifier is missing or malformed",
		http.StatusBadRequest,
	)

	ErrNoActiveSession = New(
		"NO_ACTIVE_SESSION",
		"No active navigation for device",
		http.StatusNotFound,
	)

	ErrGPSFixNotFound = New(
		"GPS_FIX_NOT_FOUND",
		"No GPS fix recorded for device",
		http.StatusNotFound,
	)

	ErrProviderUnavailable = New(
		"PROVIDER_UNAVAILABLE",
		"Map feature provider unavailable",
		http.StatusServiceUnavailable,
	)

	ErrUnauthorized = New(
		"UNAUTHORIZED",
		"Missing or invalid device token",
		http.StatusUnauthorized,
	)

	ErrForbidden = New(
		"FORBIDDEN",
		"Token is not valid for this device",
		http.StatusForbidden,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
