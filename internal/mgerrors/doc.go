// Package mgerrors provides standardized error handling for the world map
// generation service.
//
// # Core Types
//
//   - AppError: Application-level error with HTTP context, error code, and message
//   - ErrorResponse: JSON structure for API error responses
//
// # Usage
//
// Using predefined errors:
//
//	if user == nil {
//	    return mgerrors.ErrNotFound
//	}
//
// Wrapping errors with context:
//
//	if err := db.Query(...); err != nil {
//	    return mgerrors.Wrap(mgerrors.ErrInternalServer, "failed to query users", err)
//	}
//
// Creating custom errors:
//
//	return mgerrors.New("CUSTOM_ERROR", "Something went wrong", http.StatusBadRequest)
//
// Responding to HTTP requests:
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//	    if err := doSomething(); err != nil {
//	        mgerrors.RespondWithError(w, err)
//	        return
//	    }
//	}
//
// # Error Categories
//
// Domain-specific errors are defined in domain.go:
//   - Generation: ErrInvalidParameter, ErrResourceExhausted, ErrGenerationFailed
//   - Cache/job: ErrMapNotCached, ErrJobNotFound, ErrLayerUnknown
//   - Auth: ErrAuthTokenMissing, ErrAuthTokenInvalid
package mgerrors
