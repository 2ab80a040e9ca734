package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidCredentials is returned when the identifier or password is wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserNotFound is returned when a referenced user is absent.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailExists is returned when an email is already registered.
	ErrEmailExists = errors.New("email already exists")
	// ErrUSNExists is returned when a student USN is already registered.
	ErrUSNExists = errors.New("usn already exists")
	// ErrForbidden is returned when a role or ownership check fails.
	ErrForbidden = errors.New("access denied")
	// ErrInvalidOTP is returned when a verification code is wrong.
	ErrInvalidOTP = errors.New("invalid verification code")
	// ErrOTPExpired is returned when a verification code is past its expiry.
	ErrOTPExpired = errors.New("verification code expired")
	// ErrWrongPassword is returned on a failed old-password check.
	ErrWrongPassword = errors.New("old password incorrect")
	// ErrInvalidRefreshToken is returned when a refresh token is invalid or expired.
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")

	// ErrHostelNotFound is returned when a referenced hostel is absent.
	ErrHostelNotFound = errors.New("hostel not found")
	// ErrHostelExists is returned when a hostel name or code is taken.
	ErrHostelExists = errors.New("hostel already exists")

	// ErrRoomNotFound is returned when a referenced room is absent.
	ErrRoomNotFound = errors.New("room not found")
	// ErrRoomExists is returned when a room number is taken within a hostel.
	ErrRoomExists = errors.New("room already exists in this hostel")
	// ErrRoomFull is returned when a room has no free capacity.
	ErrRoomFull = errors.New("room is already full")
	// ErrRoomUnderMaintenance is returned when the destination room is under maintenance.
	ErrRoomUnderMaintenance = errors.New("room is under maintenance")
	// ErrInsufficientCapacity is returned when a relocation does not fit the destination.
	ErrInsufficientCapacity = errors.New("new room does not have enough space")
	// ErrInvalidRoomStatus is returned for a status outside the room enum.
	ErrInvalidRoomStatus = errors.New("invalid room status")

	// ErrComplaintNotFound is returned when a referenced complaint is absent.
	ErrComplaintNotFound = errors.New("complaint not found")
	// ErrInvalidCategory is returned for a category outside the complaint enum.
	ErrInvalidCategory = errors.New("invalid complaint category")
	// ErrInvalidTransition is returned for a staff target status outside the allowed set.
	ErrInvalidTransition = errors.New("invalid status for staff")
	// ErrCategoryMismatch is returned when staff act outside their trade.
	ErrCategoryMismatch = errors.New("not allowed for this complaint type")
	// ErrInvalidState is returned when the operation is not legal for the current state.
	ErrInvalidState = errors.New("operation not allowed in current state")

	// ErrSurplusNotFound is returned when a referenced surplus posting is absent.
	ErrSurplusNotFound = errors.New("surplus posting not found")
	// ErrInvalidDeadline is returned when a surplus deadline is in the past.
	ErrInvalidDeadline = errors.New("deadline cannot be in the past")
	// ErrAlreadyUnavailable is returned when claiming a non-available posting.
	ErrAlreadyUnavailable = errors.New("already claimed or unavailable")
	// ErrSurplusExpired is returned when claiming past the deadline.
	ErrSurplusExpired = errors.New("food already expired")
	// ErrInvalidSurplusStatus is returned for a manual status outside {distributed, expired}.
	ErrInvalidSurplusStatus = errors.New("invalid surplus status")

	// ErrValidation is returned for missing or malformed input.
	ErrValidation = errors.New("invalid input")
	// ErrConfirmationRequired is returned when the reset confirmation phrase is wrong.
	ErrConfirmationRequired = errors.New("confirmation code required")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Precondition failures
// are 4xx; anything unknown is a generic 500 with no internal detail.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrInvalidRefreshToken):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_REFRESH_TOKEN")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, err.Error(), "ACCESS_DENIED")
	case errors.Is(err, ErrCategoryMismatch):
		return NewHTTPError(http.StatusForbidden, err.Error(), "CATEGORY_MISMATCH")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrHostelNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "HOSTEL_NOT_FOUND")
	case errors.Is(err, ErrRoomNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "ROOM_NOT_FOUND")
	case errors.Is(err, ErrComplaintNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "COMPLAINT_NOT_FOUND")
	case errors.Is(err, ErrSurplusNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "SURPLUS_NOT_FOUND")
	case errors.Is(err, ErrEmailExists):
		return NewHTTPError(http.StatusConflict, err.Error(), "EMAIL_EXISTS")
	case errors.Is(err, ErrUSNExists):
		return NewHTTPError(http.StatusConflict, err.Error(), "USN_EXISTS")
	case errors.Is(err, ErrHostelExists):
		return NewHTTPError(http.StatusConflict, err.Error(), "HOSTEL_EXISTS")
	case errors.Is(err, ErrRoomExists):
		return NewHTTPError(http.StatusConflict, err.Error(), "ROOM_EXISTS")
	case errors.Is(err, ErrRoomFull):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "ROOM_FULL")
	case errors.Is(err, ErrRoomUnderMaintenance):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "ROOM_UNDER_MAINTENANCE")
	case errors.Is(err, ErrInsufficientCapacity):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INSUFFICIENT_CAPACITY")
	case errors.Is(err, ErrInvalidRoomStatus):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_ROOM_STATUS")
	case errors.Is(err, ErrInvalidCategory):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_CATEGORY")
	case errors.Is(err, ErrInvalidTransition):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_TRANSITION")
	case errors.Is(err, ErrInvalidState):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_STATE")
	case errors.Is(err, ErrInvalidDeadline):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_DEADLINE")
	case errors.Is(err, ErrAlreadyUnavailable):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "ALREADY_UNAVAILABLE")
	case errors.Is(err, ErrSurplusExpired):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "SURPLUS_EXPIRED")
	case errors.Is(err, ErrInvalidSurplusStatus):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_SURPLUS_STATUS")
	case errors.Is(err, ErrInvalidOTP):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_OTP")
	case errors.Is(err, ErrOTPExpired):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "OTP_EXPIRED")
	case errors.Is(err, ErrWrongPassword):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "WRONG_PASSWORD")
	case errors.Is(err, ErrValidation):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "VALIDATION_ERROR")
	case errors.Is(err, ErrConfirmationRequired):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "CONFIRMATION_REQUIRED")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
