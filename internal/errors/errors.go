package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidCredentials is returned when email or password is incorrect.
	// The message is identical for unknown email and wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrAccountInactive is returned when an unverified account tries to authenticate.
	ErrAccountInactive = errors.New("account is not activated")
	// ErrEmailTaken is returned when a registration email already exists.
	ErrEmailTaken = errors.New("email is already registered")
	// ErrInvalidRefreshToken is returned when a refresh token fails verification or rotation checks.
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
	// ErrUserNotFound is returned when no user exists for the given identifier.
	ErrUserNotFound = errors.New("user not found")
	// ErrNoOtpPending is returned when verification is attempted without a pending code.
	ErrNoOtpPending = errors.New("no verification code pending")
	// ErrOtpExpired is returned when the pending code's validity window has passed.
	ErrOtpExpired = errors.New("verification code has expired")
	// ErrOtpMismatch is returned when the submitted code does not match the stored hash.
	ErrOtpMismatch = errors.New("invalid verification code")
	// ErrMailDelivery is returned when an OTP email cannot be dispatched.
	ErrMailDelivery = errors.New("failed to send email")
	// ErrProductNotFound is returned when a product is not found.
	ErrProductNotFound = errors.New("product not found")
	// ErrVariantNotFound is returned when a variant is not found.
	ErrVariantNotFound = errors.New("variant not found")
	// ErrAssetNotFound is returned when an asset is not found.
	ErrAssetNotFound = errors.New("asset not found")
	// ErrCartItemNotFound is returned when a cart item is missing or owned by another user.
	ErrCartItemNotFound = errors.New("cart item not found")
	// ErrEmptyCart is returned when checkout runs against an empty or absent cart.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrOrderNotFound is returned when an order is not found.
	ErrOrderNotFound = errors.New("order not found")
	// ErrForbidden is returned when the caller lacks the role or ownership required.
	ErrForbidden = errors.New("forbidden")
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

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrAccountInactive):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "ACCOUNT_INACTIVE")
	case errors.Is(err, ErrInvalidRefreshToken):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_REFRESH_TOKEN")
	case errors.Is(err, ErrEmailTaken):
		return NewHTTPError(http.StatusConflict, err.Error(), "EMAIL_TAKEN")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrNoOtpPending):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "NO_OTP_PENDING")
	case errors.Is(err, ErrOtpExpired):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "OTP_EXPIRED")
	case errors.Is(err, ErrOtpMismatch):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "OTP_MISMATCH")
	case errors.Is(err, ErrProductNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "PRODUCT_NOT_FOUND")
	case errors.Is(err, ErrVariantNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "VARIANT_NOT_FOUND")
	case errors.Is(err, ErrAssetNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "ASSET_NOT_FOUND")
	case errors.Is(err, ErrCartItemNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "CART_ITEM_NOT_FOUND")
	case errors.Is(err, ErrEmptyCart):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "EMPTY_CART")
	case errors.Is(err, ErrOrderNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "ORDER_NOT_FOUND")
	case errors.Is(err, ErrMailDelivery):
		return NewHTTPError(http.StatusInternalServerError, err.Error(), "MAIL_DELIVERY_FAILED")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, err.Error(), "FORBIDDEN")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
