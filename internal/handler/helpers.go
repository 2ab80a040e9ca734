package handler

import (
	"io"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/Hegpro/Samrt-hostel-management/internal/auth"
	"github.com/Hegpro/Samrt-hostel-management/internal/errors"
)

// maxImageBytes caps multipart image uploads at 8 MiB.
const maxImageBytes = 8 << 20

// MessageResponse is the generic success envelope.
type MessageResponse struct {
	Message string `json:"message"`
}

// currentClaims extracts the typed JWT claims set by the echo-jwt
// middleware.
func currentClaims(c echo.Context) (*auth.Claims, error) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	claims, ok := token.Claims.(*auth.Claims)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token claims")
	}
	return claims, nil
}

// respondError maps a domain error onto the standard error envelope.
func respondError(c echo.Context, err error) error {
	httpErr := errors.MapErrorToHTTP(err)
	return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
}

// readFormImage reads an optional multipart image field. A missing field
// returns nil bytes without error.
func readFormImage(c echo.Context, field string) ([]byte, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		return nil, nil
	}
	if fileHeader.Size > maxImageBytes {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "image too large")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "cannot read image")
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxImageBytes))
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "cannot read image")
	}
	return data, nil
}
