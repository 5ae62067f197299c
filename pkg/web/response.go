// Package web defines common components for a web application.
package web

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// Response holds the common response type for all APIs.
type Response struct {
	AccessToken           string     `json:"access_token,omitempty"`
	AccessTokenExpiresAt  *time.Time `json:"access_token_expires_at,omitempty"`
	RefreshToken          string     `json:"refresh_token,omitempty"`
	RefreshTokenExpiresAt *time.Time `json:"refresh_token_expires_at,omitempty"`
	Data                  any        `json:"data,omitempty"`
	Error                 string     `json:"error,omitempty"`
}

// Error wraps a given err into json friendly struct.
func Error(err error) Response {
	return Response{Error: err.Error()}
}

// GetErrorMsg returns a human readable message for the first failed validation.
func GetErrorMsg(ve validator.ValidationErrors) string {
	if len(ve) == 0 {
		return ""
	}

	fe := ve[0]

	switch fe.Tag() {
	case "required":
		return fe.Field() + " field is required"
	case "alphanum":
		return fe.Field() + " should contain only letters and digits"
	case "email":
		return fe.Field() + " is not a valid email"
	case "min":
		return fe.Field() + " should be at least " + fe.Param()
	case "max":
		return fe.Field() + " should be at most " + fe.Param()
	case "hexadecimal":
		return fe.Field() + " should be a hexadecimal string"
	case "len":
		return fe.Field() + " should be " + fe.Param() + " characters long"
	case "amount":
		return fe.Field() + " should be a non-negative 64-bit integer"
	}

	return fe.Field() + " is invalid"
}
