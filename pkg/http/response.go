package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// DataResponse writes the envelope with the given status.
func DataResponse(c echo.Context, statusCode int, resp APIResponse) error {
	if resp.Message == "" && !resp.Success {
		resp.Message = http.StatusText(statusCode)
	}
	return c.JSON(statusCode, resp)
}

// SuccessResponse writes {success: true, data, ...meta}.
func SuccessResponse(c echo.Context, data interface{}, meta ...Meta) error {
	resp := APIResponse{Success: true, Data: data}
	if len(meta) > 0 {
		resp.Meta = meta[0]
	}
	return DataResponse(c, http.StatusOK, resp)
}

// BadRequestResponse writes bad request error.
func BadRequestResponse(c echo.Context, errs []ValidationError) error {
	msg := "Invalid request"
	if len(errs) > 0 && errs[0].Message != "" {
		msg = errs[0].Message
	}
	return DataResponse(c, http.StatusBadRequest, APIResponse{Message: msg, Errors: errs})
}

// TooManyRequestsResponse writes rate limit error.
func TooManyRequestsResponse(c echo.Context) error {
	return DataResponse(c, http.StatusTooManyRequests, APIResponse{Message: "Too many requests"})
}

// InternalServerErrorResponse writes internal server error.
func InternalServerErrorResponse(c echo.Context) error {
	return DataResponse(c, http.StatusInternalServerError, APIResponse{Message: "Something went wrong"})
}

// AppErrorResponse writes application error response.
func AppErrorResponse(c echo.Context, err error) error {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return DataResponse(c, appErr.Status, APIResponse{
			Message: appErr.Message,
			Errors: []ValidationError{{
				Code:    appErr.Code,
				Field:   appErr.Field,
				Message: appErr.Message,
				Params:  appErr.Params,
			}},
		})
	}
	return InternalServerErrorResponse(c)
}
