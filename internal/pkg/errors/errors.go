package errors

import "net/http"

// ErrorResp is the error type every layer below the handlers returns.
// Handlers map the Code onto the HTTP status via helpers.RespError.
type ErrorResp struct {
	Code    int
	Message string
}

func (e *ErrorResp) Error() string {
	return e.Message
}

// BadRequest marks malformed or invalid input. Nothing is mutated before it
// is returned.
func BadRequest(message string) error {
	return &ErrorResp{Code: http.StatusBadRequest, Message: message}
}

func UnauthorizedError(message string) error {
	return &ErrorResp{Code: http.StatusUnauthorized, Message: message}
}

func NotFound(message string) error {
	return &ErrorResp{Code: http.StatusNotFound, Message: message}
}

// Conflict marks a slot collision or a concurrent booking race.
func Conflict(message string) error {
	return &ErrorResp{Code: http.StatusConflict, Message: message}
}

// UnprocessableEntity marks an illegal lifecycle transition request.
func UnprocessableEntity(message string) error {
	return &ErrorResp{Code: http.StatusUnprocessableEntity, Message: message}
}

func InternalServerError(message string) error {
	return &ErrorResp{Code: http.StatusInternalServerError, Message: message}
}

// HttpCode extracts the HTTP status for an error, falling back to 500 for
// anything that is not an *ErrorResp.
func HttpCode(err error) int {
	if resp, ok := err.(*ErrorResp); ok {
		return resp.Code
	}
	return http.StatusInternalServerError
}

func IsNotFound(err error) bool {
	return HttpCode(err) == http.StatusNotFound
}

func IsConflict(err error) bool {
	return HttpCode(err) == http.StatusConflict
}
