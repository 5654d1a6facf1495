package ez

import (
	"context"

	"github.com/cockroachdb/errors"
	"gorm.io/gorm"

	"basketball-manager/internal/identity"
	"basketball-manager/internal/service"
	resp "basketball-manager/internal/transport/http/response"
)

// AErr carries a business code for the envelope.
type AErr struct {
	Code int
	Msg  string
	Err  error
}

func (e *AErr) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "action error"
}

func (e *AErr) Unwrap() error { return e.Err }

func BadRequest(msg string) error   { return &AErr{Code: resp.CodeBadRequest, Msg: msg} }
func Unauthorized(msg string) error { return &AErr{Code: resp.CodeUnauthorized, Msg: msg} }
func Forbidden(msg string) error    { return &AErr{Code: resp.CodeForbidden, Msg: msg} }
func NotFound(msg string) error     { return &AErr{Code: resp.CodeNotFound, Msg: msg} }
func Internal(msg string, err error) error {
	return &AErr{Code: resp.CodeServerError, Msg: msg, Err: err}
}

// FromError maps service and identity errors to coded errors. Messages of
// server errors are not exposed.
func FromError(err error) *AErr {
	var ae *AErr
	if errors.As(err, &ae) {
		return ae
	}
	code := resp.CodeServerError
	switch {
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, identity.ErrPasswordPolicy):
		code = resp.CodeBadRequest
	case errors.Is(err, identity.ErrInvalidCredentials):
		code = resp.CodeUnauthorized
	case errors.Is(err, service.ErrForbidden):
		code = resp.CodeForbidden
	case errors.Is(err, service.ErrNotFound), errors.Is(err, identity.ErrRoleNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		code = resp.CodeNotFound
	case errors.Is(err, service.ErrConflict), errors.Is(err, identity.ErrDuplicateUserName),
		errors.Is(err, identity.ErrDuplicateEmail), errors.Is(err, identity.ErrDuplicateRoleName),
		errors.Is(err, gorm.ErrDuplicatedKey), errors.Is(err, gorm.ErrForeignKeyViolated):
		code = resp.CodeConflict
	case errors.Is(err, identity.ErrLockedOut):
		code = resp.CodeLocked
	case errors.Is(err, context.DeadlineExceeded):
		code = resp.CodeTimeout
	}
	if code >= resp.CodeServerError {
		return &AErr{Code: code, Msg: resp.Message(code), Err: err}
	}
	return &AErr{Code: code, Msg: err.Error(), Err: err}
}
