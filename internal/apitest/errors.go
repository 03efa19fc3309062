package apitest

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

var (
	errNotFound      = errors.New("not found")
	errUnauthorized  = errors.New("unauthorized")
	errConflict      = errors.New("conflict")
	errWrongPassword = errors.New("wrong password")
)

type detailBody struct {
	Detail string `json:"detail"`
}

// validationItem mirrors the list form of detail sent for schema failures.
type validationItem struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

type validationBody struct {
	Detail []validationItem `json:"detail"`
}

func writeDetail(c echo.Context, status int, detail string) error {
	return c.JSON(status, detailBody{Detail: detail})
}

func writeValidation(c echo.Context, field, msg string) error {
	return c.JSON(http.StatusUnprocessableEntity, validationBody{
		Detail: []validationItem{{Loc: []string{"body", field}, Msg: msg, Type: "value_error"}},
	})
}

func writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, errNotFound):
		return writeDetail(c, http.StatusNotFound, "Item not found.")
	case errors.Is(err, errUnauthorized):
		return writeDetail(c, http.StatusUnauthorized, "Authentication failed.")
	case errors.Is(err, errConflict):
		return writeDetail(c, http.StatusBadRequest, "Username or email already registered.")
	case errors.Is(err, errWrongPassword):
		return writeDetail(c, http.StatusUnauthorized, "Incorrect password.")
	default:
		c.Logger().Error(err)
		return writeDetail(c, http.StatusInternalServerError, "Internal server error")
	}
}

// handleHTTPError renders echo's own errors (unknown route, bad method,
// recovered panic) in the same detail shape as every other failure.
func (b *Backend) handleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	status := http.StatusInternalServerError
	msg := "Internal server error"

	var he *echo.HTTPError
	if errors.As(err, &he) {
		status = he.Code
		if s, ok := he.Message.(string); ok {
			msg = s
		}
	}
	_ = writeDetail(c, status, msg)
}
