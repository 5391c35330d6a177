package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/roach88/cardsearch/internal/query"
)

// Error codes that are not query parse errors.
const (
	CodeMissingQuery = "missing_query"
	CodeInvalidLimit = "invalid_limit"
	CodeCardNotFound = "card_not_found"
)

// APIError is the body of an error response.
type APIError struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Fragment string `json:"fragment,omitempty"`
	Pos      *int   `json:"pos,omitempty"`
}

// ErrorEnvelope wraps APIError.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, ErrorEnvelope{Error: APIError{Code: code, Message: message}})
}

// respondParseError reports a rejected query. err must hold a
// *query.ParseError.
func respondParseError(c *gin.Context, err error) {
	var pe *query.ParseError
	if !errors.As(err, &pe) {
		respondError(c, http.StatusInternalServerError, "internal", err.Error())
		return
	}
	pos := pe.Pos
	c.JSON(http.StatusBadRequest, ErrorEnvelope{Error: APIError{
		Code:     string(pe.Code),
		Message:  pe.Message,
		Fragment: pe.Fragment,
		Pos:      &pos,
	}})
}
