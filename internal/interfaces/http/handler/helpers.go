package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// listQuery binds common limit/offset query parameters. A missing limit
// falls back to the service default.
type listQuery struct {
	Limit  int `form:"limit" binding:"omitempty,min=1,max=200"`
	Offset int `form:"offset" binding:"omitempty,min=0"`
}

func (q *listQuery) bind(c *gin.Context, h *BaseHandler) bool {
	if err := c.ShouldBindQuery(q); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+bindingErrorMessage(err))
		return false
	}
	if q.Limit == 0 {
		q.Limit = 50
	}
	return true
}

// bindingErrorMessage renders binding failures field by field so clients
// see which constraint was violated instead of a raw validator dump
func bindingErrorMessage(err error) string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err.Error()
	}

	parts := make([]string, len(validationErrs))
	for i, fe := range validationErrs {
		if fe.Param() != "" {
			parts[i] = fmt.Sprintf("field '%s' failed '%s=%s' validation", fe.Field(), fe.Tag(), fe.Param())
		} else {
			parts[i] = fmt.Sprintf("field '%s' failed '%s' validation", fe.Field(), fe.Tag())
		}
	}
	return strings.Join(parts, "; ")
}
