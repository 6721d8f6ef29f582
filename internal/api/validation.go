package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// bindAndValidate binds the JSON body into req and, on validation
// failure, answers with the full list of per-field messages. messages
// maps struct field names to the client-facing message; fields without
// an entry fall back to a generic one.
func bindAndValidate(c *gin.Context, req interface{}, messages map[string]string) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		msgs := make([]string, 0, len(fieldErrs))
		for _, fieldErr := range fieldErrs {
			if msg, ok := messages[fieldErr.Field()]; ok {
				msgs = append(msgs, msg)
			} else {
				msgs = append(msgs, fieldErr.Field()+" is invalid")
			}
		}
		writeErrors(c, http.StatusBadRequest, msgs...)
		return false
	}

	writeErrors(c, http.StatusBadRequest, "Invalid request payload")
	return false
}

var dateLayouts = []string{"2006-01-02", time.RFC3339, "01/02/2006"}

// parseDate accepts the date formats the original clients send.
func parseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
