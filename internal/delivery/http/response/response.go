package response

import (
	"github.com/gin-gonic/gin"
)

// ErrorBody is the JSON body for every non-validation failure.
type ErrorBody struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// ValidationBody is the 422 body: a summary plus messages keyed by field.
type ValidationBody struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

func requestID(c *gin.Context) string {
	reqID, _ := c.Get("RequestID")
	idStr, _ := reqID.(string)
	return idStr
}

// Error sends an error response
func Error(c *gin.Context, code int, message string) {
	c.JSON(code, ErrorBody{Error: message, RequestID: requestID(c)})
}

// Validation sends a 422 response listing the offending fields
func Validation(c *gin.Context, code int, message string, fields map[string][]string) {
	if fields == nil {
		fields = map[string][]string{}
	}
	c.JSON(code, ValidationBody{Message: message, Errors: fields})
}
