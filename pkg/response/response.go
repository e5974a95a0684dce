package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope is the uniform JSON body every endpoint returns. Code 0 means
// success; error responses reuse the HTTP status as the code. Data carries
// the endpoint payload (search results, clusters, timeline buckets, photo
// records) and is omitted on errors.
type Envelope struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success sends a 200 response wrapping the payload
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Envelope{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Error sends an error response with the given status code
func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Envelope{
		Code:    code,
		Message: message,
	})
}

// BadRequest rejects malformed query parameters or payloads
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// NotFound reports a missing photo or person record
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

// InternalError reports a store or serialization failure
func InternalError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message)
}
