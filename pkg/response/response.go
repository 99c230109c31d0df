package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// NewOKResp returns a new OK response with the given data.
func NewOKResp(data any) Resp {
	return Resp{
		ErrorCode: 0,
		Message:   MessageSuccess,
		Data:      data,
	}
}

// OK sends 200 JSON with data.
func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, NewOKResp(data))
}

// Text sends 200 with a verbatim text/plain body.
func Text(c *gin.Context, body string) {
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(body))
}

// Fail aborts the chain and sends an error envelope whose error_code mirrors
// the HTTP status.
func Fail(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, Resp{
		ErrorCode: status,
		Message:   message,
	})
}

// BadRequest sends 400 response.
func BadRequest(c *gin.Context, message string) {
	Fail(c, http.StatusBadRequest, message)
}

// InternalError sends 500 internal server error. The error is never exposed.
func InternalError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusInternalServerError, Resp{
		ErrorCode: InternalServerErrorCode,
		Message:   DefaultErrorMessage,
	})
}

// Unauthorized sends 401 response.
func Unauthorized(c *gin.Context, message string) {
	Fail(c, http.StatusUnauthorized, message)
}

// Forbidden sends 403 response.
func Forbidden(c *gin.Context) {
	Fail(c, http.StatusForbidden, "Forbidden")
}

// NotFound sends 404 response.
func NotFound(c *gin.Context, message string) {
	Fail(c, http.StatusNotFound, message)
}

// TooManyRequests sends 429 response.
func TooManyRequests(c *gin.Context) {
	Fail(c, http.StatusTooManyRequests, "Too Many Requests")
}

// PayloadTooLarge sends 413 response.
func PayloadTooLarge(c *gin.Context) {
	Fail(c, http.StatusRequestEntityTooLarge, "Payload Too Large")
}
