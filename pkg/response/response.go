package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	pkgErrors "renov-srv/pkg/errors"
)

// OK writes a success envelope with code 0.
func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Resp{
		Code: 0,
		Msg:  "success",
		Data: data,
	})
}

// Error writes an error envelope. *pkgErrors.HTTPError values keep their
// status code and message; anything else is treated as an internal error
// and the detail stays server-side. Every error body carries an error_id
// so support can correlate client reports to server logs.
func Error(c *gin.Context, err error) {
	errorID := uuid.New().String()

	if httpErr, ok := err.(*pkgErrors.HTTPError); ok {
		resp := Resp{
			Code:    httpErr.Code,
			Msg:     httpErr.Message,
			ErrorID: errorID,
		}
		if len(httpErr.Fields) > 0 {
			resp.Errors = httpErr.Fields
		}
		c.JSON(httpErr.Code, resp)
		return
	}

	c.JSON(http.StatusInternalServerError, Resp{
		Code:    http.StatusInternalServerError,
		Msg:     "内部错误",
		ErrorID: errorID,
	})
}

// Unauthorized writes a 401 envelope.
func Unauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, Resp{
		Code:    http.StatusUnauthorized,
		Msg:     "Unauthorized",
		ErrorID: uuid.New().String(),
	})
}

// TooManyRequests writes a 429 envelope.
func TooManyRequests(c *gin.Context) {
	c.JSON(http.StatusTooManyRequests, Resp{
		Code:    http.StatusTooManyRequests,
		Msg:     "Rate limit exceeded. Please try again later.",
		ErrorID: uuid.New().String(),
	})
}

// PanicError writes a 500 envelope for a recovered panic.
func PanicError(c *gin.Context, _ any) {
	c.JSON(http.StatusInternalServerError, Resp{
		Code:    http.StatusInternalServerError,
		Msg:     "内部错误",
		ErrorID: uuid.New().String(),
	})
}
