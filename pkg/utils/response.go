package utils

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Response standard response structure
type Response struct {
	Code      ResponseCode `json:"code"`
	Message   string       `json:"message"`
	Data      interface{}  `json:"data,omitempty"`
	Timestamp int64        `json:"timestamp"`
}

// SuccessResponse returns success response
func SuccessResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:      CodeSuccess,
		Message:   "success",
		Data:      data,
		Timestamp: time.Now().Unix(),
	})
}

// ErrorResponse returns error response with explicit http status
func ErrorResponse(c *gin.Context, httpCode int, code ResponseCode, message string) {
	c.JSON(httpCode, Response{
		Code:      code,
		Message:   message,
		Timestamp: time.Now().Unix(),
	})
}

// AppErrorResponse maps an application error onto the wire. Client
// mistakes keep their specific http status; anything else is a 500.
func AppErrorResponse(c *gin.Context, err error) {
	code := GetErrorCode(err)
	c.JSON(httpStatusFor(code), Response{
		Code:      code,
		Message:   GetErrorMessage(err),
		Timestamp: time.Now().Unix(),
	})
}

func httpStatusFor(code ResponseCode) int {
	switch code {
	case CodeInvalidParam, CodeCartEmpty, CodeProductUnavailable,
		CodeInsufficientPoints, CodeInvalidTransition:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeUserNotFound, CodeProductNotFound, CodeOrderNotFound, CodePostNotFound:
		return http.StatusNotFound
	case CodeAlreadyProcessed:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// PageResponse page response structure
type PageResponse struct {
	List  interface{} `json:"list"`
	Total int64       `json:"total"`
	Page  int         `json:"page"`
	Size  int         `json:"size"`
}

// SuccessPageResponse returns success page response
func SuccessPageResponse(c *gin.Context, list interface{}, total int64, page, size int) {
	SuccessResponse(c, PageResponse{
		List:  list,
		Total: total,
		Page:  page,
		Size:  size,
	})
}
