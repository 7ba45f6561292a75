package response

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/iliri/iliri-api/pkg/apperror"
	"github.com/iliri/iliri-api/pkg/pagination"
)

// APIResponse is the envelope every ledger endpoint answers with
type APIResponse struct {
	Success bool                  `json:"success"`
	Message string                `json:"message"`
	Data    interface{}           `json:"data,omitempty"`
	Errors  []apperror.FieldError `json:"errors,omitempty"`
	Warning string                `json:"warning,omitempty"`
	Meta    *Meta                 `json:"meta,omitempty"`
}

// Meta carries the request id assigned by the logger middleware
type Meta struct {
	Timestamp string `json:"timestamp"`
	RequestID string `json:"request_id"`
}

func newMeta(c *gin.Context) *Meta {
	requestID := c.GetString("request_id")
	if requestID == "" {
		requestID = c.GetHeader("X-Request-ID")
	}
	return &Meta{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		RequestID: requestID,
	}
}

func send(c *gin.Context, statusCode int, body APIResponse) {
	body.Meta = newMeta(c)
	c.JSON(statusCode, body)
}

// Success sends a success response
func Success(c *gin.Context, statusCode int, message string, data interface{}) {
	send(c, statusCode, APIResponse{Success: true, Message: message, Data: data})
}

// OK sends a 200 response
func OK(c *gin.Context, message string, data interface{}) {
	Success(c, http.StatusOK, message, data)
}

// Created sends a 201 response
func Created(c *gin.Context, message string, data interface{}) {
	Success(c, http.StatusCreated, message, data)
}

// Page slices an already filtered list into the requested page and sends it
// with its pagination block
func Page[T any](c *gin.Context, message string, items []T, page, perPage int) {
	params := &pagination.PaginationParams{Page: page, PerPage: perPage}
	OK(c, message, pagination.Paginate(items, params))
}

// Warning sends a 200 response for work that was saved or built but whose
// side effect failed, such as a receipt the printer rejected
func Warning(c *gin.Context, message string, data interface{}, cause error) {
	log.Printf("[%s] Warning: %s: %v", shortRequestID(c), message, cause)
	send(c, http.StatusOK, APIResponse{Success: true, Message: message, Data: data, Warning: cause.Error()})
}

// Error maps err to its HTTP status. Validation failures keep their
// field-keyed errors; anything that is not an AppError is logged and
// reported as a bare 500.
func Error(c *gin.Context, err error) {
	if !apperror.IsAppError(err) {
		log.Printf("[%s] Error: %v", shortRequestID(c), err)
		ErrorWithCode(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	appErr := apperror.GetAppError(err)
	send(c, appErr.Code, APIResponse{Message: appErr.Message, Errors: appErr.Errors})
}

// ErrorWithCode sends an error response with a specific status code
func ErrorWithCode(c *gin.Context, statusCode int, message string) {
	send(c, statusCode, APIResponse{Message: message})
}

// NotFound sends a 404 response
func NotFound(c *gin.Context, message string) {
	ErrorWithCode(c, http.StatusNotFound, message)
}

// Unauthorized sends a 401 response
func Unauthorized(c *gin.Context, message string) {
	ErrorWithCode(c, http.StatusUnauthorized, message)
}

// BadRequest sends a 400 response
func BadRequest(c *gin.Context, message string) {
	ErrorWithCode(c, http.StatusBadRequest, message)
}

func shortRequestID(c *gin.Context) string {
	id := c.GetString("request_id")
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
