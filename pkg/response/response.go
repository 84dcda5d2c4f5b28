package response

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/man-in-dev/goal-backend-sub001/internal/models"
	appErrors "github.com/man-in-dev/goal-backend-sub001/pkg/errors"
)

// Envelope represents the common response contract.
type Envelope struct {
	Success    bool               `json:"success"`
	Message    string             `json:"message"`
	Data       interface{}        `json:"data,omitempty"`
	Pagination *models.Pagination `json:"pagination,omitempty"`
	Error      *ErrorBody         `json:"error,omitempty"`
}

// ErrorBody carries diagnostic detail that is only exposed outside production.
type ErrorBody struct {
	Code    string             `json:"code"`
	Details []appErrors.Detail `json:"details,omitempty"`
	Cause   string             `json:"cause,omitempty"`
}

// JSON sends a success response with optional pagination metadata.
func JSON(c *gin.Context, status int, message string, data interface{}, pagination *models.Pagination) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(status, Envelope{Success: true, Message: message, Data: data, Pagination: pagination})
}

// OK responds with HTTP 200.
func OK(c *gin.Context, message string, data interface{}) {
	JSON(c, http.StatusOK, message, data, nil)
}

// Created responds with HTTP 201 Created.
func Created(c *gin.Context, message string, data interface{}) {
	JSON(c, http.StatusCreated, message, data, nil)
}

// NoContent sends a 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// File streams an attachment download.
func File(c *gin.Context, filename, contentType string, payload []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, contentType, payload)
}

// Error records the error for the centralized error middleware and stops the chain.
func Error(c *gin.Context, err error) {
	if err == nil {
		err = appErrors.ErrInternal
	}
	_ = c.Error(err)
	c.Abort()
}

// Failure writes the error envelope. Details and cause are attached only when expose is true.
func Failure(c *gin.Context, err error, expose bool) {
	appErr := appErrors.FromError(err)
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")

	envelope := Envelope{Success: false, Message: appErr.Message}
	if expose {
		body := &ErrorBody{Code: appErr.Code, Details: appErr.Details}
		if appErr.Err != nil {
			body.Cause = appErr.Err.Error()
		}
		envelope.Error = body
	}
	c.AbortWithStatusJSON(appErr.Status, envelope)
}
