package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appErrors "github.com/man-in-dev/goal-backend-sub001/pkg/errors"
	"github.com/man-in-dev/goal-backend-sub001/pkg/response"
	"github.com/man-in-dev/goal-backend-sub001/pkg/schema"
)

const (
	contextBodyKey   = "validatedBody"
	contextQueryKey  = "validatedQuery"
	contextParamsKey = "validatedParams"
)

const maxMultipartMemory = 8 << 20

// ValidateBody validates the JSON, urlencoded or multipart body against s and
// stores the normalized document for handlers.
func ValidateBody(s *schema.Schema) gin.HandlerFunc {
	return func(c *gin.Context) {
		input, err := readBody(c)
		if err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "Invalid request body"))
			return
		}
		doc, violations := s.Validate(input)
		if len(violations) > 0 {
			response.Error(c, violationError(violations))
			return
		}
		c.Set(contextBodyKey, doc)
		c.Next()
	}
}

// ValidateQuery validates the query string. When strict is false violations
// are logged and the raw query is passed through.
func ValidateQuery(s *schema.Schema, strict bool, logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *gin.Context) {
		input := schema.FromValues(c.Request.URL.Query())
		doc, violations := s.Validate(input)
		if len(violations) > 0 {
			if strict {
				response.Error(c, violationError(violations))
				return
			}
			logger.Warn("query validation failed",
				zap.String("path", c.FullPath()),
				zap.String("violations", violations.Error()),
			)
			doc = schema.Document(input)
		}
		c.Set(contextQueryKey, doc)
		c.Next()
	}
}

// ValidateParams validates path parameters.
func ValidateParams(s *schema.Schema) gin.HandlerFunc {
	return func(c *gin.Context) {
		input := make(map[string]interface{}, len(c.Params))
		for _, p := range c.Params {
			input[p.Key] = p.Value
		}
		doc, violations := s.Validate(input)
		if len(violations) > 0 {
			response.Error(c, violationError(violations))
			return
		}
		c.Set(contextParamsKey, doc)
		c.Next()
	}
}

// Body returns the document stored by ValidateBody.
func Body(c *gin.Context) schema.Document { return document(c, contextBodyKey) }

// Query returns the document stored by ValidateQuery.
func Query(c *gin.Context) schema.Document { return document(c, contextQueryKey) }

// Params returns the document stored by ValidateParams.
func Params(c *gin.Context) schema.Document { return document(c, contextParamsKey) }

func document(c *gin.Context, key string) schema.Document {
	if value, ok := c.Get(key); ok {
		if doc, ok := value.(schema.Document); ok {
			return doc
		}
	}
	return schema.Document{}
}

func violationError(violations schema.Violations) *appErrors.Error {
	details := make([]appErrors.Detail, len(violations))
	for i, v := range violations {
		details[i] = appErrors.Detail{Field: v.Field, Message: v.Message}
	}
	return appErrors.WithDetails(appErrors.ErrValidation, violations.Error(), details)
}

func readBody(c *gin.Context) (map[string]interface{}, error) {
	contentType := c.ContentType()
	switch {
	case strings.HasPrefix(contentType, gin.MIMEMultipartPOSTForm):
		if c.Request.MultipartForm == nil {
			if err := c.Request.ParseMultipartForm(maxMultipartMemory); err != nil {
				return nil, err
			}
		}
		return schema.FromValues(c.Request.MultipartForm.Value), nil
	case strings.HasPrefix(contentType, gin.MIMEPOSTForm):
		if err := c.Request.ParseForm(); err != nil {
			return nil, err
		}
		return schema.FromValues(c.Request.PostForm), nil
	}

	if c.Request.Body == nil || c.Request.Body == http.NoBody {
		return map[string]interface{}{}, nil
	}
	raw, err := c.GetRawData()
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return map[string]interface{}{}, nil
	}
	input := map[string]interface{}{}
	if err := json.Unmarshal(raw, &input); err != nil {
		return nil, err
	}
	return input, nil
}
