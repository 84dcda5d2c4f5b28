package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/man-in-dev/goal-backend-sub001/internal/middleware"
	"github.com/man-in-dev/goal-backend-sub001/internal/models"
	"github.com/man-in-dev/goal-backend-sub001/internal/service"
	"github.com/man-in-dev/goal-backend-sub001/pkg/schema"
)

// reserved query keys that never become repository filters
var queryControls = map[string]struct{}{"page": {}, "limit": {}, "search": {}, "format": {}}

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		return nil
	}
	return claims
}

func actorFromContext(c *gin.Context) service.Actor {
	actor := service.Actor{IP: c.ClientIP(), UserAgent: c.GetHeader("User-Agent")}
	if claims := claimsFromContext(c); claims != nil {
		actor.UserID = claims.UserID
	}
	return actor
}

// listQuery maps a validated (or, in lenient mode, raw) query document onto a ListQuery.
func listQuery(doc schema.Document) models.ListQuery {
	query := models.ListQuery{
		Page:    intValue(doc["page"]),
		Limit:   intValue(doc["limit"]),
		Filters: map[string]interface{}{},
	}
	if search, ok := doc["search"].(string); ok {
		query.Search = strings.TrimSpace(search)
	}
	for key, value := range doc {
		if _, reserved := queryControls[key]; reserved {
			continue
		}
		if s, ok := value.(string); ok && strings.TrimSpace(s) == "" {
			continue
		}
		query.Filters[key] = value
	}
	return query.Normalize()
}

func intValue(v interface{}) int {
	switch n := v.(type) {
	case int:
		return n
	case float64:
		return int(n)
	case string:
		if parsed, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return parsed
		}
	}
	return 0
}

func stringValue(doc schema.Document, key string) string {
	s, _ := doc[key].(string)
	return s
}
