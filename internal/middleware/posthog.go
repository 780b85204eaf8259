package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// EventTracker is the part of the analytics client the middleware needs.
type EventTracker interface {
	IsInitialized() bool
	Enqueue(distinctID string, event string, properties map[string]any)
}

// analyticsSkipPrefixes lists path prefixes that never produce events.
var analyticsSkipPrefixes = []string{"/health", "/swagger"}

// PosthogMiddleware creates a Gin middleware handler that emits one analytics
// event per authenticated, successful request, named after the route
// (e.g. POST /api/v1/rentals -> "api_v1_rentals").
func PosthogMiddleware(tracker EventTracker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tracker == nil || !tracker.IsInitialized() || skipAnalytics(c.Request.URL.Path) {
			c.Next()
			return
		}

		c.Next()

		// Failed requests are not tracked.
		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		// Anonymous requests have no distinct ID to attribute the event to.
		userID, ok := GetUserIDFromContext(c)
		if !ok {
			return
		}

		eventName := strings.ReplaceAll(strings.TrimPrefix(c.FullPath(), "/"), "/", "_")
		if eventName == "" {
			// Unmatched route (404).
			return
		}

		props := map[string]any{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status_code": c.Writer.Status(),
		}
		if len(c.Params) > 0 {
			params := make(map[string]string, len(c.Params))
			for _, p := range c.Params {
				params[p.Key] = p.Value
			}
			props["params"] = params
		}

		tracker.Enqueue(userID, eventName, props)
	}
}

func skipAnalytics(path string) bool {
	for _, prefix := range analyticsSkipPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
