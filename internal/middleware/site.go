package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	appErrors "github.com/octa-services/plant-tracker/pkg/errors"
	"github.com/octa-services/plant-tracker/pkg/response"
)

// ContextSiteKey is the gin context key storing the resolved site name.
const ContextSiteKey = "site"

// Site resolves the :site path parameter against the configured sites,
// case-insensitively, and rejects unknown sites with 404.
func Site(sites []string) gin.HandlerFunc {
	known := make(map[string]string, len(sites))
	for _, s := range sites {
		known[strings.ToLower(s)] = s
	}
	return func(c *gin.Context) {
		site, ok := known[strings.ToLower(strings.TrimSpace(c.Param("site")))]
		if !ok {
			response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "unknown site"))
			c.Abort()
			return
		}
		c.Set(ContextSiteKey, site)
		c.Next()
	}
}

// SiteFromContext returns the site resolved by Site.
func SiteFromContext(c *gin.Context) string {
	return c.GetString(ContextSiteKey)
}
