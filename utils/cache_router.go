package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const CacheNoCache = 0

// CacheRouter sets the cache-control header on every response. The API
// runs with CacheNoCache so clients always see fresh album and photo
// listings after a mutation.
type CacheRouter struct {
	CacheTime int // seconds; CacheNoCache disables caching
}

func (cr *CacheRouter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if cr.CacheTime == CacheNoCache {
			c.Header("cache-control", "no-cache")
		} else {
			c.Header("cache-control", "private, max-age="+strconv.Itoa(cr.CacheTime))
		}
		c.Next()
	}
}
