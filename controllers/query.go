package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// applyLimitOffset applies optional ?limit= and ?offset= query params to a
// list query.
func applyLimitOffset(q *gorm.DB, c *gin.Context) *gorm.DB {
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			q = q.Limit(n)
		}
	}
	if v := c.Query("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			q = q.Offset(n)
		}
	}
	return q
}
