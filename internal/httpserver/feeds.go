package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *handlers) tiktokFeed(c *gin.Context) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="tiktok-catalog.csv"`)

	if _, err := h.deps.TikTok.Write(c.Request.Context(), c.Writer); err != nil {
		// Headers may already be out; log and abort the stream.
		h.logger.Printf("tiktok feed: %v", err)
		c.Abort()
	}
}

func (h *handlers) metaSync(c *gin.Context) {
	if h.deps.Meta == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "meta catalog sync not configured"})
		return
	}

	count, err := h.deps.Meta.Sync(c.Request.Context())
	if err != nil {
		h.logger.Printf("meta sync: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "meta sync failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"synced": count})
}
