package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// getHealth reports service liveness.
func getHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
