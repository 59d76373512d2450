// File: handlers/cron.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sripavantejb/GuideXpert-Backend/services/notify"
	"github.com/sripavantejb/GuideXpert-Backend/utils"
)

// SendRemindersHandler runs one notification sweep on demand. It backs the
// external cron trigger and doubles as a manual re-drive.
func SendRemindersHandler(c *gin.Context) {
	stats, err := Scheduler.Sweep(c.Request.Context())
	if err != nil {
		if errors.Is(err, notify.ErrSweepInProgress) {
			c.JSON(http.StatusOK, gin.H{
				"success": true,
				"skipped": true,
				"message": "A sweep is already running.",
			})
			return
		}
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "stats": stats})
}

// CronHealthHandler is a liveness probe for the cron caller.
func CronHealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "status": "ok"})
}
