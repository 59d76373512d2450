// File: handlers/influencer.go
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sripavantejb/GuideXpert-Backend/services/influencer"
	"github.com/sripavantejb/GuideXpert-Backend/utils"
)

// CreateInfluencerLinkHandler mints a campaign UTM link, optionally saving it.
func CreateInfluencerLinkHandler(c *gin.Context) {
	var req struct {
		InfluencerName string `json:"influencerName" binding:"required"`
		Platform       string `json:"platform"`
		Campaign       string `json:"campaign"`
		Save           bool   `json:"save"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Influencer name is required."})
		return
	}

	link, err := InfluencerService.CreateLink(c.Request.Context(), influencer.CreateLinkRequest{
		InfluencerName: req.InfluencerName,
		Platform:       req.Platform,
		Campaign:       req.Campaign,
		Save:           req.Save,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	status := http.StatusOK
	if req.Save {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"success": true, "data": link})
}

// ListInfluencerLinksHandler returns all saved links, newest first.
func ListInfluencerLinksHandler(c *gin.Context) {
	links, err := InfluencerService.ListLinks(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": links})
}

// DeleteInfluencerLinkHandler removes one saved link.
func DeleteInfluencerLinkHandler(c *gin.Context) {
	if err := InfluencerService.DeleteLink(c.Request.Context(), c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Link deleted."})
}

// InfluencerAnalyticsHandler aggregates registrations per influencer.
// from/to are optional IST calendar dates; sort=latest orders by most
// recent registration instead of volume.
func InfluencerAnalyticsHandler(c *gin.Context) {
	from, to, ok := analyticsWindow(c)
	if !ok {
		return
	}

	counts, err := InfluencerService.Analytics(c.Request.Context(), from, to, c.Query("sort") == "latest")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": counts})
}

// InfluencerTrendHandler returns attributed registrations per day.
func InfluencerTrendHandler(c *gin.Context) {
	from, to, ok := analyticsWindow(c)
	if !ok {
		return
	}

	trend, err := InfluencerService.Trend(c.Request.Context(), from, to)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": trend})
}

// analyticsWindow parses optional from/to query dates into UTC bounds,
// writing the error response itself when a date is malformed.
func analyticsWindow(c *gin.Context) (from, to time.Time, ok bool) {
	if d := c.Query("from"); d != "" {
		start, _, valid := utils.ISTDayRangeUTC(d)
		if !valid {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "from must be a valid YYYY-MM-DD."})
			return time.Time{}, time.Time{}, false
		}
		from = start
	}
	if d := c.Query("to"); d != "" {
		_, end, valid := utils.ISTDayRangeUTC(d)
		if !valid {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "to must be a valid YYYY-MM-DD."})
			return time.Time{}, time.Time{}, false
		}
		to = end
	}
	return from, to, true
}
