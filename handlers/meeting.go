// File: handlers/meeting.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sripavantejb/GuideXpert-Backend/utils"
)

// MeetingJoinHandler records one person joining the demo meeting. This is a
// standalone counter: joining never requires a form submission.
func MeetingJoinHandler(c *gin.Context) {
	var req struct {
		Name         string `json:"name" binding:"required"`
		MobileNumber string `json:"mobileNumber" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Name and mobile number are required."})
		return
	}

	rec, err := AttendanceService.Record(c.Request.Context(), req.Name, req.MobileNumber)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Registered successfully", "data": rec})
}

// MeetingAttendanceHandler lists join records, newest first, paginated.
func MeetingAttendanceHandler(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	recs, pagination, err := AttendanceService.List(c.Request.Context(), page, limit)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": recs, "pagination": pagination})
}
