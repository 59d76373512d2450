// File: handlers/admin.go
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sripavantejb/GuideXpert-Backend/utils"
)

// AdminLoginHandler exchanges operator credentials for a bearer JWT.
func AdminLoginHandler(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Username and password are required."})
		return
	}

	token, err := AdminService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "token": token})
}

// CreateAdminHandler provisions a new operator account. Only an
// authenticated admin can reach this.
func CreateAdminHandler(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
		Name     string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "username and password are required."})
		return
	}

	adm, err := AdminService.CreateAdmin(c.Request.Context(), req.Username, req.Password, req.Name)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "admin": adm})
}

// UpdateSlotConfigHandler toggles a weekly slot on or off.
func UpdateSlotConfigHandler(c *gin.Context) {
	var req struct {
		Enabled *bool `json:"enabled" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "enabled is required."})
		return
	}

	slotID := c.Param("slotId")
	if err := AdminService.SetSlotEnabled(c.Request.Context(), slotID, *req.Enabled); err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "slotId": slotID, "enabled": *req.Enabled})
}

// UpdateSlotOverrideHandler pins a slot's availability for one date.
func UpdateSlotOverrideHandler(c *gin.Context) {
	var req struct {
		Date    string `json:"date" binding:"required"`
		SlotID  string `json:"slotId" binding:"required"`
		Enabled *bool  `json:"enabled" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "date, slotId and enabled are required."})
		return
	}

	if err := AdminService.SetDateOverride(c.Request.Context(), req.Date, req.SlotID, *req.Enabled); err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"date":    req.Date,
		"slotId":  req.SlotID,
		"enabled": *req.Enabled,
	})
}

// ResendNotificationHandler re-arms one reminder for a phone; the next sweep
// sends it again.
func ResendNotificationHandler(c *gin.Context) {
	var req struct {
		Phone string `json:"phone" binding:"required"`
		Type  string `json:"type" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "phone and type are required."})
		return
	}

	if err := AdminService.ResendNotification(c.Request.Context(), req.Phone, req.Type); err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// BookingCountsHandler aggregates registered bookings per day and slot.
// from/to are inclusive IST calendar dates; the default window is today
// through a week out.
func BookingCountsHandler(c *gin.Context) {
	now := time.Now()
	fromDate := c.DefaultQuery("from", utils.ISTCalendarDate(now))
	toDate := c.DefaultQuery("to", utils.ISTCalendarDate(now.AddDate(0, 0, 7)))

	from, _, ok := utils.ISTDayRangeUTC(fromDate)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "from must be a valid YYYY-MM-DD."})
		return
	}
	_, to, ok := utils.ISTDayRangeUTC(toDate)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "to must be a valid YYYY-MM-DD."})
		return
	}

	counts, err := AdminService.BookingCounts(c.Request.Context(), from, to)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "counts": counts})
}
