// File: handlers/form.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sripavantejb/GuideXpert-Backend/models"
	"github.com/sripavantejb/GuideXpert-Backend/services/registration"
	"github.com/sripavantejb/GuideXpert-Backend/utils"
)

// submissionView is the public projection of a submission. OTP internals and
// scheduler flags stay server-side.
func submissionView(sub *models.Submission) gin.H {
	view := gin.H{
		"fullName":          sub.FullName,
		"phone":             sub.Phone,
		"occupation":        sub.Occupation,
		"currentStep":       sub.CurrentStep,
		"applicationStatus": sub.ApplicationStatus,
		"isRegistered":      sub.IsRegistered,
	}
	if sub.SelectedSlot != "" {
		view["selectedSlot"] = sub.SelectedSlot
		view["slotDate"] = sub.SlotDate()
	}
	if sub.BookingRef != "" {
		view["bookingRef"] = sub.BookingRef
	}
	return view
}

// Step1Handler records the identity step and creates the submission.
func Step1Handler(c *gin.Context) {
	var req struct {
		FullName       string              `json:"fullName" binding:"required"`
		WhatsappNumber string              `json:"whatsappNumber" binding:"required"`
		Occupation     string              `json:"occupation" binding:"required"`
		Attribution    *models.Attribution `json:"attribution"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "fullName, whatsappNumber and occupation are required."})
		return
	}

	sub, err := RegistrationService.SaveStep1(c.Request.Context(), registration.Step1Request{
		FullName:    req.FullName,
		Phone:       utils.NormalizePhone(req.WhatsappNumber),
		Occupation:  req.Occupation,
		Attribution: req.Attribution,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "Step 1 saved.",
		"submission": submissionView(sub),
	})
}

// Step2Handler records the OTP-verified gate.
func Step2Handler(c *gin.Context) {
	var req struct {
		Phone string `json:"phone" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Phone number is required."})
		return
	}

	sub, err := RegistrationService.SaveStep2(c.Request.Context(), utils.NormalizePhone(req.Phone))
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "Phone verified.",
		"submission": submissionView(sub),
	})
}

// Step3Handler books the selected demo slot and reports which booking
// notifications went out on the fast path.
func Step3Handler(c *gin.Context) {
	var req struct {
		Phone        string `json:"phone" binding:"required"`
		SelectedSlot string `json:"selectedSlot" binding:"required"`
		SlotDate     string `json:"slotDate"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Phone number and slot are required."})
		return
	}

	sub, dispatch, err := RegistrationService.SaveStep3(c.Request.Context(), utils.NormalizePhone(req.Phone), req.SelectedSlot, req.SlotDate)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "Slot booked successfully.",
		"submission": submissionView(sub),
		"notifications": gin.H{
			"confirmation":  dispatch.Confirmation,
			"reminder4h":    dispatch.Reminder4h,
			"meetLink1h":    dispatch.MeetLink1h,
			"reminder30Min": dispatch.Reminder30Min,
		},
	})
}

// PostRegistrationHandler records the optional survey step.
func PostRegistrationHandler(c *gin.Context) {
	var req struct {
		Phone         string `json:"phone" binding:"required"`
		InterestLevel int    `json:"interestLevel" binding:"required"`
		Email         string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Phone number and interest level are required."})
		return
	}

	sub, err := RegistrationService.SavePostRegistration(c.Request.Context(), registration.PostRegistrationRequest{
		Phone:         utils.NormalizePhone(req.Phone),
		InterestLevel: req.InterestLevel,
		Email:         req.Email,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "Thank you! Your registration is complete.",
		"submission": submissionView(sub),
	})
}

// StatusHandler returns the funnel position for a phone so the client can
// resume a half-finished form.
func StatusHandler(c *gin.Context) {
	phone := utils.NormalizePhone(c.Param("phone"))

	sub, err := RegistrationService.Status(c.Request.Context(), phone)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"submission": submissionView(sub),
	})
}
