// File: handlers/otp.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sripavantejb/GuideXpert-Backend/services/registration"
	"github.com/sripavantejb/GuideXpert-Backend/utils"
)

// SendOTPHandler issues an OTP to a phone, subject to resend cooldown and
// the rolling rate window. Name and occupation, when present, re-enter
// step 1 in the same call so a client can combine the two.
func SendOTPHandler(c *gin.Context) {
	var req struct {
		Phone      string `json:"phone" binding:"required"`
		FullName   string `json:"fullName"`
		Occupation string `json:"occupation"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Phone number is required."})
		return
	}

	phone := utils.NormalizePhone(req.Phone)
	if !utils.IsValidPhone(phone) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Please provide a valid 10-digit phone number."})
		return
	}

	if req.FullName != "" {
		_, err := RegistrationService.SaveStep1(c.Request.Context(), registration.Step1Request{
			FullName:   req.FullName,
			Phone:      phone,
			Occupation: req.Occupation,
		})
		if err != nil {
			utils.RespondError(c, err)
			return
		}
	}

	if err := OTPService.CanSend(c.Request.Context(), phone); err != nil {
		utils.RespondError(c, err)
		return
	}
	if err := OTPService.Issue(c.Request.Context(), phone); err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "OTP sent successfully."})
}

// VerifyOTPHandler checks a submitted code and, on success, opens the
// short verification grace used by steps 2 and 3.
func VerifyOTPHandler(c *gin.Context) {
	var req struct {
		Phone string `json:"phone" binding:"required"`
		OTP   string `json:"otp" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Phone number and OTP are required."})
		return
	}

	phone := utils.NormalizePhone(req.Phone)
	if !utils.IsValidPhone(phone) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Please provide a valid 10-digit phone number."})
		return
	}

	if err := OTPService.Verify(c.Request.Context(), phone, req.OTP); err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "OTP verified successfully."})
}
