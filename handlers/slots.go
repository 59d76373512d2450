// File: handlers/slots.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sripavantejb/GuideXpert-Backend/utils"
)

// DemoSlotsHandler lists the bookable slots. Without a date it returns the
// cutoff-rolled candidates for right now; with ?date=YYYY-MM-DD it returns
// that day's catalogue.
func DemoSlotsHandler(c *gin.Context) {
	ctx := c.Request.Context()

	var err error
	var list interface{}
	if date := c.Query("date"); date != "" {
		list, err = SlotResolver.SlotsForDate(ctx, date)
	} else {
		list, err = SlotResolver.SlotsForNow(ctx)
	}
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "slots": list})
}
