// File: handlers/handlers.go
package handlers

import (
	adminSvc "github.com/sripavantejb/GuideXpert-Backend/services/admin"
	"github.com/sripavantejb/GuideXpert-Backend/services/attendance"
	"github.com/sripavantejb/GuideXpert-Backend/services/influencer"
	"github.com/sripavantejb/GuideXpert-Backend/services/notify"
	"github.com/sripavantejb/GuideXpert-Backend/services/otp"
	"github.com/sripavantejb/GuideXpert-Backend/services/registration"
	"github.com/sripavantejb/GuideXpert-Backend/services/slots"
)

// Service singletons, wired in main after config, database and cache init.
var (
	OTPService          otp.Service
	RegistrationService registration.Service
	SlotResolver        slots.Resolver
	AdminService        adminSvc.Service
	InfluencerService   influencer.Service
	AttendanceService   attendance.Service
	Scheduler           notify.Scheduler
)
