package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ridgeline-hq/hoa-backend/api/controllers"
	"github.com/ridgeline-hq/hoa-backend/api/middleware"
	"github.com/ridgeline-hq/hoa-backend/internal/contractors"
	"github.com/ridgeline-hq/hoa-backend/internal/documents"
	"github.com/ridgeline-hq/hoa-backend/internal/finance"
	"github.com/ridgeline-hq/hoa-backend/internal/maintenance"
	"github.com/ridgeline-hq/hoa-backend/internal/meetings"
	"github.com/ridgeline-hq/hoa-backend/internal/payments"
	"github.com/ridgeline-hq/hoa-backend/internal/properties"
	"github.com/ridgeline-hq/hoa-backend/internal/residents"
	"github.com/ridgeline-hq/hoa-backend/internal/units"
	"github.com/ridgeline-hq/hoa-backend/internal/users"
	"github.com/ridgeline-hq/hoa-backend/internal/violations"
	"github.com/ridgeline-hq/hoa-backend/pkg/config"
	"github.com/ridgeline-hq/hoa-backend/pkg/db"
	"github.com/ridgeline-hq/hoa-backend/pkg/logger"
	"github.com/ridgeline-hq/hoa-backend/pkg/metrics"
)

// Services bundles every domain service the router exposes.
type Services struct {
	Properties          properties.Service
	Units               units.Service
	Residents           residents.Service
	EnhancedResidents   residents.EnhancedService
	Users               users.Service
	Payments            payments.Service
	Contractors         contractors.Service
	Maintenance         maintenance.Service
	EnhancedMaintenance maintenance.EnhancedService
	Violations          violations.Service
	Meetings            meetings.Service
	Documents           documents.Service
	Finance             finance.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	client *db.Client,
	registry *prometheus.Registry,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.ActorRole(logg),
		middleware.Logging(logg),
	)
	if registry != nil {
		httpMetrics := metrics.NewHTTPMetrics(registry)
		r.Use(middleware.Metrics(httpMetrics))
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, client, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/ping", controllers.Ping())

		r.Route("/properties", func(r chi.Router) {
			r.Post("/", controllers.PropertyCreate(svcs.Properties, logg))
			r.Get("/", controllers.PropertyList(svcs.Properties, logg))
			r.Get("/{propertyID}", controllers.PropertyGet(svcs.Properties, logg))
			r.Patch("/{propertyID}", controllers.PropertyUpdate(svcs.Properties, logg))
			r.Delete("/{propertyID}", controllers.PropertyDelete(svcs.Properties, logg))
			r.Get("/{propertyID}/stats", controllers.PropertyStats(svcs.Properties, logg))
		})

		r.Route("/units", func(r chi.Router) {
			r.Post("/", controllers.UnitCreate(svcs.Units, logg))
			r.Get("/", controllers.UnitList(svcs.Units, logg))
			r.Get("/{unitID}", controllers.UnitGet(svcs.Units, logg))
			r.Patch("/{unitID}", controllers.UnitUpdate(svcs.Units, logg))
			r.Delete("/{unitID}", controllers.UnitDelete(svcs.Units, logg))
		})

		r.Route("/residents", func(r chi.Router) {
			r.Post("/", controllers.ResidentCreate(svcs.Residents, logg))
			r.Get("/", controllers.ResidentList(svcs.Residents, logg))
			r.Get("/{residentID}", controllers.ResidentGet(svcs.Residents, logg))
			r.Patch("/{residentID}", controllers.ResidentUpdate(svcs.Residents, logg))
			r.Delete("/{residentID}", controllers.ResidentDelete(svcs.Residents, logg))
			r.Get("/{residentID}/stats", controllers.ResidentStats(svcs.Residents, logg))
		})

		r.Route("/enhanced-residents", func(r chi.Router) {
			r.Post("/", controllers.EnhancedResidentCreate(svcs.EnhancedResidents, logg))
			r.Get("/", controllers.EnhancedResidentList(svcs.EnhancedResidents, logg))
			r.Get("/stats", controllers.EnhancedResidentStats(svcs.EnhancedResidents, logg))
			r.Get("/{residentID}", controllers.EnhancedResidentGet(svcs.EnhancedResidents, logg))
			r.Patch("/{residentID}", controllers.EnhancedResidentUpdate(svcs.EnhancedResidents, logg))
			r.Delete("/{residentID}", controllers.EnhancedResidentDelete(svcs.EnhancedResidents, logg))
			r.Post("/{residentID}/activate", controllers.EnhancedResidentActivate(svcs.EnhancedResidents, logg))
			r.Post("/{residentID}/deactivate", controllers.EnhancedResidentDeactivate(svcs.EnhancedResidents, logg))
			r.Post("/{residentID}/set-primary", controllers.EnhancedResidentSetPrimary(svcs.EnhancedResidents, logg))
			r.Get("/{residentID}/vehicles", controllers.EnhancedResidentVehicles(svcs.EnhancedResidents, logg))
			r.Get("/{residentID}/pets", controllers.EnhancedResidentPets(svcs.EnhancedResidents, logg))
			r.Get("/{residentID}/emergency-contact", controllers.EnhancedResidentEmergencyContact(svcs.EnhancedResidents, logg))
		})

		r.Route("/users", func(r chi.Router) {
			r.Post("/", controllers.UserCreate(svcs.Users, logg))
			r.Get("/", controllers.UserList(svcs.Users, logg))
			r.Get("/{userID}", controllers.UserGet(svcs.Users, logg))
			r.Patch("/{userID}", controllers.UserUpdate(svcs.Users, logg))
			r.Delete("/{userID}", controllers.UserDelete(svcs.Users, logg))
			r.Post("/{userID}/verify-email", controllers.UserVerifyEmail(svcs.Users, logg))
		})

		r.Route("/payments", func(r chi.Router) {
			r.Post("/", controllers.PaymentCreate(svcs.Payments, logg))
			r.Get("/", controllers.PaymentList(svcs.Payments, logg))
			r.Get("/stats", controllers.PaymentStats(svcs.Payments, logg))
			r.Get("/{paymentID}", controllers.PaymentGet(svcs.Payments, logg))
			r.Patch("/{paymentID}", controllers.PaymentUpdate(svcs.Payments, logg))
			r.Delete("/{paymentID}", controllers.PaymentDelete(svcs.Payments, logg))
		})

		r.Route("/contractors", func(r chi.Router) {
			r.Post("/", controllers.ContractorCreate(svcs.Contractors, logg))
			r.Get("/", controllers.ContractorList(svcs.Contractors, logg))
			r.Get("/stats", controllers.ContractorStats(svcs.Contractors, logg))
			r.Get("/{contractorID}", controllers.ContractorGet(svcs.Contractors, logg))
			r.Patch("/{contractorID}", controllers.ContractorUpdate(svcs.Contractors, logg))
			r.Delete("/{contractorID}", controllers.ContractorDelete(svcs.Contractors, logg))
		})

		r.Route("/maintenance-requests", func(r chi.Router) {
			r.Post("/", controllers.MaintenanceCreate(svcs.Maintenance, logg))
			r.Get("/", controllers.MaintenanceList(svcs.Maintenance, logg))
			r.Get("/stats", controllers.MaintenanceStats(svcs.Maintenance, logg))
			r.Get("/{requestID}", controllers.MaintenanceGet(svcs.Maintenance, logg))
			r.Patch("/{requestID}", controllers.MaintenanceUpdate(svcs.Maintenance, logg))
			r.Delete("/{requestID}", controllers.MaintenanceDelete(svcs.Maintenance, logg))
		})

		r.Route("/enhanced-maintenance-requests", func(r chi.Router) {
			r.Post("/", controllers.EnhancedMaintenanceCreate(svcs.EnhancedMaintenance, logg))
			r.Get("/", controllers.EnhancedMaintenanceList(svcs.EnhancedMaintenance, logg))
			r.Get("/stats", controllers.EnhancedMaintenanceStats(svcs.EnhancedMaintenance, logg))
			r.Get("/{requestID}", controllers.EnhancedMaintenanceGet(svcs.EnhancedMaintenance, logg))
			r.Patch("/{requestID}", controllers.EnhancedMaintenanceUpdate(svcs.EnhancedMaintenance, logg))
			r.Delete("/{requestID}", controllers.EnhancedMaintenanceDelete(svcs.EnhancedMaintenance, logg))
			r.Post("/{requestID}/assign-contractor", controllers.EnhancedMaintenanceAssign(svcs.EnhancedMaintenance, logg))
			r.Route("/{requestID}/work-logs", func(r chi.Router) {
				r.Post("/", controllers.WorkLogCreate(svcs.EnhancedMaintenance, logg))
				r.Get("/", controllers.WorkLogList(svcs.EnhancedMaintenance, logg))
				r.Get("/stats", controllers.WorkLogStats(svcs.EnhancedMaintenance, logg))
			})
		})

		r.Route("/maintenance-work-logs", func(r chi.Router) {
			r.Get("/", controllers.WorkLogListAll(svcs.EnhancedMaintenance, logg))
			r.Get("/{workLogID}", controllers.WorkLogGet(svcs.EnhancedMaintenance, logg))
			r.Patch("/{workLogID}", controllers.WorkLogUpdate(svcs.EnhancedMaintenance, logg))
			r.Delete("/{workLogID}", controllers.WorkLogDelete(svcs.EnhancedMaintenance, logg))
		})

		r.Route("/violations", func(r chi.Router) {
			r.Post("/", controllers.ViolationCreate(svcs.Violations, logg))
			r.Get("/", controllers.ViolationList(svcs.Violations, logg))
			r.Get("/stats", controllers.ViolationStats(svcs.Violations, logg))
			r.Get("/{violationID}", controllers.ViolationGet(svcs.Violations, logg))
			r.Patch("/{violationID}", controllers.ViolationUpdate(svcs.Violations, logg))
			r.Delete("/{violationID}", controllers.ViolationDelete(svcs.Violations, logg))
			r.Post("/{violationID}/resolve", controllers.ViolationResolve(svcs.Violations, logg))
		})

		r.Route("/meetings", func(r chi.Router) {
			r.Post("/", controllers.MeetingCreate(svcs.Meetings, logg))
			r.Get("/", controllers.MeetingList(svcs.Meetings, logg))
			r.Get("/{meetingID}", controllers.MeetingGet(svcs.Meetings, logg))
			r.Patch("/{meetingID}", controllers.MeetingUpdate(svcs.Meetings, logg))
			r.Delete("/{meetingID}", controllers.MeetingDelete(svcs.Meetings, logg))
		})

		r.Route("/documents", func(r chi.Router) {
			r.Post("/", controllers.DocumentCreate(svcs.Documents, logg))
			r.Get("/", controllers.DocumentList(svcs.Documents, logg))
			r.Get("/{documentID}", controllers.DocumentGet(svcs.Documents, logg))
			r.Patch("/{documentID}", controllers.DocumentUpdate(svcs.Documents, logg))
			r.Delete("/{documentID}", controllers.DocumentDelete(svcs.Documents, logg))
		})

		r.Route("/financial-accounts", func(r chi.Router) {
			r.Post("/", controllers.AccountCreate(svcs.Finance, logg))
			r.Get("/", controllers.AccountList(svcs.Finance, logg))
			r.Get("/{accountID}", controllers.AccountGet(svcs.Finance, logg))
			r.Patch("/{accountID}", controllers.AccountUpdate(svcs.Finance, logg))
			r.Delete("/{accountID}", controllers.AccountDelete(svcs.Finance, logg))
		})

		r.Route("/management-fees", func(r chi.Router) {
			r.Post("/", controllers.FeeCreate(svcs.Finance, logg))
			r.Get("/", controllers.FeeList(svcs.Finance, logg))
			r.Get("/{feeID}", controllers.FeeGet(svcs.Finance, logg))
			r.Patch("/{feeID}", controllers.FeeUpdate(svcs.Finance, logg))
			r.Delete("/{feeID}", controllers.FeeDelete(svcs.Finance, logg))
		})
	})

	return r
}
