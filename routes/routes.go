package routes

import (
	"net/http"

	"grantsproject/handlers"
	"grantsproject/middlewares"
)

// SetupRoutes wires every API route behind the JWT middleware.
func SetupRoutes(
	grantHandler *handlers.GrantHandler,
	detailHandler *handlers.GrantDetailHandler,
	dashboardHandler *handlers.DashboardHandler,
	calendarHandler *handlers.CalendarHandler,
	notificationHandler *handlers.NotificationHandler,
	fixtureHandler *handlers.FixtureHandler,
	jwtSecret string,
) *http.ServeMux {
	mux := http.NewServeMux()

	jwtMiddleware := middlewares.JWTMiddleware(jwtSecret)
	protected := func(h http.HandlerFunc) http.Handler {
		return jwtMiddleware(http.HandlerFunc(h))
	}

	// Grant CRUD and cascade delete
	mux.Handle("POST /api/grants", protected(grantHandler.CreateGrant))
	mux.Handle("GET /api/grants", protected(grantHandler.GetAllGrants))
	mux.Handle("GET /api/grants/{id}", protected(grantHandler.GetGrantByID))
	mux.Handle("PUT /api/grants/{id}", protected(grantHandler.UpdateGrant))
	mux.Handle("DELETE /api/grants/{id}", protected(grantHandler.DeleteGrant))

	// Per-grant derived metrics
	mux.Handle("GET /api/grants/{id}/metrics", protected(dashboardHandler.GetGrantMetrics))

	// Pledges
	mux.Handle("POST /api/grants/{id}/pledges", protected(detailHandler.CreatePledge))
	mux.Handle("GET /api/grants/{id}/pledges", protected(detailHandler.ListPledges))
	mux.Handle("PUT /api/grants/{id}/pledges/{pledgeId}", protected(detailHandler.UpdatePledge))
	mux.Handle("DELETE /api/grants/{id}/pledges/{pledgeId}", protected(detailHandler.DeletePledge))

	// Gifts
	mux.Handle("POST /api/grants/{id}/gifts", protected(detailHandler.CreateGift))
	mux.Handle("GET /api/grants/{id}/gifts", protected(detailHandler.ListGifts))
	mux.Handle("PUT /api/grants/{id}/gifts/{giftId}", protected(detailHandler.UpdateGift))
	mux.Handle("DELETE /api/grants/{id}/gifts/{giftId}", protected(detailHandler.DeleteGift))

	// Addresses
	mux.Handle("POST /api/grants/{id}/addresses", protected(detailHandler.CreateAddress))
	mux.Handle("GET /api/grants/{id}/addresses", protected(detailHandler.ListAddresses))
	mux.Handle("PUT /api/grants/{id}/addresses/{addressId}", protected(detailHandler.UpdateAddress))
	mux.Handle("DELETE /api/grants/{id}/addresses/{addressId}", protected(detailHandler.DeleteAddress))

	// Tracking sections and tasks
	mux.Handle("POST /api/grants/{id}/sections", protected(detailHandler.CreateSection))
	mux.Handle("GET /api/grants/{id}/sections", protected(detailHandler.ListSections))
	mux.Handle("PUT /api/grants/{id}/sections/{sectionId}", protected(detailHandler.UpdateSection))
	mux.Handle("DELETE /api/grants/{id}/sections/{sectionId}", protected(detailHandler.DeleteSection))
	mux.Handle("POST /api/grants/{id}/sections/{sectionId}/tasks", protected(detailHandler.CreateTask))
	mux.Handle("GET /api/grants/{id}/sections/{sectionId}/tasks", protected(detailHandler.ListTasks))
	mux.Handle("PUT /api/grants/{id}/sections/{sectionId}/tasks/{taskId}", protected(detailHandler.UpdateTask))
	mux.Handle("DELETE /api/grants/{id}/sections/{sectionId}/tasks/{taskId}", protected(detailHandler.DeleteTask))

	// Manual calendar events
	mux.Handle("POST /api/grants/{id}/events", protected(detailHandler.CreateEvent))
	mux.Handle("GET /api/grants/{id}/events", protected(detailHandler.ListEvents))
	mux.Handle("PUT /api/grants/{id}/events/{eventId}", protected(detailHandler.UpdateEvent))
	mux.Handle("DELETE /api/grants/{id}/events/{eventId}", protected(detailHandler.DeleteEvent))

	// Grant file attachments
	mux.Handle("POST /api/grants/{id}/attachments", protected(grantHandler.UploadAttachment))
	mux.Handle("GET /api/grants/attachments/{fileId}/download", protected(grantHandler.DownloadAttachment))
	mux.Handle("DELETE /api/grants/{id}/attachments/{fileId}", protected(grantHandler.DeleteAttachment))

	// Dashboard and analytics
	mux.Handle("GET /api/dashboard", protected(dashboardHandler.GetDashboard))
	mux.Handle("GET /api/dashboard/status-breakdown", protected(dashboardHandler.GetStatusBreakdown))

	// Merged calendar
	mux.Handle("GET /api/calendar", protected(calendarHandler.GetMonthView))

	// Notifications
	mux.Handle("GET /api/notifications", protected(notificationHandler.ListNotifications))
	mux.Handle("POST /api/notifications", protected(notificationHandler.CreateNotification))
	mux.Handle("DELETE /api/notifications", protected(notificationHandler.ClearNotifications))

	// Static fixtures
	mux.Handle("GET /api/fixtures/{name}", protected(fixtureHandler.GetFixture))

	return mux
}
