package main

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/daariikk/myhelp-web/cmd/polyclinic/handlers"
	"github.com/daariikk/myhelp-web/pkg/myhelp"
	"github.com/daariikk/myhelp-web/pkg/photos"
	"github.com/daariikk/myhelp-web/pkg/session"
	"github.com/daariikk/myhelp-web/pkg/views"
)

// server is what handlers depend on.
type server struct {
	client     myhelp.Client
	jar        session.Jar
	store      photos.Store
	apiRoot    string
	httpclient *http.Client
	bcryptCost int

	// uploadLimit bounds request bodies of photo uploads, like "10M".
	uploadLimit string

	now func() time.Time
}

// routes registers handlers to e.
func routes(e *echo.Echo, s server) {
	e.StaticFS("/static", views.Static())
	if local, ok := s.store.(*photos.Local); ok {
		e.Static(local.URLPrefix(), local.Dir())
	}

	e.GET("/", func(c echo.Context) error {
		return c.Redirect(http.StatusFound, "/polyclinic")
	})

	adminPages := handlers.AdminGuard(s.client, s.jar, s.now, handlers.RedirectTo("/polyclinic/admin/auth"))
	adminAPI := handlers.AdminGuard(s.client, s.jar, s.now, handlers.Unauthorized)
	patientPages := handlers.PatientGuard(s.jar, handlers.RedirectTo("/polyclinic/auth"))
	upload := middleware.BodyLimit(s.uploadLimit)

	{
		e.POST("/api/auth/login", handlers.LoginAPIHandler(s.client, s.jar))
		e.POST("/api/auth/register", handlers.RegisterAPIHandler(s.client, s.bcryptCost))
		e.POST("/api/auth/logout", handlers.LogoutAPIHandler(s.jar))
		e.GET("/api/auth/check", handlers.CheckAPIHandler(s.jar))

		e.POST("/api/admin/login", handlers.AdminLoginAPIHandler(s.client, s.jar))
		e.POST("/api/admin/logout", handlers.AdminLogoutAPIHandler(s.jar))

		e.POST("/api/upload", handlers.UploadAPIHandler(s.store), upload, adminAPI)
		e.POST("/api/photo", handlers.DeletePhotoAPIHandler(s.store), adminAPI)

		e.Any("/api/myhelp/*", handlers.BackendProxy(s.apiRoot, s.httpclient, s.jar))
	}

	{
		doctorID := "doctorID"
		e.GET("/polyclinic", handlers.HomeHandler(s.client, s.jar))
		e.GET("/polyclinic/doctors", handlers.DoctorsHandler(s.client, s.jar))
		e.GET("/polyclinic/doctors/specialization/:id", handlers.SpecializationDoctorsHandler(s.client, s.jar, "id"))
		e.GET("/polyclinic/doctors/:doctorID/schedule", handlers.ScheduleHandler(s.client, s.jar, s.now, doctorID))
		e.POST("/polyclinic/doctors/:doctorID/schedule/book", handlers.BookHandler(s.client, s.jar, doctorID), patientPages)
	}

	{
		e.GET("/polyclinic/auth", handlers.LoginPageHandler(s.jar))
		e.POST("/polyclinic/auth", handlers.LoginFormHandler(s.client, s.jar))
		e.POST("/polyclinic/auth/logout", handlers.LogoutFormHandler(s.jar))
		e.GET("/polyclinic/auth/register", handlers.RegisterPageHandler(s.jar))
		e.POST("/polyclinic/auth/register", handlers.RegisterFormHandler(s.client, s.jar, s.bcryptCost))

		appointmentID := "appointmentID"
		e.GET("/polyclinic/auth/account", handlers.AccountHandler(s.client, s.jar), patientPages)
		e.POST("/polyclinic/auth/account", handlers.UpdateAccountHandler(s.client, s.jar), patientPages)
		e.POST("/polyclinic/auth/account/appointments/:appointmentID/rate", handlers.RateHandler(s.client, s.jar, appointmentID), patientPages)
		e.POST("/polyclinic/auth/account/appointments/:appointmentID/cancel", handlers.CancelHandler(s.client, s.jar, appointmentID), patientPages)
	}

	{
		e.GET("/polyclinic/admin/auth", handlers.AdminLoginPageHandler())
		e.POST("/polyclinic/admin/auth", handlers.AdminLoginFormHandler(s.client, s.jar))
		e.POST("/polyclinic/admin/logout", handlers.AdminLogoutFormHandler(s.jar))

		specID, doctorID := "id", "doctorID"
		e.GET("/polyclinic/admin", handlers.AdminHandler(s.client), adminPages)
		e.POST("/polyclinic/admin/specializations", handlers.CreateSpecializationHandler(s.client), adminPages)
		e.GET("/polyclinic/admin/specializations/:id", handlers.SpecializationHandler(s.client, specID), adminPages)
		e.POST("/polyclinic/admin/specializations/:id/delete", handlers.DeleteSpecializationHandler(s.client, specID), adminPages)
		e.POST(
			"/polyclinic/admin/specializations/:id/doctors",
			handlers.CreateDoctorHandler(s.client, s.store, specID), upload, adminPages,
		)
		e.POST(
			"/polyclinic/admin/specializations/:id/doctors/:doctorID/delete",
			handlers.DeleteDoctorHandler(s.client, s.store, specID, doctorID), adminPages,
		)
		e.POST(
			"/polyclinic/admin/specializations/:id/doctors/:doctorID/schedule",
			handlers.CreateScheduleHandler(s.client, specID, doctorID), adminPages,
		)
	}
}
