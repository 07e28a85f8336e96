package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	apierr "github.com/daariikk/myhelp-web/pkg/api/types/errors"
	"github.com/daariikk/myhelp-web/pkg/api/types/polyclinic"
	"github.com/daariikk/myhelp-web/pkg/myhelp"
	"github.com/daariikk/myhelp-web/pkg/session"
	"github.com/daariikk/myhelp-web/pkg/views"
)

// HomeHandler serves GET /polyclinic.
func HomeHandler(client myhelp.Client, jar session.Jar) echo.HandlerFunc {
	return func(c echo.Context) error {
		page := views.HomePage{Layout: frame(c, jar, "")}

		specs, err := client.ListSpecializations(c.Request().Context())
		if err != nil {
			c.Logger().Warnf("listing specializations: %s", err)
			page.LoadError = "Не удалось загрузить данные"
		}
		page.Specializations = specs
		return c.Render(http.StatusOK, views.Home, page)
	}
}

// DoctorsHandler serves GET /polyclinic/doctors.
func DoctorsHandler(client myhelp.Client, jar session.Jar) echo.HandlerFunc {
	return func(c echo.Context) error {
		page := views.DoctorsPage{Layout: frame(c, jar, "Врачи"), Heading: "Наши врачи"}

		doctors, err := client.ListDoctors(c.Request().Context())
		if err != nil {
			c.Logger().Warnf("listing doctors: %s", err)
			page.LoadError = "Не удалось загрузить данные врачей"
		}
		page.Doctors = doctors
		return c.Render(http.StatusOK, views.Doctors, page)
	}
}

// SpecializationDoctorsHandler serves GET /polyclinic/doctors/specialization/:param.
//
// The heading names the specialization after the first doctor listed.
func SpecializationDoctorsHandler(client myhelp.Client, jar session.Jar, param string) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := intParam(c, param)
		if !ok {
			return apierr.NotFound("Специализация не найдена")
		}

		page := views.DoctorsPage{Layout: frame(c, jar, "Врачи"), Heading: "Наши врачи"}
		doctors, err := client.ListDoctorsBySpecialization(c.Request().Context(), "", id)
		switch merr, isAPIError := myhelp.AsError(err); {
		case err == nil:
		case isAPIError && merr.Enveloped():
			// the API has nothing to list.
			doctors = nil
		default:
			c.Logger().Warnf("listing doctors of specialization %d: %s", id, err)
			page.LoadError = "Не удалось загрузить данные врачей"
		}
		page.Doctors = doctors
		if 0 < len(doctors) && doctors[0].Specialization != "" {
			page.Heading = "Врачи по специализации: " + doctors[0].Specialization
		}
		return c.Render(http.StatusOK, views.Doctors, page)
	}
}

// ScheduleHandler serves GET /polyclinic/doctors/:param/schedule?date=YYYY-MM-DD.
//
// Without date, or with malformed one, slots of today are shown.
func ScheduleHandler(client myhelp.Client, jar session.Jar, now func() time.Time, param string) echo.HandlerFunc {
	return func(c echo.Context) error {
		doctorID, ok := intParam(c, param)
		if !ok {
			return apierr.NotFound("Врач не найден")
		}

		today := now().Format(polyclinic.DateLayout)
		date := c.QueryParam("date")
		if _, err := time.Parse(polyclinic.DateLayout, date); err != nil {
			date = today
		}

		info, err := client.GetSchedule(c.Request().Context(), doctorID, date)
		if err != nil {
			return scheduleError(err)
		}

		return c.Render(http.StatusOK, views.Schedule, views.SchedulePage{
			Layout:  frame(c, jar, info.Doctor.FullName()),
			Doctor:  info.Doctor,
			Date:    date,
			MinDate: today,
			Records: info.Schedule.Records,
		})
	}
}

func scheduleError(err error) error {
	merr, ok := myhelp.AsError(err)
	if !ok {
		return apierr.BadGateway(err)
	}
	switch merr.StatusCode {
	case http.StatusNotFound:
		return apierr.NotFound("Врач не найден")
	case http.StatusInternalServerError:
		return apierr.InternalServerError("Ошибка на сервере", err)
	default:
		return apierr.WithStatus(merr.StatusCode, "Произошла ошибка", err)
	}
}

// BookHandler serves POST /polyclinic/doctors/:param/schedule/book.
//
// Form fields are "date" (YYYY-MM-DD) and "time", start of the slot.
func BookHandler(client myhelp.Client, jar session.Jar, param string) echo.HandlerFunc {
	return func(c echo.Context) error {
		doctorID, ok := intParam(c, param)
		if !ok {
			return apierr.NotFound("Врач не найден")
		}
		p := patientOf(c)

		date := strings.TrimSpace(c.FormValue("date"))
		clock := strings.TrimSpace(c.FormValue("time"))
		back := fmt.Sprintf("/polyclinic/doctors/%d/schedule", doctorID)

		if _, err := time.Parse(polyclinic.DateLayout, date); err != nil || clock == "" {
			return seeOther(c, back, flash(errorKey, "Ошибка при создании записи", "date", date))
		}

		err := client.CreateAppointment(c.Request().Context(), p.AccessToken, polyclinic.AppointmentRequest{
			DoctorID:  doctorID,
			PatientID: p.PatientID,
			Date:      date,
			Time:      polyclinic.NormalizeClock(clock),
		})
		if errors.Is(err, myhelp.ErrUnauthorized) {
			return sessionExpired(c, jar)
		}
		if err != nil {
			return seeOther(c, back, flash(errorKey, backendReason(err, "Ошибка при создании записи"), "date", date))
		}
		return seeOther(c, back, flash(noticeKey, "Запись успешно создана!", "date", date))
	}
}

// sessionExpired ends the patient session rejected by the API, and leads to the login page.
func sessionExpired(c echo.Context, jar session.Jar) error {
	jar.ClearPatient(c)
	return seeOther(c, "/polyclinic/auth", flash(errorKey, "Сессия истекла, войдите снова"))
}
