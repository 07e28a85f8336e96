package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	apierr "github.com/daariikk/myhelp-web/pkg/api/types/errors"
	"github.com/daariikk/myhelp-web/pkg/api/types/polyclinic"
	"github.com/daariikk/myhelp-web/pkg/myhelp"
	"github.com/daariikk/myhelp-web/pkg/session"
	"github.com/daariikk/myhelp-web/pkg/views"
)

const accountPath = "/polyclinic/auth/account"

func accountPage(c echo.Context, jar session.Jar, patient polyclinic.Patient, tab polyclinic.Tab) views.AccountPage {
	return views.AccountPage{
		Layout:       frame(c, jar, "Личный кабинет"),
		Patient:      patient,
		Tab:          tab,
		Appointments: polyclinic.FilterAppointments(patient.Appointments, tab),
		Form:         patient.Profile(),
		FieldErrors:  polyclinic.FieldErrors{},
	}
}

// AccountHandler serves GET /polyclinic/auth/account?tab=all|scheduled|completed.
//
// With edit=1, the profile is shown as a form.
func AccountHandler(client myhelp.Client, jar session.Jar) echo.HandlerFunc {
	return func(c echo.Context) error {
		p := patientOf(c)
		tab := polyclinic.ParseTab(c.QueryParam("tab"))

		patient, err := client.GetAccount(c.Request().Context(), p.AccessToken, p.PatientID)
		if errors.Is(err, myhelp.ErrUnauthorized) {
			return sessionExpired(c, jar)
		}
		if err != nil {
			return apierr.FromBackend(err, "Ошибка загрузки данных")
		}

		page := accountPage(c, jar, patient, tab)
		page.Editing = c.QueryParam("edit") == "1"
		return c.Render(http.StatusOK, views.Account, page)
	}
}

// UpdateAccountHandler serves POST /polyclinic/auth/account.
//
// Invalid profiles are shown again with messages per field.
func UpdateAccountHandler(client myhelp.Client, jar session.Jar) echo.HandlerFunc {
	return func(c echo.Context) error {
		p := patientOf(c)
		ctx := c.Request().Context()
		tab := polyclinic.ParseTab(c.QueryParam("tab"))

		form := polyclinic.Profile{}
		if err := c.Bind(&form); err != nil {
			return apierr.BadRequest("Некорректные данные формы", err)
		}
		form.Email = strings.TrimSpace(form.Email)

		patient, err := client.GetAccount(ctx, p.AccessToken, p.PatientID)
		if errors.Is(err, myhelp.ErrUnauthorized) {
			return sessionExpired(c, jar)
		}
		if err != nil {
			return apierr.FromBackend(err, "Ошибка загрузки данных")
		}

		rerender := func(code int, fe polyclinic.FieldErrors, reason string) error {
			page := accountPage(c, jar, patient, tab)
			page.Editing = true
			page.Form = form
			page.FieldErrors = fe
			page.Notice, page.Error = "", reason
			return c.Render(code, views.Account, page)
		}

		if fe := form.Validate(); !fe.Empty() {
			return rerender(http.StatusBadRequest, fe, "")
		}

		if _, err := client.UpdateAccount(ctx, p.AccessToken, p.PatientID, form); err != nil {
			if errors.Is(err, myhelp.ErrUnauthorized) {
				return sessionExpired(c, jar)
			}
			he := apierr.FromBackend(err, "Ошибка при обновлении данных")
			return rerender(he.Code, polyclinic.FieldErrors{}, apierr.Reason(he))
		}
		return seeOther(c, accountPath, flash(noticeKey, "Данные успешно обновлены", "tab", string(tab)))
	}
}

// appointmentAction checks the appointment of the patient, then calls do.
//
// # Args
//
// - param: name of path parameter of the appointment id.
//
// - allowed: tells whether do can be applied to the appointment. When it is not, deny is shown.
//
// - do: the action. Its error is shown with fallback when the API tells nothing.
//
// - done: notice after success.
func appointmentAction(
	client myhelp.Client,
	jar session.Jar,
	param string,
	allowed func(polyclinic.Appointment) bool,
	deny string,
	do func(c echo.Context, token string, appointmentID int) error,
	fallback string,
	done string,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		p := patientOf(c)
		ctx := c.Request().Context()
		tab := string(polyclinic.ParseTab(c.QueryParam("tab")))
		failed := func(msg string) error {
			return seeOther(c, accountPath, flash(errorKey, msg, "tab", tab))
		}

		id, ok := intParam(c, param)
		if !ok {
			return failed("Запись не найдена")
		}

		patient, err := client.GetAccount(ctx, p.AccessToken, p.PatientID)
		if errors.Is(err, myhelp.ErrUnauthorized) {
			return sessionExpired(c, jar)
		}
		if err != nil {
			return failed(backendReason(err, "Ошибка загрузки данных"))
		}

		appo, ok := patient.FindAppointment(id)
		if !ok {
			return failed("Запись не найдена")
		}
		if !allowed(appo) {
			return failed(deny)
		}

		if err := do(c, p.AccessToken, id); err != nil {
			if errors.Is(err, myhelp.ErrUnauthorized) {
				return sessionExpired(c, jar)
			}
			return failed(backendReason(err, fallback))
		}
		return seeOther(c, accountPath, flash(noticeKey, done, "tab", tab))
	}
}

// ErrRating is returned when a rating is not in 1..5.
var ErrRating = errors.New("rating should be 1 to 5")

func parseRating(s string) (int, error) {
	r, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrRating, s)
	}
	if r < 1 || 5 < r {
		return 0, fmt.Errorf("%w: %d", ErrRating, r)
	}
	return r, nil
}

// RateHandler serves POST /polyclinic/auth/account/appointments/:param/rate.
//
// Only completed appointments which are not rated yet can be rated.
func RateHandler(client myhelp.Client, jar session.Jar, param string) echo.HandlerFunc {
	act := appointmentAction(
		client, jar, param,
		polyclinic.Appointment.Rateable, "Эту запись нельзя оценить",
		func(c echo.Context, token string, id int) error {
			rating, err := parseRating(c.FormValue("rating"))
			if err != nil {
				return apierr.BadRequest("Оценка должна быть от 1 до 5", err)
			}
			return client.RateAppointment(c.Request().Context(), token, id, rating)
		},
		"Сервер вернул ошибку",
		"Спасибо за оценку!",
	)
	return func(c echo.Context) error {
		if _, err := parseRating(c.FormValue("rating")); err != nil {
			tab := string(polyclinic.ParseTab(c.QueryParam("tab")))
			return seeOther(c, accountPath, flash(errorKey, "Оценка должна быть от 1 до 5", "tab", tab))
		}
		return act(c)
	}
}

// CancelHandler serves POST /polyclinic/auth/account/appointments/:param/cancel.
//
// Only scheduled appointments can be canceled.
func CancelHandler(client myhelp.Client, jar session.Jar, param string) echo.HandlerFunc {
	return appointmentAction(
		client, jar, param,
		polyclinic.Appointment.Cancelable, "Эту запись нельзя отменить",
		func(c echo.Context, token string, id int) error {
			return client.CancelAppointment(c.Request().Context(), token, id)
		},
		"Ошибка при отмене записи",
		"Запись успешно отменена",
	)
}
