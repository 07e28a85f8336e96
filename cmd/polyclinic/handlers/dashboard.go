package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	apierr "github.com/daariikk/myhelp-web/pkg/api/types/errors"
	"github.com/daariikk/myhelp-web/pkg/api/types/polyclinic"
	"github.com/daariikk/myhelp-web/pkg/myhelp"
	"github.com/daariikk/myhelp-web/pkg/photos"
	"github.com/daariikk/myhelp-web/pkg/views"
)

const adminPath = "/polyclinic/admin"

func specializationPath(id int) string {
	return fmt.Sprintf("%s/specializations/%d", adminPath, id)
}

func adminPage(c echo.Context, client myhelp.Client) views.AdminPage {
	page := views.AdminPage{Layout: adminFrame(c, "Специализации")}
	specs, err := client.ListSpecializations(c.Request().Context())
	if err != nil {
		c.Logger().Warnf("listing specializations: %s", err)
		page.LoadError = "Ошибка при загрузке специализаций"
	}
	page.Specializations = specs
	return page
}

// AdminHandler serves GET /polyclinic/admin.
func AdminHandler(client myhelp.Client) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.Render(http.StatusOK, views.Admin, adminPage(c, client))
	}
}

// CreateSpecializationHandler serves POST /polyclinic/admin/specializations.
func CreateSpecializationHandler(client myhelp.Client) echo.HandlerFunc {
	return func(c echo.Context) error {
		spec := polyclinic.SpecializationSpec{}
		if err := c.Bind(&spec); err != nil {
			return apierr.BadRequest("Некорректные данные формы", err)
		}

		fail := func(code int, reason string) error {
			page := adminPage(c, client)
			page.Form = spec
			page.Notice, page.Error = "", reason
			return c.Render(code, views.Admin, page)
		}

		if err := spec.Validate(); err != nil {
			return fail(http.StatusBadRequest, "Заполните обязательные поля")
		}
		if _, err := client.CreateSpecialization(c.Request().Context(), adminToken(c), spec); err != nil {
			he := apierr.FromBackend(err, "Ошибка при добавлении")
			return fail(he.Code, apierr.Reason(he))
		}
		return seeOther(c, adminPath, flash(noticeKey, "Специализация добавлена"))
	}
}

// DeleteSpecializationHandler serves POST /polyclinic/admin/specializations/:param/delete.
func DeleteSpecializationHandler(client myhelp.Client, param string) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := intParam(c, param)
		if !ok {
			return seeOther(c, adminPath, flash(errorKey, "Специализация не найдена"))
		}
		if err := client.DeleteSpecialization(c.Request().Context(), adminToken(c), id); err != nil {
			return seeOther(c, adminPath, flash(errorKey, backendReason(err, "Ошибка при удалении")))
		}
		return seeOther(c, adminPath, flash(noticeKey, "Специализация удалена"))
	}
}

func specializationPage(c echo.Context, client myhelp.Client, id int) views.AdminSpecializationPage {
	ctx := c.Request().Context()
	token := adminToken(c)
	page := views.AdminSpecializationPage{
		Layout:           adminFrame(c, "Врачи специализации"),
		SpecializationID: id,
		Heading:          fmt.Sprintf("#%d", id),
	}

	if specs, err := client.ListSpecializations(ctx); err == nil {
		if s, ok := polyclinic.FindSpecialization(specs, id); ok {
			page.Heading = s.Specialization
			page.Form.Specialization = s.SpecializationDoctor
		}
	}

	doctors, err := client.ListDoctorsBySpecialization(ctx, token, id)
	if merr, ok := myhelp.AsError(err); err != nil && !(ok && merr.Enveloped()) {
		c.Logger().Warnf("listing doctors of specialization %d: %s", id, err)
		page.LoadError = "Ошибка при загрузке врачей"
	}
	page.Doctors = doctors
	return page
}

// SpecializationHandler serves GET /polyclinic/admin/specializations/:param.
func SpecializationHandler(client myhelp.Client, param string) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := intParam(c, param)
		if !ok {
			return apierr.NotFound("Специализация не найдена")
		}
		return c.Render(http.StatusOK, views.AdminSpecialization, specializationPage(c, client, id))
	}
}

// photoField is the name of the file field of the doctor form.
const photoField = "photo_file"

// CreateDoctorHandler serves POST /polyclinic/admin/specializations/:param/doctors.
//
// The form is multipart. An uploaded photo is stored in store.
// Without one, the default photo is used.
func CreateDoctorHandler(client myhelp.Client, store photos.Store, param string) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := intParam(c, param)
		if !ok {
			return apierr.NotFound("Специализация не найдена")
		}
		ctx := c.Request().Context()

		spec := polyclinic.DoctorSpec{}
		if err := c.Bind(&spec); err != nil {
			return apierr.BadRequest("Некорректные данные формы", err)
		}

		fail := func(code int, reason string) error {
			page := specializationPage(c, client, id)
			page.Form = spec
			page.Form.Photo = ""
			page.Notice, page.Error = "", reason
			return c.Render(code, views.AdminSpecialization, page)
		}

		if err := spec.Validate(); err != nil {
			return fail(http.StatusBadRequest, "Заполните обязательные поля")
		}

		spec.Photo = polyclinic.DefaultPhoto
		uploaded := ""
		if fh, err := c.FormFile(photoField); err == nil && fh.Size > 0 {
			path, err := savePhoto(c, store, fh)
			if err != nil {
				c.Logger().Warnf("saving photo: %s", err)
				return fail(http.StatusBadRequest, "Не удалось загрузить изображение")
			}
			spec.Photo = path
			uploaded = path
		} else if err != nil && !errors.Is(err, http.ErrMissingFile) {
			return fail(http.StatusBadRequest, "Не удалось загрузить изображение")
		}

		if _, err := client.CreateDoctor(ctx, adminToken(c), spec); err != nil {
			if uploaded != "" {
				removePhoto(ctx, c, store, uploaded)
			}
			he := apierr.FromBackend(err, "Ошибка при добавлении врача")
			return fail(he.Code, apierr.Reason(he))
		}
		return seeOther(c, specializationPath(id), flash(noticeKey, "Врач добавлен"))
	}
}

// DeleteDoctorHandler serves POST /polyclinic/admin/specializations/:specParam/doctors/:doctorParam/delete.
//
// The photo of the doctor is removed too, unless it is the default one.
func DeleteDoctorHandler(client myhelp.Client, store photos.Store, specParam string, doctorParam string) echo.HandlerFunc {
	return func(c echo.Context) error {
		specID, ok := intParam(c, specParam)
		if !ok {
			return apierr.NotFound("Специализация не найдена")
		}
		back := specializationPath(specID)
		ctx := c.Request().Context()
		token := adminToken(c)

		doctorID, ok := intParam(c, doctorParam)
		if !ok {
			return seeOther(c, back, flash(errorKey, "Врач не найден"))
		}

		doctors, err := client.ListDoctorsBySpecialization(ctx, token, specID)
		if err != nil {
			return seeOther(c, back, flash(errorKey, backendReason(err, "Ошибка при удалении врача")))
		}
		doctor, ok := polyclinic.FindDoctor(doctors, doctorID)
		if !ok {
			return seeOther(c, back, flash(errorKey, "Врач не найден"))
		}

		if err := client.DeleteDoctor(ctx, token, doctorID); err != nil {
			return seeOther(c, back, flash(errorKey, backendReason(err, "Ошибка при удалении врача")))
		}
		if doctor.HasOwnPhoto() {
			removePhoto(ctx, c, store, doctor.Photo)
		}
		return seeOther(c, back, flash(noticeKey, "Врач удален"))
	}
}

// removePhoto deletes the photo, logging failures.
func removePhoto(ctx context.Context, c echo.Context, store photos.Store, publicPath string) {
	err := store.Delete(ctx, publicPath)
	switch {
	case err == nil:
	case errors.Is(err, photos.ErrMissing):
		c.Logger().Warnf("photo is already gone: %s", publicPath)
	default:
		c.Logger().Errorf("removing photo %s: %s", publicPath, err)
	}
}

// CreateScheduleHandler serves POST /polyclinic/admin/specializations/:specParam/doctors/:doctorParam/schedule.
func CreateScheduleHandler(client myhelp.Client, specParam string, doctorParam string) echo.HandlerFunc {
	return func(c echo.Context) error {
		specID, ok := intParam(c, specParam)
		if !ok {
			return apierr.NotFound("Специализация не найдена")
		}
		back := specializationPath(specID)

		doctorID, ok := intParam(c, doctorParam)
		if !ok {
			return seeOther(c, back, flash(errorKey, "Врач не найден"))
		}

		req := polyclinic.ScheduleRequest{}
		if err := c.Bind(&req); err != nil {
			return apierr.BadRequest("Некорректные данные формы", err)
		}
		if err := req.Validate(); err != nil {
			return seeOther(c, back, flash(errorKey, "Заполните все поля расписания"))
		}

		if err := client.CreateSchedule(c.Request().Context(), adminToken(c), doctorID, req); err != nil {
			return seeOther(c, back, flash(errorKey, backendReason(err, "Ошибка при добавлении расписания")))
		}
		return seeOther(c, back, flash(noticeKey, "Расписание добавлено"))
	}
}
