package views_test

import (
	"bytes"
	"io/fs"
	"strings"
	"testing"
	"time"

	"github.com/daariikk/myhelp-web/pkg/api/types/polyclinic"
	"github.com/daariikk/myhelp-web/pkg/utils/try"
	"github.com/daariikk/myhelp-web/pkg/views"
)

func render(t *testing.T, name string, data any) string {
	t.Helper()
	testee := try.To(views.New()).OrFatal(t)
	buf := new(bytes.Buffer)
	if err := testee.Render(buf, name, data, nil); err != nil {
		t.Fatal(err)
	}
	return buf.String()
}

func at(t *testing.T, s string) time.Time {
	t.Helper()
	return try.To(time.Parse(time.RFC3339, s)).OrFatal(t)
}

func contains(t *testing.T, html string, wants ...string) {
	t.Helper()
	for _, w := range wants {
		if !strings.Contains(html, w) {
			t.Errorf("%q is not rendered", w)
		}
	}
}

func notContains(t *testing.T, html string, unwants ...string) {
	t.Helper()
	for _, w := range unwants {
		if strings.Contains(html, w) {
			t.Errorf("%q should not be rendered", w)
		}
	}
}

func TestRuDate(t *testing.T) {
	for in, want := range map[string]string{
		"2026-10-19": "пн, 19 октября 2026 г.",
		"2025-01-01": "ср, 1 января 2025 г.",
		"2025-03-09": "вс, 9 марта 2025 г.",
		"not a date": "not a date",
	} {
		if got := views.RuDate(in); got != want {
			t.Errorf("RuDate(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNumericDate(t *testing.T) {
	if got := views.NumericDate("2026-10-19"); got != "19.10.2026" {
		t.Errorf("NumericDate: %s", got)
	}
}

func TestErrorLabel(t *testing.T) {
	for code, want := range map[int]string{
		404: "Не найдено",
		500: "Ошибка сервера",
		401: "Ошибка",
		502: "Ошибка",
	} {
		if got := views.ErrorLabel(code); got != want {
			t.Errorf("ErrorLabel(%d) = %q, want %q", code, got, want)
		}
	}
}

func TestRender_UnknownPage(t *testing.T) {
	testee := try.To(views.New()).OrFatal(t)
	if err := testee.Render(new(bytes.Buffer), "no-such-page", nil, nil); err == nil {
		t.Error("expected error")
	}
}

func TestRender_Layout(t *testing.T) {
	t.Run("anonymous visitor sees login link", func(t *testing.T) {
		html := render(t, views.Home, views.HomePage{Layout: views.Layout{Title: "Главная"}})
		contains(t, html, "<title>Главная | Поликлиника №1</title>", `href="/polyclinic/auth"`, "Войти")
		notContains(t, html, "Личный кабинет", "Админ-панель")
	})

	t.Run("patient sees account link", func(t *testing.T) {
		html := render(t, views.Home, views.HomePage{Layout: views.Layout{Authenticated: true}})
		contains(t, html, `href="/polyclinic/auth/account"`, "Личный кабинет")
	})

	t.Run("admin area has admin header", func(t *testing.T) {
		html := render(t, views.Admin, views.AdminPage{Layout: views.Layout{AdminArea: true}})
		contains(t, html, "Админ-панель", `action="/polyclinic/admin/logout"`)
	})

	t.Run("flash messages are shown and escaped", func(t *testing.T) {
		html := render(t, views.Home, views.HomePage{Layout: views.Layout{
			Notice: "Запись успешно создана!", Error: "<script>",
		}})
		contains(t, html, "Запись успешно создана!", "&lt;script&gt;")
		notContains(t, html, "<script>")
	})
}

func TestRender_Pages(t *testing.T) {
	rating := 4.5

	t.Run("home", func(t *testing.T) {
		html := render(t, views.Home, views.HomePage{
			Specializations: []polyclinic.Specialization{
				{ID: 3, Specialization: "Кардиология", Description: "Болезни сердца"},
			},
		})
		contains(t, html,
			`href="/polyclinic/doctors/specialization/3"`, "Кардиология", "Болезни сердца",
			"Пн-Пт с 8:00 до 20:00", "+7 (123) 456-78-90",
		)
	})

	t.Run("home without specializations", func(t *testing.T) {
		html := render(t, views.Home, views.HomePage{})
		contains(t, html, "Специализации не найдены")
	})

	t.Run("home with error", func(t *testing.T) {
		html := render(t, views.Home, views.HomePage{LoadError: "Не удалось загрузить данные"})
		contains(t, html, "Ошибка: Не удалось загрузить данные")
	})

	t.Run("doctors", func(t *testing.T) {
		html := render(t, views.Doctors, views.DoctorsPage{
			Heading: "Кардиолог",
			Doctors: []polyclinic.Doctor{
				{ID: 7, Surname: "Петров", Name: "Пётр", Patronymic: "Петрович", Rating: &rating, Photo: "/doctors/a.jpg"},
				{ID: 8, Surname: "Сидоров", Name: "Сидор"},
			},
		})
		contains(t, html,
			"Петров Пётр Петрович", `src="/doctors/a.jpg"`, "Рейтинг: 4.5 ★",
			`href="/polyclinic/doctors/7/schedule"`,
			"СС", "Рейтинг: Нет данных ★",
		)
	})

	t.Run("schedule", func(t *testing.T) {
		html := render(t, views.Schedule, views.SchedulePage{
			Doctor:  polyclinic.Doctor{ID: 7, Surname: "Петров", Name: "Пётр"},
			Date:    "2026-10-19",
			MinDate: "2026-10-19",
			Records: []polyclinic.Record{
				{
					ID: 1, IsAvailable: true,
					Start: at(t, "2026-10-19T09:00:00Z"), End: at(t, "2026-10-19T09:30:00Z"),
				},
				{
					ID: 2, IsAvailable: false,
					Start: at(t, "2026-10-19T09:30:00Z"), End: at(t, "2026-10-19T10:00:00Z"),
				},
			},
		})
		contains(t, html,
			"09:00 - 09:30", "Доступно", "09:30 - 10:00", "Занято",
			`action="/polyclinic/doctors/7/schedule/book"`,
			`name="time" value="09:00:00"`, `name="date" value="2026-10-19"`,
		)
		if n := strings.Count(html, "Записаться"); n != 1 {
			t.Errorf("only available slots can be booked: %d", n)
		}
	})

	t.Run("schedule without slots", func(t *testing.T) {
		html := render(t, views.Schedule, views.SchedulePage{Doctor: polyclinic.Doctor{ID: 7}, Date: "2026-10-19"})
		contains(t, html, "Нет доступных временных слотов на выбранную дату")
	})

	t.Run("account", func(t *testing.T) {
		html := render(t, views.Account, views.AccountPage{
			Patient: polyclinic.Patient{Surname: "Иванов", Name: "Иван", Polic: "1234", Email: "ivan@example.com"},
			Tab:     polyclinic.TabAll,
			Appointments: []polyclinic.Appointment{
				{ID: 10, DoctorFIO: "Петров Пётр", Date: "2026-10-19", Time: "09:00:00", Status: polyclinic.Scheduled},
				{ID: 11, DoctorFIO: "Петров Пётр", Date: "2026-10-12", Time: "10:30:00", Status: polyclinic.Completed},
				{ID: 12, DoctorFIO: "Петров Пётр", Date: "2026-10-05", Time: "11:00:00", Status: polyclinic.Completed, Rating: 4},
			},
		})
		contains(t, html,
			"Иванов Иван", "1234", "ivan@example.com",
			"пн, 19 октября 2026 г., 09:00", "Запланировано", "Завершено",
			"/polyclinic/auth/account/appointments/10/cancel",
			"/polyclinic/auth/account/appointments/11/rate",
			"Ваша оценка:",
		)
		notContains(t, html,
			"/polyclinic/auth/account/appointments/12/rate",
			"/polyclinic/auth/account/appointments/11/cancel",
		)
	})

	t.Run("account editing with errors", func(t *testing.T) {
		html := render(t, views.Account, views.AccountPage{
			Tab:         polyclinic.TabScheduled,
			Editing:     true,
			Form:        polyclinic.Profile{Email: "broken"},
			FieldErrors: polyclinic.FieldErrors{"email": "Некорректный формат email"},
		})
		contains(t, html, `value="broken"`, "Некорректный формат email", "Нет предстоящих записей")
	})

	t.Run("register keeps form values", func(t *testing.T) {
		html := render(t, views.Register, views.RegisterPage{
			Form: polyclinic.Registration{Surname: "Иванов", Email: "ivan@example.com", Password: "secret"},
		})
		contains(t, html, `value="Иванов"`, `value="ivan@example.com"`, "Пользовательское соглашение")
		notContains(t, html, "secret")
	})

	t.Run("admin", func(t *testing.T) {
		html := render(t, views.Admin, views.AdminPage{
			Specializations: []polyclinic.Specialization{
				{ID: 3, Specialization: "Кардиология", SpecializationDoctor: "Кардиолог"},
			},
		})
		contains(t, html,
			`href="/polyclinic/admin/specializations/3"`,
			`action="/polyclinic/admin/specializations/3/delete"`,
			`action="/polyclinic/admin/specializations"`,
		)
	})

	t.Run("admin specialization", func(t *testing.T) {
		html := render(t, views.AdminSpecialization, views.AdminSpecializationPage{
			SpecializationID: 3,
			Heading:          "Кардиология",
			Doctors:          []polyclinic.Doctor{{ID: 7, Surname: "Петров", Name: "Пётр"}},
		})
		contains(t, html,
			"Врачи специализации: Кардиология",
			`action="/polyclinic/admin/specializations/3/doctors"`, `enctype="multipart/form-data"`,
			`action="/polyclinic/admin/specializations/3/doctors/7/delete"`,
			`action="/polyclinic/admin/specializations/3/doctors/7/schedule"`,
		)
	})

	t.Run("error", func(t *testing.T) {
		html := render(t, views.Error, views.ErrorPage{Code: 404, Label: views.ErrorLabel(404), Message: "Врач не найден"})
		contains(t, html, "<h1>404</h1>", "Не найдено", "Врач не найден")
	})
}

func TestStatic(t *testing.T) {
	b := try.To(fs.ReadFile(views.Static(), "style.css")).OrFatal(t)
	if len(b) == 0 {
		t.Error("style.css is empty")
	}
}
