package views

import "github.com/daariikk/myhelp-web/pkg/api/types/polyclinic"

// Layout is what the layout around a page shows.
type Layout struct {
	Title string

	// Authenticated is true when a patient session exists.
	Authenticated bool

	// AdminArea switches the header to the admin panel.
	AdminArea bool

	// Notice and Error are flash messages shown above the page.
	Notice string
	Error  string
}

func (l Layout) Frame() Layout {
	return l
}

type HomePage struct {
	Layout
	Specializations []polyclinic.Specialization
	LoadError       string
}

type DoctorsPage struct {
	Layout
	Heading   string
	Doctors   []polyclinic.Doctor
	LoadError string
}

type SchedulePage struct {
	Layout
	Doctor  polyclinic.Doctor
	Date    string
	MinDate string
	Records []polyclinic.Record
}

type LoginPage struct {
	Layout
	Email string
}

type RegisterPage struct {
	Layout
	Form polyclinic.Registration
}

type AccountPage struct {
	Layout
	Patient      polyclinic.Patient
	Tab          polyclinic.Tab
	Appointments []polyclinic.Appointment
	Editing      bool
	Form         polyclinic.Profile
	FieldErrors  polyclinic.FieldErrors
}

// EmptyMessage is shown when no appointments are listed in the tab.
func (p AccountPage) EmptyMessage() string {
	switch p.Tab {
	case polyclinic.TabScheduled:
		return "Нет предстоящих записей"
	case polyclinic.TabCompleted:
		return "Нет завершенных записей"
	default:
		return "У вас пока нет записей"
	}
}

type AdminLoginPage struct {
	Layout
	Email string
}

type AdminPage struct {
	Layout
	Specializations []polyclinic.Specialization
	Form            polyclinic.SpecializationSpec
	LoadError       string
}

type AdminSpecializationPage struct {
	Layout
	SpecializationID int
	Heading          string
	Doctors          []polyclinic.Doctor
	Form             polyclinic.DoctorSpec
	LoadError        string
}

type ErrorPage struct {
	Layout
	Code    int
	Label   string
	Message string
}

// ErrorLabel is the headline of error page for the status code.
func ErrorLabel(code int) string {
	switch code {
	case 404:
		return "Не найдено"
	case 500:
		return "Ошибка сервера"
	default:
		return "Ошибка"
	}
}
