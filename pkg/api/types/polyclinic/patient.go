package polyclinic

import (
	"regexp"
	"strings"
)

const (
	Scheduled = "SCHEDULED"
	Completed = "COMPLETED"
	Canceled  = "CANCELED"
)

type Appointment struct {
	ID                   int     `json:"id"`
	DoctorFIO            string  `json:"doctor_fio"`
	DoctorSpecialization string  `json:"doctor_specialization"`
	Date                 string  `json:"date"` // YYYY-MM-DD
	Time                 string  `json:"time"` // HH:MM:SS
	Status               string  `json:"status"`
	Rating               float64 `json:"rating"`
}

func (a Appointment) StatusLabel() string {
	switch a.Status {
	case Scheduled:
		return "Запланировано"
	case Completed:
		return "Завершено"
	case Canceled:
		return "Отменено"
	default:
		return a.Status
	}
}

// Clock is the appointment time without seconds.
func (a Appointment) Clock() string {
	if len(a.Time) >= 5 {
		return a.Time[:5]
	}
	return a.Time
}

func (a Appointment) Rated() bool {
	return a.Rating > 0
}

// Rateable reports whether the patient can rate this appointment now.
func (a Appointment) Rateable() bool {
	return a.Status == Completed && !a.Rated()
}

// Cancelable reports whether the patient can cancel this appointment now.
func (a Appointment) Cancelable() bool {
	return a.Status == Scheduled
}

type Patient struct {
	ID           int           `json:"patientID"`
	Surname      string        `json:"surname"`
	Name         string        `json:"name"`
	Patronymic   string        `json:"patronymic"`
	Polic        string        `json:"polic"`
	Email        string        `json:"email"`
	IsDeleted    bool          `json:"is_deleted"`
	Appointments []Appointment `json:"appointments"`
}

func (p Patient) Profile() Profile {
	return Profile{
		Surname:    p.Surname,
		Name:       p.Name,
		Patronymic: p.Patronymic,
		Polic:      p.Polic,
		Email:      p.Email,
	}
}

func (p Patient) FindAppointment(id int) (Appointment, bool) {
	for _, a := range p.Appointments {
		if a.ID == id {
			return a, true
		}
	}
	return Appointment{}, false
}

// Tab selects which appointments are listed in the account page.
type Tab string

const (
	TabAll       Tab = "all"
	TabScheduled Tab = "scheduled"
	TabCompleted Tab = "completed"
)

// ParseTab returns TabAll for unknown values.
func ParseTab(s string) Tab {
	switch t := Tab(s); t {
	case TabScheduled, TabCompleted:
		return t
	default:
		return TabAll
	}
}

func FilterAppointments(appointments []Appointment, tab Tab) []Appointment {
	found := make([]Appointment, 0, len(appointments))
	for _, a := range appointments {
		switch {
		case tab == TabScheduled && a.Status != Scheduled:
		case tab == TabCompleted && a.Status != Completed:
		default:
			found = append(found, a)
		}
	}
	return found
}

// Profile is the editable part of a patient.
type Profile struct {
	Surname    string `json:"surname" form:"surname"`
	Name       string `json:"name" form:"name"`
	Patronymic string `json:"patronymic" form:"patronymic"`
	Polic      string `json:"polic" form:"polic"`
	Email      string `json:"email" form:"email"`
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// FieldErrors maps form field names to messages.
type FieldErrors map[string]string

func (fe FieldErrors) Empty() bool {
	return len(fe) == 0
}

// Validate checks the profile. Returned FieldErrors is empty when it is valid.
func (p Profile) Validate() FieldErrors {
	fe := FieldErrors{}
	if strings.TrimSpace(p.Surname) == "" {
		fe["surname"] = "Фамилия обязательна"
	}
	if strings.TrimSpace(p.Name) == "" {
		fe["name"] = "Имя обязательно"
	}
	if strings.TrimSpace(p.Polic) == "" {
		fe["polic"] = "Номер полиса обязателен"
	}
	switch email := strings.TrimSpace(p.Email); {
	case email == "":
		fe["email"] = "Email обязателен"
	case !ValidEmail(email):
		fe["email"] = "Некорректный формат email"
	}
	return fe
}
