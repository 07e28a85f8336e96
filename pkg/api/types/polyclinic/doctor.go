package polyclinic

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// DefaultPhoto is the placeholder photo shipped with the front-end.
// It is never removed with the doctor.
const DefaultPhoto = "/doctors/default.jpg"

type Doctor struct {
	ID             int      `json:"doctorID"`
	Surname        string   `json:"surname"`
	Name           string   `json:"name"`
	Patronymic     string   `json:"patronymic"`
	Specialization string   `json:"specialization"`
	Education      string   `json:"education"`
	Progress       string   `json:"progress"`
	Rating         *float64 `json:"rating,omitempty"`
	Photo          string   `json:"photo"`
}

func (d Doctor) FullName() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{d.Surname, d.Name, d.Patronymic} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// Initials is shown in place of a missing photo: first letters of surname and name.
func (d Doctor) Initials() string {
	return firstLetter(d.Surname) + firstLetter(d.Name)
}

func firstLetter(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || r == utf8.RuneError {
		return "?"
	}
	return string(r)
}

func (d Doctor) RatingText() string {
	if d.Rating == nil {
		return "Нет данных"
	}
	return fmt.Sprintf("%.1f", *d.Rating)
}

// HasOwnPhoto reports whether the doctor has an uploaded photo which should be
// removed together with the doctor.
func (d Doctor) HasOwnPhoto() bool {
	return d.Photo != "" && d.Photo != DefaultPhoto
}

// DoctorSpec is a request to register a doctor.
type DoctorSpec struct {
	Surname        string `json:"surname" form:"surname"`
	Name           string `json:"name" form:"name"`
	Patronymic     string `json:"patronymic" form:"patronymic"`
	Specialization string `json:"specialization" form:"specialization"`
	Education      string `json:"education" form:"education"`
	Progress       string `json:"progress" form:"progress"`
	Photo          string `json:"photo" form:"photo"`
}

// Validate checks surname, name and specialization are given.
func (d DoctorSpec) Validate() error {
	for _, v := range []string{d.Surname, d.Name, d.Specialization} {
		if strings.TrimSpace(v) == "" {
			return ErrMissingField
		}
	}
	return nil
}

// FindDoctor returns the doctor with the id.
func FindDoctor(doctors []Doctor, id int) (Doctor, bool) {
	for _, d := range doctors {
		if d.ID == id {
			return d, true
		}
	}
	return Doctor{}, false
}
