package polyclinic

import (
	"errors"
	"strings"
)

// ErrMissingField is returned by Validate methods when a required form field is empty.
var ErrMissingField = errors.New("required field is empty")

type Specialization struct {
	ID                   int    `json:"specializationID"`
	Specialization       string `json:"specialization"`
	SpecializationDoctor string `json:"specialization_doctor"`
	Description          string `json:"description"`
}

// SpecializationSpec is a request to create a specialization.
type SpecializationSpec struct {
	Specialization       string `json:"specialization" form:"specialization"`
	SpecializationDoctor string `json:"specialization_doctor" form:"specialization_doctor"`
	Description          string `json:"description" form:"description"`
}

// Validate checks that name of the specialization and of its doctor are given.
func (s SpecializationSpec) Validate() error {
	if strings.TrimSpace(s.Specialization) == "" || strings.TrimSpace(s.SpecializationDoctor) == "" {
		return ErrMissingField
	}
	return nil
}

// FindSpecialization returns the specialization with the id.
func FindSpecialization(specs []Specialization, id int) (Specialization, bool) {
	for _, s := range specs {
		if s.ID == id {
			return s, true
		}
	}
	return Specialization{}, false
}
