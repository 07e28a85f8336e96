package polyclinic

import (
	"strings"
	"time"
)

// DateLayout is the layout of dates in query parameters and appointment requests.
const DateLayout = "2006-01-02"

type Record struct {
	ID          int       `json:"recordID"`
	DoctorID    int       `json:"doctorID"`
	Date        time.Time `json:"date"`
	Start       time.Time `json:"start_time"`
	End         time.Time `json:"end_time"`
	IsAvailable bool      `json:"is_available"`
}

// StartClock is the start of the slot as shown to patients ("15:04", UTC).
func (r Record) StartClock() string {
	return r.Start.UTC().Format("15:04")
}

// EndClock is the end of the slot as shown to patients ("15:04", UTC).
func (r Record) EndClock() string {
	return r.End.UTC().Format("15:04")
}

// StartTime is the start of the slot in the form accepted by appointment requests.
//
// It is the wall clock as the API wrote it, keeping its offset.
func (r Record) StartTime() string {
	return r.Start.Format("15:04:05")
}

type Schedule struct {
	Records []Record `json:"Records"`
}

// Available returns records which can be booked.
func (s Schedule) Available() []Record {
	found := make([]Record, 0, len(s.Records))
	for _, r := range s.Records {
		if r.IsAvailable {
			found = append(found, r)
		}
	}
	return found
}

type ScheduleInfo struct {
	Doctor   Doctor   `json:"doctor"`
	Schedule Schedule `json:"schedule"`
}

// ScheduleRequest is a request to open reception slots of a doctor for a day.
type ScheduleRequest struct {
	Date          string `form:"date"`
	StartTime     string `form:"start_time"`
	EndTime       string `form:"end_time"`
	ReceptionTime string `form:"reception_time"`
}

// Validate checks all fields are given.
func (s ScheduleRequest) Validate() error {
	for _, v := range []string{s.Date, s.StartTime, s.EndTime, s.ReceptionTime} {
		if strings.TrimSpace(v) == "" {
			return ErrMissingField
		}
	}
	return nil
}

// Normalized returns a copy whose start and end time are HH:MM:SS.
func (s ScheduleRequest) Normalized() ScheduleRequest {
	s.StartTime = NormalizeClock(s.StartTime)
	s.EndTime = NormalizeClock(s.EndTime)
	return s
}

// NormalizeClock completes a clock time to HH:MM:SS.
//
// "9" -> "9:00:00", "09:30" -> "09:30:00". HH:MM:SS is returned as is.
func NormalizeClock(t string) string {
	switch strings.Count(t, ":") {
	case 0:
		return t + ":00:00"
	case 1:
		return t + ":00"
	default:
		return t
	}
}

// AppointmentRequest books a slot of a doctor for a patient.
type AppointmentRequest struct {
	DoctorID  int    `json:"doctorID"`
	PatientID int    `json:"patientID"`
	Date      string `json:"date"`
	Time      string `json:"time"`
}
