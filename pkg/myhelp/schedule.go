package myhelp

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/daariikk/myhelp-web/pkg/api/types/polyclinic"
)

func (c *client) GetSchedule(ctx context.Context, doctorID int, date string) (polyclinic.ScheduleInfo, error) {
	u := withQuery(
		c.apipath("schedule", "doctors", strconv.Itoa(doctorID)),
		url.Values{"date": {date}},
	)
	resp, err := c.do(ctx, http.MethodGet, u, "", nil)
	if err != nil {
		return polyclinic.ScheduleInfo{}, err
	}
	defer resp.Body.Close()

	var info polyclinic.ScheduleInfo
	if err := unmarshalEnvelope(
		resp, &info,
		MessageFor{Status4xx: "doctor is not found", Status5xx: "server error"},
	); err != nil {
		return polyclinic.ScheduleInfo{}, err
	}
	return info, nil
}

func (c *client) CreateSchedule(ctx context.Context, token string, doctorID int, req polyclinic.ScheduleRequest) error {
	req = req.Normalized()
	u := withQuery(
		c.apipath("schedule", "doctors", strconv.Itoa(doctorID)),
		url.Values{
			"date":           {req.Date},
			"start_time":     {req.StartTime},
			"end_time":       {req.EndTime},
			"reception_time": {req.ReceptionTime},
		},
	)
	resp, err := c.do(ctx, http.MethodPost, u, token, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return discard(resp, MessageFor{
		Status4xx: "schedule is rejected",
		Status5xx: "server error",
	})
}

func (c *client) CreateAppointment(ctx context.Context, token string, req polyclinic.AppointmentRequest) error {
	resp, err := c.do(ctx, http.MethodPost, c.apipath("schedule", "appointments"), token, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return discard(resp, MessageFor{
		Status4xx: "appointment is rejected",
		Status5xx: "server error",
	})
}

func (c *client) RateAppointment(ctx context.Context, token string, appointmentID int, rating int) error {
	u := c.apipath("schedule", "appointments", strconv.Itoa(appointmentID))
	resp, err := c.do(ctx, http.MethodPatch, u, token, map[string]int{"rating": rating})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return discard(resp, MessageFor{
		Status4xx: "rating is rejected",
		Status5xx: "server error",
	})
}

func (c *client) CancelAppointment(ctx context.Context, token string, appointmentID int) error {
	u := c.apipath("schedule", "appointments", strconv.Itoa(appointmentID))
	resp, err := c.do(ctx, http.MethodDelete, u, token, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return discard(resp, MessageFor{
		Status4xx: "appointment is not found",
		Status5xx: "server error",
	})
}
