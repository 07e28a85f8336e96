package myhelp

import (
	"context"
	"net/http"
	"strconv"

	"github.com/daariikk/myhelp-web/pkg/api/types/polyclinic"
)

func (c *client) ListSpecializations(ctx context.Context) ([]polyclinic.Specialization, error) {
	resp, err := c.do(ctx, http.MethodGet, c.apipath("specializations"), "", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	specs := []polyclinic.Specialization{}
	if err := unmarshalEnvelope(
		resp, &specs,
		MessageFor{Status5xx: "server error"},
	); err != nil {
		return nil, err
	}
	return specs, nil
}

func (c *client) ListDoctorsBySpecialization(ctx context.Context, token string, specializationID int) ([]polyclinic.Doctor, error) {
	u := c.apipath("specializations", strconv.Itoa(specializationID))
	resp, err := c.do(ctx, http.MethodGet, u, token, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	doctors := []polyclinic.Doctor{}
	if err := unmarshalEnvelope(
		resp, &doctors,
		MessageFor{
			Status4xx: "specialization is not found",
			Status5xx: "server error",
		},
	); err != nil {
		return nil, err
	}
	return doctors, nil
}

func (c *client) CreateSpecialization(ctx context.Context, token string, spec polyclinic.SpecializationSpec) (polyclinic.Specialization, error) {
	resp, err := c.do(ctx, http.MethodPost, c.apipath("specializations"), token, spec)
	if err != nil {
		return polyclinic.Specialization{}, err
	}
	defer resp.Body.Close()

	var created polyclinic.Specialization
	if err := unmarshalEnvelope(
		resp, &created,
		MessageFor{Status4xx: "specialization is rejected", Status5xx: "server error"},
	); err != nil {
		return polyclinic.Specialization{}, err
	}
	return created, nil
}

func (c *client) DeleteSpecialization(ctx context.Context, token string, specializationID int) error {
	u := c.apipath("specializations", strconv.Itoa(specializationID))
	resp, err := c.do(ctx, http.MethodDelete, u, token, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return discard(resp, MessageFor{
		Status4xx: "specialization is not found",
		Status5xx: "server error",
	})
}

func (c *client) ListDoctors(ctx context.Context) ([]polyclinic.Doctor, error) {
	resp, err := c.do(ctx, http.MethodGet, c.apipath("doctors"), "", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	doctors := []polyclinic.Doctor{}
	if err := unmarshalEnvelope(
		resp, &doctors,
		MessageFor{Status5xx: "server error"},
	); err != nil {
		return nil, err
	}
	return doctors, nil
}

func (c *client) CreateDoctor(ctx context.Context, token string, spec polyclinic.DoctorSpec) (polyclinic.Doctor, error) {
	resp, err := c.do(ctx, http.MethodPost, c.apipath("doctors"), token, spec)
	if err != nil {
		return polyclinic.Doctor{}, err
	}
	defer resp.Body.Close()

	var created polyclinic.Doctor
	if err := unmarshalEnvelope(
		resp, &created,
		MessageFor{Status4xx: "doctor is rejected", Status5xx: "server error"},
	); err != nil {
		return polyclinic.Doctor{}, err
	}
	return created, nil
}

func (c *client) DeleteDoctor(ctx context.Context, token string, doctorID int) error {
	resp, err := c.do(ctx, http.MethodDelete, c.apipath("doctors", strconv.Itoa(doctorID)), token, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return discard(resp, MessageFor{
		Status4xx: "doctor is not found",
		Status5xx: "server error",
	})
}
