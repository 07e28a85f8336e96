package myhelp

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/daariikk/myhelp-web/pkg/api/types/polyclinic"
)

func (c *client) GetAccount(ctx context.Context, token string, patientID int) (polyclinic.Patient, error) {
	u := withQuery(c.apipath("account"), url.Values{"patientID": {strconv.Itoa(patientID)}})
	resp, err := c.do(ctx, http.MethodGet, u, token, nil)
	if err != nil {
		return polyclinic.Patient{}, err
	}
	defer resp.Body.Close()

	var patient polyclinic.Patient
	if err := unmarshalEnvelope(
		resp, &patient,
		MessageFor{Status4xx: "account is not found", Status5xx: "server error"},
	); err != nil {
		return polyclinic.Patient{}, err
	}
	return patient, nil
}

// UpdateAccount replaces the profile of the patient.
//
// When the API responds without data, the returned patient is built from profile.
func (c *client) UpdateAccount(ctx context.Context, token string, patientID int, profile polyclinic.Profile) (polyclinic.Patient, error) {
	u := withQuery(c.apipath("account"), url.Values{"patientID": {strconv.Itoa(patientID)}})
	resp, err := c.do(ctx, http.MethodPut, u, token, profile)
	if err != nil {
		return polyclinic.Patient{}, err
	}
	defer resp.Body.Close()

	patient := polyclinic.Patient{
		ID:         patientID,
		Surname:    profile.Surname,
		Name:       profile.Name,
		Patronymic: profile.Patronymic,
		Polic:      profile.Polic,
		Email:      profile.Email,
	}
	if err := unmarshalEnvelope(
		resp, &patient,
		MessageFor{Status4xx: "profile is rejected", Status5xx: "server error"},
	); err != nil {
		return polyclinic.Patient{}, err
	}
	return patient, nil
}
