package myhelp

import (
	"context"
	"net/http"
	"net/url"

	"github.com/daariikk/myhelp-web/pkg/api/types/polyclinic"
)

func (c *client) GetUser(ctx context.Context, email string) (polyclinic.UserAccount, error) {
	u := withQuery(c.apipath("auth", "get-user"), url.Values{"email": {email}})
	resp, err := c.do(ctx, http.MethodGet, u, "", nil)
	if err != nil {
		return polyclinic.UserAccount{}, err
	}
	defer resp.Body.Close()

	var account polyclinic.UserAccount
	if err := unmarshalEnvelope(
		resp, &account,
		MessageFor{Status4xx: "user is not found", Status5xx: "server error"},
	); err != nil {
		return polyclinic.UserAccount{}, err
	}
	return account, nil
}

func (c *client) GetAdmin(ctx context.Context, email string) (polyclinic.AdminAccount, error) {
	u := withQuery(c.apipath("auth", "get-admin"), url.Values{"email": {email}})
	resp, err := c.do(ctx, http.MethodGet, u, "", nil)
	if err != nil {
		return polyclinic.AdminAccount{}, err
	}
	defer resp.Body.Close()

	var account polyclinic.AdminAccount
	if err := unmarshalEnvelope(
		resp, &account,
		MessageFor{Status4xx: "admin is not found", Status5xx: "server error"},
	); err != nil {
		return polyclinic.AdminAccount{}, err
	}
	return account, nil
}

func (c *client) Register(ctx context.Context, reg polyclinic.Registration) (polyclinic.UserAccount, error) {
	resp, err := c.do(ctx, http.MethodPost, c.apipath("auth", "signin"), "", reg)
	if err != nil {
		return polyclinic.UserAccount{}, err
	}
	defer resp.Body.Close()

	var account polyclinic.UserAccount
	if err := unmarshalEnvelope(
		resp, &account,
		MessageFor{Status4xx: "registration is rejected", Status5xx: "server error"},
	); err != nil {
		return polyclinic.UserAccount{}, err
	}
	return account, nil
}

func (c *client) IssuePatientTokens(ctx context.Context, cred polyclinic.Credentials) (polyclinic.Tokens, error) {
	return c.issueTokens(ctx, c.apipath("auth", "signup"), cred)
}

func (c *client) IssueAdminTokens(ctx context.Context, cred polyclinic.Credentials) (polyclinic.Tokens, error) {
	return c.issueTokens(ctx, c.apipath("auth", "signup", "admin"), cred)
}

func (c *client) RefreshTokens(ctx context.Context, refreshToken string) (polyclinic.Tokens, error) {
	payload := map[string]string{"refresh_token": refreshToken}
	return c.issueTokens(ctx, c.apipath("auth", "refresh"), payload)
}

func (c *client) issueTokens(ctx context.Context, u string, payload any) (polyclinic.Tokens, error) {
	resp, err := c.do(ctx, http.MethodPost, u, "", payload)
	if err != nil {
		return polyclinic.Tokens{}, err
	}
	defer resp.Body.Close()

	var tokens polyclinic.Tokens
	if err := unmarshalEnvelope(
		resp, &tokens,
		MessageFor{Status4xx: "tokens are not issued", Status5xx: "server error"},
	); err != nil {
		return polyclinic.Tokens{}, err
	}
	return tokens, nil
}
