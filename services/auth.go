package services

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/omarzydan610/JetStay-sub001/validate"
)

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignupRequest struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phoneNumber"`
}

// NewSignupRequest builds the request body from a validated form.
func NewSignupRequest(f validate.SignupForm) SignupRequest {
	return SignupRequest{
		FirstName:   strings.TrimSpace(f.FirstName),
		LastName:    strings.TrimSpace(f.LastName),
		Email:       strings.TrimSpace(f.Email),
		Password:    f.Password,
		PhoneNumber: f.InternationalPhone(),
	}
}

// Login exchanges credentials for a token and stores it.
func (c *Client) Login(ctx context.Context, creds Credentials) (string, error) {
	token, err := fetch[string](ctx, c, http.MethodPost, "/api/auth/login", nil, creds)
	if err != nil {
		return "", err
	}
	if token == "" {
		return "", &APIError{Code: CodeUnknown, Path: "/api/auth/login", Message: "login response carried no token"}
	}
	if err := c.SetToken(token); err != nil {
		return "", &APIError{Code: CodeUnknown, Message: err.Error(), Err: err}
	}
	c.logger.Info("✅ logged in", "email", creds.Email)
	return token, nil
}

func (c *Client) Signup(ctx context.Context, req SignupRequest) (*Envelope, error) {
	return send(ctx, c, http.MethodPost, "/api/auth/signup", nil, req)
}

// ForgotPassword asks the API to email a one time password.
func (c *Client) ForgotPassword(ctx context.Context, email string) (*Envelope, error) {
	if strings.TrimSpace(email) == "" {
		return nil, ErrMissingEmail
	}
	return send(ctx, c, http.MethodPost, "/api/auth/forgot-password", nil, map[string]string{"email": email})
}

// VerifyOTP trades an emailed code for a password reset token.
func (c *Client) VerifyOTP(ctx context.Context, email, otp string) (string, error) {
	raw, err := fetch[json.RawMessage](ctx, c, http.MethodPost, "/api/auth/verify-otp", nil,
		map[string]string{"email": email, "otp": otp})
	if err != nil {
		return "", err
	}
	return resetToken(raw), nil
}

// resetToken accepts the token as a bare string or as {resetToken}.
func resetToken(raw json.RawMessage) string {
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}
	var obj struct {
		ResetToken string `json:"resetToken"`
	}
	_ = json.Unmarshal(raw, &obj)
	return obj.ResetToken
}

// ResetPassword sets a new password with a token from VerifyOTP.
func (c *Client) ResetPassword(ctx context.Context, email, token, newPassword string) (*Envelope, error) {
	return c.passwordWithToken(ctx, "/api/auth/reset-password", email, token, newPassword)
}

// ChangePassword is the API's own name for the token based password change.
func (c *Client) ChangePassword(ctx context.Context, email, token, newPassword string) (*Envelope, error) {
	return c.passwordWithToken(ctx, "/api/auth/change-password", email, token, newPassword)
}

func (c *Client) passwordWithToken(ctx context.Context, path, email, token, newPassword string) (*Envelope, error) {
	env := &Envelope{}
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   path,
		header: http.Header{"Reset-Token": {token}},
		body:   map[string]string{"email": email, "newPassword": newPassword},
		whole:  true,
	}, env)
	if err != nil {
		return nil, err
	}
	return env, nil
}
