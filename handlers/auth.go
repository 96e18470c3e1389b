package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/omarzydan610/JetStay-sub001/middleware"
	"github.com/omarzydan610/JetStay-sub001/services"
	"github.com/omarzydan610/JetStay-sub001/validate"
)

type signupBody struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	PhoneNumber     string `json:"phoneNumber"`
}

type otpBody struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type passwordBody struct {
	Email       string `json:"email"`
	ResetToken  string `json:"resetToken"`
	NewPassword string `json:"newPassword"`
}

// SessionResponse describes the caller's token.
type SessionResponse struct {
	Authenticated bool   `json:"authenticated"`
	Email         string `json:"email,omitempty"`
	UserID        int    `json:"userId,omitempty"`
	HotelID       int    `json:"hotelId,omitempty"`
	AirlineID     int    `json:"airlineId,omitempty"`
	ExpiresAt     string `json:"expiresAt,omitempty"`
}

func (h *Handler) Login(c *gin.Context) {
	var creds services.Credentials
	if !bindJSON(c, credentialsSchema, &creds) {
		return
	}
	creds.Email = strings.TrimSpace(creds.Email)
	if !validate.Email(creds.Email) {
		formErrors(c, validate.Errors{"email": "Please enter a valid email address"})
		return
	}

	token, err := h.api(c).Login(c.Request.Context(), creds)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "session": h.session(token)})
}

func (h *Handler) Signup(c *gin.Context) {
	var body signupBody
	if !bindJSON(c, signupSchema, &body) {
		return
	}
	form := validate.SignupForm(body)
	if errs := form.Validate(); !errs.OK() {
		formErrors(c, errs)
		return
	}

	env, err := h.api(c).Signup(c.Request.Context(), services.NewSignupRequest(form))
	if err != nil {
		h.fail(c, err)
		return
	}
	envelope(c, env)
}

func (h *Handler) ForgotPassword(c *gin.Context) {
	var body struct {
		Email string `json:"email"`
	}
	if !bindJSON(c, emailSchema, &body) {
		return
	}
	env, err := h.api(c).ForgotPassword(c.Request.Context(), strings.TrimSpace(body.Email))
	if err != nil {
		h.fail(c, err)
		return
	}
	envelope(c, env)
}

func (h *Handler) VerifyOTP(c *gin.Context) {
	var body otpBody
	if !bindJSON(c, otpSchema, &body) {
		return
	}
	token, err := h.api(c).VerifyOTP(c.Request.Context(), strings.TrimSpace(body.Email), body.OTP)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"resetToken": token})
}

func (h *Handler) ResetPassword(c *gin.Context) {
	h.passwordWithToken(c, API.ResetPassword)
}

func (h *Handler) ChangePassword(c *gin.Context) {
	h.passwordWithToken(c, API.ChangePassword)
}

func (h *Handler) passwordWithToken(c *gin.Context, call func(API, context.Context, string, string, string) (*services.Envelope, error)) {
	var body passwordBody
	if !bindJSON(c, passwordSchema, &body) {
		return
	}
	if !validate.Password(body.NewPassword) {
		formErrors(c, validate.Errors{"newPassword": "Password must be at least 8 characters and contain uppercase, lowercase, and number"})
		return
	}
	env, err := call(h.api(c), c.Request.Context(), strings.TrimSpace(body.Email), body.ResetToken, body.NewPassword)
	if err != nil {
		h.fail(c, err)
		return
	}
	envelope(c, env)
}

// Logout has nothing to revoke: tokens live with the caller.
func (h *Handler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out"})
}

// Session decodes the caller's bearer token. Missing or expired tokens
// answer 401.
func (h *Handler) Session(c *gin.Context) {
	s := h.session(middleware.TokenFrom(c))
	if !s.Authenticated {
		c.JSON(http.StatusUnauthorized, s)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *Handler) session(token string) SessionResponse {
	if token == "" || services.IsTokenExpired(token, h.now()) {
		return SessionResponse{}
	}
	claims, err := services.ParseClaims(token)
	if err != nil {
		return SessionResponse{}
	}
	s := SessionResponse{
		Authenticated: true,
		Email:         claims.Email(),
		UserID:        claims.UserID,
		HotelID:       claims.HotelID,
		AirlineID:     claims.AirlineID,
	}
	if claims.ExpiresAt != nil {
		s.ExpiresAt = claims.ExpiresAt.Time.UTC().Format("2006-01-02T15:04:05Z")
	}
	return s
}
