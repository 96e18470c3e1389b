package validate_test

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/omarzydan610/JetStay-sub001/validate"
)

func validSignup() validate.SignupForm {
	return validate.SignupForm{
		FirstName:       "Omar",
		LastName:        "Zydan",
		Email:           "omar@jetstay.com",
		Password:        "Secret123",
		ConfirmPassword: "Secret123",
		PhoneNumber:     "1001234567",
	}
}

func TestSignupForm(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*validate.SignupForm)
		want   validate.Errors
	}{
		{
			name:   "valid",
			mutate: func(*validate.SignupForm) {},
			want:   validate.Errors{},
		},
		{
			name: "everything empty",
			mutate: func(f *validate.SignupForm) {
				*f = validate.SignupForm{}
			},
			want: validate.Errors{
				"firstName":       "First name is required",
				"lastName":        "Last name is required",
				"email":           "Email is required",
				"password":        "Password is required",
				"confirmPassword": "Please confirm your password",
				"phoneNumber":     "Phone number is required",
			},
		},
		{
			name: "bad formats",
			mutate: func(f *validate.SignupForm) {
				f.FirstName = "Om"
				f.LastName = "Zyd4n"
				f.Email = "omar@jetstay"
				f.Password = "secret123"
				f.ConfirmPassword = "secret123"
				f.PhoneNumber = "100-123-45"
			},
			want: validate.Errors{
				"firstName":   "First name must be 3-20 characters",
				"lastName":    "Last name should contain only letters",
				"email":       "Please enter a valid email address",
				"password":    "Password must contain uppercase, lowercase, and number",
				"phoneNumber": "Phone must be 10 digits",
			},
		},
		{
			name: "short password and mismatch",
			mutate: func(f *validate.SignupForm) {
				f.Password = "Ab1"
				f.ConfirmPassword = "Ab2"
			},
			want: validate.Errors{
				"password":        "Password must be at least 8 characters",
				"confirmPassword": "Passwords do not match",
			},
		},
		{
			name: "multibyte password counted in characters",
			mutate: func(f *validate.SignupForm) {
				f.Password = "Aa1ééé"
				f.ConfirmPassword = "Aa1ééé"
			},
			want: validate.Errors{
				"password": "Password must be at least 8 characters",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validSignup()
			tt.mutate(&f)
			got := f.Validate()
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Validate() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSignupInternationalPhone(t *testing.T) {
	assert.Equal(t, "+201001234567", validSignup().InternationalPhone())
}

func admin() validate.PartnerAdmin {
	return validate.PartnerAdmin{
		AdminFirstName:  "Nour",
		AdminLastName:   "El Sayed",
		AdminPhone:      "+20 100 123 4567",
		ManagerEmail:    "manager@nile.example",
		ManagerPassword: "Manager123",
		ConfirmPassword: "Manager123",
	}
}

func TestAirlinePartnershipForm(t *testing.T) {
	f := validate.AirlinePartnershipForm{
		AirlineName:        "Nile Air",
		AirlineNationality: "Egyptian",
		PartnerAdmin:       admin(),
	}
	assert.True(t, f.Validate().OK())

	f.ManagerPassword = "manager123"
	f.ConfirmPassword = "manager123"
	f.AirlineNationality = " "
	errs := f.Validate()
	assert.Equal(t, "Password must contain uppercase, lowercase, and number", errs["managerPassword"])
	assert.Equal(t, "Airline nationality is required", errs["airlineNationality"])
}

func TestHotelPartnershipForm(t *testing.T) {
	f := validate.HotelPartnershipForm{
		HotelName:    "Cairo Grand",
		Latitude:     "30.04",
		Longitude:    "31.23",
		City:         "Cairo",
		Country:      "Egypt",
		PartnerAdmin: admin(),
	}
	assert.True(t, f.Validate().OK())

	// hotels accept a lowercase manager password as long as it has a digit
	f.ManagerPassword = "manager123"
	f.ConfirmPassword = "manager123"
	assert.True(t, f.Validate().OK())

	f.ManagerPassword = "hôtel1é"
	f.ConfirmPassword = "hôtel1é"
	assert.Equal(t, "Password must be at least 8 characters long", f.Validate()["managerPassword"])
	f.ManagerPassword = "manager123"
	f.ConfirmPassword = "manager123"

	f.Latitude = "north"
	f.AdminPhone = "012"
	f.ManagerEmail = "manager@nile"
	f.ConfirmPassword = "other1234"
	want := validate.Errors{
		"latitude":        "Latitude must be a valid number",
		"adminPhone":      "Phone number should start with +(country code) then a valid phone number",
		"managerEmail":    "Please enter a valid email address",
		"confirmPassword": "Passwords do not match",
	}
	if diff := cmp.Diff(want, f.Validate()); diff != "" {
		t.Errorf("Validate() mismatch (-want +got):\n%s", diff)
	}
}

func TestCoordinates(t *testing.T) {
	f := validate.HotelPartnershipForm{Latitude: "95.5", Longitude: "200"}
	lat, lng := f.Coordinates()
	assert.Equal(t, 90.0, lat)
	assert.Equal(t, -160.0, lng)

	assert.Equal(t, -90.0, validate.NormalizeLatitude(-120))
	assert.Equal(t, 170.0, validate.NormalizeLongitude(-550))
	assert.Equal(t, 180.0, validate.NormalizeLongitude(180))
}

func TestHotelPartnershipForm_NonFiniteCoordinates(t *testing.T) {
	for _, v := range []string{"Inf", "-Inf", "+Inf", "NaN", "1e400"} {
		f := validate.HotelPartnershipForm{Latitude: v, Longitude: v}
		errs := f.Validate()
		assert.Equal(t, "Latitude must be a valid number", errs["latitude"], v)
		assert.Equal(t, "Longitude must be a valid number", errs["longitude"], v)
	}
}

func TestNormalizeLongitude(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{31.23, 31.23},
		{-180, -180},
		{190, -170},
		{540, 180},
		{-190, 170},
		{720, 0},
		{math.Inf(1), 0},
		{math.Inf(-1), 0},
		{math.NaN(), 0},
	}
	for _, tt := range tests {
		got := validate.NormalizeLongitude(tt.in)
		assert.Equal(t, tt.want, got, "NormalizeLongitude(%v)", tt.in)
		assert.True(t, got >= -180 && got <= 180, "NormalizeLongitude(%v) = %v", tt.in, got)
	}
}

func TestCoordinates_LargeValuesReturn(t *testing.T) {
	f := validate.HotelPartnershipForm{Latitude: "1e300", Longitude: "-1e300"}
	lat, lng := f.Coordinates()
	assert.Equal(t, 90.0, lat)
	assert.True(t, lng >= -180 && lng <= 180)

	assert.InDelta(t, 0, validate.NormalizeLongitude(1e300), 180)
}
