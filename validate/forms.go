package validate

import (
	"math"
	"strconv"
	"strings"
)

// PhonePrefix is prepended to the ten digit local number at signup.
const PhonePrefix = "+20"

type SignupForm struct {
	FirstName       string
	LastName        string
	Email           string
	Password        string
	ConfirmPassword string
	PhoneNumber     string
}

func (f SignupForm) Validate() Errors {
	errs := Errors{}
	checkPersonName(errs, "firstName", "First name", f.FirstName)
	checkPersonName(errs, "lastName", "Last name", f.LastName)

	switch {
	case blank(f.Email):
		errs.set("email", "Email is required")
	case !Email(f.Email):
		errs.set("email", "Please enter a valid email address")
	}

	switch {
	case f.Password == "":
		errs.set("password", "Password is required")
	case !MinLength(f.Password, 8):
		errs.set("password", "Password must be at least 8 characters")
	case !Password(f.Password):
		errs.set("password", "Password must contain uppercase, lowercase, and number")
	}

	switch {
	case f.ConfirmPassword == "":
		errs.set("confirmPassword", "Please confirm your password")
	case f.ConfirmPassword != f.Password:
		errs.set("confirmPassword", "Passwords do not match")
	}

	switch {
	case blank(f.PhoneNumber):
		errs.set("phoneNumber", "Phone number is required")
	case !Phone(f.PhoneNumber):
		errs.set("phoneNumber", "Phone must be 10 digits")
	}
	return errs
}

// InternationalPhone is the phone number as the signup endpoint expects it.
func (f SignupForm) InternationalPhone() string {
	return PhonePrefix + f.PhoneNumber
}

func checkPersonName(errs Errors, field, label, v string) {
	switch {
	case blank(v):
		errs.set(field, label+" is required")
	case len(v) < 3 || len(v) > 20:
		errs.set(field, label+" must be 3-20 characters")
	case !nameRe.MatchString(v):
		errs.set(field, label+" should contain only letters")
	}
}

// PartnerAdmin holds the fields shared by the airline and hotel partnership forms.
type PartnerAdmin struct {
	AdminFirstName  string
	AdminLastName   string
	AdminPhone      string
	ManagerEmail    string
	ManagerPassword string
	ConfirmPassword string
}

func (a PartnerAdmin) validate(errs Errors, strongPassword bool) {
	if blank(a.AdminFirstName) {
		errs.set("adminFirstName", "Admin first name is required")
	}
	if blank(a.AdminLastName) {
		errs.set("adminLastName", "Admin last name is required")
	}
	if blank(a.AdminPhone) {
		errs.set("adminPhone", "Admin phone number is required")
	}
	if blank(a.ManagerEmail) {
		errs.set("managerEmail", "Manager email is required")
	}
	if a.ManagerPassword == "" {
		errs.set("managerPassword", "Manager password is required")
	}
	if a.ConfirmPassword == "" {
		errs.set("confirmPassword", "Please confirm your password")
	}

	if a.ManagerEmail != "" && !PartnerEmail(a.ManagerEmail) {
		errs.set("managerEmail", "Please enter a valid email address")
	}
	if a.AdminPhone != "" && !PartnerPhone(a.AdminPhone) {
		errs.set("adminPhone", "Phone number should start with +(country code) then a valid phone number")
	}
	if a.AdminFirstName != "" && !PartnerName(a.AdminFirstName) {
		errs.set("adminFirstName", "First name can only contain letters and spaces")
	}
	if a.AdminLastName != "" && !PartnerName(a.AdminLastName) {
		errs.set("adminLastName", "Last name can only contain letters and spaces")
	}

	if p := a.ManagerPassword; p != "" {
		switch {
		case !MinLength(p, 8):
			errs.set("managerPassword", "Password must be at least 8 characters long")
		case strongPassword && !Password(p):
			errs.set("managerPassword", "Password must contain uppercase, lowercase, and number")
		case !strongPassword && !LetterDigitPassword(p):
			errs.set("managerPassword", "Password must contain both letters and numbers")
		}
	}
	if a.ManagerPassword != "" && a.ConfirmPassword != "" && a.ManagerPassword != a.ConfirmPassword {
		errs.set("confirmPassword", "Passwords do not match")
	}
}

type AirlinePartnershipForm struct {
	AirlineName        string
	AirlineNationality string
	PartnerAdmin
}

func (f AirlinePartnershipForm) Validate() Errors {
	errs := Errors{}
	if blank(f.AirlineName) {
		errs.set("airlineName", "Airline name is required")
	}
	if blank(f.AirlineNationality) {
		errs.set("airlineNationality", "Airline nationality is required")
	}
	f.PartnerAdmin.validate(errs, true)
	return errs
}

type HotelPartnershipForm struct {
	HotelName string
	Latitude  string
	Longitude string
	City      string
	Country   string
	PartnerAdmin
}

func (f HotelPartnershipForm) Validate() Errors {
	errs := Errors{}
	if blank(f.HotelName) {
		errs.set("hotelName", "Hotel name is required")
	}
	if f.Latitude == "" {
		errs.set("latitude", "Latitude is required")
	}
	if f.Longitude == "" {
		errs.set("longitude", "Longitude is required")
	}
	if blank(f.City) {
		errs.set("city", "City is required")
	}
	if blank(f.Country) {
		errs.set("country", "Country is required")
	}
	f.PartnerAdmin.validate(errs, false)

	// out of range values are normalised by Coordinates
	if _, ok := number(f.Latitude); f.Latitude != "" && !ok {
		errs.set("latitude", "Latitude must be a valid number")
	}
	if _, ok := number(f.Longitude); f.Longitude != "" && !ok {
		errs.set("longitude", "Longitude must be a valid number")
	}
	return errs
}

// Coordinates returns the normalised latitude and longitude. Call only after
// Validate succeeded.
func (f HotelPartnershipForm) Coordinates() (lat, lng float64) {
	lat, _ = number(f.Latitude)
	lng, _ = number(f.Longitude)
	return NormalizeLatitude(lat), NormalizeLongitude(lng)
}

// NormalizeLatitude clamps to [-90, 90].
func NormalizeLatitude(lat float64) float64 {
	if lat > 90 {
		return 90
	}
	if lat < -90 {
		return -90
	}
	return lat
}

// NormalizeLongitude wraps into [-180, 180]. Non-finite input maps to 0.
func NormalizeLongitude(lng float64) float64 {
	if math.IsInf(lng, 0) || math.IsNaN(lng) {
		return 0
	}
	if lng >= -180 && lng <= 180 {
		return lng
	}
	lng = math.Mod(lng+180, 360)
	if lng < 0 {
		lng += 360
	}
	if lng == 0 {
		return 180
	}
	return lng - 180
}

// number parses a finite decimal; "Inf" and "NaN" are rejected.
func number(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}
