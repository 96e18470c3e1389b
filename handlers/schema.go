package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xeipuuv/gojsonschema"
)

// ─── Request schemas ──────────────────────────────────────────────────────────

var (
	credentialsSchema = mustSchema(`{
  "type": "object",
  "required": ["email", "password"],
  "properties": {
    "email": {"type": "string", "minLength": 1},
    "password": {"type": "string", "minLength": 1}
  }
}`)

	signupSchema = mustSchema(`{
  "type": "object",
  "required": ["firstName", "lastName", "email", "password", "confirmPassword", "phoneNumber"],
  "properties": {
    "firstName": {"type": "string"},
    "lastName": {"type": "string"},
    "email": {"type": "string"},
    "password": {"type": "string"},
    "confirmPassword": {"type": "string"},
    "phoneNumber": {"type": "string"}
  }
}`)

	emailSchema = mustSchema(`{
  "type": "object",
  "required": ["email"],
  "properties": {"email": {"type": "string", "minLength": 1}}
}`)

	otpSchema = mustSchema(`{
  "type": "object",
  "required": ["email", "otp"],
  "properties": {
    "email": {"type": "string", "minLength": 1},
    "otp": {"type": "string", "pattern": "^[0-9]{6}$"}
  }
}`)

	passwordSchema = mustSchema(`{
  "type": "object",
  "required": ["email", "resetToken", "newPassword"],
  "properties": {
    "email": {"type": "string", "minLength": 1},
    "resetToken": {"type": "string", "minLength": 1},
    "newPassword": {"type": "string", "minLength": 1}
  }
}`)

	flightSearchSchema = mustSchema(`{
  "type": "object",
  "properties": {
    "form": {"type": "object"},
    "page": {"type": "integer", "minimum": 0},
    "size": {"type": "integer", "minimum": 1, "maximum": 100}
  }
}`)

	hotelSearchSchema = flightSearchSchema

	ticketSchema = mustSchema(`{
  "type": "object",
  "required": ["airlineId", "flightId", "tripTypeId", "quantity"],
  "properties": {
    "airlineId": {"type": "integer", "minimum": 1},
    "flightId": {"type": "integer", "minimum": 1},
    "tripTypeId": {"type": "integer", "minimum": 1},
    "quantity": {"type": "integer"},
    "price": {"type": "number", "minimum": 0}
  }
}`)

	documentSchema = mustSchema(`{
  "type": "object",
  "properties": {
    "type": {"enum": ["HOTEL", "FLIGHT"]},
    "travelerName": {"type": "string", "maxLength": 120},
    "quantity": {"type": "integer", "minimum": 1, "maximum": 10},
    "offer": {
      "type": "object",
      "required": ["offerName", "discountValue"],
      "properties": {
        "offerName": {"type": "string", "minLength": 1},
        "discountValue": {"type": "number", "minimum": 0, "maximum": 100}
      }
    }
  }
}`)

	statusSchema = mustSchema(`{
  "type": "object",
  "required": ["active"],
  "properties": {
    "active": {"type": "boolean"},
    "reason": {"type": "string"}
  }
}`)
)

func mustSchema(src string) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic(fmt.Sprintf("handlers: bad schema: %v", err))
	}
	return s
}

// bindJSON validates the request body against schema and decodes it into
// out. On failure it writes the 400 response and returns false.
func bindJSON(c *gin.Context, schema *gojsonschema.Schema, out any) bool {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil || len(body) == 0 {
		badRequest(c, "Invalid request: empty body")
		return false
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		badRequest(c, "Invalid request: "+err.Error())
		return false
	}
	if !result.Valid() {
		schemaErrors(c, result.Errors())
		return false
	}

	if err := json.Unmarshal(body, out); err != nil {
		badRequest(c, "Invalid request: "+err.Error())
		return false
	}
	return true
}

func schemaErrors(c *gin.Context, errs []gojsonschema.ResultError) {
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, fmt.Sprintf("%v", e))
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"errors": out})
}
