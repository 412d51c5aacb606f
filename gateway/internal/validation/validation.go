// Package validation parses loosely typed candidates into checked records.
// Every rule of a flow runs, so one record can carry several errors.
package validation

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/Astemirdum/rental-service/gateway/internal/model"
	"github.com/Astemirdum/rental-service/pkg/validate"
	"github.com/go-playground/validator/v10"
)

type Result struct {
	IsValid bool     `json:"isValid"`
	Errors  []string `json:"errors"`
}

type FieldResult struct {
	IsValid bool              `json:"isValid"`
	Errors  map[string]string `json:"errors"`
}

var emailRe = regexp.MustCompile(`(?i)^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// RegisterTags adds the marketplace tags to v.
func RegisterTags(v *validator.Validate) {
	_ = v.RegisterValidation("looseemail", func(fl validator.FieldLevel) bool { //nolint:errcheck
		return emailRe.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("propertytype", func(fl validator.FieldLevel) bool { //nolint:errcheck
		return model.IsValidPropertyType(fl.Field().String())
	})
	_ = v.RegisterValidation("aifurnished", func(fl validator.FieldLevel) bool { //nolint:errcheck
		return model.IsValidAIFurnished(fl.Field().String())
	})
	_ = v.RegisterValidation("bookingstatus", func(fl validator.FieldLevel) bool { //nolint:errcheck
		return model.IsValidBookingStatus(fl.Field().String())
	})
}

var checker = validate.New(RegisterTags)

type loginInput struct {
	Email    string `json:"email" validate:"required,looseemail"`
	Password string `json:"password" validate:"required,min=6"`
}

type registrationInput struct {
	Email       string `json:"email" validate:"required,looseemail"`
	Password    string `json:"password" validate:"required,min=6"`
	FirstName   string `json:"firstName" validate:"notblank"`
	LastName    string `json:"lastName" validate:"notblank"`
	DateOfBirth string `json:"dateOfBirth" validate:"notblank"`
	Phone       string `json:"phone" validate:"notblank"`
}

type listingInput struct {
	Title          string   `json:"title" validate:"notblank"`
	Address        string   `json:"address" validate:"notblank"`
	City           string   `json:"city" validate:"notblank"`
	State          string   `json:"state" validate:"notblank"`
	ZipCode        string   `json:"zipCode" validate:"notblank"`
	PropertyTypeID string   `json:"propertyTypeId" validate:"notblank"`
	Price          *float64 `json:"price" validate:"required,gt=0"`
	Bedrooms       *float64 `json:"bedrooms" validate:"required,gt=0"`
	Bathrooms      *float64 `json:"bathrooms" validate:"required,gt=0"`
	Area           *float64 `json:"area" validate:"required,gt=0"`
}

type predictionInput struct {
	PropertyType string   `json:"propertyType" validate:"required,propertytype"`
	Bedrooms     *int     `json:"bedrooms" validate:"required,gte=1"`
	Bathrooms    *int     `json:"bathrooms" validate:"required,gte=1"`
	Area         *float64 `json:"area" validate:"required,gt=0"`
	Furnished    string   `json:"furnished" validate:"required,aifurnished"`
	Location     string   `json:"location" validate:"notblank"`
}

// messages is keyed by field, then by failing tag; "" is the field's fallback.
var messages = map[string]map[string]string{
	"email": {
		"required":   "Email is required",
		"looseemail": "Please enter a valid email address",
	},
	"password": {
		"required": "Password is required",
		"min":      "Password must be at least 6 characters",
	},
	"firstName":      {"": "First name is required"},
	"lastName":       {"": "Last name is required"},
	"dateOfBirth":    {"": "Date of birth is required"},
	"phone":          {"": "Phone number is required"},
	"title":          {"": "Title is required"},
	"address":        {"": "Address is required"},
	"city":           {"": "City is required"},
	"state":          {"": "State is required"},
	"zipCode":        {"": "Zip code is required"},
	"propertyTypeId": {"": "Property type is required"},
	"price":          {"": "Price must be a positive number"},
	"bedrooms": {
		"":    "Bedrooms must be a positive number",
		"gte": "Bedrooms must be at least 1",
	},
	"bathrooms": {
		"":    "Bathrooms must be a positive number",
		"gte": "Bathrooms must be at least 1",
	},
	"area":         {"": "Area must be a positive number"},
	"propertyType": {"": "Property type must be one of: Apartment, Condominium, Service Residence, Townhouse"},
	"furnished":    {"": "Furnished must be one of: Yes, Partially, No"},
	"location":     {"": "Location is required"},
}

func message(fe validator.FieldError) string {
	byTag, ok := messages[fe.Field()]
	if !ok {
		return fe.Error()
	}
	if m, ok := byTag[fe.Tag()]; ok {
		return m
	}
	if m, ok := byTag[""]; ok {
		return m
	}
	return fe.Error()
}

func fieldErrors(err error) []validator.FieldError {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return ve
	}
	return nil
}

func listResult(in any) Result {
	res := Result{Errors: []string{}}
	for _, fe := range fieldErrors(checker.Struct(in)) {
		res.Errors = append(res.Errors, message(fe))
	}
	res.IsValid = len(res.Errors) == 0
	return res
}

func mapResult(in any) FieldResult {
	res := FieldResult{Errors: map[string]string{}}
	for _, fe := range fieldErrors(checker.Struct(in)) {
		res.Errors[fe.Field()] = message(fe)
	}
	res.IsValid = len(res.Errors) == 0
	return res
}

func ParseLogin(c Candidate) (model.Credentials, Result) {
	in := loginInput{Email: c.str("email"), Password: c.str("password")}
	return model.Credentials{Email: strings.TrimSpace(in.Email), Password: in.Password}, listResult(in)
}

func ValidateLogin(c Candidate) Result {
	_, res := ParseLogin(c)
	return res
}

// ValidateCredentials checks already typed credentials with the login rules.
func ValidateCredentials(cr model.Credentials) Result {
	return listResult(loginInput{Email: cr.Email, Password: cr.Password})
}

func ParseRegistration(c Candidate) (model.Registration, Result) {
	in := registrationInput{
		Email:       c.str("email"),
		Password:    c.str("password"),
		FirstName:   c.str("firstName"),
		LastName:    c.str("lastName"),
		DateOfBirth: c.str("dateOfBirth"),
		Phone:       c.str("phone"),
	}
	reg := registrationFromInput(in)
	if role, ok := model.ParseRole(c.str("role")); ok {
		reg.Role = role
	}
	return reg, listResult(in)
}

func ValidateRegistration(c Candidate) Result {
	_, res := ParseRegistration(c)
	return res
}

func ValidateRegistrationData(r model.Registration) Result {
	return listResult(registrationInput{
		Email:       r.Email,
		Password:    r.Password,
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		DateOfBirth: r.DateOfBirth,
		Phone:       r.Phone,
	})
}

func registrationFromInput(in registrationInput) model.Registration {
	return model.Registration{
		Credentials: model.Credentials{Email: strings.TrimSpace(in.Email), Password: in.Password},
		FirstName:   strings.TrimSpace(in.FirstName),
		LastName:    strings.TrimSpace(in.LastName),
		DateOfBirth: strings.TrimSpace(in.DateOfBirth),
		Phone:       strings.TrimSpace(in.Phone),
	}
}

// ParseListing returns the typed listing; it is only meaningful when the
// result is valid.
func ParseListing(c Candidate) (model.Listing, FieldResult) {
	in := listingInput{
		Title:          c.str("title"),
		Address:        c.str("address"),
		City:           c.str("city"),
		State:          c.str("state"),
		ZipCode:        zipCode(c),
		PropertyTypeID: c.str("propertyTypeId"),
		Price:          c.num("price"),
		Bedrooms:       c.num("bedrooms"),
		Bathrooms:      c.num("bathrooms"),
		Area:           c.num("area"),
	}
	res := mapResult(in)
	listing := model.Listing{
		Title:          strings.TrimSpace(in.Title),
		Description:    strings.TrimSpace(c.str("description")),
		Address:        strings.TrimSpace(in.Address),
		City:           strings.TrimSpace(in.City),
		State:          strings.TrimSpace(in.State),
		ZipCode:        strings.TrimSpace(in.ZipCode),
		PropertyTypeID: strings.TrimSpace(in.PropertyTypeID),
		Price:          deref(in.Price),
		Bedrooms:       int(math.Round(deref(in.Bedrooms))),
		Bathrooms:      int(math.Round(deref(in.Bathrooms))),
		Area:           deref(in.Area),
	}
	if f := c.str("furnished"); model.IsValidFurnished(f) {
		listing.Furnished = model.Furnished(f)
	} else if b, ok := c["furnished"].(bool); ok {
		listing.Furnished = model.FurnishedFromBool(b)
	}
	return listing, res
}

func ValidateListingData(c Candidate) FieldResult {
	_, res := ParseListing(c)
	return res
}

// zipCode accepts the code as a string or, from older forms, as a number.
func zipCode(c Candidate) string {
	if s := c.str("zipCode"); s != "" {
		return s
	}
	if n := c.integer("zipCode"); n != nil && *n > 0 {
		return strconv.Itoa(*n)
	}
	return ""
}

func ParsePrediction(c Candidate) (model.PredictionRequest, Result) {
	in := predictionInput{
		PropertyType: c.str("propertyType"),
		Bedrooms:     c.integer("bedrooms"),
		Bathrooms:    c.integer("bathrooms"),
		Area:         c.num("area"),
		Furnished:    c.str("furnished"),
		Location:     c.str("location"),
	}
	req := model.PredictionRequest{
		PropertyType: model.PropertyType(in.PropertyType),
		Bedrooms:     derefInt(in.Bedrooms),
		Bathrooms:    derefInt(in.Bathrooms),
		Area:         deref(in.Area),
		Furnished:    model.AIFurnished(in.Furnished),
		Location:     strings.TrimSpace(in.Location),
	}
	return req, listResult(in)
}

func ValidatePredictionRequest(c Candidate) Result {
	_, res := ParsePrediction(c)
	return res
}

// ValidatePrediction checks an already typed request with the same rules.
func ValidatePrediction(req model.PredictionRequest) Result {
	return listResult(predictionInput{
		PropertyType: string(req.PropertyType),
		Bedrooms:     &req.Bedrooms,
		Bathrooms:    &req.Bathrooms,
		Area:         &req.Area,
		Furnished:    string(req.Furnished),
		Location:     req.Location,
	})
}

// PredictionFromListing builds an AI request for a listing, translating the
// furnished vocabulary.
func PredictionFromListing(l model.Listing, pt model.PropertyType, location string) (model.PredictionRequest, Result) {
	furnished, _ := model.FurnishedToAI(l.Furnished)
	req := model.PredictionRequest{
		PropertyType: pt,
		Bedrooms:     l.Bedrooms,
		Bathrooms:    l.Bathrooms,
		Area:         l.Area,
		Furnished:    furnished,
		Location:     strings.TrimSpace(location),
	}
	return req, ValidatePrediction(req)
}

func deref(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

func derefInt(i *int) int {
	if i == nil {
		return 0
	}
	return *i
}
