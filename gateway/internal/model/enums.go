package model

import "strings"

type PropertyType string

// Must match the AI service's accepted set exactly.
const (
	PropertyTypeApartment        PropertyType = "Apartment"
	PropertyTypeCondominium      PropertyType = "Condominium"
	PropertyTypeServiceResidence PropertyType = "Service Residence"
	PropertyTypeTownhouse        PropertyType = "Townhouse"
)

var propertyTypes = []PropertyType{
	PropertyTypeApartment,
	PropertyTypeCondominium,
	PropertyTypeServiceResidence,
	PropertyTypeTownhouse,
}

func PropertyTypes() []PropertyType {
	return append([]PropertyType(nil), propertyTypes...)
}

func IsValidPropertyType(s string) bool {
	for _, t := range propertyTypes {
		if string(t) == s {
			return true
		}
	}
	return false
}

// Furnished is the app-facing furnishing vocabulary.
type Furnished string

const (
	FurnishedFully     Furnished = "Fully Furnished"
	FurnishedPartially Furnished = "Partially Furnished"
	FurnishedNone      Furnished = "Unfurnished"
)

// AIFurnished is the vocabulary the price-prediction service expects.
type AIFurnished string

const (
	AIFurnishedYes       AIFurnished = "Yes"
	AIFurnishedPartially AIFurnished = "Partially"
	AIFurnishedNo        AIFurnished = "No"
)

var (
	furnishedToAI = map[Furnished]AIFurnished{
		FurnishedFully:     AIFurnishedYes,
		FurnishedPartially: AIFurnishedPartially,
		FurnishedNone:      AIFurnishedNo,
	}
	furnishedFromAI = map[AIFurnished]Furnished{
		AIFurnishedYes:       FurnishedFully,
		AIFurnishedPartially: FurnishedPartially,
		AIFurnishedNo:        FurnishedNone,
	}
)

func IsValidFurnished(s string) bool {
	_, ok := furnishedToAI[Furnished(s)]
	return ok
}

func IsValidAIFurnished(s string) bool {
	_, ok := furnishedFromAI[AIFurnished(s)]
	return ok
}

// FurnishedToAI and FurnishedFromAI are inverse of each other on their domains.
func FurnishedToAI(v Furnished) (AIFurnished, bool) {
	ai, ok := furnishedToAI[v]
	return ai, ok
}

func FurnishedFromAI(v AIFurnished) (Furnished, bool) {
	f, ok := furnishedFromAI[v]
	return f, ok
}

// FurnishedFromBool maps the legacy boolean flag still sent for old listings.
func FurnishedFromBool(furnished bool) Furnished {
	if furnished {
		return FurnishedFully
	}
	return FurnishedNone
}

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusApproved  BookingStatus = "APPROVED"
	BookingStatusActive    BookingStatus = "ACTIVE"
	BookingStatusRejected  BookingStatus = "REJECTED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
	BookingStatusCompleted BookingStatus = "COMPLETED"
)

var bookingStatuses = []BookingStatus{
	BookingStatusPending,
	BookingStatusApproved,
	BookingStatusActive,
	BookingStatusRejected,
	BookingStatusCancelled,
	BookingStatusCompleted,
}

func BookingStatuses() []BookingStatus {
	return append([]BookingStatus(nil), bookingStatuses...)
}

func IsValidBookingStatus(s string) bool {
	for _, st := range bookingStatuses {
		if string(st) == s {
			return true
		}
	}
	return false
}

func (s BookingStatus) IsTerminal() bool {
	switch s {
	case BookingStatusRejected, BookingStatusCancelled, BookingStatusCompleted:
		return true
	}
	return false
}

type PropertyStatus string

const (
	PropertyStatusPendingReview PropertyStatus = "PENDING_REVIEW"
	PropertyStatusApproved      PropertyStatus = "APPROVED"
	PropertyStatusRejected      PropertyStatus = "REJECTED"
)

func IsValidPropertyStatus(s string) bool {
	switch PropertyStatus(s) {
	case PropertyStatusPendingReview, PropertyStatusApproved, PropertyStatusRejected:
		return true
	}
	return false
}

// Role is the side of the marketplace the signed-in user acts on.
type Role string

const (
	RoleTenant Role = "TENANT"
	RoleOwner  Role = "OWNER"
)

// ParseRole accepts the role spellings the core service has used over time.
func ParseRole(s string) (Role, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TENANT", "USER":
		return RoleTenant, true
	case "OWNER", "PROVIDER", "LANDLORD":
		return RoleOwner, true
	}
	return "", false
}
