package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type Property struct {
	ID           string          `json:"id"`
	OwnerID      string          `json:"ownerId"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Address      string          `json:"address"`
	City         string          `json:"city"`
	State        string          `json:"state"`
	ZipCode      string          `json:"zipCode"`
	Price        decimal.Decimal `json:"price"`
	Bedrooms     int             `json:"bedrooms"`
	Bathrooms    int             `json:"bathrooms"`
	Area         float64         `json:"area"`
	Furnished    Furnished       `json:"furnished"`
	Type         PropertyType    `json:"type"`
	Available    bool            `json:"isAvailable"`
	Status       PropertyStatus  `json:"status"`
	PropertyType PropertyTypeRef `json:"propertyType"`
	Amenities    []AmenityRef    `json:"amenities"`
	IsFavorite   bool            `json:"isFavorite"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

type PropertyTypeRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type AmenityRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type PropertyList struct {
	Items      []Property `json:"items"`
	Pagination Pagination `json:"pagination"`
}

// UnmarshalJSON accepts both the current string values and the legacy boolean flag.
func (f *Furnished) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch string(b) {
	case "null":
		return nil
	case "true", "false":
		*f = FurnishedFromBool(string(b) == "true")
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if !IsValidFurnished(s) {
		return fmt.Errorf("unknown furnished value %q", s)
	}
	*f = Furnished(s)
	return nil
}
