package model

type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Phone       string `json:"phone,omitempty"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`
	Role        Role   `json:"role"`
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Registration struct {
	Credentials
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	DateOfBirth string `json:"dateOfBirth"`
	Phone       string `json:"phone"`
	Role        Role   `json:"role,omitempty"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Listing is a checked listing draft ready to be sent to the core service.
type Listing struct {
	Title          string    `json:"title"`
	Description    string    `json:"description,omitempty"`
	Address        string    `json:"address"`
	City           string    `json:"city"`
	State          string    `json:"state"`
	ZipCode        string    `json:"zipCode"`
	Price          float64   `json:"price"`
	Bedrooms       int       `json:"bedrooms"`
	Bathrooms      int       `json:"bathrooms"`
	Area           float64   `json:"area"`
	PropertyTypeID string    `json:"propertyTypeId"`
	Furnished      Furnished `json:"furnished,omitempty"`
}

// PredictionRequest is the AI service's request shape.
type PredictionRequest struct {
	PropertyType PropertyType `json:"property_type"`
	Bedrooms     int          `json:"bedrooms"`
	Bathrooms    int          `json:"bathrooms"`
	Area         float64      `json:"area"`
	Furnished    AIFurnished  `json:"furnished"`
	Location     string       `json:"location"`
}

type PredictionResponse struct {
	PredictedPrice float64  `json:"predicted_price"`
	Currency       string   `json:"currency,omitempty"`
	LowerBound     *float64 `json:"lower_bound,omitempty"`
	UpperBound     *float64 `json:"upper_bound,omitempty"`
}

// Actor is the signed-in user performing an action.
type Actor struct {
	UserID string `json:"userId"`
	Role   Role   `json:"role"`
}
