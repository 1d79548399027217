package testmodels

import "github.com/go-openapi/strfmt"

type RatingSystem struct {

	// Timestamp when the rating system was created.
	// Required: true
	// Format: date-time
	CreatedAt *strfmt.DateTime `json:"CreatedAt" dynamodbav:"CreatedAt"`

	// A description of the rating system.
	// Required: true
	Description *string `json:"Description" dynamodbav:"Description"`

	// Unique identifier for the rating system.
	// Required: true
	ID *string `json:"Id" dynamodbav:"Id"`

	// Name of the rating system.
	// Required: true
	Name *string `json:"Name" dynamodbav:"Name"`

	// site Url
	SiteURL string `json:"SiteUrl,omitempty" dynamodbav:"SiteUrl,omitempty"`

	// Timestamp when the rating system was last updated.
	// Required: true
	// Format: date-time
	UpdatedAt *strfmt.DateTime `json:"UpdatedAt" dynamodbav:"UpdatedAt"`
}

func (RatingSystem) CollectionName() string { return "rating_systems" }

func (r RatingSystem) Key() string {
	if r.ID == nil {
		return ""
	}
	return *r.ID
}
