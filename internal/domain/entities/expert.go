package entities

import "time"

// Expert is an advisory expert profile
type Expert struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Bio             string    `json:"bio"`
	Specializations []string  `json:"specializations,omitempty"`
	Verified        bool      `json:"verified"`
	Rating          float64   `json:"rating"`
	RatingCount     int       `json:"ratingCount"`
	ExperienceYears int       `json:"experienceYears"`
	TotalAnswers    int       `json:"totalAnswers"`
	Thumbnail       string    `json:"thumbnail,omitempty"`
	City            string    `json:"city,omitempty"`
	State           string    `json:"state,omitempty"`
	Location        Location  `json:"location"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
