package entities

import "time"

// Location is a WGS84 coordinate pair
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Product is a marketable good listed by a seller
type Product struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Description       string    `json:"description"`
	Category          string    `json:"category"`
	Variety           string    `json:"variety,omitempty"`
	Tags              []string  `json:"tags,omitempty"`
	Price             float64   `json:"price"`
	Unit              string    `json:"unit"`
	QuantityAvailable int       `json:"quantityAvailable"`
	QualityGrade      string    `json:"qualityGrade,omitempty"`
	Organic           bool      `json:"organic"`
	SellerID          string    `json:"sellerId"`
	SellerName        string    `json:"sellerName"`
	SellerVerified    bool      `json:"sellerVerified"`
	Rating            float64   `json:"rating"`
	RatingCount       int       `json:"ratingCount"`
	Thumbnail         string    `json:"thumbnail,omitempty"`
	City              string    `json:"city,omitempty"`
	State             string    `json:"state,omitempty"`
	Location          Location  `json:"location"`
	Status            string    `json:"status"`
	Views             int64     `json:"views"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// InStock reports whether the listing has sellable quantity
func (p *Product) InStock() bool {
	return p.QuantityAvailable > 0
}
