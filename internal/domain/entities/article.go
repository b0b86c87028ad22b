package entities

import "time"

// Article is a knowledge-base article
type Article struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content,omitempty"`
	Excerpt    string    `json:"excerpt"`
	Category   string    `json:"category"`
	Tags       []string  `json:"tags,omitempty"`
	AuthorID   string    `json:"authorId"`
	AuthorName string    `json:"authorName"`
	Thumbnail  string    `json:"thumbnail,omitempty"`
	Views      int64     `json:"views"`
	LikeCount  int       `json:"likeCount"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
