package domain

import "time"

// Post is a status update published by a user.
type Post struct {
	ID              string          `json:"_id"`
	UserID          string          `json:"userId"`
	FirstName       string          `json:"firstName"`
	LastName        string          `json:"lastName"`
	Location        string          `json:"location"`
	Description     string          `json:"description"`
	PicturePath     string          `json:"picturePath"`
	UserPicturePath string          `json:"userPicturePath"`
	Likes           map[string]bool `json:"likes"`
	Comments        []string        `json:"comments"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// LikedBy reports whether userID currently likes the post.
func (p *Post) LikedBy(userID string) bool {
	return p.Likes[userID]
}
