package domain

import "time"

// MaxEngagementSeed bounds the placeholder viewedProfile/impressions values
// assigned on registration.
const MaxEngagementSeed = 10000

// User models a registered member of the network.
type User struct {
	ID            string    `json:"_id"`
	FirstName     string    `json:"firstName"`
	LastName      string    `json:"lastName"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"`
	PicturePath   string    `json:"picturePath"`
	Friends       []string  `json:"friends"`
	Location      string    `json:"location"`
	Occupation    string    `json:"occupation"`
	ViewedProfile int       `json:"viewedProfile"`
	Impressions   int       `json:"impressions"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// HasFriend reports whether id is in the user's friend list.
func (u *User) HasFriend(id string) bool {
	for _, f := range u.Friends {
		if f == id {
			return true
		}
	}
	return false
}

// Friend is the public projection of a User shown in friend lists.
type Friend struct {
	ID          string `json:"_id"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Occupation  string `json:"occupation"`
	Location    string `json:"location"`
	PicturePath string `json:"picturePath"`
}

// AsFriend projects the user onto the friend-list view.
func (u *User) AsFriend() Friend {
	return Friend{
		ID:          u.ID,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Occupation:  u.Occupation,
		Location:    u.Location,
		PicturePath: u.PicturePath,
	}
}
