// Package models defines the data structures exchanged with the Witter
// backend and held by client views.
package models

// FollowStatus describes the relationship between the requesting user and
// an account.
type FollowStatus struct {
	IsFollower bool `json:"isFollower"`
}

// Account is a profile record or account summary as returned by the backend.
// Picture fields are URLs owned by the backend and passed through verbatim.
type Account struct {
	Handle          string       `json:"handle"`
	Username        string       `json:"username"`
	Email           string       `json:"email,omitempty"`
	UserDescription string       `json:"user_description,omitempty"`
	ProfilePicture  string       `json:"profile_image,omitempty"`
	BannerPicture   string       `json:"banner_image,omitempty"`
	FollowStatus    FollowStatus `json:"followStatus"`
}
