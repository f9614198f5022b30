package api

import (
	"strconv"
	"time"
)

// Profile is the answer of GET /user.
type Profile struct {
	Name               string `json:"name,omitempty"`
	AvatarURL          string `json:"avatarUrl,omitempty"`
	OnboardingComplete bool   `json:"onboardingComplete"`
}

// ProfileUpdate is the body of PUT /user.
type ProfileUpdate struct {
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl"`
}

// SearchRecord is one element of GET /searches. CreatedAt is unix seconds
// as a decimal string.
type SearchRecord struct {
	UserID    string `json:"userId"`
	CreatedAt string `json:"createdAt"`
	Query     string `json:"query"`
}

// Time parses CreatedAt. A malformed value yields the zero time.
func (r SearchRecord) Time() time.Time {
	sec, err := strconv.ParseInt(r.CreatedAt, 10, 64)
	if err != nil {
		return time.Time{}
	}
	return time.Unix(sec, 0)
}

type newSearch struct {
	Query string `json:"query"`
}
