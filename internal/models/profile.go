package models

import (
	"encoding/json"
	"strings"
)

type UserProfile struct {
	Name   string `json:"name"`
	Handle string `json:"handle"`
	// AvatarURL holds a data: URL of the uploaded picture, empty when unset.
	AvatarURL string `json:"avatarUrl"`
}

func DefaultProfile() UserProfile {
	return UserProfile{
		Name:   "Alexander Smith",
		Handle: "@alex_creator",
	}
}

// MarshalJSON writes an unset avatar as null.
func (p UserProfile) MarshalJSON() ([]byte, error) {
	var avatar *string
	if p.AvatarURL != "" {
		avatar = &p.AvatarURL
	}
	return json.Marshal(struct {
		Name      string  `json:"name"`
		Handle    string  `json:"handle"`
		AvatarURL *string `json:"avatarUrl"`
	}{p.Name, p.Handle, avatar})
}

// BareHandle is the handle without its leading "@".
func (p UserProfile) BareHandle() string {
	return strings.ReplaceAll(p.Handle, "@", "")
}

func (p UserProfile) HasAvatar() bool {
	return p.AvatarURL != ""
}
