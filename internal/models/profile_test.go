package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserProfile_JSONAvatar(t *testing.T) {
	b, err := json.Marshal(DefaultProfile())
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Alexander Smith","handle":"@alex_creator","avatarUrl":null}`, string(b))

	p := DefaultProfile()
	p.AvatarURL = "data:image/png;base64,AAAA"
	b, err = json.Marshal(p)
	require.NoError(t, err)

	var back UserProfile
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, p, back)
}

func TestUserProfile_BareHandle(t *testing.T) {
	p := UserProfile{Handle: "@alex_creator"}
	assert.Equal(t, "alex_creator", p.BareHandle())
	assert.False(t, p.HasAvatar())
}
