package chat

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCheckPasswordOpenChannel(t *testing.T) {
	req := require.New(t)
	r := NewChannelRegistry()
	r.Create("lobby", "")

	ch := r.Get("lobby")
	req.NotNil(ch)
	req.True(ch.CheckPassword(""))
	req.True(ch.CheckPassword("anything"))
}

func TestCheckPasswordExactMatch(t *testing.T) {
	req := require.New(t)
	r := NewChannelRegistry()
	r.Create("vip", "secret")

	ch := r.Get("vip")
	req.True(ch.CheckPassword("secret"))
	req.False(ch.CheckPassword("wrong"))
	req.False(ch.CheckPassword(""))
	req.False(ch.CheckPassword("Secret"))
}

func TestCreateFirstWriteWins(t *testing.T) {
	req := require.New(t)
	r := NewChannelRegistry()

	first := r.Create("vip", "secret")
	second := r.Create("vip", "other")

	req.Same(first, second)
	req.Equal("secret", r.Get("vip").Password)
}

func TestMemberSet(t *testing.T) {
	req := require.New(t)
	r := NewChannelRegistry()
	r.Create("lobby", "")

	r.AddMember("lobby", "u1")
	r.AddMember("lobby", "u2")
	req.Len(r.Get("lobby").Members, 2)

	r.RemoveMember("lobby", "u1")
	req.Len(r.Get("lobby").Members, 1)
	req.Contains(r.Get("lobby").Members, "u2")

	// Unknown channels are a no-op, not a panic.
	r.AddMember("ghost", "u1")
	r.RemoveMember("ghost", "u1")
	req.Nil(r.Get("ghost"))
}
