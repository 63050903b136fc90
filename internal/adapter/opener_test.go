package adapter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type startCall struct {
	name string
	args []string
}

func recordingOpener(command string, args []string, goos string) (*Opener, *[]startCall) {
	var calls []startCall
	o := NewOpener(command, args, NullLogger())
	o.goos = goos
	o.start = func(name string, args ...string) error {
		calls = append(calls, startCall{name: name, args: args})
		return nil
	}
	return o, &calls
}

func TestOpener_SystemDefault(t *testing.T) {
	link := "https://cdn.example/products/1/thumbnail.webp"
	tests := []struct {
		goos string
		want startCall
	}{
		{"linux", startCall{"xdg-open", []string{link}}},
		{"freebsd", startCall{"xdg-open", []string{link}}},
		{"darwin", startCall{"open", []string{link}}},
		{"windows", startCall{"cmd", []string{"/c", "start", "", link}}},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			o, calls := recordingOpener("", nil, tt.goos)
			require.NoError(t, o.Open(link))
			assert.Equal(t, []startCall{tt.want}, *calls)
		})
	}
}

func TestOpener_ConfiguredCommand(t *testing.T) {
	args := []string{"--new-window"}
	o, calls := recordingOpener("firefox", args, "linux")

	require.NoError(t, o.Open("https://cdn.example/a.png"))
	require.NoError(t, o.Open("https://cdn.example/b.png"))

	assert.Equal(t, []startCall{
		{"firefox", []string{"--new-window", "https://cdn.example/a.png"}},
		{"firefox", []string{"--new-window", "https://cdn.example/b.png"}},
	}, *calls)
	assert.Equal(t, []string{"--new-window"}, args, "configured args must not be modified")
}

func TestOpener_RejectsLinks(t *testing.T) {
	o, calls := recordingOpener("", nil, "linux")

	assert.ErrorIs(t, o.Open(""), ErrNoLink)
	assert.Error(t, o.Open("file:///etc/passwd"))
	assert.Error(t, o.Open("/products/1"))
	assert.Empty(t, *calls)
}

func TestOpener_StartFailure(t *testing.T) {
	o, _ := recordingOpener("viewer", nil, "linux")
	boom := errors.New("not found")
	o.start = func(string, ...string) error { return boom }

	err := o.Open("https://cdn.example/a.png")
	assert.ErrorIs(t, err, boom)
	assert.ErrorContains(t, err, "open with viewer")
}
