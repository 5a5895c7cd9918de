package capture

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePlatform(t *testing.T) {
	for _, p := range []Platform{GameCubeEp12, GameCubeEp3, Dreamcast} {
		got, err := ParsePlatform(p.Token())
		assert.NoError(t, err)
		assert.Equal(t, p, got)
	}

	for _, token := range []string{"", "pso_screen", "PSO2_SCREEN", "PSO_SCREEN_"} {
		p, err := ParsePlatform(token)
		assert.Equal(t, Unknown, p)
		var ue *UnknownPlatformError
		if assert.True(t, errors.As(err, &ue), token) {
			assert.Equal(t, token, ue.Token)
		}
	}
}

func TestPlatformFromFilename(t *testing.T) {
	tables := []struct {
		file string
		want Platform
		err  bool
	}{
		{"PSO_SCREEN", GameCubeEp12, false},
		{"PSO_SCREEN_1712345678.png", GameCubeEp12, false},
		{"/tmp/uploads/PSO3_SCREEN_1.dat", GameCubeEp3, false},
		{"PSO_DC_SCREEN_7.vms", Dreamcast, false},
		{"PSO_SCREENSHOT.png", Unknown, true},
		{"screen.png", Unknown, true},
		{"", Unknown, true},
	}

	for _, table := range tables {
		got, err := PlatformFromFilename(table.file)
		assert.Equal(t, table.want, got, table.file)
		if table.err {
			assert.Error(t, err, table.file)
		} else {
			assert.NoError(t, err, table.file)
		}
	}
}

func TestPlatformGameCube(t *testing.T) {
	assert.True(t, GameCubeEp12.GameCube())
	assert.True(t, GameCubeEp3.GameCube())
	assert.False(t, Dreamcast.GameCube())
	assert.False(t, Unknown.GameCube())
	assert.Equal(t, "", Unknown.Token())
	assert.Equal(t, "Unknown", Platform(42).String())
}
