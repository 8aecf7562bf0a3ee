package logger

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestSetupLevel(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	Logger{Level: "debug", Format: "json"}.Setup()
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())

	Logger{Level: "warn", NoColor: true}.Setup()
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())

	Logger{Level: "bogus"}.Setup()
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())

	Logger{}.Setup()
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}
