package logger

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestInit_Level(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)

	Init("booking-api", "production", "warn")
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())

	Init("booking-api", "development", "nonsense")
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}
