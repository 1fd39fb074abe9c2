package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoggerDefaultsToNop(t *testing.T) {
	assert.NotNil(t, Logger())
	assert.NotNil(t, Sugar())
}

func TestInitProductionAndDevelopment(t *testing.T) {
	Init(true)
	assert.NotNil(t, Logger())

	Init(false)
	assert.NotNil(t, Logger())
}
