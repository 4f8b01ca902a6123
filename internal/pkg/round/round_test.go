package round

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlaces(t *testing.T) {
	assert.Equal(t, 1.23, Places(1.2345, 2))
	assert.Equal(t, 1.24, Places(1.235, 2))
	assert.Equal(t, -1.24, Places(-1.235, 2))
	assert.Equal(t, 1.2, Places(1.2345, 1))
	assert.Equal(t, 1.0, Places(1.2345, 0))
	assert.Equal(t, 0.0, Places(0, 2))
}

func TestTwo(t *testing.T) {
	assert.Equal(t, 12.35, Two(12.345))
	assert.Equal(t, -0.21, Two(-0.207))
	assert.Equal(t, 50.0, Two(50))
}
