package info

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImageName(t *testing.T) {
	a, b := imageName(), imageName()

	assert.Regexp(t, regexp.MustCompile(`^outfit_[0-9a-f]{8}\.png$`), a)
	assert.NotEqual(t, a, b)
}
