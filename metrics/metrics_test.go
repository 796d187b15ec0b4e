package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestActionLabel(t *testing.T) {
	assert.Equal(t, "view", ActionLabel("view"))
	assert.Equal(t, "click", ActionLabel("click"))
	assert.Equal(t, "other", ActionLabel("share"))
	assert.Equal(t, "other", ActionLabel(""))
}
