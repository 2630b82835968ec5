package errmsg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError(t *testing.T) {
	err := New(106, "Cannot locate section")
	require.NotNil(t, err)
	assert.Equal(t, 106, err.Code)
	assert.Equal(t, "Cannot locate section", err.Error())
}

func TestWithArgs(t *testing.T) {
	base := New(107, "Cannot locate setting %s in section %s")

	formatted := base.WithArgs("color", "display")
	assert.Equal(t, "Cannot locate setting color in section display", formatted.Error())
	assert.Equal(t, 107, formatted.Code, "code should carry over")

	assert.Equal(t, "Cannot locate setting %s in section %s", base.Msg,
		"the original should be untouched")
}
