package orders

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOrderCodeFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^[A-Z]{3}[0-9]{3}$`)
	for i := 0; i < 50; i++ {
		code, err := newOrderCode()
		require.NoError(t, err)
		require.Regexp(t, pattern, code)
	}
}
