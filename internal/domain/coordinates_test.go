package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCoordinate(t *testing.T) {
	c, err := ParseCoordinate(" -23.5505 , -46.6333 ")
	require.NoError(t, err)
	assert.Equal(t, Coordinate{Lat: -23.5505, Lng: -46.6333}, c)

	back, err := ParseCoordinate(c.String())
	require.NoError(t, err)
	assert.Equal(t, c, back)

	for _, in := range []string{"", "-23.5", "abc,1", "1,abc", "91,0", "0,181"} {
		_, err := ParseCoordinate(in)
		assert.ErrorIs(t, err, ErrValidationRejected, in)
	}
}
