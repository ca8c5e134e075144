package d3d

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHRESULT(t *testing.T) {
	assert.False(t, S_OK.Failed())
	assert.False(t, S_FALSE.Failed())
	assert.True(t, E_FAIL.Failed())
	assert.True(t, DXGI_ERROR_NOT_FOUND.Failed())

	assert.Equal(t, "DXGI_ERROR_DEVICE_REMOVED", DXGI_ERROR_DEVICE_REMOVED.Error())
	assert.Equal(t, "E_INVALIDARG", E_INVALIDARG.Error())
	assert.Equal(t, "0x887a0099", HRESULT(0x887A0099).Error())
}

func TestCheck(t *testing.T) {
	assert.NoError(t, check(0))
	assert.NoError(t, check(1))

	err := fmt.Errorf("Present: %w", check(uintptr(DXGI_ERROR_DEVICE_HUNG)))
	assert.True(t, errors.Is(err, DXGI_ERROR_DEVICE_HUNG))

	var hr HRESULT
	assert.True(t, errors.As(err, &hr))
	assert.Equal(t, DXGI_ERROR_DEVICE_HUNG, hr)
}
