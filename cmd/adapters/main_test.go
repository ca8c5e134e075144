package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirides/hellotriangle/gpu/gputest"
)

func TestListAdapters(t *testing.T) {
	api := gputest.New()
	api.Unsupported = map[uint32]bool{0: true}
	var out bytes.Buffer

	require.NoError(t, listAdapters(api, &out, false))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `msg="adapter 0"`)
	assert.Contains(t, lines[0], `description="Microsoft Basic Render Driver"`)
	assert.Contains(t, lines[0], "software=true")
	assert.Contains(t, lines[0], "d3d12=false")
	assert.Contains(t, lines[1], `msg="adapter 1"`)
	assert.Contains(t, lines[1], "dedicated_video_memory=8.00GB")
	assert.Contains(t, lines[1], "d3d12=true")
	assert.NotContains(t, out.String(), "level=")
	assert.Empty(t, api.Live())
}

func TestListAdaptersWarp(t *testing.T) {
	api := gputest.New()
	var out bytes.Buffer

	require.NoError(t, listAdapters(api, &out, true))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[2], "msg=warp")
	assert.Contains(t, lines[2], "(WARP)")
	assert.Empty(t, api.Live())
}

func TestListAdaptersFactoryError(t *testing.T) {
	api := gputest.New()
	cause := errors.New("no dxgi")
	api.Fail("CreateFactory", cause)
	assert.ErrorIs(t, listAdapters(api, &bytes.Buffer{}, false), cause)
}
