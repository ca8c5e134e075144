package sample

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/kirides/hellotriangle/format"
	"github.com/kirides/hellotriangle/gpu"
)

// MinFeatureLevel is the feature level every device is created at.
const MinFeatureLevel = gpu.FeatureLevel11_0

// selectAdapter returns the WARP adapter when useWARP is set. Otherwise it
// returns the first hardware adapter that can host a device at
// MinFeatureLevel. Rejected adapters are released.
func selectAdapter(api gpu.API, factory gpu.Factory, useWARP bool) (gpu.Adapter, error) {
	if useWARP {
		a, err := factory.EnumWarpAdapter()
		if err != nil {
			return nil, fmt.Errorf("%w: EnumWarpAdapter: %w", ErrNoCompatibleAdapter, err)
		}
		return a, nil
	}

	for i := uint32(0); ; i++ {
		a, err := factory.EnumAdapters(i)
		if errors.Is(err, gpu.ErrNotFound) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: EnumAdapters(%d): %w", ErrNoCompatibleAdapter, i, err)
		}
		desc, err := a.Desc()
		if err != nil {
			a.Release()
			return nil, fmt.Errorf("%w: adapter %d descriptor: %w", ErrNoCompatibleAdapter, i, err)
		}
		if desc.Software() {
			slog.Debug("skipping software adapter", "index", i, "description", desc.Description)
			a.Release()
			continue
		}
		if err := api.CheckDeviceSupport(a, MinFeatureLevel); err != nil {
			slog.Debug("adapter cannot create a device", "index", i, "description", desc.Description, "error", err)
			a.Release()
			continue
		}
		return a, nil
	}
	return nil, ErrNoCompatibleAdapter
}

// DescribeAdapter returns desc as slog key/value pairs.
func DescribeAdapter(desc gpu.AdapterDesc) []any {
	return []any{
		"description", desc.Description,
		"vendor_id", fmt.Sprintf("0x%04x", desc.VendorID),
		"device_id", fmt.Sprintf("0x%04x", desc.DeviceID),
		"subsys_id", fmt.Sprintf("0x%08x", desc.SubSysID),
		"revision", desc.Revision,
		"dedicated_video_memory", format.HumanBytes(desc.DedicatedVideoMemory),
		"dedicated_system_memory", format.HumanBytes(desc.DedicatedSystemMemory),
		"shared_system_memory", format.HumanBytes(desc.SharedSystemMemory),
		"luid", fmt.Sprintf("%08x:%08x", uint32(desc.LUID.HighPart), desc.LUID.LowPart),
		"software", desc.Software(),
	}
}
