package sample

import (
	"encoding/binary"
	"fmt"
	"math"
	"unsafe"

	"github.com/kirides/hellotriangle/gpu"
)

// VertexSize is the byte size of one encoded Vertex.
const VertexSize = 28

type Vertex struct {
	Position [3]float32
	Color    [4]float32
}

// TriangleVertices returns the triangle, stretched vertically by aspect.
func TriangleVertices(aspect float32) [3]Vertex {
	return [3]Vertex{
		{Position: [3]float32{0.0, 0.25 * aspect, 0.0}, Color: [4]float32{1.0, 0.0, 0.0, 1.0}},
		{Position: [3]float32{0.25, -0.25 * aspect, 0.0}, Color: [4]float32{0.0, 1.0, 0.0, 1.0}},
		{Position: [3]float32{-0.25, -0.25 * aspect, 0.0}, Color: [4]float32{0.0, 0.0, 1.0, 1.0}},
	}
}

// EncodeVertices lays vs out the way the input layout reads them.
func EncodeVertices(vs []Vertex) []byte {
	b := make([]byte, 0, len(vs)*VertexSize)
	for _, v := range vs {
		for _, f := range v.Position {
			b = binary.LittleEndian.AppendUint32(b, math.Float32bits(f))
		}
		for _, f := range v.Color {
			b = binary.LittleEndian.AppendUint32(b, math.Float32bits(f))
		}
	}
	return b
}

// createVertexBuffer uploads the triangle into an upload heap buffer that
// stays mapped only for the copy.
func (s *HelloTriangle) createVertexBuffer(r *resources, aspect float32) error {
	vertices := TriangleVertices(aspect)
	payload := EncodeVertices(vertices[:])

	desc := gpu.BufferDesc(uint64(len(payload)))
	buf, err := s.device.CreateCommittedResource(
		&gpu.HeapProperties{Type: gpu.HeapTypeUpload},
		gpu.HeapFlagNone,
		&desc,
		gpu.ResourceStateGenericRead,
	)
	if err != nil {
		return fmt.Errorf("%w: vertex buffer: %w", ErrResourceCreationFailed, err)
	}
	r.vertexBuffer = buf
	r.vertexBufferView = gpu.VertexBufferView{
		BufferLocation: buf.GetGPUVirtualAddress(),
		StrideInBytes:  VertexSize,
		SizeInBytes:    uint32(len(payload)),
	}

	// The CPU never reads the buffer.
	p, err := buf.Map(0, &gpu.Range{})
	if err != nil {
		return fmt.Errorf("%w: vertex buffer: %w", ErrMapFailed, err)
	}
	copy(unsafe.Slice((*byte)(p), r.vertexBufferView.SizeInBytes), payload)
	buf.Unmap(0, nil)
	return nil
}
