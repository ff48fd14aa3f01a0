package camera

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// GPUCameraUniformSource is the WGSL definition of the CameraUniform struct.
// Matches GPUCameraUniform layout exactly (80 bytes).
//
//go:embed assets/camera_uniform.wgsl
var GPUCameraUniformSource string

// GPUCameraUniform is the GPU-aligned representation of the camera uniform buffer.
// Size: 80 bytes (WGSL aligned).
type GPUCameraUniform struct {
	ViewProj mgl32.Mat4 // offset  0: combined view-projection matrix (mat4x4<f32>)
	Eye      mgl32.Vec3 // offset 64: world-space eye position (vec3<f32>)
	_pad     float32    // offset 76: padding to 80 bytes
}

// NewGPUCameraUniform packs a view-projection matrix and eye position.
//
// Parameters:
//   - viewProj: the combined view-projection matrix
//   - eye: world-space eye position
//
// Returns:
//   - GPUCameraUniform: the uniform
func NewGPUCameraUniform(viewProj mgl32.Mat4, eye mgl32.Vec3) GPUCameraUniform {
	return GPUCameraUniform{ViewProj: viewProj, Eye: eye}
}

// Size returns the size of the GPUCameraUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (80)
func (g *GPUCameraUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the uniform into a little-endian byte buffer for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPUCameraUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	for i, v := range g.ViewProj {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	for i, v := range g.Eye {
		binary.LittleEndian.PutUint32(buf[64+i*4:], math.Float32bits(v))
	}
	return buf
}
