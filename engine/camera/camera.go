// Package camera turns the smoothed pose of a rig into view and projection
// matrices and a GPU uniform.
package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-rig/engine/look"
	"github.com/chewxy/math32"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
)

// depthRemap converts OpenGL clip depth [-1, 1] into WebGPU's [0, 1].
var depthRemap = mgl32.Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 0.5, 0,
	0, 0, 0.5, 1,
}

// PoseSource provides the pose a camera renders from. rig.Rig satisfies it.
type PoseSource interface {
	Smoothed() look.Transform
}

type cameraImpl struct {
	mu *sync.Mutex

	up mgl32.Vec3

	fov    float32
	aspect float32
	near   float32
	far    float32

	pose look.Transform

	viewMatrix              mgl32.Mat4
	projectionMatrix        mgl32.Mat4
	viewProjectionMatrix    mgl32.Mat4
	inverseProjectionMatrix mgl32.Mat4

	source PoseSource
}

// Camera holds perspective settings and computes view/projection matrices from an
// attached PoseSource each tick via Update().
type Camera interface {
	// Up returns the camera's up vector.
	//
	// Returns:
	//   - mgl32.Vec3: the up vector
	Up() mgl32.Vec3

	// Fov returns the vertical field of view in radians.
	//
	// Returns:
	//   - float32: field of view in radians
	Fov() float32

	// Aspect returns the aspect ratio (width / height).
	//
	// Returns:
	//   - float32: the aspect ratio
	Aspect() float32

	// Near returns the near clipping plane distance.
	//
	// Returns:
	//   - float32: near plane distance
	Near() float32

	// Far returns the far clipping plane distance.
	//
	// Returns:
	//   - float32: far plane distance
	Far() float32

	// Pose returns the pose the matrices were last built from.
	//
	// Returns:
	//   - look.Transform: eye and target
	Pose() look.Transform

	// Basis returns the view axes of the current pose, the same axes the followed
	// rig hands its controller after the rig's latest Update.
	//
	// Returns:
	//   - look.Basis: right, up and forward vectors
	Basis() look.Basis

	// ViewMatrix returns the current view matrix (column-major).
	//
	// Returns:
	//   - mgl32.Mat4: the view matrix
	ViewMatrix() mgl32.Mat4

	// ProjectionMatrix returns the current projection matrix with 0..1 depth.
	//
	// Returns:
	//   - mgl32.Mat4: the projection matrix
	ProjectionMatrix() mgl32.Mat4

	// ViewProjectionMatrix returns projection * view.
	//
	// Returns:
	//   - mgl32.Mat4: the combined matrix
	ViewProjectionMatrix() mgl32.Mat4

	// InverseProjectionMatrix returns the inverse of the projection matrix.
	//
	// Returns:
	//   - mgl32.Mat4: the inverse projection matrix
	InverseProjectionMatrix() mgl32.Mat4

	// Source returns the attached PoseSource, or nil.
	//
	// Returns:
	//   - PoseSource: the source or nil
	Source() PoseSource

	// SetSource attaches a PoseSource. The next Update reads from it.
	//
	// Parameters:
	//   - src: the pose source
	SetSource(src PoseSource)

	// SetPose sets the pose directly and recomputes matrices. Useful for hosts that
	// drive the camera without a PoseSource.
	//
	// Parameters:
	//   - pose: the pose to render from
	SetPose(pose look.Transform)

	// Update reads the pose from the source and recomputes matrices.
	// Does nothing if no source is attached.
	Update()

	// SetUp sets the camera's up vector and recomputes matrices.
	//
	// Parameters:
	//   - up: the up vector
	SetUp(up mgl32.Vec3)

	// SetFov sets the field of view in radians and recomputes matrices.
	//
	// Parameters:
	//   - fov: field of view in radians
	SetFov(fov float32)

	// SetAspect sets the aspect ratio (width / height) and recomputes matrices.
	//
	// Parameters:
	//   - aspect: the aspect ratio
	SetAspect(aspect float32)

	// SetNear sets the near clipping plane distance and recomputes matrices.
	//
	// Parameters:
	//   - near: near plane distance
	SetNear(near float32)

	// SetFar sets the far clipping plane distance and recomputes matrices.
	//
	// Parameters:
	//   - far: far plane distance
	SetFar(far float32)

	// Uniform packs the current matrices into the GPU uniform layout.
	//
	// Returns:
	//   - GPUCameraUniform: the uniform data
	Uniform() GPUCameraUniform

	// Upload writes the camera uniform into a GPU buffer at offset 0.
	// The buffer must be at least 80 bytes and usable as a copy destination.
	//
	// Parameters:
	//   - queue: the device queue
	//   - buffer: the destination buffer
	Upload(queue *wgpu.Queue, buffer *wgpu.Buffer)
}

var _ Camera = &cameraImpl{}

// NewCamera creates a Camera with default perspective settings looking down -Z from
// (0, 0, 1).
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:     &sync.Mutex{},
		up:     mgl32.Vec3{0, 1, 0},
		fov:    mgl32.DegToRad(45),
		aspect: 1.0,
		near:   0.1,
		far:    100.0,
		pose:   look.NewTransform(mgl32.Vec3{0, 0, 1}, mgl32.Vec3{}),
	}
	for _, option := range options {
		option(c)
	}
	if c.source != nil {
		c.pose = c.source.Smoothed()
	}
	c.updateMatrices()
	return c
}

func (c *cameraImpl) Up() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.up
}

func (c *cameraImpl) Fov() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov
}

func (c *cameraImpl) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *cameraImpl) Near() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near
}

func (c *cameraImpl) Far() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.far
}

func (c *cameraImpl) Pose() look.Transform {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pose
}

func (c *cameraImpl) Basis() look.Basis {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pose.Basis()
}

func (c *cameraImpl) ViewMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProjectionMatrix
}

func (c *cameraImpl) InverseProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inverseProjectionMatrix
}

func (c *cameraImpl) Source() PoseSource {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.source
}

func (c *cameraImpl) SetSource(src PoseSource) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.source = src
}

func (c *cameraImpl) SetPose(pose look.Transform) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pose = pose
	c.updateMatrices()
}

func (c *cameraImpl) Update() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.source == nil {
		return
	}
	c.pose = c.source.Smoothed()
	c.updateMatrices()
}

func (c *cameraImpl) SetUp(up mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.up = up
	c.updateMatrices()
}

func (c *cameraImpl) SetFov(fov float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fov = fov
	c.updateMatrices()
}

func (c *cameraImpl) SetAspect(aspect float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aspect = aspect
	c.updateMatrices()
}

func (c *cameraImpl) SetNear(near float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.near = near
	c.updateMatrices()
}

func (c *cameraImpl) SetFar(far float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.far = far
	c.updateMatrices()
}

func (c *cameraImpl) Uniform() GPUCameraUniform {
	c.mu.Lock()
	defer c.mu.Unlock()
	return NewGPUCameraUniform(c.viewProjectionMatrix, c.pose.Eye)
}

func (c *cameraImpl) Upload(queue *wgpu.Queue, buffer *wgpu.Buffer) {
	if queue == nil || buffer == nil {
		return
	}
	u := c.Uniform()
	queue.WriteBuffer(buffer, 0, u.Marshal())
}

// updateMatrices recalculates the view, projection, view-projection and inverse
// projection matrices. A degenerate pose keeps the previous view matrix.
// Caller must hold the mutex.
func (c *cameraImpl) updateMatrices() {
	if c.pose.Eye != c.pose.Target {
		c.viewMatrix = mgl32.LookAtV(c.pose.Eye, c.pose.Target, c.up)
	}

	c.projectionMatrix = depthRemap.Mul4(mgl32.Perspective(c.fov, c.aspect, c.near, c.far))
	c.viewProjectionMatrix = c.projectionMatrix.Mul4(c.viewMatrix)
	c.inverseProjectionMatrix = c.projectionMatrix.Inv()
}

// HorizontalFov returns the horizontal field of view for a vertical fov and aspect.
//
// Parameters:
//   - fovY: vertical field of view in radians
//   - aspect: width / height
//
// Returns:
//   - float32: horizontal field of view in radians
func HorizontalFov(fovY, aspect float32) float32 {
	return 2 * math32.Atan(math32.Tan(fovY/2)*aspect)
}
