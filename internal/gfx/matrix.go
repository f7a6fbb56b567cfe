package gfx

import "github.com/go-gl/mathgl/mgl32"

// Ortho maps [left,right]x[bottom,top] onto clip space [-1,1]x[-1,1]. Z
// passes through unchanged.
func Ortho(left, right, bottom, top float32) mgl32.Mat4 {
	m := mgl32.Ortho2D(left, right, bottom, top)
	m[10] = 1
	m[14] = 0
	return m
}

// ScreenOrtho maps pixel coordinates with the origin at the top left.
func ScreenOrtho(width, height float32) mgl32.Mat4 {
	return Ortho(0, width, height, 0)
}

func Translate(x, y float32) mgl32.Mat4 {
	return mgl32.Translate3D(x, y, 0)
}

func Scale(x, y float32) mgl32.Mat4 {
	return mgl32.Scale3D(x, y, 1)
}

// Rotate rotates counter-clockwise about the z axis by angle radians.
func Rotate(angle float32) mgl32.Mat4 {
	return mgl32.HomogRotate3DZ(angle)
}
