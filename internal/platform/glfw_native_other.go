//go:build !linux

package platform

import "github.com/go-gl/glfw/v3.3/glfw"

func applyNativeKind(*glfw.Window, WindowKind, string) error { return nil }
