//go:build linux

package x11

/*
#cgo LDFLAGS: -lEGL -lX11
#include <stdlib.h>
#include <X11/Xlib.h>
#include <EGL/egl.h>
#include <EGL/eglext.h>

static EGLDisplay aurora_open_display(const char *name, Display **out) {
	Display *xdpy = XOpenDisplay(name);
	if (xdpy == NULL) {
		return EGL_NO_DISPLAY;
	}
	*out = xdpy;
	return eglGetPlatformDisplay(EGL_PLATFORM_X11_KHR, xdpy, NULL);
}
*/
import "C"

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/BurntSushi/xgb/xproto"
)

var ErrNoEGLConfig = errors.New("no EGL config matches the requested attributes")

// maxConfigs bounds how many matching configs are inspected for a visual.
const maxConfigs = 64

type fbConfig struct {
	config  C.EGLConfig
	visual  xproto.Visualid
	samples int
}

// EGL is an initialized EGL display on a named X server, bound to desktop
// OpenGL. It holds an opaque framebuffer config and, when the server offers
// one, a config whose visual carries an alpha channel.
type EGL struct {
	xdpy    *C.Display
	display C.EGLDisplay
	opaque  fbConfig
	argb    *fbConfig
}

// Surface is a window surface with its context.
type Surface struct {
	surface C.EGLSurface
	context C.EGLContext
}

// OpenEGL initializes EGL on the X server named by display ("" means
// $DISPLAY) and chooses RGBA8, depth 24, stencil 8 window configs. When
// samples > 0 multisampled configs are tried first, falling back to ones
// without samples. isARGB reports whether a visual has a 32-bit depth; nil
// skips the transparent config.
func OpenEGL(display string, samples int, isARGB func(xproto.Visualid) bool) (*EGL, error) {
	var cname *C.char
	if display != "" {
		cname = C.CString(display)
		defer C.free(unsafe.Pointer(cname))
	}
	var xdpy *C.Display
	edpy := C.aurora_open_display(cname, &xdpy)
	if edpy == C.EGLDisplay(C.EGL_NO_DISPLAY) {
		if xdpy != nil {
			C.XCloseDisplay(xdpy)
		}
		return nil, fmt.Errorf("eglGetPlatformDisplay(%q) failed", display)
	}

	var major, minor C.EGLint
	if C.eglInitialize(edpy, &major, &minor) == C.EGL_FALSE {
		C.XCloseDisplay(xdpy)
		return nil, fmt.Errorf("eglInitialize failed: 0x%x", int(C.eglGetError()))
	}
	e := &EGL{xdpy: xdpy, display: edpy}
	if C.eglBindAPI(C.EGL_OPENGL_API) == C.EGL_FALSE {
		err := fmt.Errorf("eglBindAPI(EGL_OPENGL_API) failed: 0x%x", int(C.eglGetError()))
		e.Terminate()
		return nil, err
	}

	anyVisual := func(v xproto.Visualid) bool { return v != 0 }
	opaqueVisual := anyVisual
	if isARGB != nil {
		opaqueVisual = func(v xproto.Visualid) bool { return v != 0 && !isARGB(v) }
	}
	opaque, err := e.pickConfig(samples, opaqueVisual)
	if err != nil {
		opaque, err = e.pickConfig(samples, anyVisual)
	}
	if err != nil {
		e.Terminate()
		return nil, err
	}
	e.opaque = opaque
	if isARGB != nil {
		if argb, err := e.pickConfig(samples, isARGB); err == nil {
			e.argb = &argb
		}
	}
	return e, nil
}

func (e *EGL) pickConfig(samples int, accept func(xproto.Visualid) bool) (fbConfig, error) {
	if samples > 0 {
		if c, err := e.chooseConfig(samples, accept); err == nil {
			return c, nil
		}
	}
	return e.chooseConfig(0, accept)
}

// chooseConfig returns the first matching config whose native visual is
// accepted.
func (e *EGL) chooseConfig(samples int, accept func(xproto.Visualid) bool) (fbConfig, error) {
	attribs := []C.EGLint{
		C.EGL_SURFACE_TYPE, C.EGL_WINDOW_BIT,
		C.EGL_RENDERABLE_TYPE, C.EGL_OPENGL_BIT,
		C.EGL_RED_SIZE, 8,
		C.EGL_GREEN_SIZE, 8,
		C.EGL_BLUE_SIZE, 8,
		C.EGL_ALPHA_SIZE, 8,
		C.EGL_DEPTH_SIZE, 24,
		C.EGL_STENCIL_SIZE, 8,
	}
	if samples > 0 {
		attribs = append(attribs, C.EGL_SAMPLE_BUFFERS, 1, C.EGL_SAMPLES, C.EGLint(samples))
	}
	attribs = append(attribs, C.EGL_NONE)

	var configs [maxConfigs]C.EGLConfig
	var n C.EGLint
	if C.eglChooseConfig(e.display, &attribs[0], &configs[0], maxConfigs, &n) == C.EGL_FALSE {
		return fbConfig{}, fmt.Errorf("eglChooseConfig failed: 0x%x", int(C.eglGetError()))
	}
	for i := 0; i < int(n); i++ {
		var visual C.EGLint
		C.eglGetConfigAttrib(e.display, configs[i], C.EGL_NATIVE_VISUAL_ID, &visual)
		if accept(xproto.Visualid(visual)) {
			return fbConfig{config: configs[i], visual: xproto.Visualid(visual), samples: samples}, nil
		}
	}
	return fbConfig{}, fmt.Errorf("%w (samples=%d)", ErrNoEGLConfig, samples)
}

// Visual returns the X visual opaque windows must use to be renderable.
func (e *EGL) Visual() xproto.Visualid { return e.opaque.visual }

// ARGBVisual returns the 32-bit visual for transparent windows, or 0 when
// the server offers none.
func (e *EGL) ARGBVisual() xproto.Visualid {
	if e.argb == nil {
		return 0
	}
	return e.argb.visual
}

// Samples returns the MSAA sample count of the opaque config.
func (e *EGL) Samples() int { return e.opaque.samples }

// CreateSurface creates a window surface and an OpenGL 4.1 core context for
// win. transparent selects the ARGB config when one exists; win must have
// been created with the matching visual.
func (e *EGL) CreateSurface(win xproto.Window, transparent bool) (*Surface, error) {
	cfg := e.opaque
	if transparent && e.argb != nil {
		cfg = *e.argb
	}
	surface := C.eglCreateWindowSurface(e.display, cfg.config, C.EGLNativeWindowType(uintptr(win)), nil)
	if surface == C.EGLSurface(C.EGL_NO_SURFACE) {
		return nil, fmt.Errorf("eglCreateWindowSurface failed: 0x%x", int(C.eglGetError()))
	}

	ctxAttribs := []C.EGLint{
		C.EGL_CONTEXT_MAJOR_VERSION, 4,
		C.EGL_CONTEXT_MINOR_VERSION, 1,
		C.EGL_CONTEXT_OPENGL_PROFILE_MASK, C.EGL_CONTEXT_OPENGL_CORE_PROFILE_BIT,
		C.EGL_NONE,
	}
	context := C.eglCreateContext(e.display, cfg.config, C.EGLContext(C.EGL_NO_CONTEXT), &ctxAttribs[0])
	if context == C.EGLContext(C.EGL_NO_CONTEXT) {
		C.eglDestroySurface(e.display, surface)
		return nil, fmt.Errorf("eglCreateContext failed: 0x%x", int(C.eglGetError()))
	}
	return &Surface{surface: surface, context: context}, nil
}

// MakeCurrent binds s on the calling thread; nil unbinds.
func (e *EGL) MakeCurrent(s *Surface) error {
	var ok C.EGLBoolean
	if s == nil {
		ok = C.eglMakeCurrent(e.display, C.EGLSurface(C.EGL_NO_SURFACE), C.EGLSurface(C.EGL_NO_SURFACE), C.EGLContext(C.EGL_NO_CONTEXT))
	} else {
		ok = C.eglMakeCurrent(e.display, s.surface, s.surface, s.context)
	}
	if ok == C.EGL_FALSE {
		return fmt.Errorf("eglMakeCurrent failed: 0x%x", int(C.eglGetError()))
	}
	return nil
}

func (e *EGL) SwapBuffers(s *Surface) {
	C.eglSwapBuffers(e.display, s.surface)
}

// SwapInterval applies to the surface current on the calling thread.
func (e *EGL) SwapInterval(interval int) {
	C.eglSwapInterval(e.display, C.EGLint(interval))
}

func (e *EGL) DestroySurface(s *Surface) {
	if s.context != C.EGLContext(C.EGL_NO_CONTEXT) {
		C.eglDestroyContext(e.display, s.context)
		s.context = C.EGLContext(C.EGL_NO_CONTEXT)
	}
	if s.surface != C.EGLSurface(C.EGL_NO_SURFACE) {
		C.eglDestroySurface(e.display, s.surface)
		s.surface = C.EGLSurface(C.EGL_NO_SURFACE)
	}
}

func (e *EGL) Terminate() {
	C.eglMakeCurrent(e.display, C.EGLSurface(C.EGL_NO_SURFACE), C.EGLSurface(C.EGL_NO_SURFACE), C.EGLContext(C.EGL_NO_CONTEXT))
	C.eglTerminate(e.display)
	if e.xdpy != nil {
		C.XCloseDisplay(e.xdpy)
		e.xdpy = nil
	}
}
