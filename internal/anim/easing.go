// Package anim provides easing curves, time-based animations, timelines and
// spring physics driven by a per-frame delta.
package anim

import (
	"math"
	"strings"
)

// EasingFunc maps linear progress in [0,1] to eased progress. Overshooting
// curves (elastic, back) leave [0,1] between the endpoints.
type EasingFunc func(t float32) float32

func Linear(t float32) float32 { return t }

func QuadIn(t float32) float32  { return t * t }
func QuadOut(t float32) float32 { return t * (2 - t) }
func QuadInOut(t float32) float32 {
	if t < 0.5 {
		return 2 * t * t
	}
	return -1 + (4-2*t)*t
}

func CubicIn(t float32) float32 { return t * t * t }
func CubicOut(t float32) float32 {
	t--
	return t*t*t + 1
}
func CubicInOut(t float32) float32 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return (t-1)*(2*t-2)*(2*t-2) + 1
}

func QuartIn(t float32) float32 { return t * t * t * t }
func QuartOut(t float32) float32 {
	t--
	return 1 - t*t*t*t
}
func QuartInOut(t float32) float32 {
	if t < 0.5 {
		return 8 * t * t * t * t
	}
	t--
	return 1 - 8*t*t*t*t
}

func SineIn(t float32) float32 {
	return 1 - float32(math.Cos(float64(t)*math.Pi/2))
}
func SineOut(t float32) float32 {
	return float32(math.Sin(float64(t) * math.Pi / 2))
}
func SineInOut(t float32) float32 {
	return -(float32(math.Cos(math.Pi*float64(t))) - 1) / 2
}

func ExpoIn(t float32) float32 {
	if t == 0 {
		return 0
	}
	return float32(math.Pow(2, 10*float64(t)-10))
}
func ExpoOut(t float32) float32 {
	if t == 1 {
		return 1
	}
	return 1 - float32(math.Pow(2, -10*float64(t)))
}
func ExpoInOut(t float32) float32 {
	switch {
	case t == 0 || t == 1:
		return t
	case t < 0.5:
		return float32(math.Pow(2, 20*float64(t)-10)) / 2
	}
	return (2 - float32(math.Pow(2, -20*float64(t)+10))) / 2
}

const elasticPeriod = 0.3

func ElasticIn(t float32) float32 {
	if t == 0 || t == 1 {
		return t
	}
	s := elasticPeriod / 4
	t1 := float64(t) - 1
	return float32(-math.Pow(2, 10*t1) * math.Sin((t1-s)*2*math.Pi/elasticPeriod))
}
func ElasticOut(t float32) float32 {
	if t == 0 || t == 1 {
		return t
	}
	s := elasticPeriod / 4
	tt := float64(t)
	return float32(math.Pow(2, -10*tt)*math.Sin((tt-s)*2*math.Pi/elasticPeriod) + 1)
}

func BounceOut(t float32) float32 {
	const n, d = 7.5625, 2.75
	switch {
	case t < 1/d:
		return n * t * t
	case t < 2/d:
		t -= 1.5 / d
		return n*t*t + 0.75
	case t < 2.5/d:
		t -= 2.25 / d
		return n*t*t + 0.9375
	}
	t -= 2.625 / d
	return n*t*t + 0.984375
}
func BounceIn(t float32) float32 { return 1 - BounceOut(1-t) }
func BounceInOut(t float32) float32 {
	if t < 0.5 {
		return (1 - BounceOut(1-2*t)) / 2
	}
	return (1 + BounceOut(2*t-1)) / 2
}

const backOvershoot = 1.70158

func BackIn(t float32) float32 {
	const s = backOvershoot
	return t * t * ((s+1)*t - s)
}
func BackOut(t float32) float32 {
	const s = backOvershoot
	t--
	return t*t*((s+1)*t+s) + 1
}
func BackInOut(t float32) float32 {
	const s = backOvershoot * 1.525
	if t < 0.5 {
		return (4 * t * t * ((s+1)*2*t - s)) / 2
	}
	t = 2*t - 2
	return (t*t*((s+1)*t+s) + 2) / 2
}

var easings = map[string]EasingFunc{
	"linear":      Linear,
	"quadin":      QuadIn,
	"quadout":     QuadOut,
	"quadinout":   QuadInOut,
	"cubicin":     CubicIn,
	"cubicout":    CubicOut,
	"cubicinout":  CubicInOut,
	"quartin":     QuartIn,
	"quartout":    QuartOut,
	"quartinout":  QuartInOut,
	"sinein":      SineIn,
	"sineout":     SineOut,
	"sineinout":   SineInOut,
	"expoin":      ExpoIn,
	"expoout":     ExpoOut,
	"expoinout":   ExpoInOut,
	"elasticin":   ElasticIn,
	"elasticout":  ElasticOut,
	"bouncein":    BounceIn,
	"bounceout":   BounceOut,
	"bounceinout": BounceInOut,
	"backin":      BackIn,
	"backout":     BackOut,
	"backinout":   BackInOut,
}

// Easing looks up a curve by name, ignoring case, dashes and underscores:
// "cubicOut", "cubic-out" and "CUBIC_OUT" are the same curve.
func Easing(name string) (EasingFunc, bool) {
	key := strings.ToLower(strings.NewReplacer("-", "", "_", "").Replace(name))
	fn, ok := easings[key]
	return fn, ok
}
