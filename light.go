package cornellbox

import "math"

type LightType uint32

const (
	LightTypePoint       LightType = 0
	LightTypeDirectional LightType = 1
	LightTypeSpot        LightType = 2
)

// LightComponent is the ECS component for lights
type LightComponent struct {
	Type           LightType
	Color          [3]float32 // Linear RGB
	Intensity      float32
	Range          float32 // For point/spot
	Radius         float32 // Emitter size for soft shadows
	ShadowsEnabled bool
	// Volumetric lights scatter through FogVolumeComponent regions.
	Volumetric bool
}

// FogVolumeComponent bounds a unit cube of participating media, scaled by the
// entity's TransformComponent.
type FogVolumeComponent struct {
	DensityFactor float32
	Absorption    float32
	Color         [3]float32
}

// AmbientLight is a scene-wide resource.
type AmbientLight struct {
	Color      [3]float32
	Brightness float32
}

// PointLightShadowMap is a scene-wide resource.
type PointLightShadowMap struct {
	Size int
}

// SrgbToLinear converts one sRGB channel in [0,1] to linear.
func SrgbToLinear(c float32) float32 {
	if c <= 0.04045 {
		return c / 12.92
	}
	return float32(math.Pow((float64(c)+0.055)/1.055, 2.4))
}

func SrgbColor(r, g, b float32) [3]float32 {
	return [3]float32{SrgbToLinear(r), SrgbToLinear(g), SrgbToLinear(b)}
}

// LinearToSrgb is the inverse of SrgbToLinear.
func LinearToSrgb(c float32) float32 {
	if c <= 0.0031308 {
		return c * 12.92
	}
	return float32(1.055*math.Pow(float64(c), 1/2.4) - 0.055)
}
