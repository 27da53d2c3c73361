package cornellbox

import (
	"github.com/go-gl/mathgl/mgl32"
)

// SceneDef defines the initial state of a scene.
type SceneDef struct {
	Camera     *CameraDef
	Boxes      []BoxDef
	Lights     []LightDef
	FogVolumes []FogVolumeDef
}

type CameraDef struct {
	Eye    mgl32.Vec3
	Camera CameraComponent
}

// BoxDef defines a cuboid mesh instance.
type BoxDef struct {
	Name      string
	Size      mgl32.Vec3
	Transform TransformComponent
	Material  StandardMaterial
}

// LightDef defines a light instantiation.
type LightDef struct {
	Position mgl32.Vec3
	Light    LightComponent
	// Extra components spawned on the light entity.
	Extra []any
}

type FogVolumeDef struct {
	Transform TransformComponent
	Fog       FogVolumeComponent
}

// Name labels an entity for logs and debugging.
type Name struct {
	Value string
}

// LoadScene iterates through the SceneDef and spawns entities.
// Boxes sharing a material share one material asset.
func LoadScene(cmd *Commands, assets *AssetServer, scene *SceneDef) {
	if scene.Camera != nil {
		spawnCamera(cmd, *scene.Camera)
	}

	materials := map[StandardMaterial]AssetId{}
	for _, box := range scene.Boxes {
		mat, ok := materials[box.Material]
		if !ok {
			mat = assets.AddMaterial(box.Material)
			materials[box.Material] = mat
		}
		spawnBox(cmd, assets, box, mat)
	}

	for _, light := range scene.Lights {
		spawnLight(cmd, light)
	}

	for _, volume := range scene.FogVolumes {
		spawnFogVolume(cmd, volume)
	}
}

func spawnCamera(cmd *Commands, def CameraDef) {
	tr := NewTransform(def.Eye)
	cam := def.Camera
	cmd.AddEntity(&tr, &cam)
}

func spawnBox(cmd *Commands, assets *AssetServer, def BoxDef, material AssetId) {
	tr := def.Transform
	cmd.AddEntity(
		&tr,
		&MeshComponent{Mesh: assets.AddCuboid(def.Size)},
		&MaterialComponent{Material: material},
		&Name{Value: def.Name},
	)
}

func spawnLight(cmd *Commands, def LightDef) {
	tr := NewTransform(def.Position)
	light := def.Light
	comps := []any{&tr, &light}
	comps = append(comps, def.Extra...)
	cmd.AddEntity(comps...)
}

func spawnFogVolume(cmd *Commands, def FogVolumeDef) {
	tr := def.Transform
	fog := def.Fog
	cmd.AddEntity(&tr, &fog)
}
