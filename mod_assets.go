package cornellbox

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

type AssetId string

// Cuboid is an axis-aligned box mesh centred on the origin.
type Cuboid struct {
	Size mgl32.Vec3
}

// HalfExtents is half of Size on every axis.
func (c Cuboid) HalfExtents() mgl32.Vec3 {
	return c.Size.Mul(0.5)
}

type StandardMaterial struct {
	BaseColor [3]float32 // Linear RGB
	Roughness float32
	Metallic  float32
}

type AssetServer struct {
	cuboids   map[AssetId]Cuboid
	materials map[AssetId]StandardMaterial
}

type AssetServerModule struct{}

// MeshComponent references a mesh asset.
type MeshComponent struct {
	Mesh AssetId
}

// MaterialComponent references a material asset.
type MaterialComponent struct {
	Material AssetId
}

func NewAssetServer() *AssetServer {
	return &AssetServer{
		cuboids:   make(map[AssetId]Cuboid),
		materials: make(map[AssetId]StandardMaterial),
	}
}

func (server *AssetServer) AddCuboid(size mgl32.Vec3) AssetId {
	id := makeAssetId()
	server.cuboids[id] = Cuboid{Size: size}
	return id
}

func (server *AssetServer) AddMaterial(material StandardMaterial) AssetId {
	id := makeAssetId()
	server.materials[id] = material
	return id
}

func (server *AssetServer) Cuboid(id AssetId) (Cuboid, bool) {
	c, ok := server.cuboids[id]
	return c, ok
}

func (server *AssetServer) Material(id AssetId) (StandardMaterial, bool) {
	m, ok := server.materials[id]
	return m, ok
}

func (server *AssetServer) String() string {
	return fmt.Sprintf("assets: %d meshes, %d materials", len(server.cuboids), len(server.materials))
}

func (AssetServerModule) Install(app *App, cmd *Commands) {
	app.addResources(NewAssetServer())
}

func makeAssetId() AssetId {
	return AssetId(uuid.NewString())
}
