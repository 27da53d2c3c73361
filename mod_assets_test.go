package cornellbox

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssetServer_Cuboids(t *testing.T) {
	server := NewAssetServer()
	a := server.AddCuboid(mgl32.Vec3{2, 0.05, 2.5})
	b := server.AddCuboid(mgl32.Vec3{2, 0.05, 2.5})
	assert.NotEqual(t, a, b, "every asset gets its own id")

	_, err := uuid.Parse(string(a))
	require.NoError(t, err)

	c, ok := server.Cuboid(a)
	require.True(t, ok)
	assert.Equal(t, mgl32.Vec3{1, 0.025, 1.25}, c.HalfExtents())

	_, ok = server.Cuboid("missing")
	assert.False(t, ok)
}

func TestAssetServer_Materials(t *testing.T) {
	server := NewAssetServer()
	id := server.AddMaterial(StandardMaterial{BaseColor: [3]float32{1, 0, 0}, Roughness: 1})

	m, ok := server.Material(id)
	require.True(t, ok)
	assert.Equal(t, float32(1), m.Roughness)
	assert.Equal(t, "assets: 0 meshes, 1 materials", server.String())
}

func TestAssetServerModule_Install(t *testing.T) {
	app := NewApp()
	app.UseModules(AssetServerModule{})
	_, ok := Resource[AssetServer](app)
	assert.True(t, ok)
}
