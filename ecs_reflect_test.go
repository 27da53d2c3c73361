package cornellbox

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEcsReflect_SliceMake(t *testing.T) {
	type myStruct struct{ A int }

	structSlice := reflectSliceMake(reflect.TypeOf(myStruct{}))
	require.Equal(t, reflect.Slice, reflect.TypeOf(structSlice).Kind())
	assert.Equal(t, reflect.TypeOf(myStruct{}), reflect.TypeOf(structSlice).Elem())
	assert.Empty(t, structSlice)
}

func TestEcsReflect_SliceGetSet(t *testing.T) {
	slice := []int{10, 20, 30}

	assert.Equal(t, int64(20), reflectSliceGet(slice, 1).Int())

	reflectSliceSet(slice, 0, reflect.ValueOf(99))
	assert.Equal(t, 99, slice[0])

	assert.Panics(t, func() { reflectSliceGet(slice, 10) }, "out of bounds")
	assert.Panics(t, func() { reflectSliceSet(slice, 0, reflect.ValueOf("wrong type")) })
}

func TestEcsReflect_SliceAppend(t *testing.T) {
	var slice any = []int{}
	for i := 0; i < 5; i++ {
		slice = reflectSliceAppend(slice, reflect.ValueOf(i))
	}
	assert.Equal(t, []int{0, 1, 2, 3, 4}, slice)

	assert.Panics(t, func() { reflectSliceAppend([]int{}, reflect.ValueOf("string")) })
}

func TestEcsReflect_SliceTruncate(t *testing.T) {
	type named struct{ Name string }
	backing := []named{{"a"}, {"b"}, {"c"}}

	truncated := reflectSliceTruncate(backing, 1).([]named)

	assert.Equal(t, []named{{"a"}}, truncated)
	assert.Equal(t, named{}, backing[1], "dropped rows are cleared")
	assert.Equal(t, named{}, backing[2], "dropped rows are cleared")
}
