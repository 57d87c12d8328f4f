package formatterabi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timetracer/timetracer/internal/projecttree"
)

func TestAbiInfoValidateAcceptsMatchingVersion(t *testing.T) {
	info := NewAbiInfo(1, 0, 0)
	assert.NoError(t, info.Validate())
}

func TestAbiInfoValidateRejectsWrongStructSize(t *testing.T) {
	info := NewAbiInfo(1, 0, 0)
	info.StructSize = 999
	assert.Error(t, info.Validate())
}

func TestAbiInfoValidateRejectsUnsupportedAbiVersion(t *testing.T) {
	info := NewAbiInfo(1, 0, 0)
	info.AbiVersion = 99
	err := info.Validate()
	require.Error(t, err)
	abiErr, ok := err.(*AbiError)
	require.True(t, ok)
	assert.Equal(t, StatusNotSupported, abiErr.Code)
}

func TestStringViewRoundTrip(t *testing.T) {
	s := "STUDY_english"
	view := NewStringView(s)
	assert.Equal(t, s, ReadString(view))
}

func TestStringViewEmptyString(t *testing.T) {
	view := NewStringView("")
	assert.Equal(t, StringView{}, view)
	assert.Equal(t, "", ReadString(view))
}

func TestFlattenUnflattenRoundTrip(t *testing.T) {
	forest := []*projecttree.Node{
		{
			Name:     "STUDY",
			Duration: 2700,
			Children: []*projecttree.Node{
				{Name: "english", Duration: 1800},
				{Name: "math", Duration: 900},
			},
		},
		{Name: "WORK", Duration: 3600},
	}

	flat := FlattenTree(forest)
	require.Len(t, flat, 4)
	assert.Equal(t, int32(-1), flat[0].ParentIndex)
	assert.Equal(t, int32(0), flat[1].ParentIndex)
	assert.Equal(t, int32(0), flat[2].ParentIndex)
	assert.Equal(t, int32(-1), flat[3].ParentIndex)

	rebuilt, err := UnflattenTree(flat)
	require.NoError(t, err)
	require.Len(t, rebuilt, 2)
	assert.Equal(t, "STUDY", rebuilt[0].Name)
	require.Len(t, rebuilt[0].Children, 2)
	assert.Equal(t, "english", rebuilt[0].Children[0].Name)
	assert.Equal(t, "WORK", rebuilt[1].Name)
}

func TestUnflattenRejectsForwardReference(t *testing.T) {
	flat := []ProjectTreeNode{
		{Name: "a", ParentIndex: 1},
		{Name: "b", ParentIndex: -1},
	}
	_, err := UnflattenTree(flat)
	assert.Error(t, err)
}

func TestFlattenEmptyForest(t *testing.T) {
	flat := FlattenTree(nil)
	assert.Empty(t, flat)
}
