package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/ChapterSevenSeeds/triangles/internal/geometry"
)

func TestNewTriangleData_ZeroAngleIsKept(t *testing.T) {
	c := geometry.Classify(1, 1, 1e-8)
	require.True(t, c.Valid)
	require.Zero(t, c.Radians.C)

	data := NewTriangleData(c)

	raw, err := json.Marshal(data)
	require.NoError(t, err)
	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.Equal(t, 0.0, fields["angleCRadians"])
	assert.Equal(t, 0.0, fields["angleCDegrees"])

	packed, err := msgpack.Marshal(data)
	require.NoError(t, err)
	var decoded TriangleData
	require.NoError(t, msgpack.Unmarshal(packed, &decoded))
	require.NotNil(t, decoded.AngleCRadians)
	assert.Zero(t, *decoded.AngleCRadians)
}

func TestNewTriangleData_InvalidOmitsAngles(t *testing.T) {
	raw, err := json.Marshal(NewTriangleData(geometry.Classify(1, 1, 2)))
	require.NoError(t, err)
	assert.JSONEq(t, `{"valid":false}`, string(raw))
}
