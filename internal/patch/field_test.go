package patch

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestField_AbsentKeyStaysUnset(t *testing.T) {
	var req struct {
		Name   Field[string] `json:"name"`
		Pinned Field[bool]   `json:"pinned"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"name":"inbox"}`), &req))

	assert.True(t, req.Name.Set)
	assert.Equal(t, "inbox", req.Name.Value)
	assert.False(t, req.Pinned.Set)
}

func TestField_PresentZeroValueIsSet(t *testing.T) {
	var req struct {
		Pinned Field[bool] `json:"pinned"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"pinned":false}`), &req))

	assert.True(t, req.Pinned.Set)
	assert.False(t, req.Pinned.Value)
}

func TestField_NullablePointerValue(t *testing.T) {
	var req struct {
		FolderID Field[*string] `json:"folder_id"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"folder_id":null}`), &req))

	assert.True(t, req.FolderID.Set)
	assert.Nil(t, req.FolderID.Value)
}

func TestField_DecodeError(t *testing.T) {
	var req struct {
		Pinned Field[bool] `json:"pinned"`
	}
	assert.Error(t, json.Unmarshal([]byte(`{"pinned":"yes"}`), &req))
}
