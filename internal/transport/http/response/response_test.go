package response

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOKNeverNullData(t *testing.T) {
	b, err := json.Marshal(OK(nil))
	require.NoError(t, err)
	assert.JSONEq(t, `{"code":0,"msg":"OK","data":{}}`, string(b))
	assert.True(t, OK(1).IsOK())
}

func TestError(t *testing.T) {
	assert.Equal(t, "Conflict", Error(CodeConflict, "").Msg)
	assert.Equal(t, "name taken", Error(CodeConflict, "name taken").Msg)
	assert.Equal(t, CodeConflict, Error(CodeConflict, "").Code)
	assert.False(t, Error(CodeConflict, "").IsOK())
}

func TestMessageUnknownCode(t *testing.T) {
	assert.Equal(t, "Locked", Message(CodeLocked))
	assert.Equal(t, "Error", Message(418))
}
