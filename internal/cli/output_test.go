package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/triagedesk/triagedesk/internal/store"
)

func TestFormatterSuccess_JSON(t *testing.T) {
	var out bytes.Buffer
	f := &OutputFormatter{Format: "json", Writer: &out}

	require.NoError(t, f.Success(map[string]string{"id": "abc"}))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Nil(t, resp.Error)
}

func TestFormatterFailure_TextMarksRendered(t *testing.T) {
	var out bytes.Buffer
	f := &OutputFormatter{Format: "text", Writer: &out}

	err := f.Failure(errors.New("boom"))
	require.Error(t, err)

	assert.Contains(t, out.String(), "Error: unexpected error: boom")
	assert.True(t, Rendered(err))
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestFormatterFailure_JSONKinds(t *testing.T) {
	var out bytes.Buffer
	f := &OutputFormatter{Format: "json", Writer: &out}

	_ = f.Failure(&store.StoreError{Code: store.CodeNotFound, Op: "get", PatientID: "missing"})

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "not_found", resp.Error.Kind)
}

func TestVerboseLog_SilentByDefault(t *testing.T) {
	var out, errOut bytes.Buffer
	f := &OutputFormatter{Format: "text", Writer: &out, ErrWriter: &errOut}

	f.VerboseLog("hidden %d", 1)
	assert.Empty(t, errOut.String())

	f.Verbose = true
	f.VerboseLog("shown %d", 2)
	assert.Equal(t, "shown 2\n", errOut.String())
	assert.Empty(t, out.String())
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, GetExitCode(nil))
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")))
	assert.Equal(t, ExitCommandError, GetExitCode(&ExitError{Code: ExitCommandError, Message: "bad flag"}))
	assert.False(t, Rendered(errors.New("plain")))
}
