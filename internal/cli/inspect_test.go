package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runInspect(t *testing.T, format string, args ...string) (*bytes.Buffer, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := NewInspectCommand(&RootOptions{Format: format})
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	return buf, cmd.Execute()
}

func TestInspectRendersOrderedJSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "user.cue", userSchemaCUE)
	docs := writeFile(t, dir, "docs.yaml", `
record: User
attrs:
  name: Alice
`)

	buf, err := runInspect(t, "text", docs, "--schemas", dir)
	require.NoError(t, err)

	// Declared order: name first, then the defaulted age.
	assert.Equal(t, "{\"name\":\"Alice\",\"age\":18}\n", buf.String())
}

func TestInspectJSONEnvelope(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "user.cue", userSchemaCUE)
	docs := writeFile(t, dir, "docs.yaml", `
record: User
attrs:
  name: Alice
---
record: User
attrs:
  name: Bob
  age: 30
`)

	buf, err := runInspect(t, "json", docs, "--schemas", dir)
	require.NoError(t, err)

	var resp struct {
		Status string `json:"status"`
		Data   struct {
			Records []json.RawMessage `json:"records"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	require.Len(t, resp.Data.Records, 2)
	assert.Equal(t, `{"name":"Bob","age":30}`, string(resp.Data.Records[1]))
}

func TestInspectRejectedDocument(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "user.cue", userSchemaCUE)
	docs := writeFile(t, dir, "docs.yaml", `
record: User
attrs:
  age: not a number
`)

	buf, err := runInspect(t, "text", docs, "--schemas", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, buf.String(), "E005")
}
