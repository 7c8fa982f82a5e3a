package cmd

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"stunt.dev/pkg/stunt/namespace"
)

// Seams registered by any linked-in package show up in the listing next to
// the engine builtins.
var (
	seamClock   = time.Now
	seamTimeout = errors.New("deadline exceeded")
)

var _ = namespace.At("example.test/seams",
	namespace.Var("Clock", &seamClock),
	namespace.Var("ErrTimeout", &seamTimeout),
)

func TestSeamsCmd_ListsBuiltinSeams(t *testing.T) {
	cmd := newRootCmd()
	cmd.AddCommand(newSeamsCmd())
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})

	cmd.SetArgs([]string{"seams"})
	err := cmd.Execute()
	require.NoError(t, err)

	output := out.String()
	assert.Contains(t, output, "builtins")
	assert.Contains(t, output, "ID")
	assert.Contains(t, output, "TypeOf")
	assert.Contains(t, output, "Length")
}

func TestSeamsCmd_ListsRegisteredPackageSeams(t *testing.T) {
	cmd := newRootCmd()
	cmd.AddCommand(newSeamsCmd())
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})

	cmd.SetArgs([]string{"seams"})
	err := cmd.Execute()
	require.NoError(t, err)

	output := out.String()
	assert.Contains(t, output, "example.test/seams")
	assert.Contains(t, output, "Clock")
	assert.Contains(t, output, "ErrTimeout")
}

func TestSeamsCmd_RejectsPositionalArgs(t *testing.T) {
	cmd := newRootCmd()
	cmd.AddCommand(newSeamsCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	cmd.SetArgs([]string{"seams", "builtins"})
	err := cmd.Execute()
	require.Error(t, err)
}

func TestDefaultPolicy(t *testing.T) {
	builtins, ok := namespace.Builtins()
	require.True(t, ok)

	identity, ok := builtins.Resolve("ID")
	require.True(t, ok)
	typeOf, ok := builtins.Resolve("TypeOf")
	require.True(t, ok)

	registered, ok := namespace.Lookup("example.test/seams")
	require.True(t, ok)

	clock, ok := registered.Resolve("Clock")
	require.True(t, ok)
	timeout, ok := registered.Resolve("ErrTimeout")
	require.True(t, ok)

	assert.Equal(t, "doubled", defaultPolicy(namespace.BuiltinPath, identity))
	assert.Equal(t, "real unless included", defaultPolicy(namespace.BuiltinPath, typeOf))
	assert.Equal(t, "doubled", defaultPolicy("example.test/seams", clock))
	assert.Equal(t, "real unless included", defaultPolicy("example.test/seams", timeout))
}

func TestNewSeamsCmd(t *testing.T) {
	cmd := newSeamsCmd()

	assert.Equal(t, "seams", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
}
