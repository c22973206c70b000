package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/midgard-geom/internal/config"
	"github.com/Faultbox/midgard-geom/pkg/math"
)

func newTestTool() (*tool, *bytes.Buffer) {
	var buf bytes.Buffer
	return &tool{cfg: config.Default(), out: &buf}, &buf
}

func writeScene(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scene.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDecompose(t *testing.T) {
	tl, out := newTestTool()
	err := tl.run(context.Background(), "decompose", []string{
		"2", "0", "0", "1",
		"0", "2", "0", "2",
		"0", "0", "2", "3",
		"0", "0", "0", "1",
	})
	require.NoError(t, err)
	assert.Equal(t,
		"scale:    2.0000 2.0000 2.0000\n"+
			"rotation: 1.0000 0.0000 0.0000 0.0000\n"+
			"position: 1.0000 2.0000 3.0000\n",
		out.String())
}

func TestDecomposeBadInput(t *testing.T) {
	tl, _ := newTestTool()
	err := tl.run(context.Background(), "decompose", []string{"1", "2", "3"})
	assert.ErrorIs(t, err, errUsage)

	err = tl.run(context.Background(), "decompose", []string{"1,0,0,0,0,1,0,0,0,0,1,0,0,0,0,x"})
	assert.ErrorIs(t, err, errUsage)
}

func TestInvert(t *testing.T) {
	tl, out := newTestTool()
	err := tl.run(context.Background(), "invert", []string{"2,0,0,0, 0,4,0,0, 0,0,8,0, 0,0,0,1"})
	require.NoError(t, err)
	assert.Equal(t,
		"  0.5000 0.0000 0.0000 0.0000\n"+
			"  0.0000 0.2500 0.0000 0.0000\n"+
			"  0.0000 0.0000 0.1250 0.0000\n"+
			"  0.0000 0.0000 0.0000 1.0000\n",
		out.String())
}

func TestInvertSingular(t *testing.T) {
	tl, out := newTestTool()
	err := tl.run(context.Background(), "invert", []string{"0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0"})
	assert.ErrorIs(t, err, math.ErrSingularMatrix)
	assert.Empty(t, out.String())
}

func TestSlerp(t *testing.T) {
	tl, out := newTestTool()
	err := tl.run(context.Background(), "slerp", []string{"1,0,0,0", "0,0,0,1", "0.5"})
	require.NoError(t, err)
	assert.Equal(t, "0.7071 0.0000 0.0000 0.7071\n", out.String())

	tl.cfg.Output.Precision = 1
	out.Reset()
	require.NoError(t, tl.run(context.Background(), "slerp", []string{"1,0,0,0", "0,0,0,1", "0"}))
	assert.Equal(t, "1.0 0.0 0.0 0.0\n", out.String())
}

func TestSlerpBadInput(t *testing.T) {
	tl, _ := newTestTool()
	assert.ErrorIs(t, tl.run(context.Background(), "slerp", []string{"1,0,0", "0,0,0,1", "0.5"}), errUsage)
	assert.ErrorIs(t, tl.run(context.Background(), "slerp", []string{"1,0,0,0", "0,0,0,1", "half"}), errUsage)
	assert.ErrorIs(t, tl.run(context.Background(), "slerp", nil), errUsage)
}

func TestUnknownCommand(t *testing.T) {
	tl, _ := newTestTool()
	assert.ErrorIs(t, tl.run(context.Background(), "explode", nil), errUsage)
}

func TestHelp(t *testing.T) {
	tl, out := newTestTool()
	require.NoError(t, tl.run(context.Background(), "help", nil))
	assert.Contains(t, out.String(), "geomtool - geometry kernel utility")
}

const collideScene = `
bodies:
  - name: b
    min: [0.5, 0, 0]
    max: [1.5, 1, 1]
  - name: a
    min: [0, 0, 0]
    max: [1, 1, 1]
  - name: far
    min: [9, 9, 9]
    max: [10, 10, 10]
`

func TestCollide(t *testing.T) {
	tl, out := newTestTool()
	err := tl.run(context.Background(), "collide", []string{writeScene(t, collideScene)})
	require.NoError(t, err)
	assert.Equal(t,
		"a                b                distance -0.5000\n"+
			"1 contacts among 3 bodies\n",
		out.String())
}

func TestCollideErrors(t *testing.T) {
	tl, _ := newTestTool()
	assert.ErrorIs(t, tl.run(context.Background(), "collide", nil), errUsage)

	err := tl.run(context.Background(), "collide", []string{filepath.Join(t.TempDir(), "missing.yaml")})
	assert.ErrorIs(t, err, os.ErrNotExist)

	path := writeScene(t, collideScene)
	err = tl.run(context.Background(), "collide", []string{"-anim", "walk", path})
	assert.ErrorContains(t, err, `animation "walk" not found`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, tl.run(ctx, "collide", []string{path}), context.Canceled)
}

const sampleScene = `
nodes:
  - name: root
  - name: arm
    parent: root
    position: [0, 1, 0]
animations:
  - name: lift
    ticks_per_second: 1
    channels:
      - node: arm
        position_keys:
          - {time: 0, value: [0, 1, 0]}
          - {time: 2, value: [0, 3, 0]}
    mesh_channels:
      - mesh: blade
        keys:
          - {time: 0, value: 1}
          - {time: 2, value: 5}
`

func TestSample(t *testing.T) {
	tl, out := newTestTool()
	err := tl.run(context.Background(), "sample", []string{writeScene(t, sampleScene), "1"})
	require.NoError(t, err)
	assert.Equal(t,
		"root:\n"+
			"  1.0000 0.0000 0.0000 0.0000\n"+
			"  0.0000 1.0000 0.0000 0.0000\n"+
			"  0.0000 0.0000 1.0000 0.0000\n"+
			"  0.0000 0.0000 0.0000 1.0000\n"+
			"arm:\n"+
			"  1.0000 0.0000 0.0000 0.0000\n"+
			"  0.0000 1.0000 0.0000 2.0000\n"+
			"  0.0000 0.0000 1.0000 0.0000\n"+
			"  0.0000 0.0000 0.0000 1.0000\n"+
			"mesh blade: 1\n",
		out.String())
}

func TestSampleErrors(t *testing.T) {
	tl, _ := newTestTool()
	path := writeScene(t, sampleScene)

	assert.ErrorIs(t, tl.run(context.Background(), "sample", []string{path}), errUsage)
	assert.ErrorIs(t, tl.run(context.Background(), "sample", []string{path, "soon"}), errUsage)

	err := tl.run(context.Background(), "sample", []string{"-anim", "run", path, "1"})
	assert.ErrorContains(t, err, `animation "run" not found`)
}

func TestPick(t *testing.T) {
	tl, out := newTestTool()
	err := tl.run(context.Background(), "pick", []string{writeScene(t, collideScene), "-5,0.5,0.5", "1,0,0"})
	require.NoError(t, err)
	assert.Equal(t,
		"a                distance 5.0000 at 0.0000 0.5000 0.5000\n"+
			"b                distance 5.5000 at 0.5000 0.5000 0.5000\n"+
			"2 hits\n",
		out.String())

	assert.ErrorIs(t, tl.run(context.Background(), "pick", []string{"scene.yaml", "0,0", "1,0,0"}), errUsage)
}

const eyeScene = `
nodes:
  - name: eye
    position: [-5, 0.5, 0.5]
bodies:
  - name: b
    min: [0.5, 0, 0]
    max: [1.5, 1, 1]
  - name: a
    min: [0, 0, 0]
    max: [1, 1, 1]
`

func TestPickFromNode(t *testing.T) {
	tl, out := newTestTool()
	path := writeScene(t, eyeScene)
	err := tl.run(context.Background(), "pick", []string{"-node", "eye", path, "0,0,0", "2,0,0"})
	require.NoError(t, err)
	assert.Equal(t,
		"a                distance 5.0000 at 0.0000 0.5000 0.5000\n"+
			"b                distance 5.5000 at 0.5000 0.5000 0.5000\n"+
			"2 hits\n",
		out.String())

	err = tl.run(context.Background(), "pick", []string{"-node", "head", path, "0,0,0", "1,0,0"})
	assert.ErrorContains(t, err, `node "head" not found`)
}
