package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/netxplore/internal/cli"
)

const week1 = `[
	{"author": "ann", "timestamp": "2024-03-01T09:00:00Z", "text": "hi ben"},
	{"author": "ben", "timestamp": "2024-03-01T09:01:00Z", "text": "hi ann"},
	{"author": "ann", "timestamp": "2024-03-01T09:02:00Z", "text": "and cat?"},
	{"author": "cat", "timestamp": "2024-03-01T09:03:00Z", "text": "here"},
	{"author": "ben", "timestamp": "2024-03-01T09:04:00Z", "text": "hello cat"}
]`

const week2 = `[
	{"author": "ben", "timestamp": "2024-03-08T09:00:00Z", "text": "back"},
	{"author": "cat", "timestamp": "2024-03-08T09:01:00Z", "text": "hi"},
	{"author": "dan", "timestamp": "2024-03-08T09:02:00Z", "text": "new here"},
	{"author": "cat", "timestamp": "2024-03-08T09:03:00Z", "text": "welcome"}
]`

// run executes netxplore with args against db, feeding stdin.
func run(t *testing.T, db, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := cli.NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--db", db, "--log-level", "error"}, args...))
	err := cmd.ExecuteContext(context.Background())

	return out.String(), err
}

type source struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Messages int    `json:"messages"`
}

func importSource(t *testing.T, db, name, body string) source {
	t.Helper()
	out, err := run(t, db, body, "import", name, "-o", "json")
	require.NoError(t, err, out)
	var srcs []source
	require.NoError(t, json.Unmarshal([]byte(out), &srcs))
	require.Len(t, srcs, 1)

	return srcs[0]
}

func TestImportAndSources(t *testing.T) {
	db := filepath.Join(t.TempDir(), "netxplore.db")
	src := importSource(t, db, "week1", week1)
	assert.Equal(t, "week1", src.Name)
	assert.Equal(t, 5, src.Messages)

	file := filepath.Join(t.TempDir(), "week2.json")
	require.NoError(t, os.WriteFile(file, []byte(week2), 0o600))
	out, err := run(t, db, "", "import", "week2", file)
	require.NoError(t, err, out)
	assert.Contains(t, out, "week2")

	out, err = run(t, db, "", "sources")
	require.NoError(t, err, out)
	assert.Contains(t, out, "week1")
	assert.Contains(t, out, "week2")

	out, err = run(t, db, "", "sources", "delete", src.ID)
	require.NoError(t, err, out)
	out, err = run(t, db, "", "sources", "-o", "json")
	require.NoError(t, err, out)
	assert.NotContains(t, out, "week1")

	_, err = run(t, db, "not json", "import", "broken")
	require.Error(t, err)
}

func TestAnalyze(t *testing.T) {
	db := filepath.Join(t.TempDir(), "netxplore.db")
	src := importSource(t, db, "week1", week1)

	out, err := run(t, db, "", "analyze", src.ID, "-o", "json")
	require.NoError(t, err, out)
	var res struct {
		Nodes []struct {
			ID        string `json:"id"`
			Community *int   `json:"community"`
		} `json:"nodes"`
		Density  float64 `json:"density"`
		Diameter int     `json:"diameter"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	require.Len(t, res.Nodes, 3)
	assert.InDelta(t, 1.0, res.Density, 1e-12)
	assert.Equal(t, 1, res.Diameter)
	for _, n := range res.Nodes {
		assert.NotNil(t, n.Community, n.ID)
	}

	out, err = run(t, db, "", "analyze", src.ID, "--anonymize")
	require.NoError(t, err, out)
	assert.Contains(t, out, "User_1")
	assert.NotContains(t, out, "ann")
	assert.Contains(t, strings.ToLower(out), "density")

	out, err = run(t, db, "", "communities", src.ID)
	require.NoError(t, err, out)
	assert.Contains(t, strings.ToLower(out), "modularity")

	_, err = run(t, db, "", "communities", src.ID, "--algorithm", "girvan_newman")
	require.Error(t, err)

	_, err = run(t, db, "", "analyze", "missing")
	require.Error(t, err)
}

func TestCompare(t *testing.T) {
	db := filepath.Join(t.TempDir(), "netxplore.db")
	a := importSource(t, db, "week1", week1)
	b := importSource(t, db, "week2", week2)

	out, err := run(t, db, "", "compare", a.ID, b.ID, "--metrics", "node_count,density", "-o", "json")
	require.NoError(t, err, out)
	var res struct {
		Stats struct {
			CommonNodesCount int `json:"commonNodesCount"`
		} `json:"stats"`
		CommonNodes []string `json:"commonNodes"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, 2, res.Stats.CommonNodesCount)
	assert.Equal(t, []string{"ben", "cat"}, res.CommonNodes)

	out, err = run(t, db, "", "compare", a.ID, b.ID, "--metrics", "density")
	require.NoError(t, err, out)
	assert.Contains(t, out, "density")
	assert.Contains(t, strings.ToLower(out), "common users")

	_, err = run(t, db, "", "compare", a.ID, b.ID, "--metrics", "clustering")
	require.Error(t, err)
}

func TestCustomize(t *testing.T) {
	db := filepath.Join(t.TempDir(), "netxplore.db")
	settings := filepath.Join(t.TempDir(), "viz.yaml")
	require.NoError(t, os.WriteFile(settings, []byte("sizeBy: messages\nnodeSizes:\n  min: 10\n  max: 20\n"), 0o600))

	graph := `{"nodes": [{"id": "ann", "messages": 4}, {"id": "ben", "messages": 2}], "links": []}`
	out, err := run(t, db, graph, "customize", "--settings", settings, "-o", "json")
	require.NoError(t, err, out)

	var g struct {
		Nodes []struct {
			ID    string  `json:"id"`
			Size  float64 `json:"size"`
			Color string  `json:"color"`
		} `json:"nodes"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &g))
	require.Len(t, g.Nodes, 2)
	assert.Equal(t, 20.0, g.Nodes[0].Size)
	assert.Equal(t, 15.0, g.Nodes[1].Size)
	assert.Equal(t, "#050d2d", g.Nodes[0].Color)

	require.NoError(t, os.WriteFile(settings, []byte("colorBy: rainbow\n"), 0o600))
	_, err = run(t, db, graph, "customize", "--settings", settings)
	require.Error(t, err)
}

func TestUnknownOutput(t *testing.T) {
	_, err := run(t, filepath.Join(t.TempDir(), "netxplore.db"), "", "sources", "-o", "xml")
	require.Error(t, err)
}
