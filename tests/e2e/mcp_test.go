// Package e2e_test — MCP server end-to-end tests.
//
// Each test wires the real MCP server in-process via the mcp-go
// InProcessTransport, backed by a fresh service.Service rooted at a
// temporary directory. No binary needs to be compiled; the full stack
// (service → store → resolver → mcp handler → mcp-go server → in-process
// client) is exercised within a single test process.
package e2e_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	qt "github.com/frankban/quicktest"
	mcpclient "github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"

	internalmcp "github.com/spoolworks/spool/internal/mcp"
	"github.com/spoolworks/spool/internal/service"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// newMCPClient creates an in-process MCP client backed by a fresh service
// over a seeded data root. The client is started and initialized before it
// is returned; cleanup is registered on c automatically.
func newMCPClient(c *qt.C) *mcpclient.Client {
	c.TB.Helper()

	root := seedRoot(c)
	svc, err := service.New(root)
	c.Assert(err, qt.IsNil)

	cl, err := mcpclient.NewInProcessClient(internalmcp.NewServer(svc))
	c.Assert(err, qt.IsNil)
	c.TB.Cleanup(func() { _ = cl.Close() })

	c.Assert(cl.Start(context.Background()), qt.IsNil)

	initReq := mcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcp.Implementation{Name: "e2e-test", Version: "0.0.1"}
	_, err = cl.Initialize(context.Background(), initReq)
	c.Assert(err, qt.IsNil)

	return cl
}

// callTool invokes the named MCP tool and returns the text of the first
// content item along with the tool-level error flag.
func callTool(c *qt.C, cl *mcpclient.Client, name string, args map[string]any) (string, bool) {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args

	result, err := cl.CallTool(context.Background(), req)
	c.Assert(err, qt.IsNil)
	c.Assert(result.Content, qt.HasLen, 1)

	tc, ok := mcp.AsTextContent(result.Content[0])
	c.Assert(ok, qt.IsTrue)

	return tc.Text, result.IsError
}

// ---------------------------------------------------------------------------
// ListTools
// ---------------------------------------------------------------------------

func TestMCPListTools_HappyPath(t *testing.T) {
	c := qt.New(t)
	cl := newMCPClient(c)

	result, err := cl.ListTools(context.Background(), mcp.ListToolsRequest{})
	c.Assert(err, qt.IsNil)
	c.Assert(result.Tools, qt.HasLen, 3)

	names := make([]string, len(result.Tools))
	for i, tool := range result.Tools {
		names[i] = tool.Name
	}
	c.Assert(names, qt.Contains, "profile_build")
	c.Assert(names, qt.Contains, "profile_export")
	c.Assert(names, qt.Contains, "profile_list")
}

// ---------------------------------------------------------------------------
// profile_build
// ---------------------------------------------------------------------------

func TestMCPProfileBuild_HappyPath(t *testing.T) {
	c := qt.New(t)
	cl := newMCPClient(c)

	text, isErr := callTool(c, cl, "profile_build", map[string]any{"name": "child"})
	c.Assert(isErr, qt.IsFalse)

	var doc map[string]any
	c.Assert(json.Unmarshal([]byte(text), &doc), qt.IsNil)
	c.Assert(doc["name"], qt.Equals, "Child")
	c.Assert(doc["bed_temp"], qt.Equals, float64(65))
	c.Assert(doc["instantiation"], qt.Equals, "true")
}

func TestMCPProfileBuild_Query(t *testing.T) {
	c := qt.New(t)
	cl := newMCPClient(c)

	text, isErr := callTool(c, cl, "profile_build", map[string]any{
		"name":  "child",
		"query": "$.density",
	})
	c.Assert(isErr, qt.IsFalse)
	c.Assert(text, qt.Equals, "1.24")
}

func TestMCPProfileBuild_FailurePath(t *testing.T) {
	c := qt.New(t)
	cl := newMCPClient(c)

	text, isErr := callTool(c, cl, "profile_build", map[string]any{"name": "nosuch"})
	c.Assert(isErr, qt.IsTrue)
	c.Assert(text, qt.Contains, "nosuch")
}

// ---------------------------------------------------------------------------
// profile_export
// ---------------------------------------------------------------------------

func TestMCPProfileExport_HappyPath(t *testing.T) {
	c := qt.New(t)
	cl := newMCPClient(c)

	outPath := filepath.Join(t.TempDir(), "child.json")
	text, isErr := callTool(c, cl, "profile_export", map[string]any{
		"name": "child",
		"path": outPath,
	})
	c.Assert(isErr, qt.IsFalse)

	var res map[string]any
	c.Assert(json.Unmarshal([]byte(text), &res), qt.IsNil)
	c.Assert(res["path"], qt.Equals, outPath)

	data, err := os.ReadFile(outPath)
	c.Assert(err, qt.IsNil)

	var doc map[string]any
	c.Assert(json.Unmarshal(data, &doc), qt.IsNil)
	c.Assert(doc["name"], qt.Equals, "Child")
}

// ---------------------------------------------------------------------------
// profile_list
// ---------------------------------------------------------------------------

func TestMCPProfileList_HappyPath(t *testing.T) {
	c := qt.New(t)
	cl := newMCPClient(c)

	text, isErr := callTool(c, cl, "profile_list", nil)
	c.Assert(isErr, qt.IsFalse)

	var res map[string][]string
	c.Assert(json.Unmarshal([]byte(text), &res), qt.IsNil)
	c.Assert(res["profiles"], qt.DeepEquals, []string{"Base", "Child"})
}
