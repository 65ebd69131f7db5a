package mcp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runTransport(t *testing.T, lines ...string) []JSONRPCResponse {
	t.Helper()
	server := newTestServer(t)
	var out bytes.Buffer
	transport := NewMCPTransportWithIO(server, strings.NewReader(strings.Join(lines, "\n")+"\n"), &out)

	require.NoError(t, transport.Start(context.Background()))

	var responses []JSONRPCResponse
	scanner := bufio.NewScanner(&out)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		var resp JSONRPCResponse
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &resp))
		responses = append(responses, resp)
	}
	return responses
}

func TestMCPTransport_Initialize(t *testing.T) {
	responses := runTransport(t,
		`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2024-11-05","clientInfo":{"name":"test","version":"0"}}}`,
		`{"jsonrpc":"2.0","method":"initialized"}`,
	)
	require.Len(t, responses, 1)
	assert.Nil(t, responses[0].Error)
	res := responses[0].Result.(map[string]interface{})
	assert.Equal(t, "2024-11-05", res["protocolVersion"])
}

func TestMCPTransport_ToolsList(t *testing.T) {
	responses := runTransport(t, `{"jsonrpc":"2.0","id":1,"method":"tools/list"}`)
	require.Len(t, responses, 1)

	list := responses[0].Result.(map[string]interface{})["tools"].([]interface{})
	assert.Len(t, list, len(tools))
	first := list[0].(map[string]interface{})
	assert.Equal(t, "certimatch_project_create", first["name"])
}

func TestMCPTransport_ToolCall(t *testing.T) {
	responses := runTransport(t,
		`{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"certimatch_project_create","arguments":{"name":"RT100","market":"EU"}}}`,
		`{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"certimatch_file_upload","arguments":{"name":"RT100 트랙터 CAD.dwg","size":1024}}}`,
		`{"jsonrpc":"2.0","id":3,"method":"tools/call","params":{"name":"certimatch_checklist"}}`,
	)
	require.Len(t, responses, 3)
	for _, resp := range responses {
		require.Nil(t, resp.Error)
	}

	content := responses[2].Result.(map[string]interface{})["content"].([]interface{})
	text := content[0].(map[string]interface{})["text"].(string)
	assert.Contains(t, text, "(1/10, 10%)")
	assert.Contains(t, text, "✅ RT100 트랙터 CAD")
}

func TestMCPTransport_Errors(t *testing.T) {
	responses := runTransport(t,
		`not json`,
		`{"jsonrpc":"1.0","id":1,"method":"tools/list"}`,
		`{"jsonrpc":"2.0","id":2,"method":"certimatch.nope"}`,
		`{"jsonrpc":"2.0","id":3,"method":"tools/call","params":{"name":"nope"}}`,
		`{"jsonrpc":"2.0","id":4,"method":"certimatch.project.set_current","params":{"id":"missing"}}`,
		`{"jsonrpc":"2.0","id":5,"method":"tools/call","params":{"name":"certimatch_project_create","arguments":{}}}`,
	)
	require.Len(t, responses, 6)
	codes := make([]int, len(responses))
	for i, resp := range responses {
		require.NotNil(t, resp.Error)
		codes[i] = resp.Error.Code
	}
	assert.Equal(t, []int{ParseError, InvalidRequest, MethodNotFound, MethodNotFound, InvalidParams, InvalidParams}, codes)
}

func TestMCPTransport_ShutdownStopsLoop(t *testing.T) {
	responses := runTransport(t,
		`{"jsonrpc":"2.0","id":1,"method":"shutdown"}`,
		`{"jsonrpc":"2.0","id":2,"method":"tools/list"}`,
	)
	require.Len(t, responses, 1)
	assert.Nil(t, responses[0].Error)
}

func TestMCPTransport_ResourceRead(t *testing.T) {
	responses := runTransport(t,
		`{"jsonrpc":"2.0","id":1,"method":"resources/list"}`,
		`{"jsonrpc":"2.0","id":2,"method":"resources/read","params":{"uri":"certimatch://labs"}}`,
		`{"jsonrpc":"2.0","id":3,"method":"resources/read","params":{"uri":"certimatch://nope"}}`,
	)
	require.Len(t, responses, 3)

	list := responses[0].Result.(map[string]interface{})["resources"].([]interface{})
	assert.Len(t, list, len(resources))

	contents := responses[1].Result.(map[string]interface{})["contents"].([]interface{})
	text := contents[0].(map[string]interface{})["text"].(string)
	assert.Contains(t, text, "KTC 군포센터")

	require.NotNil(t, responses[2].Error)
	assert.Equal(t, InvalidParams, responses[2].Error.Code)
}
