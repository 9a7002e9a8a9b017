package server

import (
	"bufio"
	"encoding/json"
	"strings"
	"testing"

	"github.com/ironsheep/shape-annotator/internal/annotate"
	"github.com/ironsheep/shape-annotator/internal/vision"
)

func newTestServer() *Server {
	return New(annotate.NewPipeline(vision.NewNative(), nil), "_annotated")
}

func TestNew(t *testing.T) {
	s := newTestServer()
	if s == nil {
		t.Fatal("New() returned nil")
	}
	if s.cache == nil {
		t.Fatal("New() did not initialize cache")
	}
	if s.pipeline == nil {
		t.Fatal("New() did not keep the pipeline")
	}
}

func TestMCPRequest_Unmarshal(t *testing.T) {
	tests := []struct {
		name       string
		json       string
		wantID     interface{}
		wantMethod string
	}{
		{
			"string id",
			`{"jsonrpc":"2.0","id":"test-1","method":"tools/list"}`,
			"test-1",
			"tools/list",
		},
		{
			"number id",
			`{"jsonrpc":"2.0","id":42,"method":"ping"}`,
			float64(42), // JSON numbers decode as float64
			"ping",
		},
		{
			"null id",
			`{"jsonrpc":"2.0","id":null,"method":"initialize"}`,
			nil,
			"initialize",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req MCPRequest
			if err := json.Unmarshal([]byte(tt.json), &req); err != nil {
				t.Fatalf("Failed to unmarshal: %v", err)
			}

			if req.ID != tt.wantID {
				t.Errorf("ID: got %v (%T), want %v (%T)", req.ID, req.ID, tt.wantID, tt.wantID)
			}
			if req.Method != tt.wantMethod {
				t.Errorf("Method: got %s, want %s", req.Method, tt.wantMethod)
			}
		})
	}
}

func TestMCPResponse_OmitsEmptyFields(t *testing.T) {
	data, err := json.Marshal(MCPResponse{JSONRPC: "2.0", ID: 1, Result: map[string]interface{}{}})
	if err != nil {
		t.Fatalf("Failed to marshal: %v", err)
	}
	if strings.Contains(string(data), `"error"`) {
		t.Errorf("error field should be omitted: %s", data)
	}

	data, _ = json.Marshal(newTestServer().errorResponse(1, -32601, "Method not found: x", ""))
	if strings.Contains(string(data), `"data"`) {
		t.Errorf("empty data should be omitted: %s", data)
	}
}

func TestHandleRequest_Initialize(t *testing.T) {
	s := newTestServer()
	resp := s.handleRequest(&MCPRequest{JSONRPC: "2.0", ID: 1, Method: "initialize"})

	if resp == nil || resp.Error != nil {
		t.Fatalf("unexpected response: %+v", resp)
	}

	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatalf("Result is not a map: %T", resp.Result)
	}
	if result["protocolVersion"] != "2024-11-05" {
		t.Errorf("protocolVersion: got %v", result["protocolVersion"])
	}
	info := result["serverInfo"].(map[string]interface{})
	if info["name"] != "shape-annotator" {
		t.Errorf("serverInfo.name: got %v", info["name"])
	}
	if info["version"] != Version {
		t.Errorf("serverInfo.version: got %v, want %s", info["version"], Version)
	}
}

func TestHandleRequest_Ping(t *testing.T) {
	resp := newTestServer().handleRequest(&MCPRequest{JSONRPC: "2.0", ID: "p", Method: "ping"})
	if resp == nil || resp.Error != nil || resp.ID != "p" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestHandleRequest_ToolsList(t *testing.T) {
	resp := newTestServer().handleRequest(&MCPRequest{JSONRPC: "2.0", ID: 2, Method: "tools/list"})
	if resp == nil || resp.Error != nil {
		t.Fatalf("unexpected response: %+v", resp)
	}

	result := resp.Result.(map[string]interface{})
	tools, ok := result["tools"].([]Tool)
	if !ok {
		t.Fatalf("tools is not []Tool: %T", result["tools"])
	}
	if len(tools) != len(GetToolDefinitions()) {
		t.Errorf("got %d tools, want %d", len(tools), len(GetToolDefinitions()))
	}
}

func TestHandleRequest_NotificationsInitialized(t *testing.T) {
	resp := newTestServer().handleRequest(&MCPRequest{JSONRPC: "2.0", Method: "notifications/initialized"})
	if resp != nil {
		t.Errorf("notifications should not get a response, got %+v", resp)
	}
}

func TestHandleRequest_MethodNotFound(t *testing.T) {
	resp := newTestServer().handleRequest(&MCPRequest{JSONRPC: "2.0", ID: 3, Method: "resources/list"})
	if resp == nil || resp.Error == nil {
		t.Fatalf("expected error response, got %+v", resp)
	}
	if resp.Error.Code != -32601 {
		t.Errorf("Code: got %d, want -32601", resp.Error.Code)
	}
	if !strings.Contains(resp.Error.Message, "resources/list") {
		t.Errorf("Message should name the method: %s", resp.Error.Message)
	}
}

func TestServe(t *testing.T) {
	input := strings.Join([]string{
		`{"jsonrpc":"2.0","id":1,"method":"initialize"}`,
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
		``,
		`not json`,
		`{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"image_classify_shape","arguments":{"vertices":3}}}`,
		`{"jsonrpc":"2.0","id":3,"method":"ping"}`,
	}, "\n")

	var out strings.Builder
	if err := newTestServer().Serve(strings.NewReader(input), &out); err != nil {
		t.Fatalf("Serve failed: %v", err)
	}

	var responses []MCPResponse
	scanner := bufio.NewScanner(strings.NewReader(out.String()))
	for scanner.Scan() {
		var resp MCPResponse
		if err := json.Unmarshal(scanner.Bytes(), &resp); err != nil {
			t.Fatalf("invalid response line %q: %v", scanner.Text(), err)
		}
		responses = append(responses, resp)
	}

	if len(responses) != 3 {
		t.Fatalf("got %d responses, want 3", len(responses))
	}
	for i, want := range []float64{1, 2, 3} {
		if responses[i].ID != want {
			t.Errorf("response %d: ID %v, want %v", i, responses[i].ID, want)
		}
		if responses[i].Error != nil {
			t.Errorf("response %d: unexpected error %+v", i, responses[i].Error)
		}
	}
	if !strings.Contains(out.String(), "Triangle") {
		t.Error("tools/call response should contain the shape name")
	}
}
