package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/xenontools/ppccalc"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	return NewServer(ppccalc.New(), "test", nil)
}

// sendMessage marshals a JSON-RPC request, hands it to the server, and
// returns the successful response.
func sendMessage(t *testing.T, srv *Server, method string, id int, params any) mcp.JSONRPCResponse {
	t.Helper()

	raw, err := json.Marshal(map[string]any{
		"jsonrpc": "2.0",
		"id":      id,
		"method":  method,
		"params":  params,
	})
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}

	msg := srv.MCPServer().HandleMessage(context.Background(), raw)
	resp, ok := msg.(mcp.JSONRPCResponse)
	if !ok {
		t.Fatalf("expected JSONRPCResponse, got %T: %+v", msg, msg)
	}
	return resp
}

// resultJSON re-marshals a response result into a typed destination.
func resultJSON(t *testing.T, resp mcp.JSONRPCResponse, dst any) {
	t.Helper()
	raw, err := json.Marshal(resp.Result)
	if err != nil {
		t.Fatalf("marshal result: %v", err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}
}

func textFromContent(t *testing.T, result mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("tool result has no content")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected TextContent, got %T", result.Content[0])
	}
	return text.Text
}

func initializeParams() map[string]any {
	return map[string]any{
		"protocolVersion": mcp.LATEST_PROTOCOL_VERSION,
		"clientInfo": map[string]any{
			"name":    "test-client",
			"version": "1.0.0",
		},
		"capabilities": map[string]any{},
	}
}

func callParams(name string, args map[string]any) map[string]any {
	return map[string]any{"name": name, "arguments": args}
}

func TestServer_Initialize(t *testing.T) {
	srv := newTestServer(t)

	resp := sendMessage(t, srv, "initialize", 1, initializeParams())

	var result mcp.InitializeResult
	resultJSON(t, resp, &result)

	if result.ServerInfo.Name != "ppccalc" {
		t.Errorf("expected server name ppccalc, got %q", result.ServerInfo.Name)
	}
	if result.ServerInfo.Version != "test" {
		t.Errorf("expected version test, got %q", result.ServerInfo.Version)
	}
	if result.Capabilities.Tools == nil {
		t.Error("expected tool capabilities to be advertised")
	}
}

func TestServer_ListTools(t *testing.T) {
	srv := newTestServer(t)
	sendMessage(t, srv, "initialize", 1, initializeParams())

	resp := sendMessage(t, srv, "tools/list", 2, map[string]any{})

	var result mcp.ListToolsResult
	resultJSON(t, resp, &result)

	names := make(map[string]mcp.Tool, len(result.Tools))
	for _, tool := range result.Tools {
		names[tool.Name] = tool
	}

	expected := []string{
		"hex_to_dec", "dec_to_hex", "twos_complement", "sign_extend",
		"add_offset", "address_range",
		"bit_mask", "bit_shift", "bit_extract", "rlwinm",
		"byte_swap_16", "byte_swap_32", "byte_swap_64", "byte_swap_float",
		"ppc_memory_map", "is_valid_ppc_address",
		"round_to_page", "page_align", "align_address",
		"allocation_units", "sectors_to_bytes",
		"perf_ticks_to_ms", "ms_to_perf_ticks", "timebase_to_seconds",
		"hz_to_ms", "fps_calculator", "timing_analysis",
		"ntstatus_decode", "ntstatus_is_error", "ntstatus_is_warning",
		"calculate",
	}
	for _, name := range expected {
		if _, ok := names[name]; !ok {
			t.Errorf("tool %s not registered", name)
		}
	}
	if len(result.Tools) != len(expected) {
		t.Errorf("expected %d tools, got %d", len(expected), len(result.Tools))
	}

	// Required parameters surface in the input schema.
	hexToDec := names["hex_to_dec"]
	if _, ok := hexToDec.InputSchema.Properties["hex"]; !ok {
		t.Error("hex_to_dec should declare a hex property")
	}
	if len(hexToDec.InputSchema.Required) != 1 || hexToDec.InputSchema.Required[0] != "hex" {
		t.Errorf("hex_to_dec should require exactly hex, got %v", hexToDec.InputSchema.Required)
	}
}

func TestServer_CallTool_HexToDec(t *testing.T) {
	srv := newTestServer(t)
	sendMessage(t, srv, "initialize", 1, initializeParams())

	resp := sendMessage(t, srv, "tools/call", 2, callParams("hex_to_dec", map[string]any{
		"hex": "0xFFFFFFFF",
	}))

	var result mcp.CallToolResult
	resultJSON(t, resp, &result)

	if result.IsError {
		t.Fatalf("unexpected tool error: %s", textFromContent(t, result))
	}

	var payload struct {
		Decimal  string `json:"decimal"`
		Unsigned string `json:"unsigned"`
		Bits     int    `json:"bits"`
	}
	if err := json.Unmarshal([]byte(textFromContent(t, result)), &payload); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if payload.Decimal != "-1" {
		t.Errorf("expected decimal -1, got %s", payload.Decimal)
	}
	if payload.Unsigned != "4294967295" {
		t.Errorf("expected unsigned 4294967295, got %s", payload.Unsigned)
	}
	if payload.Bits != 32 {
		t.Errorf("expected 32 bits, got %d", payload.Bits)
	}
}

func TestServer_CallTool_Defaults(t *testing.T) {
	srv := newTestServer(t)
	sendMessage(t, srv, "initialize", 1, initializeParams())

	// bit_shift defaults to a logical left shift at 32 bits.
	resp := sendMessage(t, srv, "tools/call", 2, callParams("bit_shift", map[string]any{
		"value":  "1",
		"amount": 4,
	}))

	var result mcp.CallToolResult
	resultJSON(t, resp, &result)
	if result.IsError {
		t.Fatalf("unexpected tool error: %s", textFromContent(t, result))
	}

	var payload struct {
		Hex       string `json:"hex"`
		Direction string `json:"direction"`
		Logical   bool   `json:"logical"`
	}
	if err := json.Unmarshal([]byte(textFromContent(t, result)), &payload); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if payload.Hex != "0x00000010" {
		t.Errorf("expected 0x00000010, got %s", payload.Hex)
	}
	if payload.Direction != "left" || !payload.Logical {
		t.Errorf("expected logical left defaults, got %+v", payload)
	}
}

func TestServer_CallTool_Calculate(t *testing.T) {
	srv := newTestServer(t)
	sendMessage(t, srv, "initialize", 1, initializeParams())

	resp := sendMessage(t, srv, "tools/call", 2, callParams("calculate", map[string]any{
		"expression": "0x82A00000 + -15952",
	}))

	var result mcp.CallToolResult
	resultJSON(t, resp, &result)
	if result.IsError {
		t.Fatalf("unexpected tool error: %s", textFromContent(t, result))
	}

	var payload struct {
		Decimal  string `json:"decimal"`
		Hex      string `json:"hex"`
		Signed32 string `json:"signed_32"`
	}
	if err := json.Unmarshal([]byte(textFromContent(t, result)), &payload); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if payload.Decimal != "2191507888" {
		t.Errorf("expected 2191507888, got %s", payload.Decimal)
	}
	if payload.Hex != "0x829FC1B0" {
		t.Errorf("expected 0x829FC1B0, got %s", payload.Hex)
	}
	if payload.Signed32 != "-2103459408" {
		t.Errorf("expected -2103459408, got %s", payload.Signed32)
	}
}

func TestServer_CallTool_Predicate(t *testing.T) {
	srv := newTestServer(t)
	sendMessage(t, srv, "initialize", 1, initializeParams())

	resp := sendMessage(t, srv, "tools/call", 2, callParams("ntstatus_is_error", map[string]any{
		"status": "0xC0000008",
	}))

	var result mcp.CallToolResult
	resultJSON(t, resp, &result)
	if result.IsError {
		t.Fatalf("unexpected tool error: %s", textFromContent(t, result))
	}

	var payload map[string]bool
	if err := json.Unmarshal([]byte(textFromContent(t, result)), &payload); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if !payload["result"] {
		t.Error("expected result=true for an error-severity status")
	}
}

func TestServer_CallTool_EngineError(t *testing.T) {
	srv := newTestServer(t)
	sendMessage(t, srv, "initialize", 1, initializeParams())

	resp := sendMessage(t, srv, "tools/call", 2, callParams("calculate", map[string]any{
		"expression": "1 / 0",
	}))

	var result mcp.CallToolResult
	resultJSON(t, resp, &result)

	if !result.IsError {
		t.Fatal("expected an error-flagged result for division by zero")
	}
}

func TestServer_CallTool_MissingArgument(t *testing.T) {
	srv := newTestServer(t)
	sendMessage(t, srv, "initialize", 1, initializeParams())

	resp := sendMessage(t, srv, "tools/call", 2, callParams("hex_to_dec", map[string]any{}))

	var result mcp.CallToolResult
	resultJSON(t, resp, &result)

	if !result.IsError {
		t.Fatal("expected an error-flagged result for a missing argument")
	}
}
