package optic

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/teslashibe/go-retina/pkg/retina"
)

var testMCPImpl = &mcp.Implementation{Name: "opticnerve-test", Version: "0.1.0"}

func testEye(t *testing.T) *retina.Retina {
	t.Helper()
	src := &retina.MockSource{
		CaptureFunc: func() (*retina.Frame, error) {
			return retina.UniformFrame(4, 4, 128), nil
		},
	}
	eye, err := retina.New(retina.Config{
		Devices:      retina.DevicesFromIDs([]int{0}),
		BaseInterval: 10 * time.Millisecond,
		Open:         retina.MockOpen(map[int]retina.Source{0: src}),
		Encode: func(*retina.Frame) ([]byte, error) {
			return []byte("jpeg-payload"), nil
		},
	})
	if err != nil {
		t.Fatalf("retina.New: %v", err)
	}
	if err := eye.Start(); err != nil {
		t.Fatalf("retina.Start: %v", err)
	}
	t.Cleanup(eye.Stop)

	// Let the first capture land.
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if eye.Read().Status == retina.StatusSight {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}
	return eye
}

func mcpSession(t *testing.T, eye *retina.Retina) *mcp.ClientSession {
	t.Helper()
	srv := mcp.NewServer(testMCPImpl, nil)
	New(eye).RegisterMCP(srv)

	serverT, clientT := mcp.NewInMemoryTransports()
	ctx := context.Background()
	go func() { _ = srv.Run(ctx, serverT) }()

	client := mcp.NewClient(testMCPImpl, nil)
	session, err := client.Connect(ctx, clientT, nil)
	if err != nil {
		t.Fatalf("client connect: %v", err)
	}
	t.Cleanup(func() { session.Close() })
	return session
}

func callTool(t *testing.T, session *mcp.ClientSession, name string, args any) (*mcp.CallToolResult, string) {
	t.Helper()
	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	if err != nil {
		t.Fatalf("CallTool(%s): %v", name, err)
	}
	if len(result.Content) == 0 {
		return result, ""
	}
	tc, ok := result.Content[0].(*mcp.TextContent)
	if !ok {
		return result, ""
	}
	return result, tc.Text
}

func TestMCP_ReadEye(t *testing.T) {
	session := mcpSession(t, testEye(t))

	result, text := callTool(t, session, "read_eye", map[string]any{})
	if err := result.GetError(); err != nil {
		t.Fatalf("read_eye tool error: %v", err)
	}

	var resp struct {
		Image      string  `json:"image"`
		Status     string  `json:"status"`
		Brightness float64 `json:"brightness"`
		Motion     float64 `json:"motion"`
		CapturedAt float64 `json:"captured_at"`
		Camera     int     `json:"camera_id"`
		Interval   float64 `json:"interval"`
		Seq        uint64  `json:"seq"`
		CaptureID  string  `json:"capture_id"`
	}
	if err := json.Unmarshal([]byte(text), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if resp.Status != string(retina.StatusSight) {
		t.Errorf("status: got %q, want SIGHT", resp.Status)
	}
	payload, err := base64.StdEncoding.DecodeString(resp.Image)
	if err != nil {
		t.Fatalf("image not base64: %v", err)
	}
	if string(payload) != "jpeg-payload" {
		t.Errorf("image payload: got %q, want encoder output", payload)
	}
	if resp.Brightness < 0.49 || resp.Brightness > 0.52 {
		t.Errorf("brightness: got %v, want ~0.50 for mid-gray frame", resp.Brightness)
	}
	if resp.Seq == 0 {
		t.Error("seq: got 0, want >= 1")
	}
	if resp.CaptureID == "" {
		t.Error("capture_id: got empty, want a UUID")
	}
	if resp.CapturedAt == 0 {
		t.Error("captured_at: got 0, want a timestamp")
	}
}

func TestMCP_ConfigureEye(t *testing.T) {
	eye := testEye(t)
	session := mcpSession(t, eye)

	result, text := callTool(t, session, "configure_eye", map[string]any{"interval": 2.5})
	if err := result.GetError(); err != nil {
		t.Fatalf("configure_eye tool error: %v", err)
	}

	var resp struct {
		OK           bool    `json:"ok"`
		BaseInterval float64 `json:"base_interval"`
	}
	if err := json.Unmarshal([]byte(text), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !resp.OK {
		t.Error("ok: got false, want true")
	}
	if resp.BaseInterval != 2.5 {
		t.Errorf("base_interval: got %v, want 2.5", resp.BaseInterval)
	}
	if got := eye.Base(); got != 2500*time.Millisecond {
		t.Errorf("retina base: got %v, want 2.5s", got)
	}
}

func TestMCP_ConfigureEye_RejectsNegativeInterval(t *testing.T) {
	session := mcpSession(t, testEye(t))

	result, _ := callTool(t, session, "configure_eye", map[string]any{"interval": -1.0})

	err := result.GetError()
	if err == nil {
		t.Fatal("configure_eye(-1): expected a tool error")
	}
	if !strings.Contains(err.Error(), "invalid configuration") {
		t.Errorf("error: got %q, want invalid configuration", err)
	}
}

func TestMCP_ReadEyeCountsAsAccess(t *testing.T) {
	eye := testEye(t)
	session := mcpSession(t, eye)

	callTool(t, session, "read_eye", map[string]any{})
	if got := eye.Interval(); got != eye.Base() {
		t.Errorf("interval after read access: got %v, want base %v", got, eye.Base())
	}
}
