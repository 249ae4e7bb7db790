package mcpquic_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/quic-go/quic-go"

	"github.com/hazyhaar/yomikata/pkg/chassis"
	"github.com/hazyhaar/yomikata/pkg/kit"
	"github.com/hazyhaar/yomikata/pkg/mcpquic"
)

func echoServer(transport *string) *server.MCPServer {
	srv := server.NewMCPServer("test", "0", server.WithToolCapabilities(false))
	kit.RegisterMCPTool(srv, mcp.NewTool("echo", mcp.WithString("text", mcp.Required())),
		func(ctx context.Context, req any) (any, error) {
			*transport = kit.GetTransport(ctx)
			return map[string]string{"echo": req.(string)}, nil
		},
		func(req mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
			text, _ := req.GetArguments()["text"].(string)
			return &kit.MCPDecodeResult{Request: text}, nil
		})
	return srv
}

func listen(t *testing.T, srv *server.MCPServer) *mcpquic.Listener {
	t.Helper()
	tlsCfg, err := chassis.TLSConfig("", "")
	if err != nil {
		t.Fatal(err)
	}
	tlsCfg.NextProtos = []string{mcpquic.ALPNProtocol}
	ln, err := mcpquic.Listen("127.0.0.1:0", tlsCfg, srv, nil)
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	go ln.Serve(ctx)
	t.Cleanup(func() {
		cancel()
		ln.Close()
	})
	return ln
}

func TestRoundTrip(t *testing.T) {
	var transport string
	ln := listen(t, echoServer(&transport))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	c := mcpquic.NewClient(ln.Addr(), nil, "test")
	if err := c.Connect(ctx); err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	tools, err := c.ListTools(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(tools.Tools) != 1 || tools.Tools[0].Name != "echo" {
		t.Fatalf("tools = %+v", tools.Tools)
	}

	res, err := c.CallTool(ctx, "echo", map[string]any{"text": "読み方"})
	if err != nil {
		t.Fatal(err)
	}
	text := res.Content[0].(mcp.TextContent).Text
	if !strings.Contains(text, "読み方") {
		t.Errorf("result = %s", text)
	}
	if transport != "mcp_quic" {
		t.Errorf("transport = %q", transport)
	}
}

func TestBadMagicClosesConnection(t *testing.T) {
	var transport string
	ln := listen(t, echoServer(&transport))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	conn, err := quic.DialAddr(ctx, ln.Addr(), mcpquic.ClientTLSConfig(true), mcpquic.QUICConfig())
	if err != nil {
		t.Fatal(err)
	}
	stream, err := conn.OpenStreamSync(ctx)
	if err != nil {
		t.Fatal(err)
	}
	stream.Write([]byte("NOPE{}\n"))

	buf := make([]byte, 16)
	if _, err := stream.Read(buf); err == nil {
		t.Error("read succeeded after bad magic")
	}
}

func TestClientNotConnected(t *testing.T) {
	c := mcpquic.NewClient("127.0.0.1:1", nil, "test")
	if _, err := c.ListTools(context.Background()); err != mcpquic.ErrNotConnected {
		t.Errorf("err = %v", err)
	}
	if err := c.Close(); err != nil {
		t.Error(err)
	}
}
