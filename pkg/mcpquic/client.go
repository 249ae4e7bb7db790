package mcpquic

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/client/transport"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/quic-go/quic-go"
)

// Client is an MCP client on one QUIC stream.
type Client struct {
	addr   string
	tlsCfg *tls.Config
	name   string

	conn   *quic.Conn
	stream *quic.Stream
	mcp    *client.Client
}

// NewClient returns a client for addr. A nil tlsCfg skips certificate
// verification.
func NewClient(addr string, tlsCfg *tls.Config, name string) *Client {
	if tlsCfg == nil {
		tlsCfg = ClientTLSConfig(true)
	}
	return &Client{addr: addr, tlsCfg: tlsCfg, name: name}
}

// Connect dials, sends the magic and performs the MCP initialize
// handshake.
func (c *Client) Connect(ctx context.Context) error {
	conn, err := quic.DialAddr(ctx, c.addr, c.tlsCfg, QUICConfig())
	if err != nil {
		return fmt.Errorf("dial %s: %w", c.addr, err)
	}
	if alpn := conn.ConnectionState().TLS.NegotiatedProtocol; alpn != ALPNProtocol {
		conn.CloseWithError(connErrorALPN, "bad ALPN")
		return fmt.Errorf("%w: got %q", ErrBadALPN, alpn)
	}
	stream, err := conn.OpenStreamSync(ctx)
	if err != nil {
		conn.CloseWithError(connErrorProtocol, "open stream")
		return fmt.Errorf("open stream: %w", err)
	}
	if err := writeMagic(stream); err != nil {
		conn.CloseWithError(connErrorProtocol, "magic")
		return err
	}
	c.conn, c.stream = conn, stream

	c.mcp = client.NewClient(transport.NewIO(stream, stream, noStderr{}))
	if err := c.mcp.Start(ctx); err != nil {
		c.Close()
		return fmt.Errorf("mcp start: %w", err)
	}

	hello := mcp.InitializeRequest{}
	hello.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	hello.Params.ClientInfo = mcp.Implementation{Name: c.name, Version: "1"}
	hsCtx, cancel := context.WithTimeout(ctx, HandshakeTimeout)
	defer cancel()
	if _, err := c.mcp.Initialize(hsCtx, hello); err != nil {
		c.Close()
		return fmt.Errorf("mcp initialize: %w", err)
	}
	return nil
}

func (c *Client) ListTools(ctx context.Context) (*mcp.ListToolsResult, error) {
	if c.mcp == nil {
		return nil, ErrNotConnected
	}
	return c.mcp.ListTools(ctx, mcp.ListToolsRequest{})
}

func (c *Client) CallTool(ctx context.Context, name string, args map[string]any) (*mcp.CallToolResult, error) {
	if c.mcp == nil {
		return nil, ErrNotConnected
	}
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return c.mcp.CallTool(ctx, req)
}

// Close ends the session and the connection.
func (c *Client) Close() error {
	if c.mcp != nil {
		c.mcp.Close()
		c.mcp = nil
	}
	if c.stream != nil {
		c.stream.Close()
	}
	if c.conn != nil {
		return c.conn.CloseWithError(connErrorNone, "bye")
	}
	return nil
}

// noStderr stands in for the stderr of a subprocess transport.
type noStderr struct{}

func (noStderr) Read([]byte) (int, error) { return 0, io.EOF }
func (noStderr) Close() error             { return nil }
