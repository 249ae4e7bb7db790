package mcpquic

import (
	"bufio"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/quic-go/quic-go"

	"github.com/hazyhaar/yomikata/pkg/kit"
)

// Handler serves MCP sessions on connections accepted elsewhere, so one
// UDP socket can be shared with HTTP/3.
type Handler struct {
	mcp    *server.MCPServer
	logger *slog.Logger
}

func NewHandler(srv *server.MCPServer, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{mcp: srv, logger: logger}
}

// ServeConn runs one MCP session on the first stream of conn and returns
// when the peer closes it or ctx is done.
func (h *Handler) ServeConn(ctx context.Context, conn *quic.Conn) {
	remote := conn.RemoteAddr().String()

	stream, err := conn.AcceptStream(ctx)
	if err != nil {
		h.logger.Warn("mcp: accept stream", "remote", remote, "error", err)
		conn.CloseWithError(connErrorProtocol, "no stream")
		return
	}
	if err := readMagic(stream); err != nil {
		h.logger.Warn("mcp: rejected connection", "remote", remote, "error", err)
		stream.CancelRead(streamErrorProtocol)
		stream.CancelWrite(streamErrorProtocol)
		conn.CloseWithError(connErrorProtocol, "bad magic")
		return
	}

	sess := &session{id: "quic-" + uuid.NewString(), out: stream, notifications: make(chan mcp.JSONRPCNotification, 64)}
	if err := h.mcp.RegisterSession(ctx, sess); err != nil {
		h.logger.Error("mcp: register session", "session", sess.id, "error", err)
		stream.Close()
		return
	}
	defer h.mcp.UnregisterSession(ctx, sess.id)
	h.logger.Info("mcp session started", "session", sess.id, "remote", remote)

	ctx, cancel := context.WithCancel(kit.WithTransport(ctx, "mcp_quic"))
	defer cancel()
	ctx = h.mcp.WithContext(ctx, sess)
	go sess.forwardNotifications(ctx)

	sc := bufio.NewScanner(stream)
	sc.Buffer(make([]byte, 64*1024), MaxMessageSize)
	for sc.Scan() {
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		resp := h.mcp.HandleMessage(ctx, json.RawMessage(line))
		if resp == nil {
			continue
		}
		if err := sess.send(resp); err != nil {
			h.logger.Warn("mcp: write", "session", sess.id, "error", err)
			break
		}
	}
	if err := sc.Err(); err != nil && ctx.Err() == nil {
		h.logger.Warn("mcp: read", "session", sess.id, "error", err)
	}
	stream.Close()
	h.logger.Info("mcp session ended", "session", sess.id)
}

// Listener owns a QUIC listener that only speaks MCP.
type Listener struct {
	ln      *quic.Listener
	handler *Handler
	logger  *slog.Logger
}

// Listen binds addr. tlsCfg must offer ALPNProtocol.
func Listen(addr string, tlsCfg *tls.Config, srv *server.MCPServer, logger *slog.Logger) (*Listener, error) {
	if logger == nil {
		logger = slog.Default()
	}
	ln, err := quic.ListenAddr(addr, tlsCfg, QUICConfig())
	if err != nil {
		return nil, fmt.Errorf("mcp listen %s: %w", addr, err)
	}
	return &Listener{ln: ln, handler: NewHandler(srv, logger), logger: logger}, nil
}

// Addr is the bound address, useful when listening on port 0.
func (l *Listener) Addr() string { return l.ln.Addr().String() }

// Serve accepts connections until ctx is done or the listener is closed.
func (l *Listener) Serve(ctx context.Context) error {
	for {
		conn, err := l.ln.Accept(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("mcp accept: %w", err)
		}
		if alpn := conn.ConnectionState().TLS.NegotiatedProtocol; alpn != ALPNProtocol {
			conn.CloseWithError(connErrorALPN, "unsupported ALPN "+alpn)
			continue
		}
		go l.handler.ServeConn(ctx, conn)
	}
}

func (l *Listener) Close() error { return l.ln.Close() }

// session is a server.ClientSession writing to one stream. Responses and
// notifications share the stream, so writes are serialized.
type session struct {
	id            string
	initialized   atomic.Bool
	notifications chan mcp.JSONRPCNotification

	mu  sync.Mutex
	out io.Writer
}

func (s *session) SessionID() string                                   { return s.id }
func (s *session) NotificationChannel() chan<- mcp.JSONRPCNotification { return s.notifications }
func (s *session) Initialize()                                         { s.initialized.Store(true) }
func (s *session) Initialized() bool                                   { return s.initialized.Load() }

func (s *session) send(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err = s.out.Write(append(data, '\n'))
	return err
}

func (s *session) forwardNotifications(ctx context.Context) {
	for {
		select {
		case n := <-s.notifications:
			if err := s.send(n); err != nil {
				return
			}
		case <-ctx.Done():
			return
		}
	}
}
