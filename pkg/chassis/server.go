// Package chassis serves one handler on both transports of a port:
//
//   - TCP: HTTPS over HTTP/1.1 and HTTP/2
//   - UDP: QUIC, demuxed on ALPN into HTTP/3 ("h3") and MCP (mcpquic)
//
// HTTPS responses advertise HTTP/3 with Alt-Svc.
package chassis

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"

	"github.com/mark3labs/mcp-go/server"
	"github.com/quic-go/quic-go"
	"github.com/quic-go/quic-go/http3"

	"github.com/hazyhaar/yomikata/pkg/mcpquic"
)

type Config struct {
	Addr string
	// CertFile and KeyFile; a self-signed certificate when both are empty.
	CertFile string
	KeyFile  string
	Handler  http.Handler
	// MCP is served over QUIC when not nil.
	MCP    *server.MCPServer
	Logger *slog.Logger
}

type Server struct {
	cfg    Config
	logger *slog.Logger
	tls    *tls.Config
	mcp    *mcpquic.Handler

	mu     sync.Mutex
	https  *http.Server
	h3     *http3.Server
	quicLn *quic.Listener
	ready  chan struct{}
	addr   string
}

func New(cfg Config) (*Server, error) {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	tlsCfg, err := TLSConfig(cfg.CertFile, cfg.KeyFile)
	if err != nil {
		return nil, err
	}
	s := &Server{cfg: cfg, logger: cfg.Logger, tls: tlsCfg, ready: make(chan struct{})}
	if cfg.MCP != nil {
		s.mcp = mcpquic.NewHandler(cfg.MCP, cfg.Logger)
	}
	return s, nil
}

// Ready is closed once both listeners are bound.
func (s *Server) Ready() <-chan struct{} { return s.ready }

// Addr is the bound address; valid after Ready.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}

// Start binds TCP and UDP on the same port and serves until ctx is done or
// a listener fails.
func (s *Server) Start(ctx context.Context) error {
	tcpTLS := s.tls.Clone()
	tcpTLS.NextProtos = []string{"h2", "http/1.1"}
	tcpLn, err := tls.Listen("tcp", s.cfg.Addr, tcpTLS)
	if err != nil {
		return fmt.Errorf("tcp listen: %w", err)
	}
	// Port 0 resolves on TCP first; UDP takes the same number.
	addr := tcpLn.Addr().String()
	quicLn, err := quic.ListenAddr(addr, s.tls, mcpquic.QUICConfig())
	if err != nil {
		tcpLn.Close()
		return fmt.Errorf("quic listen: %w", err)
	}

	handler := headers(addr, s.cfg.Handler)
	s.mu.Lock()
	s.addr = addr
	s.quicLn = quicLn
	s.https = &http.Server{Handler: handler}
	s.h3 = &http3.Server{Handler: handler}
	s.mu.Unlock()
	close(s.ready)
	s.logger.Info("chassis listening", "addr", addr, "mcp", s.mcp != nil)

	errCh := make(chan error, 2)
	go func() {
		if err := s.https.Serve(tcpLn); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("https: %w", err)
		}
	}()
	go func() {
		for {
			conn, err := quicLn.Accept(ctx)
			if err != nil {
				if ctx.Err() == nil && !errors.Is(err, quic.ErrServerClosed) {
					errCh <- fmt.Errorf("quic accept: %w", err)
				}
				return
			}
			go s.dispatch(ctx, conn)
		}
	}()

	select {
	case <-ctx.Done():
		return nil
	case err := <-errCh:
		return err
	}
}

func (s *Server) dispatch(ctx context.Context, conn *quic.Conn) {
	switch alpn := conn.ConnectionState().TLS.NegotiatedProtocol; {
	case alpn == "h3":
		if err := s.h3.ServeQUICConn(conn); err != nil {
			s.logger.Debug("http3 connection closed", "remote", conn.RemoteAddr(), "error", err)
		}
	case alpn == mcpquic.ALPNProtocol && s.mcp != nil:
		s.mcp.ServeConn(ctx, conn)
	default:
		s.logger.Warn("unsupported ALPN", "alpn", alpn, "remote", conn.RemoteAddr())
		conn.CloseWithError(quic.ApplicationErrorCode(0x11), "unsupported ALPN "+alpn)
	}
}

// Stop shuts HTTPS down gracefully and closes the QUIC side.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var errs []error
	if s.https != nil {
		errs = append(errs, s.https.Shutdown(ctx))
	}
	if s.h3 != nil {
		errs = append(errs, s.h3.Close())
	}
	if s.quicLn != nil {
		errs = append(errs, s.quicLn.Close())
	}
	return errors.Join(errs...)
}

func headers(addr string, next http.Handler) http.Handler {
	_, port, _ := net.SplitHostPort(addr)
	altSvc := fmt.Sprintf(`h3=":%s"; ma=86400`, port)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Alt-Svc", altSvc)
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("Referrer-Policy", "no-referrer")
		next.ServeHTTP(w, r)
	})
}
