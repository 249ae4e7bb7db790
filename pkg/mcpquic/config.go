// Package mcpquic carries MCP JSON-RPC over a single QUIC stream, one
// newline-delimited message per line.
//
// A client negotiates the ALPNProtocol, opens one bidirectional stream and
// writes Magic before its first message. Anything else is closed.
package mcpquic

import (
	"crypto/tls"
	"time"

	"github.com/quic-go/quic-go"
)

const (
	ALPNProtocol     = "yomikata-mcp-v1"
	Magic            = "YMK1"
	MaxMessageSize   = 4 * 1024 * 1024
	HandshakeTimeout = 10 * time.Second
	IdleTimeout      = 5 * time.Minute
	KeepAlive        = 30 * time.Second
)

// QUICConfig is the transport configuration shared by listeners and
// clients.
func QUICConfig() *quic.Config {
	return &quic.Config{
		HandshakeIdleTimeout:       HandshakeTimeout,
		MaxIdleTimeout:             IdleTimeout,
		KeepAlivePeriod:            KeepAlive,
		MaxStreamReceiveWindow:     MaxMessageSize,
		MaxConnectionReceiveWindow: 4 * MaxMessageSize,
	}
}

// ClientTLSConfig offers only ALPNProtocol. insecure skips certificate
// verification, for self-signed development servers.
func ClientTLSConfig(insecure bool) *tls.Config {
	return &tls.Config{
		NextProtos:         []string{ALPNProtocol},
		MinVersion:         tls.VersionTLS13,
		InsecureSkipVerify: insecure,
	}
}
