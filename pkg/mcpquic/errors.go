package mcpquic

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/quic-go/quic-go"
)

const (
	streamErrorProtocol quic.StreamErrorCode = 0x02

	connErrorNone     quic.ApplicationErrorCode = 0x00
	connErrorALPN     quic.ApplicationErrorCode = 0x01
	connErrorProtocol quic.ApplicationErrorCode = 0x03
)

var (
	ErrBadMagic     = errors.New("mcpquic: bad magic")
	ErrBadALPN      = errors.New("mcpquic: server did not select " + ALPNProtocol)
	ErrNotConnected = errors.New("mcpquic: client not connected")
)

func readMagic(r io.Reader) error {
	got := make([]byte, len(Magic))
	if _, err := io.ReadFull(r, got); err != nil {
		return fmt.Errorf("read magic: %w", err)
	}
	if !bytes.Equal(got, []byte(Magic)) {
		return fmt.Errorf("%w: %q", ErrBadMagic, got)
	}
	return nil
}

func writeMagic(w io.Writer) error {
	if _, err := io.WriteString(w, Magic); err != nil {
		return fmt.Errorf("write magic: %w", err)
	}
	return nil
}
