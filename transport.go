package a2s

import (
	"net"
	"time"

	"github.com/pkg/errors"
)

// Transport is the external collaborator contract (§6 of the design spec):
// a connected datagram socket with a configurable read timeout. The core
// library only ever calls Send/Recv/SetReadTimeout/ReadTimeout; it never
// resolves addresses or owns a socket itself.
type Transport interface {
	Send(b []byte) error
	Recv(buf []byte) (int, error)
	SetReadTimeout(d time.Duration) error
	ReadTimeout() time.Duration
}

// udpTransport adapts a *net.UDPConn to the Transport contract. It is the
// one concrete implementation this repo ships so the library is usable
// without a caller having to write their own socket glue.
type udpTransport struct {
	conn    *net.UDPConn
	timeout time.Duration
}

// dialUDPTransport resolves addr and dials a connected UDP socket, the way
// the teacher's Client.Connect does, generalized behind the Transport
// interface.
func dialUDPTransport(addr string, timeout time.Duration) (*udpTransport, error) {
	udpAddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, errors.Wrapf(err, "a2s: resolve %q", addr)
	}

	conn, err := net.DialUDP("udp", nil, udpAddr)
	if err != nil {
		return nil, errors.Wrapf(err, "a2s: dial %q", addr)
	}

	t := &udpTransport{conn: conn, timeout: timeout}
	if timeout > 0 {
		if err := t.SetReadTimeout(timeout); err != nil {
			conn.Close()
			return nil, err
		}
	}
	return t, nil
}

func (t *udpTransport) Send(b []byte) error {
	if t.timeout > 0 {
		t.conn.SetWriteDeadline(time.Now().Add(t.timeout))
	}
	_, err := t.conn.Write(b)
	return errors.Wrap(err, "a2s: transport send")
}

func (t *udpTransport) Recv(buf []byte) (int, error) {
	if t.timeout > 0 {
		t.conn.SetReadDeadline(time.Now().Add(t.timeout))
	}
	n, err := t.conn.Read(buf)
	if err != nil {
		return n, errors.Wrap(err, "a2s: transport recv")
	}
	return n, nil
}

func (t *udpTransport) SetReadTimeout(d time.Duration) error {
	t.timeout = d
	return t.conn.SetReadDeadline(time.Now().Add(d))
}

func (t *udpTransport) ReadTimeout() time.Duration { return t.timeout }

func (t *udpTransport) Close() error { return t.conn.Close() }
