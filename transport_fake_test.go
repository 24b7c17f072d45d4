package a2s

import (
	"time"

	"github.com/pkg/errors"
)

var errTransportExhausted = errors.New("fakeTransport: no more queued replies")

// fakeTransport is an in-memory Transport: every Send appends to Sent, and
// Recv pops the next queued reply. It lets the codec and driver tests drive
// exact byte sequences without a real socket.
type fakeTransport struct {
	Sent    [][]byte
	replies [][]byte
	timeout time.Duration
}

func newFakeTransport(replies ...[]byte) *fakeTransport {
	return &fakeTransport{replies: replies}
}

func (f *fakeTransport) Send(b []byte) error {
	cp := make([]byte, len(b))
	copy(cp, b)
	f.Sent = append(f.Sent, cp)
	return nil
}

func (f *fakeTransport) Recv(buf []byte) (int, error) {
	if len(f.replies) == 0 {
		return 0, errTransportExhausted
	}
	next := f.replies[0]
	f.replies = f.replies[1:]
	n := copy(buf, next)
	return n, nil
}

func (f *fakeTransport) SetReadTimeout(d time.Duration) error {
	f.timeout = d
	return nil
}

func (f *fakeTransport) ReadTimeout() time.Duration { return f.timeout }
