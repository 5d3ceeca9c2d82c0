package input

import (
	"context"
	"sync"
)

// Script replays a fixed sequence of keys. It is safe for concurrent use.
type Script struct {
	mu   sync.Mutex
	keys []Key
	read int
}

// NewScript builds a script from a string, one key per rune.
func NewScript(keys string) *Script {
	s := &Script{}
	s.Type(keys)
	return s
}

// Type appends more keys to the script.
func (s *Script) Type(keys string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range keys {
		s.keys = append(s.keys, KeyFromRune(r))
	}
}

func (s *Script) NextKey(ctx context.Context) (Key, error) {
	if err := ctx.Err(); err != nil {
		return Key{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.read >= len(s.keys) {
		return Key{}, ErrNoMoreKeys
	}
	k := s.keys[s.read]
	s.read++
	return k, nil
}

// Consumed is the number of keys handed out so far.
func (s *Script) Consumed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read
}

// Remaining is the number of keys not yet handed out.
func (s *Script) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.keys) - s.read
}

// Channel feeds keys from a UI event loop into code that reads them
// synchronously on another goroutine.
type Channel struct {
	keys chan Key
}

func NewChannel(buffer int) *Channel {
	return &Channel{keys: make(chan Key, buffer)}
}

// Send queues a key. It blocks while the buffer is full.
func (c *Channel) Send(k Key) {
	c.keys <- k
}

// Close signals that no more keys will arrive.
func (c *Channel) Close() {
	close(c.keys)
}

func (c *Channel) NextKey(ctx context.Context) (Key, error) {
	select {
	case <-ctx.Done():
		return Key{}, ctx.Err()
	case k, ok := <-c.keys:
		if !ok {
			return Key{}, ErrNoMoreKeys
		}
		return k, nil
	}
}

// Drain discards any queued keys and reports how many there were.
func (c *Channel) Drain() int {
	n := 0
	for {
		select {
		case _, ok := <-c.keys:
			if !ok {
				return n
			}
			n++
		default:
			return n
		}
	}
}
