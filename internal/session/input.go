package session

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vovakirdan/tui-invaders/internal/core"
	"github.com/vovakirdan/tui-invaders/internal/eventloop"
)

// keyTracker turns the press-only key stream of a terminal into press and
// release pairs. A held key is released after a fixed number of ticks
// without another press of it.
type keyTracker struct {
	after    uint64
	deadline [core.KeyShoot + 1]uint64 // 0 when not held
}

func newKeyTracker(releaseAfter int) keyTracker {
	if releaseAfter <= 0 {
		releaseAfter = 1
	}
	return keyTracker{after: uint64(releaseAfter)}
}

// press reports whether k was up; either way k stays held until now+after.
func (kt *keyTracker) press(k core.Key, now uint64) bool {
	wasUp := kt.deadline[k] == 0
	kt.deadline[k] = now + kt.after
	return wasUp
}

func (kt *keyTracker) held(k core.Key) bool {
	return kt.deadline[k] != 0
}

// release reports whether k was held.
func (kt *keyTracker) release(k core.Key) bool {
	held := kt.deadline[k] != 0
	kt.deadline[k] = 0
	return held
}

// expire releases every key whose deadline passed.
func (kt *keyTracker) expire(now uint64) []core.Key {
	var out []core.Key
	for k := core.KeyLeft; k <= core.KeyShoot; k++ {
		if d := kt.deadline[k]; d != 0 && d <= now {
			kt.deadline[k] = 0
			out = append(out, k)
		}
	}
	return out
}

// HandleWindow implements eventloop.Handler.
func (s *Session) HandleWindow(ev eventloop.Event) error {
	switch ev.Kind {
	case eventloop.KindKey:
		return s.handleKey(ev)

	case eventloop.KindClick:
		s.handleClick(ev)
		return nil

	case eventloop.KindQuit:
		if err := s.enc.Bye(); err != nil {
			return err
		}
		return ErrLocalQuit

	default:
		return nil
	}
}

// handleKey forwards the first press and the release of a game key.
// Repeats are dropped.
func (s *Session) handleKey(ev eventloop.Event) error {
	if ev.Key < core.KeyLeft || ev.Key > core.KeyShoot {
		return nil
	}

	if ev.Dir == core.Release {
		if !s.keys.release(ev.Key) {
			return nil
		}
		return s.enc.Key(core.Release, ev.Key)
	}

	if ev.Repeat {
		if s.keys.held(ev.Key) {
			s.keys.press(ev.Key, s.ticks)
		}
		return nil
	}
	if !s.keys.press(ev.Key, s.ticks) {
		return nil
	}
	return s.enc.Key(core.Press, ev.Key)
}

// handleClick enumerates the entities under a left click.
func (s *Session) handleClick(ev eventloop.Event) {
	if ev.Button != eventloop.ButtonLeft {
		return
	}

	ids := s.entities.HitTest(ev.X, ev.Y, s.frameBounds)

	var text string
	if len(ids) == 0 {
		text = fmt.Sprintf("No IDs match click at (%d, %d)", ev.X, ev.Y)
	} else {
		parts := make([]string, len(ids))
		for i, id := range ids {
			parts[i] = strconv.Itoa(id)
		}
		text = fmt.Sprintf("Click at (%d, %d) matches these IDs: %s", ev.X, ev.Y, strings.Join(parts, ", "))
	}

	s.logger.Info(text)
	s.renderer.Status(text)
}
