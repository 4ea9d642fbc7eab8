// Package tui is the full-screen bubbletea front end for an adventure
// session.
package tui

// history remembers past input lines for Up/Down recall. Storage is a
// fixed ring; browsing walks from newest to oldest by offset.
type history struct {
	buf    []string
	head   int // next write position
	size   int // filled entries
	offset int // 0 = not browsing, n = n entries back
}

func newHistory(capacity int) *history {
	return &history{buf: make([]string, capacity)}
}

// Push records one line and leaves browsing mode. A line equal to the
// most recent one is not recorded twice.
func (h *history) Push(line string) {
	if h.size > 0 && h.at(1) == line {
		h.offset = 0
		return
	}
	h.buf[h.head] = line
	h.head = (h.head + 1) % len(h.buf)
	if h.size < len(h.buf) {
		h.size++
	}
	h.offset = 0
}

// at returns the line n entries back from the write position, n in
// [1, size].
func (h *history) at(n int) string {
	return h.buf[(h.head-n+len(h.buf))%len(h.buf)]
}

// Prev steps one entry older and returns it. At the oldest entry it
// stays put. An empty history reports false.
func (h *history) Prev() (string, bool) {
	if h.size == 0 {
		return "", false
	}
	if h.offset < h.size {
		h.offset++
	}
	return h.at(h.offset), true
}

// Next steps one entry newer. Stepping past the newest leaves browsing
// mode and reports false, meaning fresh input.
func (h *history) Next() (string, bool) {
	if h.offset <= 1 {
		h.offset = 0
		return "", false
	}
	h.offset--
	return h.at(h.offset), true
}
