package parse

import "github.com/ef-ds/deque"

type rawArg struct {
	text  string
	index int
}

// Cursor is a forward-only queue over raw tokens. Each token is handed out once,
// together with its index in the original list. A Cursor cannot be rewound; build
// a new one from the original list to iterate again.
type Cursor struct {
	queue *deque.Deque
	total int
}

// NewCursor creates a Cursor over args
func NewCursor(args []string) *Cursor {
	q := deque.New()
	for i, a := range args {
		q.PushBack(rawArg{text: a, index: i})
	}

	return &Cursor{queue: q, total: len(args)}
}

// Next removes and returns the next raw token
func (c *Cursor) Next() (string, int, bool) {
	v, ok := c.queue.PopFront()
	if !ok {
		return "", c.total, false
	}
	ra := v.(rawArg)

	return ra.text, ra.index, true
}

// Peek returns the next raw token without consuming it
func (c *Cursor) Peek() (string, int, bool) {
	v, ok := c.queue.Front()
	if !ok {
		return "", c.total, false
	}
	ra := v.(rawArg)

	return ra.text, ra.index, true
}

// Len returns the number of tokens left
func (c *Cursor) Len() int {
	return c.queue.Len()
}

// Consumed returns the number of tokens handed out so far
func (c *Cursor) Consumed() int {
	return c.total - c.queue.Len()
}

// Drain consumes and returns every remaining token
func (c *Cursor) Drain() []string {
	out := make([]string, 0, c.queue.Len())
	for {
		text, _, ok := c.Next()
		if !ok {
			return out
		}
		out = append(out, text)
	}
}
