package filter

import (
	"strings"
	"sync"

	"github.com/AnyUserName/glyphcam/internal/pixbuf"
)

// Chain applies filters in order.
type Chain struct {
	Filters   []Filter
	Processor Processor
}

// Run applies the chain to buf in place. Every filter is validated before
// any pixel is computed, and buf is only overwritten once the whole chain
// succeeded, so a failing chain leaves buf untouched.
func (c Chain) Run(buf *pixbuf.Buffer) error {
	if err := buf.Validate(); err != nil {
		return err
	}
	for _, f := range c.Filters {
		if err := check(f); err != nil {
			return err
		}
	}
	if len(c.Filters) == 0 {
		return nil
	}

	front := getScratch(buf.Width, buf.Height)
	defer putScratch(front)
	back := getScratch(buf.Width, buf.Height)
	defer putScratch(back)

	src := buf
	for _, f := range c.Filters {
		if err := c.Processor.apply(src, front, f); err != nil {
			return err
		}
		src = front
		front, back = back, front
	}
	return buf.CopyFrom(src)
}

// String lists the filters in chain order.
func (c Chain) String() string {
	names := make([]string, len(c.Filters))
	for i, f := range c.Filters {
		names[i] = f.String()
	}
	return strings.Join(names, " | ")
}

var scratchPool = sync.Pool{New: func() any { return new(pixbuf.Buffer) }}

// getScratch returns a pooled buffer of the given size with unspecified
// contents.
func getScratch(width, height int) *pixbuf.Buffer {
	b := scratchPool.Get().(*pixbuf.Buffer)
	n := width * height * 4
	if cap(b.Pix) < n {
		b.Pix = make([]byte, n)
	}
	b.Pix = b.Pix[:n]
	b.Width, b.Height = width, height
	return b
}

func putScratch(b *pixbuf.Buffer) {
	scratchPool.Put(b)
}
