package stream

import "io"

/*
Repeat replays stream s forever. The first pass through s is cached as
it is pulled; later passes and later cursors serve the very same batches
again, so a training loop requesting more epochs than there are unique
samples literally revisits earlier data. An empty underlying stream
stays empty. Not safe for concurrent cursors.
*/
func Repeat(s Stream) Stream {
	return &repeated{inner: s}
}

type repeated struct {
	inner Stream
	src   Cursor
	cache []Batch
	done  bool
}

func (r *repeated) Batches() Cursor { return &repeatCursor{r: r} }

type repeatCursor struct {
	r   *repeated
	pos int
}

func (c *repeatCursor) Next() (Batch, error) {
	r := c.r
	if c.pos < len(r.cache) {
		b := r.cache[c.pos]
		c.pos++
		return b, nil
	}
	if !r.done {
		if r.src == nil {
			r.src = r.inner.Batches()
		}
		b, err := r.src.Next()
		switch {
		case err == io.EOF:
			r.done = true
			r.src = nil
		case err != nil:
			return Batch{}, err
		default:
			r.cache = append(r.cache, b)
			c.pos++
			return b, nil
		}
	}
	if len(r.cache) == 0 {
		return Batch{}, io.EOF
	}
	c.pos = 1
	return r.cache[0], nil
}
