package rle

import (
	"fmt"

	"github.com/msagent/acs/internal/pool"
)

// decodeRuns expands the inner control-byte run stream into a pool-backed
// buffer of exactly wantLen bytes. Each control byte c is one of:
//
//   - 0x00: a row/end boundary marker. Produces no output; some encoders
//     emit it between scanlines as a synchronization point, others omit
//     it entirely since row length is already known from the plane's
//     geometry. Either way it is safe to skip.
//   - high bit set (c&0x80 != 0): a repeat run. The low 7 bits give a
//     count; the single byte that follows is written count times.
//   - otherwise: a literal run. c gives a count; the next c bytes are
//     copied verbatim.
//
// Decoding stops as soon as n reaches wantLen; control bytes are never
// read past that point. The caller owns the returned buffer and is
// responsible for releasing it with pool.Put once done.
func decodeRuns(in []byte, wantLen int) ([]byte, error) {
	out := pool.Get(wantLen)
	n := 0
	pos := 0

	for n < wantLen {
		if pos >= len(in) {
			pool.Put(out)
			return nil, fmt.Errorf("%w: got %d of %d bytes", ErrTruncated, n, wantLen)
		}
		c := in[pos]
		pos++

		switch {
		case c == 0x00:
			continue

		case c&0x80 != 0:
			count := int(c & 0x7F)
			if pos >= len(in) {
				pool.Put(out)
				return nil, fmt.Errorf("%w: missing repeat byte", ErrTruncated)
			}
			v := in[pos]
			pos++
			take := count
			if remaining := wantLen - n; take > remaining {
				take = remaining
			}
			for i := 0; i < take; i++ {
				out[n+i] = v
			}
			n += take

		default:
			count := int(c)
			if pos+count > len(in) {
				pool.Put(out)
				return nil, fmt.Errorf("%w: missing %d literal bytes", ErrTruncated, count)
			}
			take := count
			if remaining := wantLen - n; take > remaining {
				take = remaining
			}
			copy(out[n:n+take], in[pos:pos+take])
			n += take
			pos += count
		}
	}

	if n != wantLen {
		pool.Put(out)
		return nil, fmt.Errorf("%w: produced %d bytes, expected %d", ErrSizeMismatch, n, wantLen)
	}
	return out, nil
}
