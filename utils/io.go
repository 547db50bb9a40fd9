package utils

import (
	"bytes"
	"errors"
	"io"
	"math"
	"math/bits"
	"os"
)

func init() {
	checkCompiler()
}

// Enforces a 64bit machine due to assumptions about size of ints.
func checkCompiler() {
	myInt := int(math.MaxInt64) // Shouldn't compile on a 32 bit system.
	myInt64 := int64(math.MaxInt64)
	if uint64(myInt) != uint64(myInt64) {
		panic("Must be on 64 bit system.")
	}
}

var ErrNotNumber = errors.New("not an unsigned integer")
var ErrTokenTooLong = errors.New("token too long")

func OpenFile(path string) (*os.File, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Join(errors.New("failed to open file: "+path), err)
	}
	return file, nil
}

// Parses a base 10 unsigned integer; ASCII digits only.
func ToUint64(buf string) (n uint64, err error) {
	if len(buf) == 0 || len(buf) > 20 {
		return 0, ErrNotNumber
	}
	for i := 0; i < len(buf); i++ {
		d := buf[i] - '0'
		if d > 9 {
			return 0, ErrNotNumber
		}
		hi, lo := bits.Mul64(n, 10)
		sum, carry := bits.Add64(lo, uint64(d), 0)
		if hi != 0 || carry != 0 {
			return 0, ErrNotNumber
		}
		n = sum
	}
	return n, nil
}

const SPACE_MASK = 1<<9 | 1<<10 | 1<<11 | 1<<12 | 1<<13 | 1<<32

func isByteSpace(b byte) bool {
	return ((SPACE_MASK & (1 << b)) != 0)
}

// ASCII only, no re-allocation. Fields point into byteBuff.
// Fills at most len(fieldBuff) fields and returns how many were filled.
func FastFields(fieldBuff []string, byteBuff []byte) (count int) {
	i := 0
	for count < len(fieldBuff) {
		for i < len(byteBuff) && isByteSpace(byteBuff[i]) {
			i++
		}
		if i == len(byteBuff) {
			break
		}
		fieldStart := i
		for i < len(byteBuff) && !isByteSpace(byteBuff[i]) {
			i++
		}
		fieldBuff[count] = string(byteBuff[fieldStart:i])
		count++
	}
	return count
}

// Line scanner over a reader with a fixed buffer. Lines must fit the buffer.
type FastFileLines struct {
	Buf   []byte
	Start int // First non-processed byte in buf.
	End   int // End of data in buf.
	err   error
}

// Advance to the next line. Returns nil at EOF (or error, see Err).
func (s *FastFileLines) Scan(r io.Reader) []byte {
	for { // Until we have a token.
		if s.End > s.Start { // See if we can get a token with what we already have.
			if i := bytes.IndexByte(s.Buf[s.Start:s.End], '\n'); i >= 0 {
				token := s.Buf[s.Start : s.Start+i]
				s.Start += i + 1
				return token
			}
		}
		if s.err != nil {
			// Reached EOF (or failed). Return whatever is left.
			if s.End > s.Start {
				i := s.Start
				s.Start = s.End
				return s.Buf[i:s.End]
			}
			return nil
		}
		// Must read more data. Shift data to beginning of buffer.
		if s.Start > 0 {
			copy(s.Buf, s.Buf[s.Start:s.End])
			s.End -= s.Start
			s.Start = 0
		}
		if s.End == len(s.Buf) {
			s.err = ErrTokenTooLong
			return nil
		}
		var n int
		n, s.err = r.Read(s.Buf[s.End:])
		s.End += n
	}
}

// The first non-EOF error encountered by Scan.
func (s *FastFileLines) Err() error {
	if s.err == io.EOF {
		return nil
	}
	return s.err
}
