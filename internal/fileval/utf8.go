package fileval

import (
	"bufio"
	"errors"
	"io"
	"os"
	"unicode/utf8"
)

// FirstInvalidUTF8 returns the byte offset of the first invalid UTF-8
// sequence in the file at path, or -1 when the whole file is valid.
func FirstInvalidUTF8(path string) (int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return firstInvalid(bufio.NewReaderSize(f, 32*1024))
}

func firstInvalid(r *bufio.Reader) (int64, error) {
	var offset int64
	for {
		c, size, err := r.ReadRune()
		if errors.Is(err, io.EOF) {
			return -1, nil
		}
		if err != nil {
			return 0, err
		}
		// A real U+FFFD in the file is three bytes long.
		if c == utf8.RuneError && size == 1 {
			return offset, nil
		}
		offset += int64(size)
	}
}
