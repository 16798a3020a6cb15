// Package fileval provides checks that run on a source file before it is
// read into memory and parsed.
package fileval

import (
	"fmt"
	"os"
)

// DefaultMaxFileSize is the size above which files are refused.
const DefaultMaxFileSize int64 = 10 << 20

// NotRegularError is returned for directories, devices and other
// non-regular files named explicitly.
type NotRegularError struct {
	Path string
	Mode os.FileMode
}

func (e *NotRegularError) Error() string {
	return fmt.Sprintf("not a regular file (%s)", e.Mode.Type())
}

// FileTooLargeError is returned when a file exceeds the maximum size.
type FileTooLargeError struct {
	Path    string
	Size    int64
	MaxSize int64
}

func (e *FileTooLargeError) Error() string {
	return fmt.Sprintf("file too large (%d > %d bytes)", e.Size, e.MaxSize)
}

// NotUTF8Error is returned when a file is not valid UTF-8 text.
type NotUTF8Error struct {
	Path string
	// Offset is the byte offset of the first invalid sequence.
	Offset int64
}

func (e *NotUTF8Error) Error() string {
	return fmt.Sprintf("file is not valid UTF-8 text (invalid byte at offset %d)", e.Offset)
}

// ValidateFile checks that path is a regular file of at most maxSize bytes
// (no limit when maxSize <= 0) containing UTF-8 text. It returns the file
// info so callers can keep the mode when writing the file back.
func ValidateFile(path string, maxSize int64) (os.FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.Mode().IsRegular() {
		return nil, &NotRegularError{Path: path, Mode: info.Mode()}
	}
	if maxSize > 0 && info.Size() > maxSize {
		return nil, &FileTooLargeError{Path: path, Size: info.Size(), MaxSize: maxSize}
	}

	offset, err := FirstInvalidUTF8(path)
	if err != nil {
		return nil, err
	}
	if offset >= 0 {
		return nil, &NotUTF8Error{Path: path, Offset: offset}
	}
	return info, nil
}
