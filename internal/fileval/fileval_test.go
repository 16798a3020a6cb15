package fileval

import (
	"bufio"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func write(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestValidateFile_Valid(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		content []byte
	}{
		{"empty", nil},
		{"program", []byte("program p\nend program p\n")},
		{"unicode comment", []byte("! résumé ✓\nx = 1\n")},
		{"replacement character", []byte("! �\n")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			path := write(t, "a.f90", tt.content)
			info, err := ValidateFile(path, 0)
			if err != nil {
				t.Fatalf("ValidateFile() error: %v", err)
			}
			if info.Size() != int64(len(tt.content)) {
				t.Errorf("Size() = %d, want %d", info.Size(), len(tt.content))
			}
		})
	}
}

func TestValidateFile_SizeCheck(t *testing.T) {
	t.Parallel()
	path := write(t, "big.f90", []byte(strings.Repeat("x", 200)))

	_, err := ValidateFile(path, 100)
	var tooLarge *FileTooLargeError
	if !errors.As(err, &tooLarge) {
		t.Fatalf("expected FileTooLargeError, got %v", err)
	}
	if tooLarge.Size != 200 || tooLarge.MaxSize != 100 {
		t.Errorf("got Size=%d MaxSize=%d, want 200 and 100", tooLarge.Size, tooLarge.MaxSize)
	}

	if _, err := ValidateFile(path, 200); err != nil {
		t.Errorf("unexpected error for exact size: %v", err)
	}
	if _, err := ValidateFile(path, 0); err != nil {
		t.Errorf("unexpected error with no limit: %v", err)
	}
}

func TestValidateFile_NotUTF8(t *testing.T) {
	t.Parallel()
	path := write(t, "latin1.f90", []byte("! caf\xe9\n"))

	_, err := ValidateFile(path, 0)
	var notUTF8 *NotUTF8Error
	if !errors.As(err, &notUTF8) {
		t.Fatalf("expected NotUTF8Error, got %v", err)
	}
	if notUTF8.Offset != 5 {
		t.Errorf("Offset = %d, want 5", notUTF8.Offset)
	}
}

func TestValidateFile_Directory(t *testing.T) {
	t.Parallel()
	_, err := ValidateFile(t.TempDir(), 0)
	var notRegular *NotRegularError
	if !errors.As(err, &notRegular) {
		t.Fatalf("expected NotRegularError, got %v", err)
	}
}

func TestValidateFile_Missing(t *testing.T) {
	t.Parallel()
	_, err := ValidateFile(filepath.Join(t.TempDir(), "missing.f90"), 0)
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected ErrNotExist, got %v", err)
	}
}

func TestFirstInvalid(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		input string
		want  int64
	}{
		{"ascii", "x = 1\n", -1},
		{"multibyte", "π = 3.14\n", -1},
		{"lone continuation byte", "ab\x80c", 2},
		{"truncated sequence at end", "ab\xe2\x82", 2},
		{"invalid after multibyte", "é\xff", 2},
	}
	for _, tt := range tests {
		got, err := firstInvalid(bufio.NewReader(strings.NewReader(tt.input)))
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.name, err)
		}
		if got != tt.want {
			t.Errorf("%s: firstInvalid() = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestErrorMessages(t *testing.T) {
	t.Parallel()
	if got := (&FileTooLargeError{Size: 20, MaxSize: 10}).Error(); got != "file too large (20 > 10 bytes)" {
		t.Errorf("FileTooLargeError.Error() = %q", got)
	}
	if got := (&NotUTF8Error{Offset: 3}).Error(); !strings.Contains(got, "offset 3") {
		t.Errorf("NotUTF8Error.Error() = %q", got)
	}
}
