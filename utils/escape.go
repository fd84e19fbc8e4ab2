package utils

import (
	"fmt"
	"hash"
	"io"

	_ "unsafe"
)

// AppendfNoEscape and SprintfNoEscape are thin fmt wrappers kept under
// dedicated names alongside the other NoEscape helpers in this file, so
// call sites read the same regardless of which formatting primitive
// backs them.
func AppendfNoEscape(buf []byte, format string, v ...any) []byte {
	return fmt.Appendf(buf, format, v...)
}

func SprintfNoEscape(format string, v ...any) string {
	return fmt.Sprintf(format, v...)
}

// These functions allow defeat of the escape analysis to prevent heap allocations.
// It is the caller responsibility to ensure this is safe

func _read(reader io.Reader, buf []byte) (n int, err error) {
	return reader.Read(buf)
}

func _write(writer io.Writer, buf []byte) (n int, err error) {
	return writer.Write(buf)
}

func _sum(hasher hash.Hash, buf []byte) []byte {
	return hasher.Sum(buf)
}

//go:noescape
//go:linkname ReadNoEscape github.com/signum-network/poc-core/utils._read
func ReadNoEscape(reader io.Reader, buf []byte) (n int, err error)

//go:noescape
//go:linkname WriteNoEscape github.com/signum-network/poc-core/utils._write
func WriteNoEscape(writer io.Writer, buf []byte) (n int, err error)

//go:noescape
//go:linkname SumNoEscape github.com/signum-network/poc-core/utils._sum
func SumNoEscape(hasher hash.Hash, buf []byte) []byte
