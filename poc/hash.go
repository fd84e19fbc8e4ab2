package poc

import (
	"encoding/binary"
	"errors"

	fasthex "github.com/tmthrgd/go-hex"
)

// Hash is a 32-byte Shabal-256 digest, one scoop half or a deadline seed.
//
//nolint:recvcheck
type Hash [HashSize]byte

var ZeroHash Hash

func (h Hash) MarshalJSON() ([]byte, error) {
	var buf [HashSize*2 + 2]byte
	buf[0] = '"'
	buf[HashSize*2+1] = '"'
	fasthex.Encode(buf[1:], h[:])
	return buf[:], nil
}

func (h *Hash) UnmarshalJSON(b []byte) error {
	if len(b) == 0 || len(b) == 2 {
		return nil
	}
	if len(b) != HashSize*2+2 {
		return errors.New("wrong hash size")
	}
	_, err := fasthex.Decode(h[:], b[1:len(b)-1])
	return err
}

func HashFromString(s string) (Hash, error) {
	var h Hash
	buf, err := fasthex.DecodeString(s)
	if err != nil {
		return h, err
	}
	if len(buf) != HashSize {
		return h, errors.New("wrong size")
	}
	copy(h[:], buf)
	return h, nil
}

func MustHashFromString(s string) Hash {
	h, err := HashFromString(s)
	if err != nil {
		panic(err)
	}
	return h
}

func (h Hash) String() string {
	return fasthex.EncodeToString(h[:])
}

func (h Hash) Slice() []byte {
	return h[:]
}

// Compare orders two hashes as unsigned 256-bit big-endian integers.
func (h Hash) Compare(other Hash) int {
	for i := 0; i < len(h); i += 8 {
		a := binary.BigEndian.Uint64(h[i:])
		b := binary.BigEndian.Uint64(other[i:])
		if a < b {
			return -1
		}
		if a > b {
			return 1
		}
	}
	return 0
}

// DeadlineUint64 extracts the little-endian 64-bit deadline seed from the
// first 8 bytes of the digest, per the wire convention used by the search.
func (h Hash) DeadlineUint64() uint64 {
	return binary.LittleEndian.Uint64(h[:8])
}
