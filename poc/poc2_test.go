package poc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConvertToPoC2SwapsMirrorScoops(t *testing.T) {
	nonce := make([]byte, NonceSize)
	for i := range nonce {
		nonce[i] = byte(i)
	}
	original := append([]byte(nil), nonce...)

	ConvertToPoC2(nonce)

	scoop, mirror := 10, ScoopsPerNonce-1-10
	require.Equal(t,
		original[mirror*ScoopSize+HashSize:mirror*ScoopSize+2*HashSize],
		nonce[scoop*ScoopSize+HashSize:scoop*ScoopSize+2*HashSize],
	)
	require.Equal(t,
		original[scoop*ScoopSize+HashSize:scoop*ScoopSize+2*HashSize],
		nonce[mirror*ScoopSize+HashSize:mirror*ScoopSize+2*HashSize],
	)

	// First halves of every scoop are untouched by the transform.
	require.Equal(t,
		original[scoop*ScoopSize:scoop*ScoopSize+HashSize],
		nonce[scoop*ScoopSize:scoop*ScoopSize+HashSize],
	)
}

func TestConvertToPoC2PanicsOnWrongSize(t *testing.T) {
	require.Panics(t, func() {
		ConvertToPoC2(make([]byte, NonceSize-1))
	})
}

func TestConvertToPoC2LeavesSelfMirroredScoopsAlone(t *testing.T) {
	// ScoopsPerNonce is even, so no scoop is its own mirror, but adjacent
	// pairs straddling the midpoint (scoop 2047 and 2048) must each still
	// swap with their own distinct partner, not each other by accident.
	require.NotEqual(t, ScoopsPerNonce/2-1, ScoopsPerNonce-1-(ScoopsPerNonce/2-1))
}
