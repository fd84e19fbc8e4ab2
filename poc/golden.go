package poc

import (
	"github.com/signum-network/poc-core/utils"
)

// GoldenNonce is one row of a serialized regression fixture: a plotted
// nonce's numeric identity plus a handful of its scoop hashes, used to pin
// the engine's output against accidental behavioral drift across changes.
type GoldenNonce struct {
	NumericID uint64             `json:"numeric_id"`
	Nonce     uint64             `json:"nonce"`
	Scoops    map[int]Hash       `json:"scoops"`
	Deadlines map[string]uint64  `json:"deadlines,omitempty"`
}

// MarshalGolden serializes a slice of golden rows with the same JSON codec
// the rest of the ambient stack uses for fixtures.
func MarshalGolden(rows []GoldenNonce) ([]byte, error) {
	return utils.MarshalJSONIndent(rows, "  ")
}

// UnmarshalGolden parses a golden fixture produced by MarshalGolden.
func UnmarshalGolden(data []byte) ([]GoldenNonce, error) {
	var rows []GoldenNonce
	if err := utils.UnmarshalJSON(data, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
