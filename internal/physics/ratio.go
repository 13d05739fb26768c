package physics

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
)

// Ratio is the Lissajous frequency ratio ω_x/ω_y = √(l/L).
type Ratio struct {
	Value float64
	Exact *big.Rat
}

// FrequencyRatio returns √(l/L) and the fraction its shortest decimal
// representation spells, so 0.8 becomes 4/5 rather than the nearest binary
// fraction.
func FrequencyRatio(p *SandPendulum) (Ratio, error) {
	if err := p.Validate(); err != nil {
		return Ratio{}, err
	}
	v := math.Sqrt(p.LengthY / p.LengthX)

	r, ok := new(big.Rat).SetString(strconv.FormatFloat(v, 'g', -1, 64))
	if !ok {
		return Ratio{}, fmt.Errorf("cannot express %v as a fraction", v)
	}
	return Ratio{Value: v, Exact: r}, nil
}

func (r Ratio) Num() *big.Int   { return r.Exact.Num() }
func (r Ratio) Denom() *big.Int { return r.Exact.Denom() }

// Label is the on-plot annotation.
func (r Ratio) Label() string {
	return fmt.Sprintf("√(l/L) = %s/%s = %s",
		r.Exact.Num().String(), r.Exact.Denom().String(),
		strconv.FormatFloat(r.Value, 'g', -1, 64))
}

// Simple reports whether the ratio reduces to small integers, which gives a
// closed figure after a short time.
func (r Ratio) Simple(maxDenom int64) bool {
	return r.Exact.Denom().IsInt64() && r.Exact.Denom().Int64() <= maxDenom
}
