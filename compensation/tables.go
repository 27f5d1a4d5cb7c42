/*
tables.go - Published legal tables and the shared read-only registry

PURPOSE:
  Embeds the lawyer-standard ("Red Book") tables the engine consults
  and exposes them through a process-wide, once-built, immutable
  registry. Nothing here is ever mutated after construction, so lookups
  are safe from any number of goroutines without locking.

TABLES:
  Injury consolation (Table I analogue):
    hospital months x outpatient months -> man-yen. The matrix is
    triangular: very long combined treatment has no published cell.
  Whiplash variant (Table II analogue):
    derived once as round(Table I cell x 0.67); used when the injury is
    whiplash without objective medical findings.
  Disability consolation:
    grade 1 (most severe) .. 14 -> man-yen.
  Labor capacity loss rate:
    grade 1..14 -> presumed lost earning capacity, in percent.

UNITS:
  Consolation tables are denominated in man-yen (x 10,000 yen), the
  unit the published tables use; conversion to yen happens at the item
  calculators. Loss rates are whole percent.

SEE ALSO:
  - coefficient.go: the discount-coefficient tables in the registry
  - items.go: the calculators consuming these tables
*/
package compensation

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/warp/compensation-engine/ratetable"
)

// =============================================================================
// PUBLISHED DATA
// =============================================================================

// injuryConsolationManYen is the primary treatment-duration consolation
// matrix: row = hospital months, column = outpatient months, value in
// man-yen.
var injuryConsolationManYen = map[int]map[int]int64{
	0:  {1: 28, 2: 52, 3: 73, 4: 90, 5: 105, 6: 116, 7: 124, 8: 132, 9: 139, 10: 145, 11: 150, 12: 154, 13: 158, 14: 162, 15: 164},
	1:  {0: 53, 1: 77, 2: 98, 3: 115, 4: 130, 5: 141, 6: 149, 7: 157, 8: 164, 9: 170, 10: 175, 11: 179, 12: 183, 13: 187, 14: 189, 15: 191},
	2:  {0: 101, 1: 122, 2: 139, 3: 154, 4: 165, 5: 173, 6: 181, 7: 188, 8: 194, 9: 199, 10: 203, 11: 206, 12: 208, 13: 209, 14: 210, 15: 211},
	3:  {0: 145, 1: 162, 2: 177, 3: 188, 4: 196, 5: 204, 6: 211, 7: 217, 8: 222, 9: 226, 10: 229, 11: 231, 12: 232, 13: 233, 14: 234, 15: 235},
	4:  {0: 165, 1: 184, 2: 198, 3: 208, 4: 216, 5: 223, 6: 229, 7: 234, 8: 238, 9: 241, 10: 243, 11: 244, 12: 245, 13: 246, 14: 247, 15: 248},
	5:  {0: 183, 1: 203, 2: 215, 3: 223, 4: 230, 5: 236, 6: 241, 7: 245, 8: 248, 9: 250, 10: 251, 11: 252, 12: 253, 13: 254, 14: 255, 15: 256},
	6:  {0: 199, 1: 218, 2: 229, 3: 236, 4: 242, 5: 246, 6: 250, 7: 253, 8: 255, 9: 256, 10: 257, 11: 258, 12: 259, 13: 260, 14: 261, 15: 262},
	7:  {0: 212, 1: 229, 2: 240, 3: 246, 4: 251, 5: 254, 6: 257, 7: 259, 8: 260, 9: 261, 10: 262, 11: 263, 12: 264, 13: 265, 14: 266},
	8:  {0: 224, 1: 239, 2: 249, 3: 254, 4: 258, 5: 261, 6: 263, 7: 264, 8: 265, 9: 266, 10: 267, 11: 268, 12: 269, 13: 270},
	9:  {0: 234, 1: 248, 2: 257, 3: 261, 4: 264, 5: 266, 6: 267, 7: 268, 8: 269, 9: 270, 10: 271, 11: 272, 12: 273},
	10: {0: 242, 1: 255, 2: 263, 3: 266, 4: 268, 5: 269, 6: 270, 7: 271, 8: 272, 9: 273, 10: 274, 11: 275},
	11: {0: 248, 1: 260, 2: 267, 3: 270, 4: 271, 5: 272, 6: 273, 7: 274, 8: 275, 9: 276, 10: 277},
	12: {0: 253, 1: 264, 2: 270, 3: 272, 4: 273, 5: 274, 6: 275, 7: 276, 8: 277, 9: 278},
	13: {0: 256, 1: 267, 2: 272, 3: 274, 4: 275, 5: 276, 6: 277, 7: 278, 8: 279},
	14: {0: 258, 1: 268, 2: 273, 3: 275, 4: 276, 5: 277, 6: 278, 7: 279},
	15: {0: 260, 1: 269, 2: 274, 3: 276, 4: 277, 5: 278, 6: 279},
}

// disabilityConsolationManYen is lawyer-standard disability consolation
// by grade, in man-yen.
var disabilityConsolationManYen = map[int]int64{
	1: 2800, 2: 2370, 3: 1990, 4: 1670, 5: 1400, 6: 1180, 7: 1000,
	8: 830, 9: 690, 10: 550, 11: 420, 12: 290, 13: 180, 14: 110,
}

// lossRatePercent is the labor-capacity loss rate by grade, in whole
// percent, per the workers'-compensation-derived schedule.
var lossRatePercent = map[int]int64{
	1: 100, 2: 100, 3: 100, 4: 92, 5: 79, 6: 67, 7: 56,
	8: 45, 9: 35, 10: 27, 11: 20, 12: 14, 13: 9, 14: 5,
}

// =============================================================================
// REGISTRY
// =============================================================================

// Tables is the immutable registry of every published table the engine
// consults. Build once (Shared or NewTables), share by reference.
type Tables struct {
	injury     *ratetable.Table2D
	whiplash   *ratetable.Table2D
	disability *ratetable.Table1D
	lossRate   *ratetable.Table1D
	hoffmann   map[int]decimal.Decimal
	leibniz    map[int]decimal.Decimal
}

var (
	sharedOnce   sync.Once
	sharedTables *Tables
)

// Shared returns the process-wide table registry, building it on first
// use. Reads need no locking; the registry is never mutated.
func Shared() *Tables {
	sharedOnce.Do(func() { sharedTables = NewTables() })
	return sharedTables
}

// NewTables builds a fresh registry. Tests use this to avoid sharing;
// production code uses Shared.
func NewTables() *Tables {
	injury := ratetable.New2D(injuryConsolationManYen)
	return &Tables{
		injury: injury,
		// The reduced table for whiplash without objective findings is
		// published as 2/3-scale of the primary table.
		whiplash:   injury.Scaled(67, 100),
		disability: ratetable.New1D(disabilityConsolationManYen),
		lossRate:   ratetable.New1D(lossRatePercent),
		hoffmann:   buildCoefficients(hoffmannRate, hoffmannOverrides),
		leibniz:    buildCoefficients(leibnizRate, leibnizOverrides),
	}
}

// InjuryTable returns the consolation matrix for the given injury kind.
func (t *Tables) InjuryTable(whiplash bool) *ratetable.Table2D {
	if whiplash {
		return t.whiplash
	}
	return t.injury
}

// DisabilityConsolation returns the grade-keyed consolation table.
func (t *Tables) DisabilityConsolation() *ratetable.Table1D { return t.disability }

// LossRate returns the grade-keyed labor-capacity loss-rate table.
func (t *Tables) LossRate() *ratetable.Table1D { return t.lossRate }
