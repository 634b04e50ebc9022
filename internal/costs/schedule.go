package costs

import (
	"fmt"
	"math/bits"

	"github.com/BurntSushi/toml"

	"sigil/internal/errs"
)

// Row prices one operation family as base + per_unit * size.
type Row struct {
	Base    uint64 `toml:"base"`
	PerUnit uint64 `toml:"per_unit"`
}

// Schedule holds the effective price of every chargeable operation.
type Schedule struct {
	rows map[CostID]Row
}

// DefaultSchedule returns the built-in prices. The absolute numbers are
// small; only their determinism matters to evaluation.
func DefaultSchedule() *Schedule {
	rows := map[CostID]Row{
		CostLookupVariable:          {Base: 1, PerUnit: 0},
		CostLookupFunction:          {Base: 1, PerUnit: 0},
		CostUserFunctionApplication: {Base: 5, PerUnit: 1},
		CostBindName:                {Base: 2, PerUnit: 0},
		CostIf:                      {Base: 2, PerUnit: 0},
		CostLet:                     {Base: 2, PerUnit: 2},
		CostAsserts:                 {Base: 2, PerUnit: 0},
		CostAsContract:              {Base: 4, PerUnit: 0},
		CostBegin:                   {Base: 1, PerUnit: 0},
		CostAnd:                     {Base: 1, PerUnit: 1},
		CostOr:                      {Base: 1, PerUnit: 1},
		CostMatch:                   {Base: 3, PerUnit: 0},
		CostAtBlock:                 {Base: 4, PerUnit: 0},
		CostOptionCons:              {Base: 1, PerUnit: 0},
		CostOptionCheck:             {Base: 1, PerUnit: 0},
		CostUnwrap:                  {Base: 2, PerUnit: 0},
		CostDefaultTo:               {Base: 1, PerUnit: 0},
		CostTryRet:                  {Base: 2, PerUnit: 0},
		CostArithmetic:              {Base: 1, PerUnit: 1},
		CostMod:                     {Base: 2, PerUnit: 0},
		CostPow:                     {Base: 3, PerUnit: 0},
		CostXor:                     {Base: 2, PerUnit: 0},
		CostCmp:                     {Base: 1, PerUnit: 0},
		CostIntCast:                 {Base: 1, PerUnit: 0},
		CostNot:                     {Base: 1, PerUnit: 0},
		CostEq:                      {Base: 1, PerUnit: 1},
		CostHash160:                 {Base: 10, PerUnit: 1},
		CostSha256:                  {Base: 8, PerUnit: 1},
		CostSha512:                  {Base: 12, PerUnit: 1},
		CostSha512t256:              {Base: 12, PerUnit: 1},
		CostKeccak256:               {Base: 10, PerUnit: 1},
		CostListCons:                {Base: 2, PerUnit: 1},
		CostLen:                     {Base: 1, PerUnit: 0},
		CostAppend:                  {Base: 2, PerUnit: 1},
		CostConcat:                  {Base: 2, PerUnit: 1},
		CostMap:                     {Base: 3, PerUnit: 1},
		CostFilter:                  {Base: 3, PerUnit: 1},
		CostFold:                    {Base: 3, PerUnit: 1},
		CostTupleCons:               {Base: 2, PerUnit: 1},
		CostTupleGet:                {Base: 2, PerUnit: 0},
		CostFetchVar:                {Base: 3, PerUnit: 1},
		CostSetVar:                  {Base: 4, PerUnit: 1},
		CostFetchEntry:              {Base: 4, PerUnit: 1},
		CostSetEntry:                {Base: 5, PerUnit: 1},
		CostPrint:                   {Base: 2, PerUnit: 1},
	}
	return &Schedule{rows: rows}
}

// Row returns the price of id; unknown ids are free.
func (s *Schedule) Row(id CostID) Row {
	return s.rows[id]
}

// Cost computes base + per_unit * size with overflow detection.
func (s *Schedule) Cost(id CostID, size uint64) (uint64, error) {
	row := s.rows[id]
	hi, scaled := bits.Mul64(row.PerUnit, size)
	total, carry := bits.Add64(row.Base, scaled, 0)
	if hi != 0 || carry != 0 {
		return 0, errs.NewRuntimeError(errs.RuntimeCostOverflow,
			"cost of %s at size %d overflows", id, size)
	}
	return total, nil
}

type scheduleFile struct {
	Costs map[string]Row `toml:"costs"`
}

// LoadSchedule reads TOML rows from path and overlays them on the default
// schedule. Unknown table keys and unknown cost names are rejected.
func LoadSchedule(path string) (*Schedule, error) {
	var file scheduleFile
	meta, err := toml.DecodeFile(path, &file)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	s := DefaultSchedule()
	for name, row := range file.Costs {
		id, ok := ByName(name)
		if !ok {
			return nil, fmt.Errorf("%s: unknown cost %q", path, name)
		}
		s.rows[id] = row
	}
	return s, nil
}
