package decode

import (
	"strconv"

	"github.com/xenontools/ppccalc/domain/numeric"
)

// UnitsResult describes an allocation-unit conversion. An allocation unit
// must fully cover any partial sector, so both divisions round up.
type UnitsResult struct {
	Bytes           string `json:"bytes"`
	BytesPerSector  int    `json:"bytes_per_sector"`
	SectorsPerUnit  int    `json:"sectors_per_unit"`
	BytesPerUnit    int    `json:"bytes_per_unit"`
	Sectors         string `json:"sectors"`
	Units           string `json:"units"`
	AllocatedBytes  string `json:"allocated_bytes"`
	SlackBytes      string `json:"slack_bytes"`
}

// AllocationUnits converts a byte count to whole allocation units.
func AllocationUnits(bytes string, sectorsPerUnit, bytesPerSector int) (UnitsResult, error) {
	if sectorsPerUnit <= 0 {
		return UnitsResult{}, numeric.DomainErrorf("sectors per unit %d must be positive", sectorsPerUnit)
	}
	if bytesPerSector <= 0 {
		return UnitsResult{}, numeric.DomainErrorf("bytes per sector %d must be positive", bytesPerSector)
	}

	v, err := numeric.ParseLiteral(bytes, numeric.Width64)
	if err != nil {
		return UnitsResult{}, err
	}

	n := v.Unsigned()
	bps := uint64(bytesPerSector)
	bpu := uint64(sectorsPerUnit) * bps

	sectors := ceilDiv(n, bps)
	units := ceilDiv(n, bpu)
	allocated := units * bpu

	return UnitsResult{
		Bytes:          strconv.FormatUint(n, 10),
		BytesPerSector: bytesPerSector,
		SectorsPerUnit: sectorsPerUnit,
		BytesPerUnit:   int(bpu),
		Sectors:        strconv.FormatUint(sectors, 10),
		Units:          strconv.FormatUint(units, 10),
		AllocatedBytes: strconv.FormatUint(allocated, 10),
		SlackBytes:     strconv.FormatUint(allocated-n, 10),
	}, nil
}

// SectorsResult describes a sector-count-to-bytes conversion.
type SectorsResult struct {
	Sectors        string `json:"sectors"`
	BytesPerSector int    `json:"bytes_per_sector"`
	Bytes          string `json:"bytes"`
	BytesHex       string `json:"bytes_hex"`
}

// SectorsToBytes converts a sector count to a byte count.
func SectorsToBytes(sectors string, bytesPerSector int) (SectorsResult, error) {
	if bytesPerSector <= 0 {
		return SectorsResult{}, numeric.DomainErrorf("bytes per sector %d must be positive", bytesPerSector)
	}

	v, err := numeric.ParseLiteral(sectors, numeric.Width64)
	if err != nil {
		return SectorsResult{}, err
	}

	total := v.Unsigned() * uint64(bytesPerSector)
	out := numeric.NewValue(total, numeric.Width64)
	return SectorsResult{
		Sectors:        strconv.FormatUint(v.Unsigned(), 10),
		BytesPerSector: bytesPerSector,
		Bytes:          strconv.FormatUint(total, 10),
		BytesHex:       out.Hex(),
	}, nil
}

func ceilDiv(n, d uint64) uint64 {
	return (n + d - 1) / d
}
