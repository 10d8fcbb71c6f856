// Package decode implements the platform-specific decoders: PowerPC
// guest-address classification, page and allocation alignment, disk unit
// conversion, performance-counter math, frame timing, and NTSTATUS
// decomposition. Lookup tables are immutable after package init.
package decode

import (
	_ "embed"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/xenontools/ppccalc/domain/numeric"
)

// Guest virtual image bounds. Addresses outside are never valid.
const (
	GuestBase  uint32 = 0x82000000
	GuestLimit uint32 = 0x84000000
)

//go:embed regions.yaml
var regionsYAML []byte

// Region is one named slice of the guest memory map, [Start, End).
type Region struct {
	Name        string `yaml:"name"`
	Start       uint32 `yaml:"start"`
	End         uint32 `yaml:"end"`
	Description string `yaml:"description"`
}

// RegionTable classifies guest addresses against an ordered region list.
type RegionTable struct {
	regions []Region
}

// DefaultRegions is the built-in layout, loaded from the embedded table.
// Read-only after init.
var DefaultRegions = mustLoadRegions(regionsYAML)

func mustLoadRegions(raw []byte) *RegionTable {
	t, err := LoadRegions(raw)
	if err != nil {
		panic(fmt.Sprintf("decode: embedded region table: %v", err))
	}
	return t
}

// LoadRegions parses a YAML region table.
func LoadRegions(raw []byte) (*RegionTable, error) {
	var doc struct {
		Regions []Region `yaml:"regions"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse region table: %w", err)
	}
	if len(doc.Regions) == 0 {
		return nil, fmt.Errorf("region table is empty")
	}
	for _, r := range doc.Regions {
		if r.Start >= r.End {
			return nil, fmt.Errorf("region %q: start 0x%08X not below end 0x%08X", r.Name, r.Start, r.End)
		}
	}
	return &RegionTable{regions: doc.Regions}, nil
}

// NewRegionTable builds a table from an explicit region list.
func NewRegionTable(regions []Region) (*RegionTable, error) {
	if len(regions) == 0 {
		return nil, fmt.Errorf("region table is empty")
	}
	return &RegionTable{regions: append([]Region(nil), regions...)}, nil
}

// Regions returns a copy of the table's regions.
func (t *RegionTable) Regions() []Region {
	return append([]Region(nil), t.regions...)
}

// AddressInfo classifies one 32-bit guest address.
type AddressInfo struct {
	Address     string `json:"address"`
	Decimal     string `json:"decimal"`
	Valid       bool   `json:"valid"`
	Region      string `json:"region"`
	Description string `json:"description"`
	Offset      string `json:"offset,omitempty"`
}

// MemoryMap classifies address against the table. Addresses inside the
// guest image but between configured regions are valid with an "unmapped"
// region name; addresses outside the image are invalid.
func (t *RegionTable) MemoryMap(address string) (AddressInfo, error) {
	v, err := numeric.ParseLiteral(address, numeric.Width32)
	if err != nil {
		return AddressInfo{}, err
	}
	addr := uint32(v.Unsigned())

	info := AddressInfo{
		Address: v.Hex(),
		Decimal: strconv.FormatUint(v.Unsigned(), 10),
	}

	if addr < GuestBase {
		info.Region = "low_memory"
		info.Description = "Below the guest virtual image"
		return info, nil
	}
	if addr >= GuestLimit {
		info.Region = "out_of_range"
		info.Description = "Beyond the guest virtual image"
		return info, nil
	}

	info.Valid = true
	for _, r := range t.regions {
		if addr >= r.Start && addr < r.End {
			info.Region = r.Name
			info.Description = r.Description
			info.Offset = fmt.Sprintf("0x%X", addr-r.Start)
			return info, nil
		}
	}

	info.Region = "unmapped"
	info.Description = "Inside the guest image but not a configured region"
	return info, nil
}

// IsValidAddress reports whether address falls inside the guest image.
func (t *RegionTable) IsValidAddress(address string) (AddressInfo, error) {
	return t.MemoryMap(address)
}

// MemoryMap classifies address against the default region table.
func MemoryMap(address string) (AddressInfo, error) {
	return DefaultRegions.MemoryMap(address)
}

// IsValidAddress reports whether address falls inside the guest image,
// using the default region table.
func IsValidAddress(address string) (AddressInfo, error) {
	return DefaultRegions.IsValidAddress(address)
}
