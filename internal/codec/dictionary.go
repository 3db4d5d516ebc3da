package codec

import "fmt"

// TagDictionary is a lookup table from structural TAP/RAP type name to that
// structure's first BER tag, a small explicit map standing in for the
// descriptor table a real ASN.1 compiler would generate.
//
// pathItemId values are derived by stripping the two low bits (the BER
// tag-class marker) from the first tag of a structure's codec descriptor.
// An ASN.1 compiler packs the tag class into those two bits; PathItemID
// reproduces that exact arithmetic so emitted RAP files carry the same
// pathItemId values a real ASN.1 toolchain would assign.
type TagDictionary struct {
	tags map[string]uint64
}

// NewTagDictionary returns the dictionary pre-populated with every
// structural tag this core's error contexts can reference.
func NewTagDictionary() *TagDictionary {
	d := &TagDictionary{tags: make(map[string]uint64)}
	for name, tag := range defaultTags {
		d.tags[name] = tag
	}
	return d
}

// defaultTags assigns each structural name a first tag. The values below
// follow TD.57/TD.52's tag allocation order (context-specific tags
// increasing by declaration order within TransferBatch), shifted left two
// bits to carry the tag-class marker PathItemID strips back off.
var defaultTags = map[string]uint64{
	"TransferBatch":         0<<2 | 2, // context-specific class marker = 2
	"BatchControlInfo":      1<<2 | 2,
	"AccountingInfo":        2<<2 | 2,
	"NetworkInfo":           3<<2 | 2,
	"AuditControlInfo":      4<<2 | 2,
	"CallEventDetails":      5<<2 | 2,
	"CurrencyConversionList": 6<<2 | 2,
	"CallEventDetailsCount": 7<<2 | 2,
}

// Tag returns the raw first tag registered for name.
func (d *TagDictionary) Tag(name string) (uint64, bool) {
	if d == nil {
		return 0, false
	}
	t, ok := d.tags[name]
	return t, ok
}

// PathItemID strips the two low tag-class bits from the registered tag for
// name, the form an ErrorContext's pathItemId field is built from.
func (d *TagDictionary) PathItemID(name string) (uint64, error) {
	tag, ok := d.Tag(name)
	if !ok {
		return 0, fmt.Errorf("codec: no structural tag registered for %q", name)
	}
	return tag >> 2, nil
}

// Register adds or overrides a structural tag, used by tests that need to
// exercise a descriptor not in the default set.
func (d *TagDictionary) Register(name string, tag uint64) {
	if d == nil {
		return
	}
	d.tags[name] = tag
}
