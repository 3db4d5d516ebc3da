package validate

import "example.com/tapgate/internal/tap"

// clonePtrString returns a fresh pointer carrying the same value as p, or
// nil if p is nil. Every mirror below clones rather than aliases its
// source's pointer fields so the rejecting RAP owns its data outright.
func clonePtrString(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func clonePtrInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func clonePtrInt64(p *int64) *int64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func clonePtrTimeStamp(p *tap.TimeStamp) *tap.TimeStamp {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}

func cloneCurrencyConversionInfo(s []tap.CurrencyConversionInfo) []tap.CurrencyConversionInfo {
	if s == nil {
		return nil
	}
	out := make([]tap.CurrencyConversionInfo, len(s))
	for i, v := range s {
		out[i] = tap.CurrencyConversionInfo{
			ExchangeRateCode:    clonePtrInt(v.ExchangeRateCode),
			NumberOfDecimalPlaces: clonePtrInt(v.NumberOfDecimalPlaces),
			ExchangeRate:        clonePtrInt64(v.ExchangeRate),
		}
	}
	return out
}

func cloneTaxation(t *tap.TaxationInfo) *tap.TaxationInfo {
	if t == nil {
		return nil
	}
	out := &tap.TaxationInfo{Entries: make([]tap.TaxDetail, len(t.Entries))}
	for i, e := range t.Entries {
		out.Entries[i] = tap.TaxDetail{TaxCode: clonePtrInt(e.TaxCode)}
	}
	return out
}

func cloneDiscounting(d *tap.DiscountingInfo) *tap.DiscountingInfo {
	if d == nil {
		return nil
	}
	out := &tap.DiscountingInfo{Entries: make([]tap.DiscountDetail, len(d.Entries))}
	for i, e := range d.Entries {
		out.Entries[i] = tap.DiscountDetail{DiscountCode: clonePtrInt(e.DiscountCode)}
	}
	return out
}

func cloneRecEntityInfo(s []tap.RecEntityInfo) []tap.RecEntityInfo {
	if s == nil {
		return nil
	}
	out := make([]tap.RecEntityInfo, len(s))
	for i, v := range s {
		out[i] = tap.RecEntityInfo{
			RecEntityCode: clonePtrInt(v.RecEntityCode),
			RecEntityType: clonePtrInt(v.RecEntityType),
		}
	}
	return out
}

func cloneUtcTimeOffsetInfo(s []tap.UtcTimeOffsetInfo) []tap.UtcTimeOffsetInfo {
	if s == nil {
		return nil
	}
	out := make([]tap.UtcTimeOffsetInfo, len(s))
	for i, v := range s {
		out[i] = tap.UtcTimeOffsetInfo{
			UtcTimeOffsetCode: clonePtrInt(v.UtcTimeOffsetCode),
			UtcTimeOffset:     clonePtrString(v.UtcTimeOffset),
		}
	}
	return out
}

func cloneAdvisedChargeValues(s []tap.AdvisedChargeValue) []tap.AdvisedChargeValue {
	if s == nil {
		return nil
	}
	out := make([]tap.AdvisedChargeValue, len(s))
	copy(out, s)
	return out
}
