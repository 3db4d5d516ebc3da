package validate

import "example.com/tapgate/internal/tap"

// chargeInfosOf returns every ChargeInformation entry a single call event
// detail carries, whether it arrived as a basic-service or GPRS usage.
func chargeInfosOf(ce tap.CallEventDetail) []tap.ChargeInformation {
	var out []tap.ChargeInformation
	for _, bsu := range ce.BasicServiceUsedList {
		out = append(out, bsu.ChargeInformationList...)
	}
	if ce.GprsServiceUsed != nil {
		out = append(out, ce.GprsServiceUsed.ChargeInformationList...)
	}
	return out
}

// BatchContainsTaxes reports whether any call event detail in tb carries a
// non-nil TaxInformation entry.
func BatchContainsTaxes(tb *tap.TransferBatch) bool {
	if tb == nil {
		return false
	}
	for _, ce := range tb.CallEventDetails {
		for _, ci := range chargeInfosOf(ce) {
			if ci.TaxInformation != nil {
				return true
			}
		}
	}
	return false
}

// BatchContainsDiscounts reports whether any call event detail in tb carries
// a non-nil DiscountInformation entry.
func BatchContainsDiscounts(tb *tap.TransferBatch) bool {
	if tb == nil {
		return false
	}
	for _, ce := range tb.CallEventDetails {
		for _, ci := range chargeInfosOf(ce) {
			if ci.DiscountInformation != nil {
				return true
			}
		}
	}
	return false
}

// BatchContainsPositiveCharges reports whether any charge detail in tb has a
// strictly positive charge value.
func BatchContainsPositiveCharges(tb *tap.TransferBatch) bool {
	if tb == nil {
		return false
	}
	for _, ce := range tb.CallEventDetails {
		for _, ci := range chargeInfosOf(ce) {
			for _, cd := range ci.ChargeDetailList {
				if cd.Charge > 0 {
					return true
				}
			}
		}
	}
	return false
}
