// Package tap defines the in-memory representation of a decoded TAP
// (Transferred Account Procedure, GSMA TD.57) data interchange.
//
// Decoding the on-wire BER/DER encoding into these types is the
// responsibility of an external codec (see package codec); this package
// only describes the shape validation operates on.
package tap

import "time"

// Variant distinguishes the two top-level shapes a DataInterchange can take.
type Variant int

const (
	VariantUnknown Variant = iota
	VariantTransferBatch
	VariantNotification
)

func (v Variant) String() string {
	switch v {
	case VariantTransferBatch:
		return "TransferBatch"
	case VariantNotification:
		return "Notification"
	default:
		return "Unknown"
	}
}

// DataInterchange is the tagged union at the root of a decoded TAP file.
type DataInterchange struct {
	Variant       Variant
	TransferBatch *TransferBatch
	Notification  *Notification
}

// Notification is the minimal TAP variant conveying only header
// identification. TD.57 allows it to stand in for a full TransferBatch when
// an operator has nothing to report.
type Notification struct {
	Sender             *string
	Recipient          *string
	FileSequenceNumber *string
}

// TransferBatch is the outer record of a non-notification TAP file. Any of
// its five sub-structures may be absent on input; validation asserts their
// presence.
type TransferBatch struct {
	BatchControlInfo  *BatchControlInfo
	AccountingInfo    *AccountingInfo
	NetworkInfo       *NetworkInfo
	AuditControlInfo  *AuditControlInfo
	CallEventDetails  []CallEventDetail
}

// TimeStamp pairs a local timestamp string with its UTC offset, the shape
// every TAP/RAP timestamp field uses.
type TimeStamp struct {
	LocalTimeStamp string
	UtcTimeOffset  string
}

// BatchControlInfo carries sender/recipient identification and the file
// bookkeeping fields TD.57 mandates at the top of every TransferBatch.
type BatchControlInfo struct {
	Sender                     *string
	Recipient                  *string
	FileSequenceNumber         *string
	FileAvailableTimeStamp     *TimeStamp
	FileCreationTimeStamp      *TimeStamp
	TransferCutOffTimeStamp    *TimeStamp
	FileTypeIndicator          *string // empty => production data, non-empty => test data
	SpecificationVersionNumber *int
	ReleaseVersionNumber       *int
	RapFileSequenceNumber      *string
	OperatorSpecInformation    []string
}

// CurrencyConversionInfo is one entry of the ordered currency-conversion
// table. All three fields are mandatory whenever an entry is present at all.
type CurrencyConversionInfo struct {
	ExchangeRateCode      *int
	NumberOfDecimalPlaces *int
	ExchangeRate          *int64
}

// AccountingInfo carries the currencies, taxation/discounting tables and
// currency-conversion table for a TransferBatch.
type AccountingInfo struct {
	LocalCurrency          *string
	TapCurrency             *string
	TapDecimalPlaces        *int
	Taxation                *TaxationInfo
	Discounting             *DiscountingInfo
	CurrencyConversionInfo  []CurrencyConversionInfo
}

// TaxationInfo and DiscountingInfo are opaque groups as far as this core is
// concerned: their presence or absence is what matters, not their contents.
type TaxationInfo struct {
	Entries []TaxDetail
}

type DiscountingInfo struct {
	Entries []DiscountDetail
}

type TaxDetail struct {
	TaxCode *int
}

type DiscountDetail struct {
	DiscountCode *int
}

// NetworkInfo carries UTC offset and recording-entity metadata.
type NetworkInfo struct {
	UtcTimeOffsetInfo []UtcTimeOffsetInfo
	RecEntityInfo     []RecEntityInfo
}

type UtcTimeOffsetInfo struct {
	UtcTimeOffsetCode *int
	UtcTimeOffset     *string
}

type RecEntityInfo struct {
	RecEntityCode *int
	RecEntityType *int
}

// AuditControlInfo carries the batch-level totals the home operator uses to
// cross-check the call event detail list.
type AuditControlInfo struct {
	TotalCharge                  *int64
	TotalTaxValue                *int64
	TotalDiscountValue           *int64
	TotalChargeRefund            *int64
	TotalTaxRefund               *int64
	TotalDiscountRefund          *int64
	CallEventDetailsCount        *int
	EarliestCallTimeStamp        *TimeStamp
	LatestCallTimeStamp          *TimeStamp
	OperatorSpecInformation      []string
	TotalAdvisedChargeValueList  []AdvisedChargeValue
}

type AdvisedChargeValue struct {
	ChargeType string
	Value      int64
}

// CallEventKind discriminates the CallEventDetail tagged union. TD.57 defines
// more variants; this core only needs to distinguish the ones charge
// information can appear under.
type CallEventKind int

const (
	CallEventUnknown CallEventKind = iota
	CallEventMobileOriginated
	CallEventMobileTerminated
	CallEventGPRS
	CallEventOther
)

// CallEventDetail is one entry of TransferBatch.CallEventDetails. Charge
// information is reached through BasicServiceUsedList for MO/MT calls and
// directly for GPRS calls, mirroring the nesting TD.57 actually uses.
type CallEventDetail struct {
	Kind                  CallEventKind
	BasicServiceUsedList  []BasicServiceUsed // MO/MT calls
	GprsServiceUsed       *GprsServiceUsed   // GPRS calls
	EventTimeStamp        time.Time
}

type BasicServiceUsed struct {
	ChargeInformationList []ChargeInformation
}

type GprsServiceUsed struct {
	ChargeInformationList []ChargeInformation
}

// ChargeInformation bundles tax, discount and itemised charge amounts for a
// single rated event.
type ChargeInformation struct {
	TaxInformation      *TaxInformation
	DiscountInformation *DiscountInformation
	ChargeDetailList    []ChargeDetail
}

type TaxInformation struct {
	TaxCode *int
}

type DiscountInformation struct {
	DiscountCode *int
}

// ChargeDetail carries one signed, scaled amount. The real value is
// Charge * 10^-AccountingInfo.TapDecimalPlaces.
type ChargeDetail struct {
	ChargeType string
	Charge     int64
}
