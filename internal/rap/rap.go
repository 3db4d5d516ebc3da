// Package rap defines the in-memory representation of a decoded RAP
// (Returned Account Procedure, GSMA TD.52) return batch.
//
// Every value here is owned outright: mirrored TAP section fields are
// deep-cloned at the point of projection (see internal/validate/mirror.go),
// never aliased, so a ReturnBatch can be freely encoded and released without
// any borrow/sever bookkeeping around shared pointers.
package rap

import "example.com/tapgate/internal/tap"

// ReturnBatch is the decoded RAP file: a header, one or more return details,
// and summary totals.
type ReturnBatch struct {
	RapBatchControlInfoRap RapBatchControlInfo
	ReturnDetails          []ReturnDetail
	RapAuditControlInfo    RapAuditControlInfo
}

// RapBatchControlInfo mirrors (with sender/recipient swapped) the TAP
// BatchControlInfo header, stamped with catalogue-allocated identifiers.
type RapBatchControlInfo struct {
	Sender                        string
	Recipient                     string
	RapFileSequenceNumber         string
	RapFileCreationTimeStamp      tap.TimeStamp
	RapFileAvailableTimeStamp     tap.TimeStamp
	TapDecimalPlaces              int
	RapSpecificationVersionNumber int
	RapReleaseVersionNumber       int
	SpecificationVersionNumber    *int // TAP's own value, mirrored as-is
	ReleaseVersionNumber          *int
	FileTypeIndicator             *string
}

// RapAuditControlInfo carries the RAP-level totals. This core only ever
// produces Fatal returns, so TotalSevereReturnValue is always zero and
// ReturnDetailsCount always reflects the single fatal detail.
type RapAuditControlInfo struct {
	TotalSevereReturnValue int64
	ReturnDetailsCount     int
}

// ReturnDetailKind discriminates the ReturnDetail tagged union. Only
// FatalReturn is ever constructed by this core; SevereReturn is declared
// for completeness but never populated.
type ReturnDetailKind int

const (
	ReturnDetailUnknown ReturnDetailKind = iota
	ReturnDetailFatal
	ReturnDetailSevere
)

// ReturnDetail carries exactly one of the five scoped error variants inside
// its FatalReturn (or, unimplemented, SevereReturn).
type ReturnDetail struct {
	Kind        ReturnDetailKind
	FatalReturn *FatalReturn
}

// FatalReturn identifies the offending file and carries exactly one of the
// five scope-specific error structures.
type FatalReturn struct {
	FileSequenceNumber   string
	TransferBatchError   *TransferBatchError
	BatchControlError    *BatchControlError
	AccountingInfoError  *AccountingInfoError
	NetworkInfoError     *NetworkInfoError
	AuditControlInfoError *AuditControlInfoError
}

type TransferBatchError struct {
	ErrorDetail []ErrorDetail
}

type BatchControlError struct {
	BatchControlInfo BatchControlInfoMirror
	ErrorDetail      []ErrorDetail
}

// BatchControlInfoMirror is a deep-cloned, owned projection of the
// BatchControl-scoped fields a rejecting RAP must carry alongside its
// error detail.
type BatchControlInfoMirror struct {
	Sender                     *string
	Recipient                  *string
	FileAvailableTimeStamp     *tap.TimeStamp
	FileCreationTimeStamp      *tap.TimeStamp
	TransferCutOffTimeStamp    *tap.TimeStamp
	FileSequenceNumber         *string
	FileTypeIndicator          *string
	OperatorSpecInformation    []string
	RapFileSequenceNumber      *string
	ReleaseVersionNumber       *int
	SpecificationVersionNumber *int
}

type AccountingInfoError struct {
	AccountingInfo AccountingInfoMirror
	ErrorDetail    []ErrorDetail
}

type AccountingInfoMirror struct {
	CurrencyConversionInfo []tap.CurrencyConversionInfo
	Discounting            *tap.DiscountingInfo
	LocalCurrency          *string
	TapCurrency            *string
	TapDecimalPlaces       *int
	Taxation               *tap.TaxationInfo
}

type NetworkInfoError struct {
	NetworkInfo NetworkInfoMirror
	ErrorDetail []ErrorDetail
}

type NetworkInfoMirror struct {
	RecEntityInfo     []tap.RecEntityInfo
	UtcTimeOffsetInfo []tap.UtcTimeOffsetInfo
}

type AuditControlInfoError struct {
	AuditControlInfo AuditControlInfoMirror
	ErrorDetail      []ErrorDetail
}

type AuditControlInfoMirror struct {
	CallEventDetailsCount       *int
	EarliestCallTimeStamp       *tap.TimeStamp
	LatestCallTimeStamp         *tap.TimeStamp
	OperatorSpecInformation     []string
	TotalAdvisedChargeValueList []tap.AdvisedChargeValue
	TotalCharge                 *int64
	TotalChargeRefund           *int64
	TotalDiscountRefund         *int64
	TotalDiscountValue          *int64
	TotalTaxRefund              *int64
	TotalTaxValue               *int64
}

// ErrorDetail is one conformance violation: an error code from the
// catalogue in internal/validate/codes.go (a private numbering, not the
// published GSMA TD.52 values) plus the structural path that locates it
// inside the rejected TAP tree.
type ErrorDetail struct {
	ErrorCode    int
	ErrorContext []ErrorContext
}

// ErrorContext is one (pathItemId, itemLevel) pair. ItemLevel is 1-based and
// contiguous across a single ErrorDetail's ErrorContext slice.
type ErrorContext struct {
	PathItemID uint64
	ItemLevel  int
}
