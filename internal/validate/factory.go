package validate

import (
	"example.com/tapgate/internal/rap"
	"example.com/tapgate/internal/tap"
)

// newFatalReturn assembles the FatalReturn envelope common to every scope:
// the offending file's sequence number plus exactly one populated scope
// error. Callers must have already established tb.BatchControlInfo and its
// FileSequenceNumber are non-nil.
func newFatalReturn(tb *tap.TransferBatch) rap.FatalReturn {
	return rap.FatalReturn{FileSequenceNumber: *tb.BatchControlInfo.FileSequenceNumber}
}

func wrapFatal(fr rap.FatalReturn) rap.ReturnDetail {
	return rap.ReturnDetail{Kind: rap.ReturnDetailFatal, FatalReturn: &fr}
}

// newTransferBatchReturnDetail builds a TransferBatch-scoped rejection: used
// when an entire mandatory section of the batch is absent.
func newTransferBatchReturnDetail(tb *tap.TransferBatch, code int, b *pathBuilder) (rap.ReturnDetail, error) {
	ctx, err := b.build("TransferBatch")
	if err != nil {
		return rap.ReturnDetail{}, err
	}
	fr := newFatalReturn(tb)
	fr.TransferBatchError = &rap.TransferBatchError{
		ErrorDetail: []rap.ErrorDetail{{ErrorCode: code, ErrorContext: ctx}},
	}
	return wrapFatal(fr), nil
}

// newBatchControlReturnDetail builds a BatchControl-scoped rejection,
// mirroring the section's own fields alongside the error detail.
func newBatchControlReturnDetail(tb *tap.TransferBatch, code int, b *pathBuilder) (rap.ReturnDetail, error) {
	ctx, err := b.build("TransferBatch", "BatchControlInfo")
	if err != nil {
		return rap.ReturnDetail{}, err
	}
	bc := tb.BatchControlInfo
	mirror := rap.BatchControlInfoMirror{
		Sender:                     clonePtrString(bc.Sender),
		Recipient:                  clonePtrString(bc.Recipient),
		FileAvailableTimeStamp:     clonePtrTimeStamp(bc.FileAvailableTimeStamp),
		FileCreationTimeStamp:      clonePtrTimeStamp(bc.FileCreationTimeStamp),
		TransferCutOffTimeStamp:    clonePtrTimeStamp(bc.TransferCutOffTimeStamp),
		FileSequenceNumber:         clonePtrString(bc.FileSequenceNumber),
		FileTypeIndicator:          clonePtrString(bc.FileTypeIndicator),
		OperatorSpecInformation:    cloneStrings(bc.OperatorSpecInformation),
		RapFileSequenceNumber:      clonePtrString(bc.RapFileSequenceNumber),
		ReleaseVersionNumber:       clonePtrInt(bc.ReleaseVersionNumber),
		SpecificationVersionNumber: clonePtrInt(bc.SpecificationVersionNumber),
	}
	fr := newFatalReturn(tb)
	fr.BatchControlError = &rap.BatchControlError{
		BatchControlInfo: mirror,
		ErrorDetail:       []rap.ErrorDetail{{ErrorCode: code, ErrorContext: ctx}},
	}
	return wrapFatal(fr), nil
}

// newAccountingInfoReturnDetail builds an AccountingInfo-scoped rejection.
// level3, when non-empty, names the nested structural element the
// violation occurred within (e.g. "CurrencyConversionList"), extending the
// path past AccountingInfo itself.
func newAccountingInfoReturnDetail(tb *tap.TransferBatch, code int, level3 string, b *pathBuilder) (rap.ReturnDetail, error) {
	names := []string{"TransferBatch", "AccountingInfo"}
	if level3 != "" {
		names = append(names, level3)
	}
	ctx, err := b.build(names...)
	if err != nil {
		return rap.ReturnDetail{}, err
	}
	ai := tb.AccountingInfo
	mirror := rap.AccountingInfoMirror{
		CurrencyConversionInfo: cloneCurrencyConversionInfo(ai.CurrencyConversionInfo),
		Discounting:            cloneDiscounting(ai.Discounting),
		LocalCurrency:          clonePtrString(ai.LocalCurrency),
		TapCurrency:            clonePtrString(ai.TapCurrency),
		TapDecimalPlaces:       clonePtrInt(ai.TapDecimalPlaces),
		Taxation:               cloneTaxation(ai.Taxation),
	}
	fr := newFatalReturn(tb)
	fr.AccountingInfoError = &rap.AccountingInfoError{
		AccountingInfo: mirror,
		ErrorDetail:    []rap.ErrorDetail{{ErrorCode: code, ErrorContext: ctx}},
	}
	return wrapFatal(fr), nil
}

// newNetworkInfoReturnDetail builds a NetworkInfo-scoped rejection.
func newNetworkInfoReturnDetail(tb *tap.TransferBatch, code int, b *pathBuilder) (rap.ReturnDetail, error) {
	ctx, err := b.build("TransferBatch", "NetworkInfo")
	if err != nil {
		return rap.ReturnDetail{}, err
	}
	ni := tb.NetworkInfo
	mirror := rap.NetworkInfoMirror{
		RecEntityInfo:     cloneRecEntityInfo(ni.RecEntityInfo),
		UtcTimeOffsetInfo: cloneUtcTimeOffsetInfo(ni.UtcTimeOffsetInfo),
	}
	fr := newFatalReturn(tb)
	fr.NetworkInfoError = &rap.NetworkInfoError{
		NetworkInfo: mirror,
		ErrorDetail: []rap.ErrorDetail{{ErrorCode: code, ErrorContext: ctx}},
	}
	return wrapFatal(fr), nil
}

// newAuditControlInfoReturnDetail builds an AuditControlInfo-scoped
// rejection. A call-count mismatch extends the path with the
// CallEventDetailsCount element as its third level.
func newAuditControlInfoReturnDetail(tb *tap.TransferBatch, code int, b *pathBuilder) (rap.ReturnDetail, error) {
	names := []string{"TransferBatch", "AuditControlInfo"}
	if code == AuditCtrlCallEventDetailsCountMismatch {
		names = append(names, "CallEventDetailsCount")
	}
	ctx, err := b.build(names...)
	if err != nil {
		return rap.ReturnDetail{}, err
	}
	ac := tb.AuditControlInfo
	mirror := rap.AuditControlInfoMirror{
		CallEventDetailsCount:       clonePtrInt(ac.CallEventDetailsCount),
		EarliestCallTimeStamp:       clonePtrTimeStamp(ac.EarliestCallTimeStamp),
		LatestCallTimeStamp:         clonePtrTimeStamp(ac.LatestCallTimeStamp),
		OperatorSpecInformation:     cloneStrings(ac.OperatorSpecInformation),
		TotalAdvisedChargeValueList: cloneAdvisedChargeValues(ac.TotalAdvisedChargeValueList),
		TotalCharge:                 clonePtrInt64(ac.TotalCharge),
		TotalChargeRefund:           clonePtrInt64(ac.TotalChargeRefund),
		TotalDiscountRefund:         clonePtrInt64(ac.TotalDiscountRefund),
		TotalDiscountValue:          clonePtrInt64(ac.TotalDiscountValue),
		TotalTaxRefund:              clonePtrInt64(ac.TotalTaxRefund),
		TotalTaxValue:               clonePtrInt64(ac.TotalTaxValue),
	}
	fr := newFatalReturn(tb)
	fr.AuditControlInfoError = &rap.AuditControlInfoError{
		AuditControlInfo: mirror,
		ErrorDetail:       []rap.ErrorDetail{{ErrorCode: code, ErrorContext: ctx}},
	}
	return wrapFatal(fr), nil
}
