package validate

import (
	"errors"

	"example.com/tapgate/internal/codec"
	"example.com/tapgate/internal/common"
	"example.com/tapgate/internal/rap"
	"example.com/tapgate/internal/tap"
)

// Validator walks a decoded TAP DataInterchange and, on a Fatal violation,
// drives an Emitter to build and deliver the rejecting RAP.
type Validator struct {
	Dict    *codec.TagDictionary
	Emitter Emitter
	Logger  common.Logger
}

// NewValidator returns a Validator ready to use. dict and emitter must be
// non-nil; logger may be nil, in which case logging is a no-op.
func NewValidator(dict *codec.TagDictionary, emitter Emitter, logger common.Logger) *Validator {
	if logger == nil {
		logger = common.NopLogger{}
	}
	return &Validator{Dict: dict, Emitter: emitter, Logger: logger}
}

// Validate is the single entry point: it dispatches on DataInterchange's
// variant and returns the outcome lattice value for the whole input.
func (v *Validator) Validate(di tap.DataInterchange) Result {
	switch di.Variant {
	case tap.VariantTransferBatch:
		return v.validateTransferBatch(di.TransferBatch)
	case tap.VariantNotification:
		return v.validateNotification(di.Notification)
	default:
		v.Logger.Errorf("validate: data interchange carries neither a transfer batch nor a notification")
		return ValidationImpossible
	}
}

// addressable reports whether bc carries every field the minimum-addressable
// triple requires: sender, recipient, and fileSequenceNumber. A RAP cannot be
// built, let alone delivered, without all three, so their absence always
// yields ValidationImpossible rather than a Fatal rejection.
func addressable(bc *tap.BatchControlInfo) bool {
	return bc != nil && bc.Sender != nil && bc.Recipient != nil && bc.FileSequenceNumber != nil
}

func (v *Validator) validateTransferBatch(tb *tap.TransferBatch) Result {
	if tb == nil {
		v.Logger.Errorf("validate: transfer batch variant carries no transfer batch")
		return ValidationImpossible
	}
	if !addressable(tb.BatchControlInfo) {
		v.Logger.Errorf("validate: transfer batch missing sender, recipient, or file sequence number; no RAP can be addressed")
		return ValidationImpossible
	}

	b := newPathBuilder(v.Dict)

	if tb.AccountingInfo == nil {
		return v.emitTransferBatch(tb, TFBatchAccountingInfoMissing, b)
	}
	if tb.NetworkInfo == nil {
		return v.emitTransferBatch(tb, TFBatchNetworkInfoMissing, b)
	}
	if tb.AuditControlInfo == nil {
		return v.emitTransferBatch(tb, TFBatchAuditControlInfoMissing, b)
	}

	if res := v.validateBatchControlInfo(tb, b); res != TAPValid {
		return res
	}
	if res := v.validateAccountingInfo(tb, b); res != TAPValid {
		return res
	}
	if res := v.validateNetworkInfo(tb, b); res != TAPValid {
		return res
	}
	if res := v.validateAuditControlInfo(tb, b); res != TAPValid {
		return res
	}
	return TAPValid
}

func (v *Validator) validateNotification(n *tap.Notification) Result {
	if n == nil {
		v.Logger.Errorf("validate: notification variant carries no notification")
		return ValidationImpossible
	}
	if n.Sender == nil || n.Recipient == nil || n.FileSequenceNumber == nil {
		v.Logger.Errorf("validate: notification missing sender, recipient, or file sequence number; no RAP can be addressed")
		return ValidationImpossible
	}
	return TAPValid
}

func (v *Validator) validateBatchControlInfo(tb *tap.TransferBatch, b *pathBuilder) Result {
	bc := tb.BatchControlInfo
	if bc.FileAvailableTimeStamp == nil {
		return v.emitBatchControl(tb, BatchCtrlFileAvailTimeStampMissing, b)
	}
	if bc.SpecificationVersionNumber == nil {
		return v.emitBatchControl(tb, BatchCtrlSpecVersionMissing, b)
	}
	if bc.TransferCutOffTimeStamp == nil {
		return v.emitBatchControl(tb, BatchCtrlTransferCutOffMissing, b)
	}
	return TAPValid
}

func (v *Validator) validateAccountingInfo(tb *tap.TransferBatch, b *pathBuilder) Result {
	ai := tb.AccountingInfo
	if ai.LocalCurrency == nil {
		return v.emitAccountingInfo(tb, AccountingLocalCurrencyMissing, "", b)
	}
	if ai.TapDecimalPlaces == nil {
		return v.emitAccountingInfo(tb, AccountingTapDecimalPlacesMissing, "", b)
	}
	if BatchContainsTaxes(tb) && ai.Taxation == nil {
		return v.emitAccountingInfo(tb, AccountingTaxationMissing, "", b)
	}
	if BatchContainsDiscounts(tb) && ai.Discounting == nil {
		return v.emitAccountingInfo(tb, AccountingDiscountingMissing, "", b)
	}
	if ai.CurrencyConversionInfo == nil && BatchContainsPositiveCharges(tb) {
		return v.emitAccountingInfo(tb, AccountingCurrencyConversionMissing, "", b)
	}
	seenRateCodes := make(map[int]bool, len(ai.CurrencyConversionInfo))
	for _, cc := range ai.CurrencyConversionInfo {
		if cc.ExchangeRateCode == nil {
			return v.emitAccountingInfo(tb, CurrencyConversionExRateCodeMissing, "CurrencyConversionList", b)
		}
		if cc.NumberOfDecimalPlaces == nil {
			return v.emitAccountingInfo(tb, CurrencyConversionNumDecimalPlacesMissing, "CurrencyConversionList", b)
		}
		if cc.ExchangeRate == nil {
			return v.emitAccountingInfo(tb, CurrencyConversionExchangeRateMissing, "CurrencyConversionList", b)
		}
		if seenRateCodes[*cc.ExchangeRateCode] {
			return v.emitAccountingInfo(tb, CurrencyConversionExRateCodeDuplication, "CurrencyConversionList", b)
		}
		seenRateCodes[*cc.ExchangeRateCode] = true
	}
	return TAPValid
}

func (v *Validator) validateNetworkInfo(tb *tap.TransferBatch, b *pathBuilder) Result {
	ni := tb.NetworkInfo
	if ni.UtcTimeOffsetInfo == nil {
		return v.emitNetworkInfo(tb, NetworkUtcTimeOffsetMissing, b)
	}
	if ni.RecEntityInfo == nil {
		return v.emitNetworkInfo(tb, NetworkRecEntityMissing, b)
	}
	return TAPValid
}

func (v *Validator) validateAuditControlInfo(tb *tap.TransferBatch, b *pathBuilder) Result {
	ac := tb.AuditControlInfo
	if ac.TotalCharge == nil {
		return v.emitAuditControlInfo(tb, AuditCtrlTotalChargeMissing, b)
	}
	if ac.TotalTaxValue == nil {
		return v.emitAuditControlInfo(tb, AuditCtrlTotalTaxValueMissing, b)
	}
	if ac.TotalDiscountValue == nil {
		return v.emitAuditControlInfo(tb, AuditCtrlTotalDiscountValueMissing, b)
	}
	if ac.CallEventDetailsCount == nil {
		return v.emitAuditControlInfo(tb, AuditCtrlCallEventDetailsCountMissing, b)
	}
	if *ac.CallEventDetailsCount != len(tb.CallEventDetails) {
		return v.emitAuditControlInfo(tb, AuditCtrlCallEventDetailsCountMismatch, b)
	}
	return TAPValid
}

func (v *Validator) emitTransferBatch(tb *tap.TransferBatch, code int, b *pathBuilder) Result {
	detail, err := newTransferBatchReturnDetail(tb, code, b)
	if err != nil {
		v.Logger.Errorf("validate: build transfer batch return detail: %v", err)
		return ValidationImpossible
	}
	return v.emit(tb, detail)
}

func (v *Validator) emitBatchControl(tb *tap.TransferBatch, code int, b *pathBuilder) Result {
	detail, err := newBatchControlReturnDetail(tb, code, b)
	if err != nil {
		v.Logger.Errorf("validate: build batch control return detail: %v", err)
		return ValidationImpossible
	}
	return v.emit(tb, detail)
}

func (v *Validator) emitAccountingInfo(tb *tap.TransferBatch, code int, level3 string, b *pathBuilder) Result {
	detail, err := newAccountingInfoReturnDetail(tb, code, level3, b)
	if err != nil {
		v.Logger.Errorf("validate: build accounting info return detail: %v", err)
		return ValidationImpossible
	}
	return v.emit(tb, detail)
}

func (v *Validator) emitNetworkInfo(tb *tap.TransferBatch, code int, b *pathBuilder) Result {
	detail, err := newNetworkInfoReturnDetail(tb, code, b)
	if err != nil {
		v.Logger.Errorf("validate: build network info return detail: %v", err)
		return ValidationImpossible
	}
	return v.emit(tb, detail)
}

func (v *Validator) emitAuditControlInfo(tb *tap.TransferBatch, code int, b *pathBuilder) Result {
	detail, err := newAuditControlInfoReturnDetail(tb, code, b)
	if err != nil {
		v.Logger.Errorf("validate: build audit control info return detail: %v", err)
		return ValidationImpossible
	}
	return v.emit(tb, detail)
}

func (v *Validator) emit(tb *tap.TransferBatch, detail rap.ReturnDetail) Result {
	if v.Emitter == nil {
		v.Logger.Errorf("validate: no emitter configured; cannot deliver rejecting RAP")
		return ValidationImpossible
	}
	if err := v.Emitter.Emit(tb, detail); err != nil {
		var ee *EmitError
		if errors.As(err, &ee) {
			v.Logger.Errorf("validate: emit rap failed (%s): %v", ee.Kind, ee.Err)
		} else {
			v.Logger.Errorf("validate: emit rap failed: %v", err)
		}
		return ValidationImpossible
	}
	return FatalError
}
