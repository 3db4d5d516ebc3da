package validate

import (
	"errors"
	"testing"
	"time"

	"example.com/tapgate/internal/codec"
	"example.com/tapgate/internal/rap"
	"example.com/tapgate/internal/tap"
)

type fakeEmitter struct {
	err      error
	lastCode int
}

func (f *fakeEmitter) Emit(tb *tap.TransferBatch, detail rap.ReturnDetail) error {
	if detail.FatalReturn == nil {
		return errors.New("fake emitter: no fatal return")
	}
	switch {
	case detail.FatalReturn.TransferBatchError != nil:
		f.lastCode = detail.FatalReturn.TransferBatchError.ErrorDetail[0].ErrorCode
	case detail.FatalReturn.BatchControlError != nil:
		f.lastCode = detail.FatalReturn.BatchControlError.ErrorDetail[0].ErrorCode
	case detail.FatalReturn.AccountingInfoError != nil:
		f.lastCode = detail.FatalReturn.AccountingInfoError.ErrorDetail[0].ErrorCode
	case detail.FatalReturn.NetworkInfoError != nil:
		f.lastCode = detail.FatalReturn.NetworkInfoError.ErrorDetail[0].ErrorCode
	case detail.FatalReturn.AuditControlInfoError != nil:
		f.lastCode = detail.FatalReturn.AuditControlInfoError.ErrorDetail[0].ErrorCode
	}
	return f.err
}

func ptrString(s string) *string { return &s }
func ptrInt(i int) *int          { return &i }
func ptrInt64(i int64) *int64    { return &i }

func validBatchControlInfo() *tap.BatchControlInfo {
	return &tap.BatchControlInfo{
		Sender:                     ptrString("12345"),
		Recipient:                  ptrString("54321"),
		FileSequenceNumber:         ptrString("1"),
		FileAvailableTimeStamp:     &tap.TimeStamp{LocalTimeStamp: "20260801000000"},
		TransferCutOffTimeStamp:    &tap.TimeStamp{LocalTimeStamp: "20260801000000"},
		SpecificationVersionNumber: ptrInt(3),
	}
}

func validAccountingInfo() *tap.AccountingInfo {
	return &tap.AccountingInfo{
		LocalCurrency:    ptrString("EUR"),
		TapDecimalPlaces: ptrInt(2),
		CurrencyConversionInfo: []tap.CurrencyConversionInfo{
			{ExchangeRateCode: ptrInt(1), NumberOfDecimalPlaces: ptrInt(2), ExchangeRate: ptrInt64(100)},
		},
	}
}

func validNetworkInfo() *tap.NetworkInfo {
	return &tap.NetworkInfo{
		UtcTimeOffsetInfo: []tap.UtcTimeOffsetInfo{{UtcTimeOffsetCode: ptrInt(1), UtcTimeOffset: ptrString("+0000")}},
		RecEntityInfo:     []tap.RecEntityInfo{{RecEntityCode: ptrInt(1), RecEntityType: ptrInt(1)}},
	}
}

func validAuditControlInfo(count int) *tap.AuditControlInfo {
	return &tap.AuditControlInfo{
		TotalCharge:           ptrInt64(1000),
		TotalTaxValue:         ptrInt64(0),
		TotalDiscountValue:    ptrInt64(0),
		CallEventDetailsCount: ptrInt(count),
	}
}

func validTransferBatch() *tap.TransferBatch {
	return &tap.TransferBatch{
		BatchControlInfo:  validBatchControlInfo(),
		AccountingInfo:    validAccountingInfo(),
		NetworkInfo:       validNetworkInfo(),
		AuditControlInfo:  validAuditControlInfo(0),
		CallEventDetails:  nil,
	}
}

func newTestValidator(emitter Emitter) *Validator {
	return NewValidator(codec.NewTagDictionary(), emitter, nil)
}

func TestValidate_TAPValid(t *testing.T) {
	v := newTestValidator(&fakeEmitter{})
	di := tap.DataInterchange{Variant: tap.VariantTransferBatch, TransferBatch: validTransferBatch()}
	if got := v.Validate(di); got != TAPValid {
		t.Fatalf("Validate() = %s, want TAP_VALID", got)
	}
}

func TestValidate_AddressabilityMissing(t *testing.T) {
	tb := validTransferBatch()
	tb.BatchControlInfo.Sender = nil
	em := &fakeEmitter{}
	v := newTestValidator(em)
	di := tap.DataInterchange{Variant: tap.VariantTransferBatch, TransferBatch: tb}
	if got := v.Validate(di); got != ValidationImpossible {
		t.Fatalf("Validate() = %s, want VALIDATION_IMPOSSIBLE", got)
	}
	if em.lastCode != 0 {
		t.Fatalf("emitter should never have been called, got code %d", em.lastCode)
	}
}

// TestValidate_BatchControlInfoMissing documents a deliberate departure: a
// TransferBatch with no BatchControlInfo at all cannot supply the
// fileSequenceNumber any rejecting RAP's FatalReturn must carry, so this
// case is VALIDATION_IMPOSSIBLE rather than a BatchControlInfo-missing
// Fatal rejection. See DESIGN.md for the full reasoning.
func TestValidate_BatchControlInfoMissing(t *testing.T) {
	tb := validTransferBatch()
	tb.BatchControlInfo = nil
	v := newTestValidator(&fakeEmitter{})
	di := tap.DataInterchange{Variant: tap.VariantTransferBatch, TransferBatch: tb}
	if got := v.Validate(di); got != ValidationImpossible {
		t.Fatalf("Validate() = %s, want VALIDATION_IMPOSSIBLE", got)
	}
}

func TestValidate_SectionMissing(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*tap.TransferBatch)
		code    int
	}{
		{"accounting info missing", func(tb *tap.TransferBatch) { tb.AccountingInfo = nil }, TFBatchAccountingInfoMissing},
		{"network info missing", func(tb *tap.TransferBatch) { tb.NetworkInfo = nil }, TFBatchNetworkInfoMissing},
		{"audit control info missing", func(tb *tap.TransferBatch) { tb.AuditControlInfo = nil }, TFBatchAuditControlInfoMissing},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tb := validTransferBatch()
			tc.mutate(tb)
			em := &fakeEmitter{}
			v := newTestValidator(em)
			di := tap.DataInterchange{Variant: tap.VariantTransferBatch, TransferBatch: tb}
			if got := v.Validate(di); got != FatalError {
				t.Fatalf("Validate() = %s, want FATAL_ERROR", got)
			}
			if em.lastCode != tc.code {
				t.Fatalf("emitted code = %d, want %d", em.lastCode, tc.code)
			}
		})
	}
}

func TestValidate_BatchControlRules(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*tap.TransferBatch)
		code   int
	}{
		{"file available timestamp missing", func(tb *tap.TransferBatch) { tb.BatchControlInfo.FileAvailableTimeStamp = nil }, BatchCtrlFileAvailTimeStampMissing},
		{"spec version missing", func(tb *tap.TransferBatch) { tb.BatchControlInfo.SpecificationVersionNumber = nil }, BatchCtrlSpecVersionMissing},
		{"transfer cutoff missing", func(tb *tap.TransferBatch) { tb.BatchControlInfo.TransferCutOffTimeStamp = nil }, BatchCtrlTransferCutOffMissing},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tb := validTransferBatch()
			tc.mutate(tb)
			em := &fakeEmitter{}
			v := newTestValidator(em)
			di := tap.DataInterchange{Variant: tap.VariantTransferBatch, TransferBatch: tb}
			if got := v.Validate(di); got != FatalError {
				t.Fatalf("Validate() = %s, want FATAL_ERROR", got)
			}
			if em.lastCode != tc.code {
				t.Fatalf("emitted code = %d, want %d", em.lastCode, tc.code)
			}
		})
	}
}

func TestValidate_TaxationRequiredWhenChargesTaxed(t *testing.T) {
	tb := validTransferBatch()
	tb.CallEventDetails = []tap.CallEventDetail{
		{
			Kind:          tap.CallEventMobileOriginated,
			EventTimeStamp: time.Now(),
			BasicServiceUsedList: []tap.BasicServiceUsed{{
				ChargeInformationList: []tap.ChargeInformation{{
					TaxInformation:   &tap.TaxInformation{TaxCode: ptrInt(1)},
					ChargeDetailList: []tap.ChargeDetail{{ChargeType: "airtime", Charge: 10}},
				}},
			}},
		},
	}
	tb.AuditControlInfo = validAuditControlInfo(1)
	em := &fakeEmitter{}
	v := newTestValidator(em)
	di := tap.DataInterchange{Variant: tap.VariantTransferBatch, TransferBatch: tb}
	if got := v.Validate(di); got != FatalError {
		t.Fatalf("Validate() = %s, want FATAL_ERROR", got)
	}
	if em.lastCode != AccountingTaxationMissing {
		t.Fatalf("emitted code = %d, want %d", em.lastCode, AccountingTaxationMissing)
	}
}

func TestValidate_CurrencyConversionDuplicateRateCode(t *testing.T) {
	tb := validTransferBatch()
	tb.AccountingInfo.CurrencyConversionInfo = []tap.CurrencyConversionInfo{
		{ExchangeRateCode: ptrInt(1), NumberOfDecimalPlaces: ptrInt(2), ExchangeRate: ptrInt64(100)},
		{ExchangeRateCode: ptrInt(1), NumberOfDecimalPlaces: ptrInt(2), ExchangeRate: ptrInt64(200)},
	}
	em := &fakeEmitter{}
	v := newTestValidator(em)
	di := tap.DataInterchange{Variant: tap.VariantTransferBatch, TransferBatch: tb}
	if got := v.Validate(di); got != FatalError {
		t.Fatalf("Validate() = %s, want FATAL_ERROR", got)
	}
	if em.lastCode != CurrencyConversionExRateCodeDuplication {
		t.Fatalf("emitted code = %d, want %d", em.lastCode, CurrencyConversionExRateCodeDuplication)
	}
}

func TestValidate_AuditControlTotalTaxValueMissingUnconditional(t *testing.T) {
	tb := validTransferBatch()
	tb.AuditControlInfo.TotalTaxValue = nil
	em := &fakeEmitter{}
	v := newTestValidator(em)
	di := tap.DataInterchange{Variant: tap.VariantTransferBatch, TransferBatch: tb}
	if got := v.Validate(di); got != FatalError {
		t.Fatalf("Validate() = %s, want FATAL_ERROR", got)
	}
	if em.lastCode != AuditCtrlTotalTaxValueMissing {
		t.Fatalf("emitted code = %d, want %d", em.lastCode, AuditCtrlTotalTaxValueMissing)
	}
}

func TestValidate_AuditControlTotalDiscountValueMissingUnconditional(t *testing.T) {
	tb := validTransferBatch()
	tb.AuditControlInfo.TotalDiscountValue = nil
	em := &fakeEmitter{}
	v := newTestValidator(em)
	di := tap.DataInterchange{Variant: tap.VariantTransferBatch, TransferBatch: tb}
	if got := v.Validate(di); got != FatalError {
		t.Fatalf("Validate() = %s, want FATAL_ERROR", got)
	}
	if em.lastCode != AuditCtrlTotalDiscountValueMissing {
		t.Fatalf("emitted code = %d, want %d", em.lastCode, AuditCtrlTotalDiscountValueMissing)
	}
}

func TestValidate_CurrencyConversionMissingOnlyWhenPositiveCharges(t *testing.T) {
	tb := validTransferBatch()
	tb.AccountingInfo.CurrencyConversionInfo = nil
	em := &fakeEmitter{}
	v := newTestValidator(em)
	di := tap.DataInterchange{Variant: tap.VariantTransferBatch, TransferBatch: tb}
	if got := v.Validate(di); got != TAPValid {
		t.Fatalf("Validate() = %s, want TAP_VALID for a batch with no positive charges", got)
	}

	tb.CallEventDetails = []tap.CallEventDetail{
		{
			Kind:           tap.CallEventMobileOriginated,
			EventTimeStamp: time.Now(),
			BasicServiceUsedList: []tap.BasicServiceUsed{{
				ChargeInformationList: []tap.ChargeInformation{{
					ChargeDetailList: []tap.ChargeDetail{{ChargeType: "airtime", Charge: 10}},
				}},
			}},
		},
	}
	tb.AuditControlInfo = validAuditControlInfo(1)
	v = newTestValidator(em)
	di = tap.DataInterchange{Variant: tap.VariantTransferBatch, TransferBatch: tb}
	if got := v.Validate(di); got != FatalError {
		t.Fatalf("Validate() = %s, want FATAL_ERROR once positive charges are present", got)
	}
	if em.lastCode != AccountingCurrencyConversionMissing {
		t.Fatalf("emitted code = %d, want %d", em.lastCode, AccountingCurrencyConversionMissing)
	}
}

func TestValidate_CallEventDetailsCountMismatch(t *testing.T) {
	tb := validTransferBatch()
	tb.AuditControlInfo = validAuditControlInfo(5)
	em := &fakeEmitter{}
	v := newTestValidator(em)
	di := tap.DataInterchange{Variant: tap.VariantTransferBatch, TransferBatch: tb}
	if got := v.Validate(di); got != FatalError {
		t.Fatalf("Validate() = %s, want FATAL_ERROR", got)
	}
	if em.lastCode != AuditCtrlCallEventDetailsCountMismatch {
		t.Fatalf("emitted code = %d, want %d", em.lastCode, AuditCtrlCallEventDetailsCountMismatch)
	}
}

func TestValidate_EmitFailureIsValidationImpossible(t *testing.T) {
	tb := validTransferBatch()
	tb.NetworkInfo = nil
	em := &fakeEmitter{err: &EmitError{Kind: UploadError, Err: errors.New("connection reset")}}
	v := newTestValidator(em)
	di := tap.DataInterchange{Variant: tap.VariantTransferBatch, TransferBatch: tb}
	if got := v.Validate(di); got != ValidationImpossible {
		t.Fatalf("Validate() = %s, want VALIDATION_IMPOSSIBLE", got)
	}
}

func TestValidate_NotificationVariant(t *testing.T) {
	v := newTestValidator(&fakeEmitter{})
	valid := tap.DataInterchange{Variant: tap.VariantNotification, Notification: &tap.Notification{
		Sender: ptrString("1"), Recipient: ptrString("2"), FileSequenceNumber: ptrString("3"),
	}}
	if got := v.Validate(valid); got != TAPValid {
		t.Fatalf("Validate() = %s, want TAP_VALID", got)
	}

	missing := tap.DataInterchange{Variant: tap.VariantNotification, Notification: &tap.Notification{
		Sender: ptrString("1"),
	}}
	if got := v.Validate(missing); got != ValidationImpossible {
		t.Fatalf("Validate() = %s, want VALIDATION_IMPOSSIBLE", got)
	}
}
