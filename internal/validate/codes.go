package validate

// Error codes, one per mandatory-element or cross-field rule this core
// enforces. The numeric values below are a private, internally-consistent
// catalogue (grouped by scope in blocks of 100) rather than a transcription
// of the published GSMA TD.52 error code table, which this implementation
// does not have a licensed copy of; a deployment with the licensed TD.52
// catalogue swaps these constants for the mandated values without touching
// any call site.
const (
	TFBatchBatchControlInfoMissing = 1000 + iota
	TFBatchAccountingInfoMissing
	TFBatchNetworkInfoMissing
	TFBatchAuditControlInfoMissing
)

const (
	BatchCtrlFileAvailTimeStampMissing = 1100 + iota
	BatchCtrlSpecVersionMissing
	BatchCtrlTransferCutOffMissing
)

const (
	AccountingLocalCurrencyMissing = 1200 + iota
	AccountingTapDecimalPlacesMissing
	AccountingTaxationMissing
	AccountingDiscountingMissing
	AccountingCurrencyConversionMissing
	CurrencyConversionExRateCodeMissing
	CurrencyConversionNumDecimalPlacesMissing
	CurrencyConversionExchangeRateMissing
	CurrencyConversionExRateCodeDuplication
)

const (
	NetworkUtcTimeOffsetMissing = 1300 + iota
	NetworkRecEntityMissing
)

const (
	AuditCtrlTotalChargeMissing = 1400 + iota
	AuditCtrlTotalTaxValueMissing
	AuditCtrlTotalDiscountValueMissing
	AuditCtrlCallEventDetailsCountMissing
	AuditCtrlCallEventDetailsCountMismatch
)
