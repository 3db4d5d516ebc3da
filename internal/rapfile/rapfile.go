// Package rapfile implements the RAP-file emitter: it turns a single
// rap.ReturnDetail rejection into a complete RAP ReturnBatch, persists
// it through the catalogue collaborator, and delivers it over FTP.
package rapfile

import (
	"context"

	"github.com/google/uuid"

	"example.com/tapgate/internal/amount"
	"example.com/tapgate/internal/catalogue"
	"example.com/tapgate/internal/codec"
	"example.com/tapgate/internal/common"
	"example.com/tapgate/internal/config"
	"example.com/tapgate/internal/ftp"
	"example.com/tapgate/internal/rap"
	"example.com/tapgate/internal/tap"
	"example.com/tapgate/internal/validate"
)

// FTPSettingsSource looks up delivery settings for a recipient, the shape
// config.Settings.FTPSettingsFor satisfies.
type FTPSettingsSource interface {
	FTPSettingsFor(hub string) (config.FTPSettings, bool)
}

// Service is the production validate.Emitter: it wires the catalogue,
// codec, and FTP collaborators together into the single CreateRAPFile
// operation a Fatal rejection triggers.
type Service struct {
	Catalogue catalogue.Catalogue
	Codec     codec.Codec
	Uploader  ftp.Uploader
	Settings  FTPSettingsSource
	Logger    common.Logger
	Emissions *EmissionLog
}

// NewService returns a Service wired from its collaborators. Logger and
// Emissions may be nil.
func NewService(cat catalogue.Catalogue, cdc codec.Codec, up ftp.Uploader, settings FTPSettingsSource, logger common.Logger, emissions *EmissionLog) *Service {
	if logger == nil {
		logger = common.NopLogger{}
	}
	return &Service{Catalogue: cat, Codec: cdc, Uploader: up, Settings: settings, Logger: logger, Emissions: emissions}
}

// Emit builds and delivers the RAP file rejecting tb with detail. It
// implements validate.Emitter.
func (s *Service) Emit(tb *tap.TransferBatch, detail rap.ReturnDetail) error {
	correlationID := uuid.New().String()
	bc := tb.BatchControlInfo

	if err := validateAmounts(detail); err != nil {
		s.Logger.Errorf("rapfile[%s]: amount out of range: %v", correlationID, err)
		return &validate.EmitError{Kind: validate.AmountOutOfRange, Err: err}
	}

	isTestData := bc.FileTypeIndicator != nil && *bc.FileTypeIndicator != ""
	tapAvailable := ""
	utcOffset := ""
	if bc.FileAvailableTimeStamp != nil {
		tapAvailable = bc.FileAvailableTimeStamp.LocalTimeStamp
		utcOffset = bc.FileAvailableTimeStamp.UtcTimeOffset
	}
	var tapSpecVersion, tapReleaseVersion, tapDecimalPlaces int
	if bc.SpecificationVersionNumber != nil {
		tapSpecVersion = *bc.SpecificationVersionNumber
	}
	if bc.ReleaseVersionNumber != nil {
		tapReleaseVersion = *bc.ReleaseVersionNumber
	}
	if tb.AccountingInfo != nil && tb.AccountingInfo.TapDecimalPlaces != nil {
		tapDecimalPlaces = *tb.AccountingInfo.TapDecimalPlaces
	}

	// The RAP is addressed to the TAP's sender: a RAP always flows back to
	// whoever originated the file it rejects.
	allocated, err := s.Catalogue.CreateRAPFileByTAPLoader(catalogue.AllocationRequest{
		Recipient:                     *bc.Sender,
		IsTestData:                    isTestData,
		TapAvailableTimeStamp:         tapAvailable,
		UtcTimeOffset:                 utcOffset,
		TapSpecificationVersionNumber: tapSpecVersion,
		TapReleaseVersionNumber:       tapReleaseVersion,
		TapDecimalPlaces:              tapDecimalPlaces,
	})
	if err != nil {
		s.Logger.Errorf("rapfile[%s]: allocate file: %v", correlationID, err)
		return &validate.EmitError{Kind: validate.CatalogueError, Err: err}
	}

	batch := s.buildReturnBatch(tb, allocated, detail)

	encoded, err := s.Codec.Encode(batch)
	if err != nil {
		s.Logger.Errorf("rapfile[%s]: encode return batch: %v", correlationID, err)
		return &validate.EmitError{Kind: validate.EncodeError, Err: err}
	}

	// Status is recorded before the upload is attempted, mirroring the
	// reference implementation's ordering: a crash between persisting and
	// uploading leaves the catalogue showing OUTFILE_CREATED_AND_SENT for a
	// file that in fact never left the building. Left as-is; see DESIGN.md.
	status := "OUTFILE_CREATED_AND_SENT"
	if err := s.Catalogue.LoadReturnBatch(allocated.FileID, encoded, status); err != nil {
		s.Logger.Errorf("rapfile[%s]: persist return batch: %v", correlationID, err)
		return &validate.EmitError{Kind: validate.CatalogueError, Err: err}
	}

	if err := s.upload(allocated.RoamingHubName, allocated.Filename, encoded); err != nil {
		s.Logger.Errorf("rapfile[%s]: upload: %v", correlationID, err)
		return &validate.EmitError{Kind: validate.UploadError, Err: err}
	}

	if s.Emissions != nil {
		_ = s.Emissions.Append(EmissionEntry{
			CorrelationID: correlationID,
			FileID:        allocated.FileID,
			Filename:      allocated.Filename,
			Recipient:     *bc.Sender,
			Status:        status,
		})
	}
	s.Logger.Printf("rapfile[%s]: emitted %s (%d bytes) to %s", correlationID, allocated.Filename, len(encoded), *bc.Sender)
	return nil
}

// validateAmounts runs every signed amount mirrored into detail through
// amount.EncodeInt64, the same shortest-form two's-complement encoding the
// codec applies on the wire. It is the single point where an amount that
// cannot be represented in 8 octets is caught before reaching the codec.
func validateAmounts(detail rap.ReturnDetail) error {
	if detail.FatalReturn == nil {
		return nil
	}
	check := func(v *int64) error {
		if v == nil {
			return nil
		}
		_, err := amount.EncodeInt64(*v)
		return err
	}
	if ac := detail.FatalReturn.AuditControlInfoError; ac != nil {
		m := ac.AuditControlInfo
		for _, v := range []*int64{
			m.TotalCharge, m.TotalChargeRefund, m.TotalDiscountRefund,
			m.TotalDiscountValue, m.TotalTaxRefund, m.TotalTaxValue,
		} {
			if err := check(v); err != nil {
				return err
			}
		}
		for i := range m.TotalAdvisedChargeValueList {
			if err := check(&m.TotalAdvisedChargeValueList[i].Value); err != nil {
				return err
			}
		}
	}
	if ai := detail.FatalReturn.AccountingInfoError; ai != nil {
		for i := range ai.AccountingInfo.CurrencyConversionInfo {
			if err := check(ai.AccountingInfo.CurrencyConversionInfo[i].ExchangeRate); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Service) buildReturnBatch(tb *tap.TransferBatch, allocated catalogue.AllocatedFile, detail rap.ReturnDetail) rap.ReturnBatch {
	bc := tb.BatchControlInfo
	rapTimeStamp := tap.TimeStamp{LocalTimeStamp: allocated.LocalTimeStamp, UtcTimeOffset: allocated.UtcTimeOffset}
	header := rap.RapBatchControlInfo{
		// Sender/recipient are swapped relative to the rejected TAP: the
		// home operator that detected the violation becomes the RAP's
		// sender, and the original TAP sender becomes its recipient.
		Sender:                        strOr(bc.Recipient, ""),
		Recipient:                     strOr(bc.Sender, ""),
		RapFileSequenceNumber:         allocated.RapSequenceNumber,
		RapFileCreationTimeStamp:      rapTimeStamp,
		RapFileAvailableTimeStamp:     rapTimeStamp,
		TapDecimalPlaces:              allocated.TapDecimalPlaces,
		RapSpecificationVersionNumber: allocated.RapSpecificationVersionNumber,
		RapReleaseVersionNumber:       allocated.RapReleaseVersionNumber,
		SpecificationVersionNumber:    bc.SpecificationVersionNumber,
		ReleaseVersionNumber:          bc.ReleaseVersionNumber,
		FileTypeIndicator:             bc.FileTypeIndicator,
	}
	return rap.ReturnBatch{
		RapBatchControlInfoRap: header,
		ReturnDetails:          []rap.ReturnDetail{detail},
		RapAuditControlInfo: rap.RapAuditControlInfo{
			TotalSevereReturnValue: 0,
			ReturnDetailsCount:     1,
		},
	}
}

// upload delivers data to the FTP destination configured for roamingHub. A
// missing destination is not a failure: a log line records why no upload
// was attempted, and the encoded RAP remains only where Emit already
// persisted it, in the catalogue via LoadReturnBatch. Service writes no
// local copy of the RAP file to disk.
func (s *Service) upload(roamingHub, filename string, data []byte) error {
	if s.Settings == nil || s.Uploader == nil {
		s.Logger.Printf("rapfile: no FTP destination configured for roaming hub %q; %s stays local", roamingHub, filename)
		return nil
	}
	dest, ok := s.Settings.FTPSettingsFor(roamingHub)
	if !ok {
		s.Logger.Printf("rapfile: no FTP destination configured for roaming hub %q; %s stays local", roamingHub, filename)
		return nil
	}
	remotePath := dest.RemoteDir + "/" + filename
	cred := ftp.Credentials{Username: dest.Username, Password: dest.Password}
	return s.Uploader.Upload(context.Background(), dest.Addr(), cred, remotePath, data)
}

func strOr(p *string, def string) string {
	if p == nil {
		return def
	}
	return *p
}
