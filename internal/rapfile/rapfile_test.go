package rapfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"example.com/tapgate/internal/catalogue"
	"example.com/tapgate/internal/codec"
	"example.com/tapgate/internal/config"
	"example.com/tapgate/internal/ftp"
	"example.com/tapgate/internal/rap"
	"example.com/tapgate/internal/tap"
)

type fakeUploader struct {
	calls []string
	err   error
}

func (f *fakeUploader) Upload(ctx context.Context, addr string, cred ftp.Credentials, remotePath string, data []byte) error {
	f.calls = append(f.calls, addr+":"+remotePath)
	return f.err
}

func ptrString(s string) *string { return &s }

func sampleTransferBatch() *tap.TransferBatch {
	return &tap.TransferBatch{
		BatchControlInfo: &tap.BatchControlInfo{
			Sender:             ptrString("11111"),
			Recipient:          ptrString("22222"),
			FileSequenceNumber: ptrString("7"),
		},
	}
}

func sampleDetail() rap.ReturnDetail {
	return rap.ReturnDetail{
		Kind: rap.ReturnDetailFatal,
		FatalReturn: &rap.FatalReturn{
			FileSequenceNumber: "7",
			TransferBatchError: &rap.TransferBatchError{
				ErrorDetail: []rap.ErrorDetail{{ErrorCode: 1001}},
			},
		},
	}
}

func testSettings() config.Settings {
	return config.Settings{
		FTP: map[string]config.FTPSettings{
			"11111": {Host: "ftp.example.net", Port: 21, Username: "u", Password: "p", RemoteDir: "/inbox"},
		},
	}
}

func TestServiceEmitHappyPath(t *testing.T) {
	cat := catalogue.NewInMemory()
	up := &fakeUploader{}
	logPath := filepath.Join(t.TempDir(), "emissions.jsonl")
	svc := NewService(cat, codec.NewJSONCodec(), up, testSettings(), nil, NewEmissionLog(logPath))

	err := svc.Emit(sampleTransferBatch(), sampleDetail())
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if len(up.calls) != 1 {
		t.Fatalf("expected 1 upload call, got %d", len(up.calls))
	}
	if up.calls[0] != "ftp.example.net:21:/inbox/RAP_11111__0000000001.P" {
		t.Fatalf("unexpected upload target: %q", up.calls[0])
	}

	encoded, status, ok := cat.Lookup(1)
	if !ok {
		t.Fatal("catalogue did not persist return batch")
	}
	if status != "OUTFILE_CREATED_AND_SENT" {
		t.Fatalf("status = %q", status)
	}
	if len(encoded) == 0 {
		t.Fatal("encoded payload is empty")
	}

	if _, err := os.Stat(logPath); err != nil {
		t.Fatalf("emission log not written: %v", err)
	}
	entries, err := ReadEmissionLog(logPath)
	if err != nil {
		t.Fatalf("ReadEmissionLog: %v", err)
	}
	if len(entries) != 1 || entries[0].FileID != 1 {
		t.Fatalf("unexpected emission entries: %+v", entries)
	}
}

func TestValidateAmountsAcceptsInRangeValues(t *testing.T) {
	tax := int64(12345)
	rate := int64(987654321)
	detail := rap.ReturnDetail{
		Kind: rap.ReturnDetailFatal,
		FatalReturn: &rap.FatalReturn{
			AuditControlInfoError: &rap.AuditControlInfoError{
				AuditControlInfo: rap.AuditControlInfoMirror{TotalTaxValue: &tax},
			},
			AccountingInfoError: &rap.AccountingInfoError{
				AccountingInfo: rap.AccountingInfoMirror{
					CurrencyConversionInfo: []tap.CurrencyConversionInfo{{ExchangeRate: &rate}},
				},
			},
		},
	}
	if err := validateAmounts(detail); err != nil {
		t.Fatalf("validateAmounts() = %v, want nil", err)
	}
}

func TestServiceEmitRunsAmountsThroughEncoding(t *testing.T) {
	cat := catalogue.NewInMemory()
	up := &fakeUploader{}
	svc := NewService(cat, codec.NewJSONCodec(), up, testSettings(), nil, nil)

	taxValue := int64(500)
	detail := rap.ReturnDetail{
		Kind: rap.ReturnDetailFatal,
		FatalReturn: &rap.FatalReturn{
			FileSequenceNumber: "7",
			AuditControlInfoError: &rap.AuditControlInfoError{
				AuditControlInfo: rap.AuditControlInfoMirror{TotalTaxValue: &taxValue},
				ErrorDetail:      []rap.ErrorDetail{{ErrorCode: 2001}},
			},
		},
	}
	if err := svc.Emit(sampleTransferBatch(), detail); err != nil {
		t.Fatalf("Emit: %v", err)
	}
}

func TestServiceEmitMissingFTPDestination(t *testing.T) {
	cat := catalogue.NewInMemory()
	up := &fakeUploader{}
	svc := NewService(cat, codec.NewJSONCodec(), up, config.Settings{}, nil, nil)

	err := svc.Emit(sampleTransferBatch(), sampleDetail())
	if err != nil {
		t.Fatalf("Emit should treat a missing FTP destination as success, got: %v", err)
	}
	if len(up.calls) != 0 {
		t.Fatalf("expected no upload attempt, got %v", up.calls)
	}

	_, status, ok := cat.Lookup(1)
	if !ok || status != "OUTFILE_CREATED_AND_SENT" {
		t.Fatalf("expected the RAP to still be persisted locally, got status %q (ok=%v)", status, ok)
	}
}
