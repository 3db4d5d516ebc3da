package catalogue

import (
	"fmt"
	"sync"
)

type fileRecord struct {
	recipient string
	encoded   []byte
	status    string
}

// InMemory is a Catalogue backed by process memory, suitable for tests and
// for running the CLI/daemon without a real catalogue database attached.
type InMemory struct {
	mu     sync.Mutex
	nextID int64
	files  map[int64]*fileRecord
}

// NewInMemory returns an empty InMemory catalogue.
func NewInMemory() *InMemory {
	return &InMemory{files: make(map[int64]*fileRecord)}
}

func (m *InMemory) CreateRAPFileByTAPLoader(req AllocationRequest) (AllocatedFile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	id := m.nextID
	kind := "P"
	if req.IsTestData {
		kind = "T"
	}
	filename := fmt.Sprintf("RAP_%s_%s_%010d.%s", req.Recipient, req.TapAvailableTimeStamp, id, kind)
	m.files[id] = &fileRecord{recipient: req.Recipient}
	return AllocatedFile{
		FileID:            id,
		Filename:          filename,
		RapSequenceNumber: fmt.Sprintf("%010d", id),
		// InMemory has no real hub directory to consult; the recipient code
		// doubles as both the hub id and name, matching how production
		// deployments key their FTP settings by roaming-hub name.
		RoamingHubID:                  req.Recipient,
		RoamingHubName:                req.Recipient,
		LocalTimeStamp:                req.TapAvailableTimeStamp,
		UtcTimeOffset:                 req.UtcTimeOffset,
		RapSpecificationVersionNumber: 3,
		RapReleaseVersionNumber:       11,
		TapSpecificationVersionNumber: req.TapSpecificationVersionNumber,
		TapReleaseVersionNumber:       req.TapReleaseVersionNumber,
		TapDecimalPlaces:              req.TapDecimalPlaces,
	}, nil
}

func (m *InMemory) LoadReturnBatch(fileID int64, encoded []byte, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.files[fileID]
	if !ok {
		return ErrUnknownFile
	}
	rec.encoded = encoded
	rec.status = status
	return nil
}

// Lookup returns the persisted bytes and status for fileID, for tests that
// need to assert what was actually stored.
func (m *InMemory) Lookup(fileID int64) (encoded []byte, status string, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.files[fileID]
	if !ok {
		return nil, "", false
	}
	return rec.encoded, rec.status, true
}
