// Package catalogue defines the external stored-procedure collaborator
// this core delegates RAP file bookkeeping to, plus an in-memory reference
// implementation for tests and the bundled CLI/daemon.
package catalogue

import "errors"

// ErrUnknownFile is returned by LoadReturnBatch when fileID does not refer
// to a file previously allocated by CreateRAPFileByTAPLoader.
var ErrUnknownFile = errors.New("catalogue: unknown file id")

// AllocationRequest carries the TAP batch attributes CreateRAPFileByTAPLoader
// needs to derive a fully addressed RAP file record. The catalogue itself
// reads none of the TAP batch; everything it needs about it arrives here.
type AllocationRequest struct {
	Recipient             string
	IsTestData            bool
	TapAvailableTimeStamp string
	UtcTimeOffset         string

	TapSpecificationVersionNumber int
	TapReleaseVersionNumber       int
	TapDecimalPlaces              int
}

// AllocatedFile is what CreateRAPFileByTAPLoader hands back: the numeric
// file identifier, generated filename, and every field TD.52 needs the
// RAP's own batch control header stamped with.
type AllocatedFile struct {
	FileID   int64
	Filename string

	// RapSequenceNumber is the RAP's own file sequence number: up to 10
	// alphanumeric characters, distinct from Filename.
	RapSequenceNumber string

	RoamingHubID   string
	RoamingHubName string

	// LocalTimeStamp/UtcTimeOffset are stamped onto both
	// rapFileCreationTimeStamp and rapFileAvailableTimeStamp.
	LocalTimeStamp string
	UtcTimeOffset  string

	RapSpecificationVersionNumber int
	RapReleaseVersionNumber       int

	// TapSpecificationVersionNumber, TapReleaseVersionNumber, and
	// TapDecimalPlaces are echoed back unchanged from the AllocationRequest,
	// confirming what the catalogue recorded against this file.
	TapSpecificationVersionNumber int
	TapReleaseVersionNumber       int
	TapDecimalPlaces              int
}

// Catalogue is the external collaborator that allocates RAP file identity
// and persists the encoded return batch it belongs to. A production
// deployment backs this with the two stored procedures it is named after;
// InMemory stands in for tests and standalone runs.
type Catalogue interface {
	// CreateRAPFileByTAPLoader allocates a new RAP file entry addressed to
	// req.Recipient, derived from the TAP the RAP is rejecting.
	CreateRAPFileByTAPLoader(req AllocationRequest) (AllocatedFile, error)

	// LoadReturnBatch persists the encoded bytes of a return batch against
	// a previously allocated file, stamping it with status.
	LoadReturnBatch(fileID int64, encoded []byte, status string) error
}
