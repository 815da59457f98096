package domain

// TransferDirection tells whether bytes move from or to a repository.
type TransferDirection int

const (
	// Download fetches from a remote repository.
	Download TransferDirection = iota
	// Upload writes into a repository.
	Upload
)

// String returns "Downloading" or "Uploading".
func (d TransferDirection) String() string {
	if d == Upload {
		return "Uploading"
	}
	return "Downloading"
}

// TransferState is the lifecycle event of one transfer.
type TransferState string

const (
	TransferInitiated TransferState = "INITIATED"
	TransferSucceeded TransferState = "SUCCEEDED"
	TransferFailed    TransferState = "FAILED"
	TransferCorrupted TransferState = "CORRUPTED"
)

// TransferEvent reports progress of a repository transfer.
type TransferEvent struct {
	Direction  TransferDirection
	State      TransferState
	Resource   string
	Repository string
	Size       int64
	Err        error
}
