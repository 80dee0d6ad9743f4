package interfaces

import "sfd/internal/models"

type CompressorInterface interface {
	Compress(val []byte) ([]byte, error)
	Decompress(val []byte) ([]byte, error)
}

// PersisterInterface is the single seam between the feedback service and
// the on-disk document.
type PersisterInterface interface {
	Save(doc *models.StorageV2) error
	Load() (*models.StorageV2, error)
}

type SchedulerInterface interface {
	Init()
	Stop()
	Restore() error
	Persist() error
}
