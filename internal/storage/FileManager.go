package storage

import (
	"os"

	json "github.com/goccy/go-json"

	"sfd/internal/models"
	"sfd/internal/providers"
	"sfd/internal/storage/interfaces"
	"sfd/internal/structures"
)

// FileManager reads and writes the single persisted feedback document:
// zstd-compressed JSON behind a tmp-file + rename, so readers never see
// a partial write.
type FileManager struct {
	conf       *structures.Config
	compressor interfaces.CompressorInterface
	logger     providers.Logger
}

func NewFileManager(conf *structures.Config, compressor interfaces.CompressorInterface, logger providers.Logger) interfaces.PersisterInterface {
	return &FileManager{
		conf:       conf,
		compressor: compressor,
		logger:     logger,
	}
}

func (f *FileManager) Save(doc *models.StorageV2) error {
	jsonData, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	data, err := f.compressor.Compress(jsonData)
	if err != nil {
		return err
	}

	fileName := f.conf.Persistence.FilePath
	tmpFile := fileName + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, fileName)
}

// Load returns the persisted document, migrating legacy layouts. A
// missing, corrupt or unparseable file yields an empty document: reads
// fail soft, never outward.
func (f *FileManager) Load() (*models.StorageV2, error) {
	empty := &models.StorageV2{
		Version:   models.StorageVersion,
		Feedbacks: make([]*models.FeedbackRecord, 0),
	}

	data, err := os.ReadFile(f.conf.Persistence.FilePath)
	if err != nil {
		if os.IsNotExist(err) {
			return empty, nil
		}
		return nil, err
	}

	decompressedData, err := f.compressor.Decompress(data)
	if err != nil {
		f.logger.Warnf(providers.TypeApp, "Persisted DB unreadable, starting empty: %s", err)
		return empty, nil
	}

	// Current format: versioned envelope
	var doc models.StorageV2
	if err := json.Unmarshal(decompressedData, &doc); err == nil && doc.Version > 0 {
		if doc.Feedbacks == nil {
			doc.Feedbacks = make([]*models.FeedbackRecord, 0)
		}
		return &doc, nil
	}

	// Old format v1: bare record array
	f.logger.Warnf(providers.TypeApp, "Inconsistent DB found, try to migrate from old data format")
	var records []*models.FeedbackRecord
	if err := json.Unmarshal(decompressedData, &records); err == nil {
		f.logger.Warnf(providers.TypeApp, "Migration from v1 format successful")
		empty.Feedbacks = records
		return empty, nil
	}

	f.logger.Warnf(providers.TypeApp, "Migration failed, starting empty")
	return empty, nil
}
