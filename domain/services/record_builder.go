package services

import (
	"go.uber.org/zap"

	"consolidator-backend/domain/core/entities"
)

// RecordBuilder assembles records from raw store payloads, merging fragments
// that belong to the same logical file
type RecordBuilder interface {
	Build(payloads []map[string]interface{}) []*entities.Record
}

// DefaultRecordBuilder provides the default assembly implementation
type DefaultRecordBuilder struct {
	extractor FieldExtractor
	logger    *zap.Logger
}

// NewDefaultRecordBuilder creates a new record builder
func NewDefaultRecordBuilder(extractor FieldExtractor, logger *zap.Logger) *DefaultRecordBuilder {
	if extractor == nil {
		extractor = NewDefaultFieldExtractor(nil, nil, logger)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &DefaultRecordBuilder{
		extractor: extractor,
		logger:    logger,
	}
}

// Build converts raw payloads into records. Fragments sharing a file name
// fold into one record; payloads without an id are skipped with a warning,
// never replaced with synthetic content.
func (rb *DefaultRecordBuilder) Build(payloads []map[string]interface{}) []*entities.Record {
	byFile := make(map[string]*entities.Record)
	records := make([]*entities.Record, 0, len(payloads))

	for _, payload := range payloads {
		id, _ := payload["id"].(string)
		if id == "" {
			rb.logger.Warn("payload has no id, skipping")
			continue
		}

		chunkText := rb.extractor.ExtractChunkText(payload)

		record, err := entities.NewRecord(id, rb.extractor.ExtractFileName(payload))
		if err != nil {
			rb.logger.Warn("invalid record payload, skipping",
				zap.String("id", id), zap.Error(err))
			continue
		}
		record.SetFilePath(rb.extractor.ExtractFilePath(payload))
		record.SetChunkText(chunkText)
		record.SetRelevanceScore(rb.extractor.ExtractRelevanceScore(payload))
		record.AddKeywords(rb.extractor.ExtractKeywords(payload, chunkText)...)
		record.AddCategories(rb.extractor.ExtractCategories(payload)...)
		record.AddConvergenceChains(rb.extractor.ExtractConvergence(payload)...)

		fileName := record.FileName()
		if fileName != "" {
			if existing, seen := byFile[fileName]; seen {
				if err := existing.MergeFragment(record); err != nil {
					rb.logger.Warn("fragment merge failed, keeping fragment separate",
						zap.String("file", fileName), zap.Error(err))
					records = append(records, record)
				}
				continue
			}
			byFile[fileName] = record
		}
		records = append(records, record)
	}

	return records
}
