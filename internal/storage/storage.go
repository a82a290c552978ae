package storage

import "honeytags/internal/model"

// Storage defines a sink for generated tags.
type Storage interface {
	PutTagBatch(tags []model.Tag) error
}
