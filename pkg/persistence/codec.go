package persistence

import (
	"encoding/json"

	"github.com/DeBrosOfficial/walletsync/pkg/errors"
	"github.com/DeBrosOfficial/walletsync/pkg/state"
)

func encodeDocument(backend string, doc state.Document) ([]byte, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, errors.NewStorageError(backend, "failed to encode snapshot", err)
	}
	return data, nil
}

func decodeDocument(backend string, data []byte) (*state.Document, error) {
	var doc state.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.NewStorageError(backend, "failed to decode snapshot", err)
	}
	return &doc, nil
}
