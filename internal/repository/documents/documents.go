// Package documents implements the repositories on top of a docstore.Store.
// Each file maps one model to the document shape of its collection.
package documents

import (
	"github.com/vytor/trainerdesk/internal/docstore"
)

func decodeAll[T any](docs []docstore.Document, convert func(id string, doc T) error) error {
	for _, d := range docs {
		var v T
		if err := d.Decode(&v); err != nil {
			return err
		}
		if err := convert(d.ID, v); err != nil {
			return err
		}
	}
	return nil
}
