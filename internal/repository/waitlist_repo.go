package repository

import (
	"context"

	"productlab/studyhub/internal/model"
)

type WaitlistRepository interface {
	// Upsert inserts the entry or updates the role of an existing e-mail.
	Upsert(ctx context.Context, entry *model.WaitlistEntry) error
}
