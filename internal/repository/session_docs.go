package repository

import (
	"context"

	"github.com/alexanderramin/taskboard/internal/domain"
	"github.com/alexanderramin/taskboard/internal/storage"
)

// DocumentSessionRepo implements SessionRepo over the storage adapter.
type DocumentSessionRepo struct {
	store *storage.Adapter
}

func NewDocumentSessionRepo(store *storage.Adapter) *DocumentSessionRepo {
	return &DocumentSessionRepo{store: store}
}

func (r *DocumentSessionRepo) LoadSession(ctx context.Context) (domain.Session, bool) {
	var s domain.Session
	if !r.store.Read(ctx, KeyAuth, &s) {
		return domain.Session{}, false
	}
	return s, true
}

func (r *DocumentSessionRepo) SaveSession(ctx context.Context, s domain.Session) {
	r.store.Write(ctx, KeyAuth, s)
}

func (r *DocumentSessionRepo) ClearSession(ctx context.Context) {
	r.store.Remove(ctx, KeyAuth)
}

func (r *DocumentSessionRepo) LoadRemembered(ctx context.Context) (domain.RememberedEmail, bool) {
	var rem domain.RememberedEmail
	if !r.store.Read(ctx, KeyRemember, &rem) || rem.Email == "" {
		return domain.RememberedEmail{}, false
	}
	return rem, true
}

func (r *DocumentSessionRepo) SaveRemembered(ctx context.Context, rem domain.RememberedEmail) {
	r.store.Write(ctx, KeyRemember, rem)
}

func (r *DocumentSessionRepo) ClearRemembered(ctx context.Context) {
	r.store.Remove(ctx, KeyRemember)
}
