package identity

import (
	"context"

	"github.com/emrgen/mapshare/internal/cache"
	"github.com/emrgen/mapshare/internal/cloud"
	"github.com/emrgen/mapshare/internal/model"
	"github.com/emrgen/mapshare/internal/store"
	"github.com/sirupsen/logrus"
)

// NewCache creates a new participant identity cache.
func NewCache(store store.Store, cache cache.ParticipantCache, cloud cloud.Service) *Cache {
	return &Cache{
		store: store,
		cache: cache,
		cloud: cloud,
	}
}

// Cache resolves cloud identities into locally cached participant
// records. Resolution is a commutative upsert keyed on the identity ID,
// participants are never deleted here.
type Cache struct {
	store store.Store
	cache cache.ParticipantCache
	cloud cloud.Service
}

// Resolve upserts the participant for a cloud identity and caches it.
func (c *Cache) Resolve(ctx context.Context, ident *cloud.Identity) (*model.Participant, error) {
	participant, err := c.store.FindOrCreateParticipant(ctx, &model.Participant{
		ID:         ident.ID,
		GivenName:  ident.GivenName,
		FamilyName: ident.FamilyName,
		Email:      ident.Email,
		Phone:      ident.Phone,
	})
	if err != nil {
		return nil, err
	}

	if err := c.cache.SetParticipant(ctx, participant); err != nil {
		logrus.Warnf("failed to cache participant %s: %v", participant.ID, err)
	}

	return participant, nil
}

// Lookup returns the participant for an identity ID, consulting the
// cache, then the local store, then the replica service. Returns nil
// when the identity is unknown everywhere.
func (c *Cache) Lookup(ctx context.Context, id string) (*model.Participant, error) {
	participant, err := c.cache.GetParticipant(ctx, id)
	if err != nil {
		logrus.Warnf("participant cache read failed for %s: %v", id, err)
	}
	if participant != nil {
		return participant, nil
	}

	participant, err = c.store.GetParticipant(ctx, id)
	if err != nil {
		return nil, err
	}
	if participant != nil {
		if err := c.cache.SetParticipant(ctx, participant); err != nil {
			logrus.Warnf("failed to cache participant %s: %v", id, err)
		}
		return participant, nil
	}

	ident, err := c.cloud.LookupIdentity(ctx, id)
	if err != nil {
		return nil, err
	}

	return c.Resolve(ctx, ident)
}

// Current resolves the signed-in cloud identity into a participant. A
// missing given name falls back to "Me", matching what the app shows for
// an undiscoverable own identity.
func (c *Cache) Current(ctx context.Context) (*model.Participant, error) {
	ident, err := c.cloud.CurrentIdentity(ctx)
	if err != nil {
		return nil, err
	}

	if ident.GivenName == "" {
		ident.GivenName = "Me"
	}

	return c.Resolve(ctx, ident)
}
