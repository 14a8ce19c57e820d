package identity

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/emrgen/mapshare/internal/cache"
	"github.com/emrgen/mapshare/internal/cloud"
	"github.com/emrgen/mapshare/internal/model"
	"github.com/emrgen/mapshare/internal/store"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupCache(t *testing.T, identity cloud.Identity) (*Cache, *cloud.Memory, *cache.MemoryParticipantCache) {
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "identity.db")), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, model.Migrate(db))

	gormStore := store.NewGormStore(db)
	memory := cloud.NewMemory(store.NewDefaultProvider(gormStore), identity)
	participants := cache.NewMemoryParticipantCache()

	return NewCache(gormStore, participants, memory), memory, participants
}

func TestCache_Resolve(t *testing.T) {
	identities, _, participants := setupCache(t, cloud.Identity{ID: "user-1"})

	participant, err := identities.Resolve(context.TODO(), &cloud.Identity{
		ID:        "user-2",
		GivenName: "Alice",
	})
	assert.NoError(t, err)
	assert.Equal(t, "Alice", participant.GivenName)

	// a later resolve with more detail enriches the same record
	participant, err = identities.Resolve(context.TODO(), &cloud.Identity{
		ID:         "user-2",
		FamilyName: "Nguyen",
		Email:      "alice@example.com",
	})
	assert.NoError(t, err)
	assert.Equal(t, "Alice", participant.GivenName)
	assert.Equal(t, "Nguyen", participant.FamilyName)
	assert.Equal(t, "alice@example.com", participant.Email)

	cached, err := participants.GetParticipant(context.TODO(), "user-2")
	assert.NoError(t, err)
	assert.NotNil(t, cached)
	assert.Equal(t, "Nguyen", cached.FamilyName)
}

func TestCache_Lookup(t *testing.T) {
	identities, memory, _ := setupCache(t, cloud.Identity{ID: "user-1"})

	memory.AddIdentity(cloud.Identity{ID: "user-3", GivenName: "Carol"})

	participant, err := identities.Lookup(context.TODO(), "user-3")
	assert.NoError(t, err)
	assert.Equal(t, "Carol", participant.GivenName)

	// a second lookup is served without the replica service
	memory.Unavailable = true
	participant, err = identities.Lookup(context.TODO(), "user-3")
	assert.NoError(t, err)
	assert.Equal(t, "Carol", participant.GivenName)
}

func TestCache_LookupUnknown(t *testing.T) {
	identities, _, _ := setupCache(t, cloud.Identity{ID: "user-1"})

	_, err := identities.Lookup(context.TODO(), "nobody")
	assert.ErrorIs(t, err, cloud.ErrIdentityNotFound)
}

func TestCache_Current(t *testing.T) {
	identities, _, _ := setupCache(t, cloud.Identity{ID: "user-1"})

	participant, err := identities.Current(context.TODO())
	assert.NoError(t, err)
	assert.Equal(t, "user-1", participant.ID)

	// an undiscoverable own identity still gets a usable name
	assert.Equal(t, "Me", participant.GivenName)
}
