package snapshots

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coinpulse/coinpulse/internal/domain"
)

func snapshotWorth(value int64) domain.ValuationSnapshot {
	return domain.ValuationSnapshot{
		Timestamp:  time.Now().UTC().Truncate(time.Second),
		TotalValue: decimal.NewFromInt(value),
		Assets: []domain.AssetValuation{
			{Symbol: "BTC", Quantity: decimal.NewFromInt(1), Value: decimal.NewFromInt(value)},
		},
	}
}

func TestWALStore(t *testing.T) {
	store, err := NewWALStore(t.TempDir())
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Save(snapshotWorth(60000)))
	require.NoError(t, store.Save(snapshotWorth(61000)))
	require.NoError(t, store.Save(snapshotWorth(59000)))

	t.Run("replay everything", func(t *testing.T) {
		records, err := store.SnapshotsAfter(0)
		require.NoError(t, err)
		require.Len(t, records, 3)

		assert.True(t, records[0].Snapshot.TotalValue.Equal(decimal.NewFromInt(60000)))
		assert.True(t, records[2].Snapshot.TotalValue.Equal(decimal.NewFromInt(59000)))
		assert.Less(t, records[0].Index, records[1].Index)
		assert.Less(t, records[1].Index, records[2].Index)
	})

	t.Run("resume from a cursor", func(t *testing.T) {
		all, err := store.SnapshotsAfter(0)
		require.NoError(t, err)

		records, err := store.SnapshotsAfter(all[1].Index)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.True(t, records[0].Snapshot.TotalValue.Equal(decimal.NewFromInt(59000)))
	})

	t.Run("cursor at the head yields nothing", func(t *testing.T) {
		all, err := store.SnapshotsAfter(0)
		require.NoError(t, err)

		records, err := store.SnapshotsAfter(all[len(all)-1].Index)
		require.NoError(t, err)
		assert.Empty(t, records)
	})
}

func TestWALStoreReplayAfterReopen(t *testing.T) {
	dir := t.TempDir()

	store, err := NewWALStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Save(snapshotWorth(60000)))
	require.NoError(t, store.Save(snapshotWorth(61000)))
	require.NoError(t, store.Close())

	reopened, err := NewWALStore(dir)
	require.NoError(t, err)
	defer reopened.Close()

	records, err := reopened.SnapshotsAfter(0)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.True(t, records[0].Snapshot.TotalValue.Equal(decimal.NewFromInt(60000)))
	assert.True(t, records[1].Snapshot.TotalValue.Equal(decimal.NewFromInt(61000)))
}

func TestWALStoreUninitialized(t *testing.T) {
	var store *WALStore
	assert.Error(t, store.Save(domain.ValuationSnapshot{}))
	_, err := store.SnapshotsAfter(0)
	assert.Error(t, err)
	assert.Error(t, store.Close())
}
