// Package directory holds the immutable location and channel reference
// datasets. Directories are loaded once at startup and never mutated; any
// future refresh replaces the whole snapshot atomically so concurrent
// readers never observe a partial update.
package directory

import (
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/sells-group/adscout/internal/model"
)

// LocationDirectory is a read-only table of geocoded locations keyed by code.
type LocationDirectory struct {
	byCode  map[string]model.LocationRecord
	ordered []model.LocationRecord
}

// NewLocationDirectory indexes the given records. Duplicate codes keep the
// first occurrence; later duplicates are dropped with a warning log.
func NewLocationDirectory(records []model.LocationRecord) *LocationDirectory {
	d := &LocationDirectory{
		byCode:  make(map[string]model.LocationRecord, len(records)),
		ordered: make([]model.LocationRecord, 0, len(records)),
	}
	for _, r := range records {
		if _, dup := d.byCode[r.Code]; dup {
			zap.L().Warn("directory: duplicate location code dropped", zap.String("code", r.Code))
			continue
		}
		d.byCode[r.Code] = r
		d.ordered = append(d.ordered, r)
	}
	return d
}

// Lookup returns the record for the given code.
func (d *LocationDirectory) Lookup(code string) (model.LocationRecord, bool) {
	r, ok := d.byCode[code]
	return r, ok
}

// All returns the records in load order. The slice is shared; callers must
// not modify it.
func (d *LocationDirectory) All() []model.LocationRecord {
	return d.ordered
}

// Len returns the number of records.
func (d *LocationDirectory) Len() int {
	return len(d.ordered)
}

// ChannelDirectory is a read-only table of advertising channels. Directory
// order is significant: it breaks ranking ties.
type ChannelDirectory struct {
	channels []model.ChannelRecord
}

// NewChannelDirectory wraps the given channel records.
func NewChannelDirectory(channels []model.ChannelRecord) *ChannelDirectory {
	return &ChannelDirectory{channels: channels}
}

// All returns the channels in directory order. The slice is shared; callers
// must not modify it.
func (d *ChannelDirectory) All() []model.ChannelRecord {
	return d.channels
}

// Len returns the number of channels.
func (d *ChannelDirectory) Len() int {
	return len(d.channels)
}

// Snapshot bundles both directories as loaded at one point in time.
type Snapshot struct {
	Locations *LocationDirectory
	Channels  *ChannelDirectory
}

// SnapshotHolder publishes directory snapshots to concurrent readers.
// Replacement is atomic; in-place mutation is never performed.
type SnapshotHolder struct {
	current atomic.Pointer[Snapshot]
}

// NewSnapshotHolder creates a holder seeded with the given snapshot.
func NewSnapshotHolder(s *Snapshot) *SnapshotHolder {
	h := &SnapshotHolder{}
	h.current.Store(s)
	return h
}

// Current returns the latest snapshot.
func (h *SnapshotHolder) Current() *Snapshot {
	return h.current.Load()
}

// Replace swaps in a new snapshot.
func (h *SnapshotHolder) Replace(s *Snapshot) {
	h.current.Store(s)
	zap.L().Info("directory: snapshot replaced",
		zap.Int("locations", s.Locations.Len()),
		zap.Int("channels", s.Channels.Len()),
	)
}
