package directory

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"

	"github.com/sells-group/adscout/internal/model"
)

// LoadLocationsFromFile reads a JSON array of model.LocationRecord from the
// given path and returns an indexed LocationDirectory.
func LoadLocationsFromFile(path string) (*LocationDirectory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "directory: read locations fixture")
	}

	var records []model.LocationRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, eris.Wrap(err, "directory: unmarshal locations fixture")
	}

	return NewLocationDirectory(records), nil
}

// LoadChannelsFromFile reads a JSON array of model.ChannelRecord from the
// given path. Cost range strings are parsed during unmarshal.
func LoadChannelsFromFile(path string) (*ChannelDirectory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "directory: read channels fixture")
	}

	var channels []model.ChannelRecord
	if err := json.Unmarshal(data, &channels); err != nil {
		return nil, eris.Wrap(err, "directory: unmarshal channels fixture")
	}

	return NewChannelDirectory(channels), nil
}
