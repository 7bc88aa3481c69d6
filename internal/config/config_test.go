package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/PixPMusic/gopher-surface/internal/midi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingReturnsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultOSCHost, cfg.OSC.Host)
	assert.Equal(t, DefaultOSCPort, cfg.OSC.Port)
	assert.NotNil(t, cfg.Devices)
	assert.False(t, cfg.FirstLaunchCompleted)
	assert.Equal(t, path, cfg.Path())

	require.NoError(t, cfg.Save())
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestLoadFillsGaps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data := `{"osc": {"port": 9000}, "devices": [{"name": "Launchpad", "type": "colorful"}]}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultOSCHost, cfg.OSC.Host)
	assert.Equal(t, 9000, cfg.OSC.Port)
	require.Len(t, cfg.Devices, 1)
	assert.NotEmpty(t, cfg.Devices[0].ID)
	assert.Equal(t, midi.DeviceTypeColorful, cfg.Devices[0].Type)
	assert.NotNil(t, cfg.DeviceByName("Launchpad"))
	assert.Nil(t, cfg.DeviceByName("Twister"))
}

func TestLoadRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0644))

	_, err := LoadFrom(path)
	assert.Error(t, err)
}

func TestDeviceEditing(t *testing.T) {
	cfg := Default()
	a := NewDeviceConfig()
	b := NewDeviceConfig()
	assert.NotEqual(t, a.ID, b.ID)

	cfg.AddDevice(a)
	cfg.AddDevice(b)
	b.Name = "Twister"
	cfg.UpdateDevice(b)
	assert.Equal(t, "Twister", cfg.Devices[1].Name)

	cfg.RemoveDevice(a.ID)
	require.Len(t, cfg.Devices, 1)
	assert.Equal(t, b.ID, cfg.Devices[0].ID)
}
