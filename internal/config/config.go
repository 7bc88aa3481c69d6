package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/PixPMusic/gopher-surface/internal/midi"
	"github.com/google/uuid"
)

const (
	DefaultOSCHost = "127.0.0.1"
	DefaultOSCPort = 8000
)

// DeviceConfig holds configuration for a single MIDI device
type DeviceConfig struct {
	ID      string          `json:"id"`       // Unique identifier
	Name    string          `json:"name"`     // User-friendly name, referenced by profile inputs
	InPort  string          `json:"in_port"`  // MIDI input port name
	OutPort string          `json:"out_port"` // MIDI output port name
	Type    midi.DeviceType `json:"type"`     // Classic, Colorful or Generic
}

// NewDeviceConfig creates a new device config with a generated ID
func NewDeviceConfig() DeviceConfig {
	return DeviceConfig{
		ID:   uuid.New().String(),
		Name: "New Device",
		Type: midi.DeviceTypeGeneric,
	}
}

// OSCConfig is where messages for the DAW go
type OSCConfig struct {
	Host      string `json:"host"`
	Port      int    `json:"port"`
	QueueSize int    `json:"queue_size"`
}

// Config holds application configuration
type Config struct {
	FirstLaunchCompleted bool           `json:"first_launch_completed"`
	OpenAtStartup        bool           `json:"open_at_startup"`
	Debug                bool           `json:"debug"`
	OSC                  OSCConfig      `json:"osc"`
	ProfilePath          string         `json:"profile_path"` // empty = built-in profile
	Devices              []DeviceConfig `json:"devices"`

	path string
}

// Default returns the configuration used when no file exists yet
func Default() *Config {
	return &Config{
		OSC:     OSCConfig{Host: DefaultOSCHost, Port: DefaultOSCPort},
		Devices: []DeviceConfig{},
	}
}

// configDir returns the platform-appropriate config directory
func configDir() (string, error) {
	configHome, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configHome, "gopher-surface"), nil
}

// ConfigPath returns the full path to the config file
func ConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from the default location
func Load() (*Config, error) {
	configPath, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(configPath)
}

// LoadFrom reads the config at path, returning defaults if it does not exist
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		cfg := Default()
		cfg.path = path
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.path = path

	// Ensure slices are not nil and the OSC target is usable
	if cfg.Devices == nil {
		cfg.Devices = []DeviceConfig{}
	}
	if cfg.OSC.Host == "" {
		cfg.OSC.Host = DefaultOSCHost
	}
	if cfg.OSC.Port == 0 {
		cfg.OSC.Port = DefaultOSCPort
	}
	for i := range cfg.Devices {
		if cfg.Devices[i].ID == "" {
			cfg.Devices[i].ID = uuid.New().String()
		}
	}

	return cfg, nil
}

// Path returns the file the config was loaded from
func (c *Config) Path() string {
	return c.path
}

// Save writes the config back to where it was loaded from
func (c *Config) Save() error {
	if c.path == "" {
		p, err := ConfigPath()
		if err != nil {
			return err
		}
		c.path = p
	}
	return c.SaveTo(c.path)
}

// SaveTo writes the config to path
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// AddDevice adds a new device to the config
func (c *Config) AddDevice(device DeviceConfig) {
	c.Devices = append(c.Devices, device)
}

// RemoveDevice removes a device by ID
func (c *Config) RemoveDevice(id string) {
	for i, d := range c.Devices {
		if d.ID == id {
			c.Devices = append(c.Devices[:i], c.Devices[i+1:]...)
			return
		}
	}
}

// UpdateDevice updates an existing device by ID
func (c *Config) UpdateDevice(device DeviceConfig) {
	for i, d := range c.Devices {
		if d.ID == device.ID {
			c.Devices[i] = device
			return
		}
	}
}

// DeviceByName returns the device with the given name, or nil
func (c *Config) DeviceByName(name string) *DeviceConfig {
	for i := range c.Devices {
		if c.Devices[i].Name == name {
			return &c.Devices[i]
		}
	}
	return nil
}
