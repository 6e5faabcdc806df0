package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"bonnet/ui/render"

	"github.com/charmbracelet/log"
	toml "github.com/pelletier/go-toml/v2"
)

type DeviceMode string

const (
	// DeviceModeSys finds real USB and SD partitions through udev.
	DeviceModeSys DeviceMode = "sys"
	// DeviceModeDir treats each subdirectory of devices.root as a drive.
	DeviceModeDir DeviceMode = "dir"
)

type Config struct {
	Display DisplayConfig `toml:"display"`
	Devices DevicesConfig `toml:"devices"`
	UI      UIConfig      `toml:"ui"`
	Workers WorkersConfig `toml:"workers"`
	Log     LogConfig     `toml:"log"`
}

type DisplayConfig struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Scale  int    `toml:"scale"`
	Font   string `toml:"font"`
}

type DevicesConfig struct {
	Mode       DeviceMode `toml:"mode"`
	Root       string     `toml:"root"`
	ByIDDir    string     `toml:"by_id_dir"`
	ByPathDir  string     `toml:"by_path_dir"`
	ByLabelDir string     `toml:"by_label_dir"`
	MountInfo  string     `toml:"mountinfo_file"`
	SysBlock   string     `toml:"sys_block"`
	Mount      bool       `toml:"mount"` // via UDisks2 on the system bus
	DebounceMS int        `toml:"debounce_ms"`
	PollMS     int        `toml:"poll_ms"`
}

type UIConfig struct {
	Language string `toml:"language"`
	Hz       int    `toml:"hz"`
}

type WorkersConfig struct {
	Max int `toml:"max"`
}

type LogConfig struct {
	Level string `toml:"level"`
	// File receives logs when set; the terminal presenter needs one.
	File string `toml:"file"`
}

func Default() Config {
	return Config{
		Display: DisplayConfig{
			Width:  128,
			Height: 64,
			Scale:  4,
			Font:   render.DefaultFont,
		},
		Devices: DevicesConfig{
			Mode:       DeviceModeSys,
			ByIDDir:    "/dev/disk/by-id",
			ByPathDir:  "/dev/disk/by-path",
			ByLabelDir: "/dev/disk/by-label",
			MountInfo:  "/proc/self/mountinfo",
			SysBlock:   "/sys/class/block",
			Mount:      true,
			DebounceMS: 250,
			PollMS:     2000,
		},
		UI: UIConfig{
			Language: "en",
			Hz:       30,
		},
		Workers: WorkersConfig{
			Max: 2,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

func Load(path string, defaults Config) (Config, error) {
	cfg := defaults
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if len(content) == 0 {
		return cfg, nil
	}

	if err := toml.Unmarshal(content, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode toml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if c.Display.Width <= 0 || c.Display.Height <= 0 {
		return fmt.Errorf("display size must be positive, got %dx%d", c.Display.Width, c.Display.Height)
	}
	if c.Display.Scale < 1 {
		return fmt.Errorf("display.scale must be >= 1")
	}
	if _, err := render.LoadFace(c.Display.Font); err != nil {
		return fmt.Errorf("invalid display.font: %w", err)
	}

	switch c.Devices.Mode {
	case DeviceModeSys:
		if strings.TrimSpace(c.Devices.ByIDDir) == "" {
			return errors.New("devices.by_id_dir is required in sys mode")
		}
	case DeviceModeDir:
		if strings.TrimSpace(c.Devices.Root) == "" {
			return errors.New("devices.root is required in dir mode")
		}
	default:
		return fmt.Errorf("invalid devices.mode: %q", c.Devices.Mode)
	}
	if c.Devices.DebounceMS < 0 {
		return errors.New("devices.debounce_ms must be >= 0")
	}
	if c.Devices.PollMS <= 0 {
		return errors.New("devices.poll_ms must be > 0")
	}

	if c.UI.Hz <= 0 || c.UI.Hz > 240 {
		return fmt.Errorf("ui.hz must be in 1..240, got %d", c.UI.Hz)
	}
	if c.Workers.Max < 1 {
		return errors.New("workers.max must be >= 1")
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log.level %q: %w", c.Log.Level, err)
	}
	return nil
}

func (c DevicesConfig) Debounce() time.Duration {
	return time.Duration(c.DebounceMS) * time.Millisecond
}

func (c DevicesConfig) Poll() time.Duration {
	return time.Duration(c.PollMS) * time.Millisecond
}

// Path resolves the config file: flag, then $BONNET_CONFIG, then the
// user config dir.
func Path(flag string) string {
	if p := strings.TrimSpace(flag); p != "" {
		return p
	}
	if p := strings.TrimSpace(os.Getenv("BONNET_CONFIG")); p != "" {
		return p
	}
	return PathFor(os.Getenv("XDG_CONFIG_HOME"), os.Getenv("HOME"))
}

// PathFor is Path's fallback with the environment passed in.
func PathFor(xdgConfigHome, home string) string {
	if xdgConfigHome != "" {
		return filepath.Join(xdgConfigHome, "bonnet", "config.toml")
	}
	if home != "" {
		return filepath.Join(home, ".config", "bonnet", "config.toml")
	}
	return ""
}
