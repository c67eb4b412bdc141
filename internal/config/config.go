package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/waabox/pipelinedeck/internal/notify"
	"github.com/waabox/pipelinedeck/internal/sim"
)

// ActivityConfig tunes the background activity simulator.
// Thresholds are pointers so that an explicit 0 is distinguishable from "unset".
type ActivityConfig struct {
	PeriodMS             int      `toml:"period_ms"`
	BuildsThreshold      *float64 `toml:"builds_threshold"`
	ScansThreshold       *float64 `toml:"scans_threshold"`
	DeploymentsThreshold *float64 `toml:"deployments_threshold"`
}

// RunConfig tunes the foreground run choreography.
type RunConfig struct {
	StepIntervalMS int `toml:"step_interval_ms"`
	PulseMS        int `toml:"pulse_ms"`
	DurationMS     int `toml:"duration_ms"`
}

// NotificationConfig tunes toast lifetimes.
type NotificationConfig struct {
	VisibleMS int `toml:"visible_ms"`
	ExitMS    int `toml:"exit_ms"`
}

// Config holds all pipelinedeck configuration.
type Config struct {
	Store        string             `toml:"store"`
	LogLevel     string             `toml:"log_level"`
	LogFile      string             `toml:"log_file"`
	Steps        []string           `toml:"steps"`
	Activity     ActivityConfig     `toml:"activity"`
	Run          RunConfig          `toml:"run"`
	Notification NotificationConfig `toml:"notification"`
}

const defaultLogLevel = "info"

// StoreOrDefault returns Store if set, otherwise a sqlite database under the user data dir.
func (c Config) StoreOrDefault() string {
	if c.Store != "" {
		return c.Store
	}
	return filepath.Join(dataDir(), "counters.db")
}

// LogLevelOrDefault returns LogLevel if set, otherwise "info".
func (c Config) LogLevelOrDefault() string {
	if c.LogLevel != "" {
		return c.LogLevel
	}
	return defaultLogLevel
}

// LogFileOrDefault returns LogFile if set, otherwise a file under the user state dir.
func (c Config) LogFileOrDefault() string {
	if c.LogFile != "" {
		return c.LogFile
	}
	return filepath.Join(stateDir(), "pipelinedeck.log")
}

// StepsOrDefault returns Steps if any are configured, otherwise sim.DefaultSteps.
func (c Config) StepsOrDefault() []string {
	if len(c.Steps) > 0 {
		return c.Steps
	}
	return append([]string(nil), sim.DefaultSteps...)
}

// ActivityOrDefault converts the [activity] section, filling unset values from the defaults.
func (c Config) ActivityOrDefault() sim.ActivityOptions {
	thresholds := sim.DefaultThresholds()
	if c.Activity.BuildsThreshold != nil {
		thresholds.Builds = *c.Activity.BuildsThreshold
	}
	if c.Activity.ScansThreshold != nil {
		thresholds.Scans = *c.Activity.ScansThreshold
	}
	if c.Activity.DeploymentsThreshold != nil {
		thresholds.Deployments = *c.Activity.DeploymentsThreshold
	}
	return sim.ActivityOptions{
		Period:     millisOr(c.Activity.PeriodMS, sim.DefaultActivityPeriod),
		Thresholds: thresholds,
	}
}

// RunOrDefault converts the [run] section, filling unset values from the defaults.
func (c Config) RunOrDefault() sim.Timings {
	d := sim.DefaultTimings()
	return sim.Timings{
		StepInterval:  millisOr(c.Run.StepIntervalMS, d.StepInterval),
		PulseDuration: millisOr(c.Run.PulseMS, d.PulseDuration),
		RunDuration:   millisOr(c.Run.DurationMS, d.RunDuration),
	}
}

// NotificationOrDefault converts the [notification] section, filling unset values from the defaults.
func (c Config) NotificationOrDefault() notify.Timings {
	d := notify.DefaultTimings()
	return notify.Timings{
		Visible: millisOr(c.Notification.VisibleMS, d.Visible),
		Exit:    millisOr(c.Notification.ExitMS, d.Exit),
	}
}

// EngineOptions assembles the simulation options described by the config.
func (c Config) EngineOptions() sim.Options {
	return sim.Options{
		Steps:        c.StepsOrDefault(),
		Activity:     c.ActivityOrDefault(),
		Run:          c.RunOrDefault(),
		Notification: c.NotificationOrDefault(),
	}
}

// Defaults returns a config with every setting spelled out at its default value.
func Defaults() Config {
	thresholds := sim.DefaultThresholds()
	run := sim.DefaultTimings()
	notification := notify.DefaultTimings()
	var empty Config
	return Config{
		Store:    empty.StoreOrDefault(),
		LogLevel: empty.LogLevelOrDefault(),
		LogFile:  empty.LogFileOrDefault(),
		Steps:    empty.StepsOrDefault(),
		Activity: ActivityConfig{
			PeriodMS:             int(sim.DefaultActivityPeriod.Milliseconds()),
			BuildsThreshold:      &thresholds.Builds,
			ScansThreshold:       &thresholds.Scans,
			DeploymentsThreshold: &thresholds.Deployments,
		},
		Run: RunConfig{
			StepIntervalMS: int(run.StepInterval.Milliseconds()),
			PulseMS:        int(run.PulseDuration.Milliseconds()),
			DurationMS:     int(run.RunDuration.Milliseconds()),
		},
		Notification: NotificationConfig{
			VisibleMS: int(notification.Visible.Milliseconds()),
			ExitMS:    int(notification.Exit.Milliseconds()),
		},
	}
}

// LoadFrom reads configuration from the given TOML file path.
// If the file does not exist, it returns an empty config without error.
// Environment variables always take precedence over file values:
//   - PIPELINEDECK_STORE     overrides store
//   - PIPELINEDECK_LOG_LEVEL overrides log_level
func LoadFrom(path string) (Config, error) {
	var cfg Config
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	applyEnvOverrides(&cfg)
	return cfg, nil
}

// DefaultConfigPath returns the default path for the pipelinedeck config file.
func DefaultConfigPath() string {
	home, _ := os.UserHomeDir()
	return home + "/.config/pipelinedeck/config.toml"
}

func dataDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "pipelinedeck")
}

func stateDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "state", "pipelinedeck")
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PIPELINEDECK_STORE"); v != "" {
		cfg.Store = v
	}
	if v := os.Getenv("PIPELINEDECK_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
}

func millisOr(ms int, fallback time.Duration) time.Duration {
	if ms > 0 {
		return time.Duration(ms) * time.Millisecond
	}
	return fallback
}

// Save writes cfg to the given TOML file path, creating parent directories as needed.
// Existing file contents are overwritten. Permissions on the written file are 0600.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("opening config file: %w", err)
	}
	if encErr := toml.NewEncoder(f).Encode(cfg); encErr != nil {
		f.Close()
		return encErr
	}
	return f.Close()
}
