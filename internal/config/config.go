package config

import (
	"path/filepath"
	"time"
)

// FileName is the optional project configuration looked up in the project root.
const FileName = "modwatch.yaml"

type Config struct {
	// Root is the project root every relative path resolves against.
	Root string `yaml:"-"`

	Source  SourceConfig  `yaml:"source"`
	Build   BuildConfig   `yaml:"build"`
	Deploy  DeployConfig  `yaml:"deploy"`
	Watch   WatchConfig   `yaml:"watch"`
	Logging LoggingConfig `yaml:"logging"`
}

type SourceConfig struct {
	Path       string   `yaml:"path"`
	Extensions []string `yaml:"extensions"`
}

type BuildConfig struct {
	Command  []string `yaml:"command"`
	HashFile string   `yaml:"hashFile"`
	LibsDir  string   `yaml:"libsDir"`
	Artifact string   `yaml:"artifact"` // expected output, checked before skipping a build
	LockFile string   `yaml:"lockFile"`
}

type DeployConfig struct {
	ConfigFile string `yaml:"configFile"` // KEY=value file holding MODS_DIR
	Pattern    string `yaml:"pattern"`
	Exclude    string `yaml:"exclude"`
}

type WatchConfig struct {
	Mode           string        `yaml:"mode"`         // "auto", "poll", "fsnotify"
	PollSchedule   string        `yaml:"pollSchedule"` // cron spec or duration, e.g. "@every 1s"
	DebounceWindow time.Duration `yaml:"debounceWindow"`
	Orchestrator   string        `yaml:"orchestrator"` // build-deploy executable
}

type LoggingConfig struct {
	Level  string `yaml:"level"`  // "info", "debug", etc.
	Format string `yaml:"format"` // "json", "console"
}

// Default returns the layout of the mod project rooted at root.
func Default(root string) *Config {
	cfg := &Config{Root: root}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Source.Path == "" {
		c.Source.Path = filepath.Join("mod", "src")
	}
	if len(c.Source.Extensions) == 0 {
		c.Source.Extensions = []string{".java", ".json"}
	}
	if len(c.Build.Command) == 0 {
		c.Build.Command = defaultBuildCommand()
	}
	if c.Build.HashFile == "" {
		c.Build.HashFile = filepath.Join("mod", ".mod-source.sha256.prev")
	}
	if c.Build.LibsDir == "" {
		c.Build.LibsDir = filepath.Join("mod", "build", "libs")
	}
	if c.Build.Artifact == "" {
		c.Build.Artifact = filepath.Join(c.Build.LibsDir, "topzurdo-1.0.0.jar")
	}
	if c.Build.LockFile == "" {
		c.Build.LockFile = filepath.Join("mod", ".build-deploy.lock")
	}
	if c.Deploy.ConfigFile == "" {
		c.Deploy.ConfigFile = filepath.Join("scripts", "deploy.config")
	}
	if c.Deploy.Pattern == "" {
		c.Deploy.Pattern = "topzurdo-*.jar"
	}
	if c.Deploy.Exclude == "" {
		c.Deploy.Exclude = "*-sources.jar"
	}
	if c.Watch.Mode == "" {
		c.Watch.Mode = "auto"
	}
	if c.Watch.PollSchedule == "" {
		c.Watch.PollSchedule = "@every 1s"
	}
	if c.Watch.DebounceWindow <= 0 {
		c.Watch.DebounceWindow = 800 * time.Millisecond
	}
}

// Path resolves p against the project root unless it is already absolute.
func (c *Config) Path(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Root, p)
}

func (c *Config) SourceDir() string    { return c.Path(c.Source.Path) }
func (c *Config) HashFile() string     { return c.Path(c.Build.HashFile) }
func (c *Config) LibsDir() string      { return c.Path(c.Build.LibsDir) }
func (c *Config) ArtifactPath() string { return c.Path(c.Build.Artifact) }
func (c *Config) LockFile() string     { return c.Path(c.Build.LockFile) }
func (c *Config) DeployConfig() string { return c.Path(c.Deploy.ConfigFile) }
