// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"lexiscan/internal/extractors"
	"lexiscan/internal/paths"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// OutputFormats lists the output format names the CLI accepts
var OutputFormats = []string{"json", "yaml", "csv", "text"}

// Settings are the scan settings shared by defaults and profiles
type Settings struct {
	Format          string   `yaml:"format"`
	Language        string   `yaml:"language"`
	Formats         []string `yaml:"formats"`
	Top             int      `yaml:"top"`
	MinConfidence   float64  `yaml:"min_confidence"`
	ContinueOnError bool     `yaml:"continue_on_error"`
	Verbose         bool     `yaml:"verbose"`
	Debug           bool     `yaml:"debug"`
	NoColor         bool     `yaml:"no_color"`
}

// Detection configures the language detector
type Detection struct {
	// Languages restricts the candidate languages; empty means all. The
	// target language is always a candidate.
	Languages   []string `yaml:"languages"`
	Preload     bool     `yaml:"preload"`
	LowAccuracy bool     `yaml:"low_accuracy"`
}

// StopWords configures the stop-word list of the target language
type StopWords struct {
	// File replaces the bundled list for the target language
	File string `yaml:"file"`
	// Extra words are removed in addition to the list
	Extra []string `yaml:"extra"`
}

// Config represents the application configuration
type Config struct {
	// Default settings
	Defaults  Settings  `yaml:"defaults"`
	Detection Detection `yaml:"detection"`
	StopWords StopWords `yaml:"stopwords"`

	// Profiles for different scanning scenarios
	Profiles map[string]Profile `yaml:"profiles"`
}

// Profile represents a named set of overrides. Zero values leave the
// defaults untouched.
type Profile struct {
	Description     string     `yaml:"description"`
	Format          string     `yaml:"format"`
	Language        string     `yaml:"language"`
	Formats         []string   `yaml:"formats"`
	Top             int        `yaml:"top"`
	MinConfidence   float64    `yaml:"min_confidence"`
	ContinueOnError bool       `yaml:"continue_on_error"`
	Verbose         bool       `yaml:"verbose"`
	Debug           bool       `yaml:"debug"`
	NoColor         bool       `yaml:"no_color"`
	Detection       *Detection `yaml:"detection,omitempty"`
	StopWords       *StopWords `yaml:"stopwords,omitempty"`
}

// Default returns the built-in configuration
func Default() *Config {
	config := &Config{
		Profiles: make(map[string]Profile),
	}

	config.Defaults.Format = "json"
	config.Defaults.Language = "ja"
	config.Defaults.Formats = []string{"xlsx", "pptx", "docx"}

	config.Profiles["report"] = Profile{
		Description: "Colored table of the 50 most frequent words",
		Format:      "text",
		Top:         50,
		Verbose:     true,
	}
	config.Profiles["english"] = Profile{
		Description: "Count English documents instead of Japanese ones",
		Language:    "en",
	}
	config.Profiles["all-formats"] = Profile{
		Description:     "Include PDF files and keep going past unreadable documents",
		Formats:         []string{"xlsx", "pptx", "docx", "pdf"},
		ContinueOnError: true,
	}

	return config
}

// LoadConfig loads configuration from the specified file path. An empty path
// returns the defaults.
func LoadConfig(configPath string) (*Config, error) {
	config := Default()

	// If no config file specified, return default config
	if configPath == "" {
		return config, nil
	}

	cleanPath := filepath.Clean(paths.NormalizePath(configPath))
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}
	if config.Profiles == nil {
		config.Profiles = make(map[string]Profile)
	}

	if err := ValidateConfig(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// FindConfigFile looks for a configuration file in the standard locations:
// ./lexiscan.yaml, ./.lexiscan.yaml, the user config directory and
// ~/.lexiscan.yaml. It returns "" when none exists.
func FindConfigFile() string {
	candidates := []string{
		"lexiscan.yaml",
		"lexiscan.yml",
		".lexiscan.yaml",
		".lexiscan.yml",
		paths.GetConfigFile(),
		paths.GetHomeConfigFile(),
	}
	for _, candidate := range candidates {
		if candidate != "" && fileExists(candidate) {
			return candidate
		}
	}
	return ""
}

// fileExists checks if a file exists and is not a directory
func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// LoadConfigOrDefault loads configFile, or the first file FindConfigFile
// finds when configFile is empty. With no file anywhere the defaults are
// returned. It also returns the path that was loaded.
func LoadConfigOrDefault(configFile string) (*Config, string, error) {
	configPath := configFile
	if configPath == "" {
		configPath = FindConfigFile()
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		return nil, configPath, err
	}
	return cfg, configPath, nil
}

// ListProfiles returns the available profile names, sorted
func (c *Config) ListProfiles() []string {
	profiles := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		profiles = append(profiles, name)
	}
	sort.Strings(profiles)
	return profiles
}

// GetProfile returns a profile by name, or nil if not found
func (c *Config) GetProfile(name string) *Profile {
	if profile, exists := c.Profiles[name]; exists {
		return &profile
	}
	return nil
}

// Resolve returns the defaults with the named profile applied. An empty name
// returns the defaults unchanged.
func (c *Config) Resolve(profileName string) (Settings, Detection, StopWords, error) {
	settings := c.Defaults
	settings.Formats = append([]string(nil), c.Defaults.Formats...)
	detection := c.Detection
	stop := c.StopWords

	if profileName == "" {
		return settings, detection, stop, nil
	}
	profile := c.GetProfile(profileName)
	if profile == nil {
		return settings, detection, stop, fmt.Errorf("profile %q not found (available: %s)",
			profileName, strings.Join(c.ListProfiles(), ", "))
	}

	profile.apply(&settings)
	if profile.Detection != nil {
		detection = *profile.Detection
	}
	if profile.StopWords != nil {
		stop = *profile.StopWords
	}
	return settings, detection, stop, nil
}

func (p *Profile) apply(s *Settings) {
	if p.Format != "" {
		s.Format = p.Format
	}
	if p.Language != "" {
		s.Language = p.Language
	}
	if len(p.Formats) > 0 {
		s.Formats = append([]string(nil), p.Formats...)
	}
	if p.Top > 0 {
		s.Top = p.Top
	}
	if p.MinConfidence > 0 {
		s.MinConfidence = p.MinConfidence
	}
	if p.ContinueOnError {
		s.ContinueOnError = true
	}
	if p.Verbose {
		s.Verbose = true
	}
	if p.Debug {
		s.Debug = true
	}
	if p.NoColor {
		s.NoColor = true
	}
}

// CanonicalLanguage validates a BCP 47 language tag and returns its base
// language as an ISO 639 code ("ja-JP" becomes "ja")
func CanonicalLanguage(tag string) (string, error) {
	parsed, err := language.Parse(strings.TrimSpace(tag))
	if err != nil {
		return "", fmt.Errorf("invalid language %q: %w", tag, err)
	}
	base, confidence := parsed.Base()
	if confidence == language.No {
		return "", fmt.Errorf("invalid language %q: no base language", tag)
	}
	return base.String(), nil
}

// ValidateSettings checks a resolved set of settings
func ValidateSettings(s Settings) error {
	var errs []error

	if s.Format != "" && !isOutputFormat(s.Format) {
		errs = append(errs, fmt.Errorf("unknown output format %q (expected one of %s)",
			s.Format, strings.Join(OutputFormats, ", ")))
	}
	if s.Language != "" {
		if _, err := CanonicalLanguage(s.Language); err != nil {
			errs = append(errs, err)
		}
	}
	if _, err := extractors.ParseFormats(s.Formats); err != nil {
		errs = append(errs, err)
	}
	if s.Top < 0 {
		errs = append(errs, fmt.Errorf("top must not be negative, got %d", s.Top))
	}
	if s.MinConfidence < 0 || s.MinConfidence > 1 {
		errs = append(errs, fmt.Errorf("min_confidence must be between 0 and 1, got %v", s.MinConfidence))
	}

	return errors.Join(errs...)
}

// ValidateConfig validates defaults, detection settings and every profile
func ValidateConfig(config *Config) error {
	if config == nil {
		return fmt.Errorf("configuration cannot be nil")
	}

	if err := ValidateSettings(config.Defaults); err != nil {
		return fmt.Errorf("defaults: %w", err)
	}
	if err := validateDetection(config.Detection); err != nil {
		return fmt.Errorf("detection: %w", err)
	}
	if err := paths.ValidatePath(config.StopWords.File); err != nil {
		return fmt.Errorf("stopwords: %w", err)
	}

	for _, name := range config.ListProfiles() {
		profile := config.Profiles[name]
		settings := config.Defaults
		profile.apply(&settings)
		if err := ValidateSettings(settings); err != nil {
			return fmt.Errorf("profile '%s': %w", name, err)
		}
		if profile.Detection != nil {
			if err := validateDetection(*profile.Detection); err != nil {
				return fmt.Errorf("profile '%s' detection: %w", name, err)
			}
		}
		if profile.StopWords != nil {
			if err := paths.ValidatePath(profile.StopWords.File); err != nil {
				return fmt.Errorf("profile '%s' stopwords: %w", name, err)
			}
		}
	}

	return nil
}

func validateDetection(d Detection) error {
	_, err := d.Candidates("")
	return err
}

// Candidates returns the detector's candidate languages as canonical ISO 639
// codes, with target added when the list leaves it out. An empty list means
// every language and is returned as nil.
func (d Detection) Candidates(target string) ([]string, error) {
	if len(d.Languages) == 0 {
		return nil, nil
	}
	seen := make(map[string]bool)
	var languages []string
	add := func(tag string) error {
		lang, err := CanonicalLanguage(tag)
		if err != nil {
			return err
		}
		if !seen[lang] {
			seen[lang] = true
			languages = append(languages, lang)
		}
		return nil
	}
	for _, tag := range d.Languages {
		if err := add(tag); err != nil {
			return nil, err
		}
	}
	if target != "" {
		if err := add(target); err != nil {
			return nil, err
		}
	}
	return languages, nil
}

func isOutputFormat(name string) bool {
	for _, format := range OutputFormats {
		if strings.EqualFold(name, format) {
			return true
		}
	}
	return false
}
