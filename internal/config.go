package internal

import (
	"errors"
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/folio/internal/models"
)

// Log formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Config represents the application configuration.
type Config struct {
	App       ApplicationConfig `yaml:"app"`
	Repo      RepoConfig        `yaml:"repo"`
	Migration MigrationConfig   `yaml:"migration"`
	Journal   JournalConfig     `yaml:"journal"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return fmt.Errorf("app: %w", err)
	}
	if err := c.Repo.Validate(); err != nil {
		return fmt.Errorf("repo: %w", err)
	}
	if err := c.Migration.Validate(); err != nil {
		return fmt.Errorf("migration: %w", err)
	}
	if err := c.Journal.Validate(); err != nil {
		return fmt.Errorf("journal: %w", err)
	}
	return nil
}

// Layout returns the repository layout described by the configuration.
func (c *Config) Layout() models.Layout {
	return models.Layout{
		ArticlesDir:    c.Repo.ArticlesDir,
		ImagesDir:      c.Repo.ImagesDir,
		IconsDir:       c.Repo.IconsDir,
		LogosDir:       c.Migration.LogosDir,
		WidgetsDir:     c.Repo.WidgetsDir,
		CategoriesFile: c.Repo.CategoriesFile,
		DatesFile:      c.Repo.DatesFile,
		MappingFile:    c.Repo.MappingFile,
	}
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel  slog.Level `yaml:"log_level"`
	LogFormat string     `yaml:"log_format"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	if c.LogFormat == "" {
		c.LogFormat = LogFormatText
	}
	return validation.ValidateStruct(c,
		validation.Field(&c.LogFormat, validation.In(LogFormatText, LogFormatJSON)),
	)
}

// RepoConfig locates the content repository and its parts. Every path except
// Root is relative to Root.
type RepoConfig struct {
	Root           string `yaml:"root"`
	ArticlesDir    string `yaml:"articles_dir"`
	ImagesDir      string `yaml:"images_dir"`
	IconsDir       string `yaml:"icons_dir"`
	WidgetsDir     string `yaml:"widgets_dir"`
	CategoriesFile string `yaml:"categories_file"`
	DatesFile      string `yaml:"dates_file"`
	MappingFile    string `yaml:"mapping_file"`
}

// Validate validates the repository configuration.
func (c *RepoConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Root, validation.Required),
		validation.Field(&c.ArticlesDir, validation.Required),
		validation.Field(&c.ImagesDir, validation.Required),
		validation.Field(&c.IconsDir, validation.Required),
		validation.Field(&c.WidgetsDir, validation.Required),
		validation.Field(&c.CategoriesFile, validation.Required),
		validation.Field(&c.DatesFile, validation.Required),
		validation.Field(&c.MappingFile, validation.Required),
	)
}

// MigrationConfig tunes the migration.
type MigrationConfig struct {
	DevOrigin       string   `yaml:"dev_origin"`
	LogosDir        string   `yaml:"logos_dir"`
	IconPlaceholder string   `yaml:"icon_placeholder"`
	ShortTitleWidth int      `yaml:"short_title_width"`
	StagingSuffix   string   `yaml:"staging_suffix"`
	BackupSuffix    string   `yaml:"backup_suffix"`
	RootImages      []string `yaml:"root_images"`
}

// Validate validates the migration configuration.
func (c *MigrationConfig) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.LogosDir, validation.Required),
		validation.Field(&c.IconPlaceholder, validation.Required),
		validation.Field(&c.ShortTitleWidth, validation.Required, validation.Min(1)),
		validation.Field(&c.StagingSuffix, validation.Required),
		validation.Field(&c.BackupSuffix, validation.Required),
	); err != nil {
		return err
	}
	if c.StagingSuffix == c.BackupSuffix {
		return errors.New("staging_suffix and backup_suffix must differ")
	}
	return nil
}

// JournalConfig locates the swap journal database. A relative path is
// resolved against the repository root.
type JournalConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the journal configuration.
func (c *JournalConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel:  slog.LevelInfo,
			LogFormat: LogFormatText,
		},
		Repo: RepoConfig{
			Root:           ".",
			ArticlesDir:    "articles",
			ImagesDir:      "images",
			IconsDir:       "categoryIcons",
			WidgetsDir:     "widgets",
			CategoriesFile: "articles/categories.yaml",
			DatesFile:      "dates.yaml",
			MappingFile:    "category-article-mapping.yml",
		},
		Migration: MigrationConfig{
			DevOrigin:       "http://localhost:3000",
			LogosDir:        "categoryLogos",
			IconPlaceholder: "no-image.svg",
			ShortTitleWidth: 20,
			StagingSuffix:   "_new",
			BackupSuffix:    "_old",
			RootImages:      []string{"activity.svg", "analogHubMainLogo.svg", "analogHubSmallLogo.svg"},
		},
		Journal: JournalConfig{
			Path: ".folio-journal.db",
		},
	}
}
