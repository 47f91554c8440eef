package config

import (
	"log/slog"
	"os"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	domainConfig "github.com/secmon-lab/safetydocs/pkg/domain/model/config"
	"github.com/urfave/cli/v3"
)

// maxRiskScale bounds risk_scale_max
const maxRiskScale = 10

// AppConfig represents the application configuration file
type AppConfig struct {
	RiskScaleMax int       `toml:"risk_scale_max"`
	Areas        []Area    `toml:"area"`
	Briefing     *Briefing `toml:"briefing"`
}

// Area is seeded at startup when no area with the same name exists
type Area struct {
	Name        string `toml:"name"`
	Description string `toml:"description"`
	SortOrder   int    `toml:"sort_order"`
}

// Validate checks if the Area is valid
func (a *Area) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return goerr.Wrap(ErrInvalidConfig, "area name is required")
	}
	return nil
}

// Briefing overrides the text of generated briefings. Empty fields keep
// the built-in default.
type Briefing struct {
	Title              string         `toml:"title"`
	Organisation       string         `toml:"organisation"`
	AllgemeineHinweise string         `toml:"allgemeine_hinweise"`
	NotfaelleRaeumung  string         `toml:"notfaelle_raeumung"`
	ZusaetzlicheRegeln string         `toml:"zusaetzliche_regeln"`
	Items              []BriefingItem `toml:"item"`
}

type BriefingItem struct {
	Section string `toml:"section"`
	Icon    string `toml:"icon"`
	Text    string `toml:"text"`
}

// Validate checks if the Briefing is valid
func (b *Briefing) Validate() error {
	for i, item := range b.Items {
		if strings.TrimSpace(item.Text) == "" {
			return goerr.Wrap(ErrInvalidConfig, "briefing item text is required", goerr.V("index", i))
		}
	}
	return nil
}

// Validate checks if the AppConfig is valid
func (a *AppConfig) Validate() error {
	if a.RiskScaleMax < 0 || a.RiskScaleMax > maxRiskScale {
		return goerr.Wrap(ErrInvalidConfig, "risk_scale_max out of range",
			goerr.V("risk_scale_max", a.RiskScaleMax),
			goerr.V("max", maxRiskScale))
	}

	names := make(map[string]bool)
	for _, area := range a.Areas {
		if err := area.Validate(); err != nil {
			return goerr.Wrap(err, "invalid area")
		}
		key := strings.ToLower(strings.TrimSpace(area.Name))
		if names[key] {
			return goerr.Wrap(ErrInvalidConfig, "duplicate area name", goerr.V("name", area.Name))
		}
		names[key] = true
	}

	if a.Briefing != nil {
		if err := a.Briefing.Validate(); err != nil {
			return goerr.Wrap(err, "invalid briefing")
		}
	}

	return nil
}

// LoadAppConfiguration loads the application configuration from a TOML file
func LoadAppConfiguration(path string) (*AppConfig, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V(ConfigPathKey, path))
	}

	var config AppConfig
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, goerr.Wrap(ErrInvalidConfig, "failed to parse TOML config",
			goerr.V(ConfigPathKey, path),
			goerr.V("error", err.Error()))
	}

	if err := config.Validate(); err != nil {
		return nil, goerr.Wrap(err, "config validation failed", goerr.V(ConfigPathKey, path))
	}

	return &config, nil
}

// ToDomainSettings merges the file over the built-in settings
func (a *AppConfig) ToDomainSettings() *domainConfig.Settings {
	settings := domainConfig.Default()
	if a.RiskScaleMax > 0 {
		settings.RiskScaleMax = a.RiskScaleMax
	}

	settings.Areas = make([]domainConfig.AreaSeed, len(a.Areas))
	for i, area := range a.Areas {
		settings.Areas[i] = domainConfig.AreaSeed{
			Name:        strings.TrimSpace(area.Name),
			Description: area.Description,
			SortOrder:   area.SortOrder,
		}
	}

	if b := a.Briefing; b != nil {
		override(&settings.Briefing.Title, b.Title)
		override(&settings.Briefing.Organisation, b.Organisation)
		override(&settings.Briefing.AllgemeineHinweise, b.AllgemeineHinweise)
		override(&settings.Briefing.NotfaelleRaeumung, b.NotfaelleRaeumung)
		override(&settings.Briefing.ZusaetzlicheRegeln, b.ZusaetzlicheRegeln)

		if len(b.Items) > 0 {
			settings.Briefing.Items = make([]domainConfig.BriefingItem, len(b.Items))
			for i, item := range b.Items {
				settings.Briefing.Items[i] = domainConfig.BriefingItem{
					Section: item.Section,
					Icon:    item.Icon,
					Text:    item.Text,
				}
			}
		}
	}

	return settings
}

func override(dst *string, v string) {
	if strings.TrimSpace(v) != "" {
		*dst = v
	}
}

// App holds the path of the application config file
type App struct {
	path string
}

func (x *App) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Path to the TOML application config file",
			Sources:     cli.EnvVars("SAFETYDOCS_CONFIG"),
			Destination: &x.path,
		},
	}
}

func (x App) LogValue() slog.Value {
	return slog.GroupValue(slog.String("path", x.path))
}

// Configure loads the settings. Without a config file the built-in
// settings are used.
func (x *App) Configure() (*domainConfig.Settings, error) {
	if x.path == "" {
		return domainConfig.Default(), nil
	}

	cfg, err := LoadAppConfiguration(x.path)
	if err != nil {
		return nil, err
	}
	return cfg.ToDomainSettings(), nil
}
