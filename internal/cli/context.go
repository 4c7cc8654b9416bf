package cli

import (
	"errors"
	"fmt"
	"slices"

	"github.com/modforge/modforge/internal/config"
	"github.com/modforge/modforge/internal/naming"
	"github.com/modforge/modforge/internal/project"
	"github.com/modforge/modforge/internal/rename"
	"github.com/modforge/modforge/internal/ui"
)

const configFileHint = config.FileName

// loadConfig loads the project config and applies --mod-id / --package.
// A missing config file is accepted when both overrides are given.
func (g *globalOptions) loadConfig(root string) (*config.Config, []Warning, error) {
	cfg, err := config.Load(root)
	switch {
	case errors.Is(err, config.ErrConfigNotFound) && g.modID != "" && g.packageName != "":
		cfg = &config.Config{}
	case err != nil:
		return nil, nil, withCode(ErrConfigInvalid, err)
	}

	var warnings []Warning
	override := func(field, current, value string) string {
		if value == "" {
			return current
		}
		if current != "" && current != value {
			warnings = append(warnings, Warning{
				Code:    WarnConfigOverridden,
				Message: fmt.Sprintf("%s %q from %s overridden with %q", field, current, config.FileName, value),
			})
		}
		return value
	}
	cfg.ModID = override("mod_id", cfg.ModID, g.modID)
	cfg.PackageName = override("package_name", cfg.PackageName, g.packageName)

	if err := cfg.Validate(); err != nil {
		return nil, warnings, withCode(ErrConfigInvalid, err)
	}
	return cfg, append(warnings, loaderWarnings(root, cfg)...), nil
}

// loaderWarnings flags loader modules under shared/ that the config does not
// list. They are still searched.
func loaderWarnings(root string, cfg *config.Config) []Warning {
	present, err := project.Loaders(root)
	if err != nil {
		ui.Logger.Debug("failed to list loader modules", "err", err)
		return nil
	}
	configured := cfg.LoaderNames()

	var warnings []Warning
	for _, loader := range present {
		if !slices.Contains(configured, loader) {
			warnings = append(warnings, Warning{
				Code:    WarnLoaderNotConfigured,
				Message: fmt.Sprintf("loader module shared/%s is not listed in %s loaders", loader, config.FileName),
			})
		}
	}
	return warnings
}

// contextOptions are the per-command inputs of a rename context.
type contextOptions struct {
	versionScope string
	dryRun       bool
	force        bool
}

func newContext(root string, cfg *config.Config, kind rename.Kind, oldName, newName string, opts contextOptions) *rename.Context {
	return &rename.Context{
		ProjectRoot:  root,
		ModID:        cfg.ModID,
		PackageName:  cfg.PackageName,
		Kind:         kind,
		OldName:      componentName(kind, oldName),
		NewName:      componentName(kind, newName),
		VersionScope: opts.versionScope,
		DryRun:       opts.dryRun,
		Force:        opts.force,
		Exclude:      cfg.Rename.Exclude,
	}
}

// componentName maps free-form component names ("Ruby Sword", "RubySword")
// onto registry IDs. Mod IDs and packages are taken as typed.
func componentName(kind rename.Kind, name string) string {
	if !kind.IsComponent() || naming.IsValidID(name) {
		return name
	}
	return naming.NormalizeID(name)
}

// parseKind parses a kind argument, tagging failures as invalid input.
func parseKind(arg string) (rename.Kind, error) {
	kind, err := rename.ParseKind(arg)
	if err != nil {
		return "", withCode(ErrInvalidInput, err)
	}
	return kind, nil
}
