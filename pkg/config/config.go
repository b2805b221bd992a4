// Package config loads the ambient session configuration the CLI host
// uses to build a Grid/Agent/Planner triple: the grid source, its
// declared width, the coverage target, and the move budget. It uses
// viper to resolve defaults/file/environment into a settings map, then
// round-trips that map through yaml.v3 into the typed Session, the way
// the rest of this pack's server-style code (see niceyeti-tabular's
// reinforcement.FromYaml, which marshals viper's decoded Def back to
// YAML bytes and unmarshals those into its typed config) avoids
// depending on viper's own mapstructure decoding.
package config

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Session is the resolved configuration for one planning run. Fields
// mirror the Planner's constructor arguments plus the I/O details a
// library caller of pkg/planner would otherwise have to wire by hand.
//
// Clamping of SearchFraction/MoveLimit happens in planner.New, not
// here, so a caller that builds a Session by hand (bypassing this
// package entirely) still gets the same clamping guarantee.
type Session struct {
	GridPath       string  `yaml:"grid_path"`
	DeclaredWidth  int     `yaml:"declared_width"`
	SearchFraction float64 `yaml:"search_fraction"`
	MoveLimit      int     `yaml:"move_limit"`
	Verbose        bool    `yaml:"verbose"`
}

// defaults lie within the Planner's own clamping bounds, so a Session
// built with no file and no environment overrides is already valid.
func defaults() Session {
	return Session{
		SearchFraction: 1.0,
		MoveLimit:      10000,
	}
}

// Load resolves a Session from, in increasing precedence: built-in
// defaults, an optional YAML file at configPath (skipped if configPath
// is empty; a named file that cannot be read is an error), and
// COVERAGE_ROUTER_-prefixed environment variables. CLI
// flags are applied by the caller afterward, so an explicit flag always
// wins over the file or the environment.
func Load(configPath string) (Session, error) {
	sess := defaults()

	v := viper.New()
	v.SetDefault("grid_path", sess.GridPath)
	v.SetDefault("declared_width", sess.DeclaredWidth)
	v.SetDefault("search_fraction", sess.SearchFraction)
	v.SetDefault("move_limit", sess.MoveLimit)
	v.SetDefault("verbose", sess.Verbose)
	// Environment values arrive as strings; casting them to each key's
	// default type keeps the YAML round-trip below from rejecting them.
	v.SetTypeByDefaultValue(true)

	v.SetEnvPrefix("COVERAGE_ROUTER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Session{}, errors.Wrapf(err, "config: reading %q", configPath)
		}
	}

	spec, err := yaml.Marshal(v.AllSettings())
	if err != nil {
		return Session{}, errors.Wrap(err, "config: marshaling resolved settings")
	}
	if err := yaml.Unmarshal(spec, &sess); err != nil {
		return Session{}, errors.Wrap(err, "config: unmarshaling session")
	}

	return sess, nil
}
