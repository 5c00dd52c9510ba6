package config

import (
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/makazi-lab/makazi/pkg/service/catalog"
)

// Catalog holds CLI flags for the property catalog
type Catalog struct {
	path string
}

// Flags returns CLI flags for catalog configuration
func (x *Catalog) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "property-data",
			Usage:       "Path to the property listings JSON file",
			Value:       "properties_data.json",
			Sources:     cli.EnvVars("MAKAZI_PROPERTY_DATA"),
			Destination: &x.path,
		},
	}
}

// LogAttrs returns log attributes for the catalog configuration
func (x *Catalog) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.String("path", x.path),
	}
}

// Configure builds the property catalog. The file is not read until first
// use, so a missing file degrades recommendations instead of failing start.
func (x *Catalog) Configure() *catalog.Catalog {
	return catalog.New(x.path)
}
