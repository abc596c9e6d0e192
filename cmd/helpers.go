package cmd

import (
	"fmt"

	"github.com/veldt-labs/cropsight/internal/climate"
	"github.com/veldt-labs/cropsight/internal/dataset"
)

// buildSelection turns country/year flags into a request-scoped filter
// selection. The year flag only applies when the user actually set it, so a
// dataset containing year 0 still filters correctly.
func buildSelection(country string, year int, yearSet bool) climate.Selection {
	sel := climate.Selection{Country: country}
	if yearSet {
		sel.Year = &year
	}
	return sel
}

// loadOptions assembles dataset options from shared flags and config.
func loadOptions(delimiter, policy string) (dataset.Options, error) {
	opt := dataset.DefaultOptions()
	switch delimiter {
	case "":
	case ",":
		opt.Delimiter = ','
	case ";":
		opt.Delimiter = ';'
	case "\t", "tab":
		opt.Delimiter = '\t'
	default:
		return opt, fmt.Errorf("unsupported --delimiter: %s", delimiter)
	}
	if policy == "" && cfg != nil {
		policy = cfg.NumericPolicy
	}
	p, err := dataset.ParsePolicy(policy)
	if err != nil {
		return opt, err
	}
	opt.NumericPolicy = p
	return opt, nil
}
