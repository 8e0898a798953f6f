package region

import (
	"fmt"
	"strings"
)

// validateRegions performs structural checks on a region list and returns
// one error describing every problem found.
func validateRegions(regions []Region) error {
	var errs []string

	if len(regions) == 0 {
		errs = append(errs, "no regions defined")
	}

	ids := make(map[string]bool, len(regions))
	orders := make(map[int]string, len(regions))
	for _, r := range regions {
		if r.ID == "" {
			errs = append(errs, "region with empty ID")
			continue
		}
		if ids[r.ID] {
			errs = append(errs, fmt.Sprintf("duplicate region ID: %q", r.ID))
		}
		ids[r.ID] = true

		if r.OrderIndex < 0 {
			errs = append(errs, fmt.Sprintf("region %q has negative order index %d", r.ID, r.OrderIndex))
		}
		if other, ok := orders[r.OrderIndex]; ok {
			errs = append(errs, fmt.Sprintf("regions %q and %q share order index %d", other, r.ID, r.OrderIndex))
		}
		orders[r.OrderIndex] = r.ID

		if r.DisplayName == "" {
			errs = append(errs, fmt.Sprintf("region %q has no display name", r.ID))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("region validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
