package main

import (
	"context"
	"fmt"
	"strings"

	"toniecloud/internal/toniecloud"
)

// findTonie resolves an ID or name to a figurine within the selected
// household. Name matching is case-insensitive and must be unambiguous.
func findTonie(ctx context.Context, cc *commandContext, client *toniecloud.Client, arg string) (toniecloud.CreativeTonie, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return toniecloud.CreativeTonie{}, fmt.Errorf("creative tonie id or name is required")
	}

	household, err := cc.household(ctx, client)
	if err != nil {
		return toniecloud.CreativeTonie{}, err
	}
	tonies, err := client.CreativeTonies(ctx, household)
	if err != nil {
		return toniecloud.CreativeTonie{}, err
	}

	var matches []toniecloud.CreativeTonie
	for _, tonie := range tonies {
		if tonie.ID == arg {
			return tonie, nil
		}
		if strings.EqualFold(tonie.Name, arg) {
			matches = append(matches, tonie)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return toniecloud.CreativeTonie{}, fmt.Errorf("creative tonie %q not found in household %s", arg, household.Name)
	default:
		return toniecloud.CreativeTonie{}, fmt.Errorf("creative tonie name %q is ambiguous (%d matches); use the id", arg, len(matches))
	}
}

// formatSeconds renders a duration in seconds as m:ss.
func formatSeconds(seconds float64) string {
	total := int(seconds + 0.5)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
