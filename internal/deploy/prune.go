package deploy

import (
	"fmt"
	"sort"

	"go.uber.org/multierr"
)

// prune deletes every jar in modsDir matching the artifact pattern, sources
// jars included, so old versions never pile up. All removals are attempted;
// failures are combined.
func (d *Deployer) prune(modsDir string) ([]string, error) {
	stale, err := d.scan(modsDir)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", modsDir, err)
	}
	sort.Slice(stale, func(i, j int) bool { return stale[i].Name < stale[j].Name })

	var removed []string
	var errs error
	for _, a := range stale {
		if err := d.fs.Remove(a.Path); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("removing %s: %w", a.Name, err))
			continue
		}
		removed = append(removed, a.Name)
		fmt.Fprintf(d.out, "Removed old: %s\n", a.Name)
	}
	return removed, errs
}
