package incentives

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// federalScope marks incentives available in every state.
const federalScope = "ALL"

// Catalog is the layered collection of incentives keyed by jurisdiction
// scope. It is immutable after construction and safe to share across
// concurrent evaluations without locking.
type Catalog struct {
	federal []Incentive
	state   map[string][]Incentive
	local   map[string][]Incentive
	utility map[string][]Incentive
}

// NewCatalog builds a catalog from the builtin incentive tables plus any
// extra incentives (typically loaded from a YAML overlay). Extras are
// partitioned by scope: utility provider set routes to the utility layer,
// then locality to the local layer, "ALL" to federal, anything else to the
// incentive's state.
func NewCatalog(extra ...Incentive) *Catalog {
	c := &Catalog{
		federal: builtinFederal(),
		state:   builtinState(),
		local:   builtinLocal(),
		utility: builtinUtility(),
	}

	for _, inc := range extra {
		switch {
		case inc.UtilityProvider != "":
			key := NormalizeUtilityKey(inc.UtilityProvider)
			c.utility[key] = append(c.utility[key], inc)
		case inc.Locality != "":
			key := localityTableKey(inc.Locality, inc.State)
			c.local[key] = append(c.local[key], inc)
		case inc.State == federalScope:
			c.federal = append(c.federal, inc)
		default:
			c.state[inc.State] = append(c.state[inc.State], inc)
		}
	}

	return c
}

// Federal returns all federal-scope incentives.
func (c *Catalog) Federal() []Incentive {
	return copyIncentives(c.federal)
}

// ForState returns incentives for a 2-letter state code. Unknown states
// yield an empty slice, never an error.
func (c *Catalog) ForState(state string) []Incentive {
	return copyIncentives(c.state[state])
}

// ForLocality returns incentives for a city within a state. The lookup key
// is the normalized "city_state" form: lowercase, spaces replaced with
// underscores.
func (c *Catalog) ForLocality(city, state string) []Incentive {
	return copyIncentives(c.local[NormalizeLocalityKey(city, state)])
}

// ForUtility returns incentives offered by a utility provider. The lookup
// key is the provider name lowercased with spaces and ampersands stripped.
func (c *Catalog) ForUtility(provider string) []Incentive {
	return copyIncentives(c.utility[NormalizeUtilityKey(provider)])
}

// Size returns the total number of incentives across all scopes.
func (c *Catalog) Size() int {
	n := len(c.federal)
	for _, incs := range c.state {
		n += len(incs)
	}
	for _, incs := range c.local {
		n += len(incs)
	}
	for _, incs := range c.utility {
		n += len(incs)
	}
	return n
}

// NormalizeLocalityKey builds the local-scope lookup key from a city and
// state: "Fort Myers", "FL" -> "fort_myers_fl".
func NormalizeLocalityKey(city, state string) string {
	c := strings.ReplaceAll(strings.ToLower(city), " ", "_")
	return c + "_" + strings.ToLower(state)
}

// NormalizeUtilityKey builds the utility-scope lookup key from a provider
// name: "Florida Power & Light" -> "floridapowerlight".
func NormalizeUtilityKey(provider string) string {
	k := strings.ToLower(provider)
	k = strings.ReplaceAll(k, " ", "")
	k = strings.ReplaceAll(k, "&", "")
	return k
}

// localityTableKey normalizes a locality name for table partitioning.
// Hyphenated county names fold to underscores so "Miami-Dade"/"FL" lands on
// the same key a "Miami Dade" city lookup produces.
func localityTableKey(locality, state string) string {
	l := strings.ToLower(locality)
	l = strings.ReplaceAll(l, " ", "_")
	l = strings.ReplaceAll(l, "-", "_")
	return l + "_" + strings.ToLower(state)
}

func copyIncentives(incs []Incentive) []Incentive {
	if len(incs) == 0 {
		return nil
	}
	out := make([]Incentive, len(incs))
	copy(out, incs)
	return out
}

// incentiveFile is the YAML overlay document shape.
type incentiveFile struct {
	Incentives []Incentive `yaml:"incentives"`
}

// LoadIncentivesFile reads extra incentives from a YAML overlay file for
// merging into a catalog via NewCatalog. Entries must carry an ID, a name,
// and a state (or "ALL").
func LoadIncentivesFile(path string) ([]Incentive, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading incentives file: %w", err)
	}

	var doc incentiveFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing incentives file %s: %w", path, err)
	}

	for i, inc := range doc.Incentives {
		if inc.ID == "" || inc.Name == "" || inc.State == "" {
			return nil, fmt.Errorf("incentive %d in %s: %w", i, path, ErrIncompleteIncentive)
		}
	}

	return doc.Incentives, nil
}
