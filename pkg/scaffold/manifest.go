package scaffold

import (
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/olimci/sprout/pkg/version"
)

// ManifestFile is the optional template description at a template's root. It
// is never copied into the project.
const ManifestFile = "template.toml"

var ErrIncompatibleTemplate = errors.New("template is incompatible with this version of sprout")

// Manifest is the decoded ManifestFile.
type Manifest struct {
	Name        string `toml:"name"`
	Description string `toml:"description"`

	// Requires is a semver constraint on the sprout version, e.g. ">= 0.3".
	Requires string `toml:"requires"`

	Ignore  []string          `toml:"ignore"`
	Renames map[string]string `toml:"renames"`
}

// readManifest returns nil without error when the template has no manifest.
func readManifest(fsys fs.FS) (*Manifest, error) {
	data, err := fs.ReadFile(fsys, ManifestFile)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", ManifestFile, err)
	}

	var m Manifest
	md, err := toml.Decode(string(data), &m)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", ManifestFile, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		slices.Sort(keys)
		return nil, fmt.Errorf("unknown keys in %s: %s", ManifestFile, strings.Join(keys, ", "))
	}

	if m.Renames == nil {
		m.Renames = make(map[string]string)
	}

	return &m, nil
}

// CheckVersion fails with ErrIncompatibleTemplate when the running version
// does not satisfy Requires.
func (m *Manifest) CheckVersion() error {
	if m == nil {
		return nil
	}

	ok, err := version.CurrentSatisfies(m.Requires)
	if err != nil {
		return fmt.Errorf("checking requires: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: requires sprout %s, running %s", ErrIncompatibleTemplate, m.Requires, version.String())
	}
	return nil
}
