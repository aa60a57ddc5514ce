// Package disks provides a small catalog of named device-size presets for
// callers (chiefly simplefsctl) that would rather pick "min"/"mid"/"max"
// than type out a raw byte count within the file system's allowed range.
package disks

import (
	_ "embed"
	"fmt"
	"io"
	"strings"

	"github.com/gocarina/gocsv"
)

// Profile names one predefined device size.
type Profile struct {
	Slug      string `csv:"slug"`
	Name      string `csv:"name"`
	SizeBytes int64  `csv:"size_bytes"`
}

//go:embed profiles.csv
var profilesRawCSV string

var profiles map[string]Profile

// GetProfile looks up a predefined device-size profile by slug, e.g. "min",
// "mid", or "max".
func GetProfile(slug string) (Profile, error) {
	profile, ok := profiles[slug]
	if ok {
		return profile, nil
	}
	return Profile{}, fmt.Errorf("no predefined disk profile exists with slug %q", slug)
}

func init() {
	profiles = make(map[string]Profile)
	reader := strings.NewReader(profilesRawCSV)
	err := gocsv.UnmarshalToCallback(
		reader,
		func(row Profile) error {
			if _, exists := profiles[row.Slug]; exists {
				return fmt.Errorf("duplicate definition for disk profile %q", row.Slug)
			}
			profiles[row.Slug] = row
			return nil
		},
	)
	if err != nil && err != io.EOF {
		panic(err)
	}
}
