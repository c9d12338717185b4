package domain

import (
	"path/filepath"
	"strings"
)

// CacheDirName is the subdirectory of the settings directory holding
// downloaded reference tables.
const CacheDirName = "Cache"

// DownloadTarget is where a reference table comes from and where it is cached.
type DownloadTarget struct {
	Year      string
	Country   string
	FileName  string
	URL       string
	CachePath string
}

// ResolveDownloadTarget maps (year, country) to a remote URL and a
// deterministic cache path using the settings catalog.
func ResolveDownloadTarget(s Settings, year, country string) (DownloadTarget, error) {
	name, err := s.Catalog.FileName(year, country)
	if err != nil {
		return DownloadTarget{}, err
	}

	dirURL, err := s.DirectoryURL(year, country)
	if err != nil {
		return DownloadTarget{}, err
	}

	base := strings.TrimRight(dirURL, "/")
	return DownloadTarget{
		Year:      year,
		Country:   country,
		FileName:  name,
		URL:       base + "/" + name,
		CachePath: filepath.Join(s.Directory, CacheDirName, name),
	}, nil
}
