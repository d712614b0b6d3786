package services

import (
	"bytes"
	"encoding/json"
)

// Sentinel for download counters the index no longer tracks.
const legacyDownloads = -1

// LegacyProject is the {info, last_serial, releases, urls} document older
// index clients consume.
type LegacyProject struct {
	Info       LegacyInfo                  `json:"info"`
	LastSerial int64                       `json:"last_serial"`
	Releases   *ReleaseFiles    `json:"releases"`
	URLs       []FileDescriptor `json:"urls"`
}

// ReleaseFiles maps versions to their files and encodes as a JSON object
// whose keys keep insertion order.
type ReleaseFiles struct {
	versions []string
	files    map[string][]FileDescriptor
}

// NewReleaseFiles returns an empty mapping with room for n versions.
func NewReleaseFiles(n int) *ReleaseFiles {
	return &ReleaseFiles{versions: make([]string, 0, n), files: make(map[string][]FileDescriptor, n)}
}

// Add appends version, or replaces its files if already present.
func (rf *ReleaseFiles) Add(version string, files []FileDescriptor) {
	if _, ok := rf.files[version]; !ok {
		rf.versions = append(rf.versions, version)
	}
	rf.files[version] = files
}

// Get returns the files of version, nil if unknown.
func (rf *ReleaseFiles) Get(version string) []FileDescriptor {
	return rf.files[version]
}

func (rf *ReleaseFiles) Len() int { return len(rf.versions) }

// Versions returns the keys in encoding order.
func (rf *ReleaseFiles) Versions() []string {
	return append([]string(nil), rf.versions...)
}

func (rf *ReleaseFiles) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, v := range rf.versions {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(rf.files[v])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// LegacyInfo flattens one release and its project.
type LegacyInfo struct {
	Author                 string            `json:"author"`
	AuthorEmail            string            `json:"author_email"`
	BugtrackURL            *string           `json:"bugtrack_url"`
	Classifiers            []string          `json:"classifiers"`
	Description            string            `json:"description"`
	DescriptionContentType *string           `json:"description_content_type"`
	DocsURL                *string           `json:"docs_url"`
	DownloadURL            string            `json:"download_url"`
	Downloads              Downloads         `json:"downloads"`
	HomePage               string            `json:"home_page"`
	Keywords               string            `json:"keywords"`
	License                string            `json:"license"`
	Maintainer             string            `json:"maintainer"`
	MaintainerEmail        string            `json:"maintainer_email"`
	Name                   string            `json:"name"`
	PackageURL             string            `json:"package_url"`
	Platform               string            `json:"platform"`
	ProjectURL             string            `json:"project_url"`
	ProjectURLs            map[string]string `json:"project_urls"`
	ReleaseURL             string            `json:"release_url"`
	// RequiresDist is nil, and encodes as null, when the release declares none.
	RequiresDist   []string `json:"requires_dist"`
	RequiresPython *string  `json:"requires_python"`
	Summary        string   `json:"summary"`
	Version        string   `json:"version"`
}

// Downloads is always the legacy sentinel.
type Downloads struct {
	LastDay   int `json:"last_day"`
	LastMonth int `json:"last_month"`
	LastWeek  int `json:"last_week"`
}

// FileDescriptor describes one distribution file.
type FileDescriptor struct {
	CommentText       *string `json:"comment_text"`
	Digests           Digests `json:"digests"`
	Downloads         int     `json:"downloads"`
	Filename          string  `json:"filename"`
	HasSig            bool    `json:"has_sig"`
	MD5Digest         string  `json:"md5_digest"`
	PackageType       string  `json:"packagetype"`
	PythonVersion     string  `json:"python_version"`
	RequiresPython    *string `json:"requires_python"`
	Size              int64   `json:"size"`
	UploadTime        string  `json:"upload_time"`
	UploadTimeISO8601 string  `json:"upload_time_iso_8601"`
	URL               string  `json:"url"`
}

// Digests of a file's content.
type Digests struct {
	Blake2b256 string `json:"blake2b_256"`
	MD5        string `json:"md5"`
	SHA256     string `json:"sha256"`
}
