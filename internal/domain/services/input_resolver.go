package services

import (
	"regexp"

	"github.com/ochairo/release-assets/internal/domain/entities"
)

var lineBreak = regexp.MustCompile(`\r?\n`)

// ResolveTarget picks the upload endpoint for a run.
// The release carried by the event wins over the release-url input; a release
// without an upload URL falls back to it as well.
// ok is false when neither yields a value; no upload may be attempted then.
func ResolveTarget(runCtx *entities.RunContext, releaseURL string) (entities.UploadTarget, bool) {
	if u := runCtx.ReleaseUploadURL(); u != "" {
		return entities.UploadTarget{URL: u, Source: entities.TargetFromEvent}, true
	}
	if releaseURL != "" {
		return entities.UploadTarget{URL: releaseURL, Source: entities.TargetFromInput}, true
	}
	return entities.UploadTarget{}, false
}

// SplitFileList splits a newline-delimited list on \n or \r\n
func SplitFileList(files string) []string {
	if files == "" {
		return nil
	}
	return lineBreak.Split(files, -1)
}

// BuildCandidateList concatenates the single file, the file list and the glob
// matches, in that order, dropping empty entries. Duplicates are kept.
func BuildCandidateList(file, files string, globMatches []string) []string {
	list := make([]string, 0, 1+len(globMatches))
	list = append(list, file)
	list = append(list, SplitFileList(files)...)
	list = append(list, globMatches...)

	candidates := list[:0]
	for _, p := range list {
		if p != "" {
			candidates = append(candidates, p)
		}
	}
	return candidates
}
