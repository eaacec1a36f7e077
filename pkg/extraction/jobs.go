package extraction

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Job is one independent unit of work: a single discovered image file.
type Job struct {
	// Path is the full path to the image file
	Path string

	// FolderName is the discovery folder ("ROOT" for the dataset root)
	FolderName string
}

// ImageName returns the file name including extension.
func (j Job) ImageName() string {
	return filepath.Base(j.Path)
}

// BaseName returns the file name without extension, the identifier matched
// against the label table.
func (j Job) BaseName() string {
	name := j.ImageName()
	dot := strings.LastIndexByte(name, '.')
	if dot < 0 {
		return name
	}
	return name[:dot]
}

var numericFolder = regexp.MustCompile(`^\d+$`)

// DiscoverJobs enumerates all TIFF images under the numeric subfolders of the
// dataset root and under the root folder itself. The job list is static and
// deterministic: folders and files are visited in sorted order.
func DiscoverJobs(root string) ([]Job, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("could not list root directory %s: %w", root, err)
	}

	var jobs []Job
	for _, entry := range entries {
		if entry.IsDir() && numericFolder.MatchString(entry.Name()) {
			folderJobs, err := jobsInFolder(filepath.Join(root, entry.Name()), entry.Name())
			if err != nil {
				return nil, err
			}
			jobs = append(jobs, folderJobs...)
		}
	}

	rootJobs, err := jobsInFolder(root, "ROOT")
	if err != nil {
		return nil, err
	}
	jobs = append(jobs, rootJobs...)

	return jobs, nil
}

func jobsInFolder(folder, folderName string) ([]Job, error) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, fmt.Errorf("could not list folder %s: %w", folder, err)
	}

	var jobs []Job
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext == ".tif" || ext == ".tiff" {
			jobs = append(jobs, Job{
				Path:       filepath.Join(folder, entry.Name()),
				FolderName: folderName,
			})
		}
	}
	return jobs, nil
}
