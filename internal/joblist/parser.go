package joblist

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// xmlJobList matches the jobs.xml schema.
type xmlJobList struct {
	Jobs []xmlJob `xml:"Job"`
}

type xmlJob struct {
	Name        string `xml:"Name,attr"`
	Bvh         string `xml:"Bvh,attr"`
	Motion      string `xml:"Motion,attr"`
	Output      string `xml:"Output,attr"`
	Orientation string `xml:"Orientation,attr"`
}

// Parse reads a jobs.xml file. Relative Bvh and Motion paths are resolved
// against the file's directory; Output is left as written and placed under
// the run's output directory by the batch runner.
func Parse(xmlPath string) ([]Job, error) {
	f, err := os.Open(xmlPath)
	if err != nil {
		return nil, fmt.Errorf("joblist: read %s: %w", xmlPath, err)
	}
	defer f.Close()

	jobs, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("joblist: parse %s: %w", xmlPath, err)
	}
	base := filepath.Dir(xmlPath)
	for i := range jobs {
		jobs[i].Bvh = resolve(base, jobs[i].Bvh)
		jobs[i].Motion = resolve(base, jobs[i].Motion)
	}
	return jobs, nil
}

// Decode reads a job list. Jobs missing a BVH or a motion are dropped;
// a missing name falls back to the BVH file stem.
func Decode(r io.Reader) ([]Job, error) {
	var list xmlJobList
	if err := xml.NewDecoder(r).Decode(&list); err != nil {
		return nil, err
	}

	var jobs []Job
	for _, j := range list.Jobs {
		if j.Bvh == "" || j.Motion == "" {
			continue
		}
		name := j.Name
		if name == "" {
			name = strings.TrimSuffix(filepath.Base(j.Bvh), filepath.Ext(j.Bvh))
		}
		out := j.Output
		if out == "" {
			out = name + ".mot"
		}
		jobs = append(jobs, Job{
			Name:      name,
			Bvh:       j.Bvh,
			Motion:    j.Motion,
			Output:    out,
			Directive: j.Orientation,
		})
	}
	return jobs, nil
}

func resolve(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}
