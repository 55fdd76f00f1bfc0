//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package main

import (
	"context"
	"fmt"

	"github.com/ezrec/spiralizer"
)

// Job is the state carried along the command pipeline
type Job struct {
	Input      string
	Mesh       *spiralizer.Mesh
	Properties spiralizer.Properties

	// Also write the toolpath geometry when the output name is derived
	ExportToolpath bool

	path *spiralizer.Path
}

func NewJob(input string, mesh *spiralizer.Mesh) (job *Job) {
	job = &Job{
		Input:      input,
		Mesh:       mesh,
		Properties: spiralizer.DefaultProperties(),
	}

	return
}

// SetMesh replaces the mesh, discarding any computed path
func (job *Job) SetMesh(mesh *spiralizer.Mesh) {
	job.Mesh = mesh
	job.path = nil
}

// SetProperties replaces the configuration, discarding any computed path
func (job *Job) SetProperties(prop spiralizer.Properties) {
	job.Properties = prop
	job.path = nil
}

// Path spiralizes the mesh on first use
func (job *Job) Path(ctx context.Context) (path *spiralizer.Path, err error) {
	if job.path == nil {
		job.path, err = spiralizer.Spiralize(ctx, job.Mesh, job.Properties)
		if err != nil {
			job.path = nil
			return
		}
	}

	path = job.path
	return
}

// Write computes the path before creating the output, so a failed walk
// leaves no file behind.
func (job *Job) Write(ctx context.Context, output *spiralizer.Format) (err error) {
	path, err := job.Path(ctx)
	if err != nil {
		return
	}

	TraceVerbosef(VerbosityNotice, "Writing %s (%d points)", output.Filename, len(path.Points))

	err = output.SetPath(path)
	if err != nil {
		return
	}

	fmt.Println(output.Filename)

	return
}
