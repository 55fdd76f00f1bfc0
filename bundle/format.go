//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package bundle

import (
	"archive/zip"
	"bytes"
	"image/png"
	"io"
	"io/ioutil"
	"path"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"

	"github.com/ezrec/spiralizer"
	"github.com/ezrec/spiralizer/gcode"
	"github.com/ezrec/spiralizer/ply"
	"github.com/ezrec/spiralizer/preview"
)

var (
	time_Now = time.Now
)

const (
	entryProgram  = "run.gcode"
	entryPreview  = "preview.png"
	entryToolpath = "toolpath.ply"
)

type Format struct {
	*pflag.FlagSet

	gcode    *gcode.Format
	preview  *preview.Format
	toolpath *ply.Format
}

// NewFormatter creates a bundle format. The flags of the program, preview
// and toolpath writers are all accepted.
func NewFormatter(suffix string) (bf *Format) {
	flagSet := pflag.NewFlagSet(suffix, pflag.ContinueOnError)

	bf = &Format{
		FlagSet:  flagSet,
		gcode:    gcode.NewFormatter(".gcode"),
		preview:  preview.NewFormatter(".png"),
		toolpath: ply.NewFormatter(".ply"),
	}

	bf.AddFlagSet(bf.gcode.FlagSet)
	bf.AddFlagSet(bf.preview.FlagSet)
	bf.AddFlagSet(bf.toolpath.FlagSet)
	bf.SetInterspersed(false)

	return
}

func (bf *Format) create(archive *zip.Writer, name string) (writer io.Writer, err error) {
	header := &zip.FileHeader{
		Name:     name,
		Method:   zip.Deflate,
		Modified: time_Now(),
	}

	writer, err = archive.CreateHeader(header)
	return
}

func (bf *Format) Encode(writer spiralizer.Writer, path *spiralizer.Path) (err error) {
	archive := zip.NewWriter(writer)
	defer func() {
		e := archive.Close()
		if err == nil {
			err = e
		}
	}()

	// Printer program
	entry, err := bf.create(archive, entryProgram)
	if err != nil {
		return
	}

	err = bf.gcode.Encode(entry, path)
	if err != nil {
		return
	}

	// Preview image
	entry, err = bf.create(archive, entryPreview)
	if err != nil {
		return
	}

	err = png.Encode(entry, bf.preview.Render(path))
	if err != nil {
		return
	}

	// Toolpath geometry
	entry, err = bf.create(archive, entryToolpath)
	if err != nil {
		return
	}

	err = bf.toolpath.Encode(entry, path)
	if err != nil {
		return
	}

	return
}

// Decode reads the first mesh file in the archive that has a known format
func (bf *Format) Decode(reader spiralizer.Reader, filesize int64) (mesh *spiralizer.Mesh, err error) {
	archive, err := zip.NewReader(reader, filesize)
	if err != nil {
		return
	}

	for _, file := range archive.File {
		if file.FileInfo().IsDir() || path.Ext(file.Name) == ".zip" {
			continue
		}

		if !spiralizer.IsFormat(file.Name) {
			continue
		}

		var format *spiralizer.Format
		format, err = spiralizer.NewFormat(file.Name, nil)
		if err != nil {
			return
		}

		var content []byte
		content, err = readFile(file)
		if err != nil {
			return
		}

		mesh, err = format.Decode(bytes.NewReader(content), int64(len(content)))
		if err != nil {
			if _, ok := err.(spiralizer.ErrUnsupported); ok {
				err = nil
				continue
			}
			err = errors.Wrapf(err, "%s", file.Name)
			return
		}

		spiralizer.Logger().Debugf("bundle: mesh from %s", file.Name)
		return
	}

	err = errors.New("no mesh found in archive")
	return
}

func readFile(file *zip.File) (content []byte, err error) {
	reader, err := file.Open()
	if err != nil {
		return
	}
	defer func() { reader.Close() }()

	content, err = ioutil.ReadAll(reader)
	return
}
