// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/all-in-one-of/MeltingSimulation/emitter"
	"github.com/gocarina/gocsv"
)

// Exporter is the frame-capture callback contract: on each frame, the
// controller hands the exporter the current particle positions, phases,
// and temperatures. A concrete Alembic exporter is out of scope;
// CSVExporter below is a minimal usable default grounded on the
// gocarina/gocsv writer seen in the example pack's telemetry output.
type Exporter interface {
	Export(frame int, c *Controller) error
}

// csvRow is one exported particle record for one frame.
type csvRow struct {
	Frame       int     `csv:"frame"`
	X           float64 `csv:"x"`
	Y           float64 `csv:"y"`
	Z           float64 `csv:"z"`
	Phase       int     `csv:"phase"`
	Temperature float64 `csv:"temperature"`
	MaterialTag int     `csv:"material_tag"`
}

// CSVExporter writes one frame<N>.csv file per frame under Dir, via
// gocsv.Marshal, the same per-file CSV pattern the example pack's
// telemetry output manager uses.
type CSVExporter struct {
	Dir string
}

// NewCSVExporter creates the output directory and returns an exporter
// that writes into it.
func NewCSVExporter(dir string) (*CSVExporter, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("sim: creating export directory: %w", err)
	}
	return &CSVExporter{Dir: dir}, nil
}

// Export writes every particle of every emitter to frame<N>.csv.
func (e *CSVExporter) Export(frame int, c *Controller) error {
	var rows []*csvRow
	for _, em := range c.Emitters {
		em.Each(func(p *emitter.Particle) {
			rows = append(rows, &csvRow{
				Frame:       frame,
				X:           p.Position[0],
				Y:           p.Position[1],
				Z:           p.Position[2],
				Phase:       int(p.PhaseState),
				Temperature: p.Temperature,
				MaterialTag: p.MaterialTag,
			})
		})
	}
	path := filepath.Join(e.Dir, fmt.Sprintf("frame%04d.csv", frame))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("sim: creating %s: %w", path, err)
	}
	defer f.Close()
	return gocsv.Marshal(rows, f)
}
