// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import "github.com/all-in-one-of/MeltingSimulation/grid"

// Viewer is the read-only callback contract an external OpenGL viewer
// uses between steps. No concrete viewer is implemented here, only its
// contract.
type Viewer interface {
	GetBoundingBoxPosition() [3]float64
	GetBoundingBoxSize() float64
	GetGridPosition() [3]float64
	GetGridCellSize() float64
	GetNoGridCells() int
	GetGridCellState(index int) grid.State
	GetGridCellTemperature(index int) float64
	GetAmbientTemperature() float64
	GetHeatSourceTemperature() float64
}

// gridViewer is the Controller's own implementation of Viewer, reading
// directly from the owned Grid; safe to call only between steps.
type gridViewer struct {
	c *Controller
}

// NewViewer wraps c as a Viewer.
func NewViewer(c *Controller) Viewer {
	return &gridViewer{c: c}
}

func (v *gridViewer) GetBoundingBoxPosition() [3]float64 { return v.c.Box.Min }

func (v *gridViewer) GetBoundingBoxSize() float64 {
	return v.c.Box.Max[0] - v.c.Box.Min[0]
}

func (v *gridViewer) GetGridPosition() [3]float64 { return v.c.Grid.Origin }

func (v *gridViewer) GetGridCellSize() float64 { return v.c.Grid.H }

func (v *gridViewer) GetNoGridCells() int { return v.c.Grid.N }

func (v *gridViewer) GetGridCellState(index int) grid.State {
	return v.c.Grid.Centres[index].State
}

func (v *gridViewer) GetGridCellTemperature(index int) float64 {
	return v.c.Grid.Centres[index].Temp
}

func (v *gridViewer) GetAmbientTemperature() float64 { return v.c.Grid.Cfg.TAmbient }

func (v *gridViewer) GetHeatSourceTemperature() float64 { return v.c.Grid.Cfg.THeat }
