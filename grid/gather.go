// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grid

import (
	"runtime"
	"sync"

	"github.com/all-in-one-of/MeltingSimulation/emitter"
	"github.com/all-in-one-of/MeltingSimulation/mkernel"
)

// ScatterToParticles reconstructs every particle's new velocity, velocity
// gradient, and temperature from the post-projection face/centre state:
//
//   v_p^{n+1} = (1-alpha)*(sum_f N_f v*_f e) + alpha*(v_p^n + sum_f N_f (v*_f - v_f^n) e)
//   T_p^{n+1} analogous with beta
//   gradV_p   = sum_f v*_f gradN_f e
//
// Each particle only ever writes its own fields, so this is safe to run
// one goroutine per chunk of the particle array.
func (g *Grid) ScatterToParticles(e *emitter.Emitter) {
	n := e.Count()
	if n == 0 {
		return
	}
	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}
	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for lo := 0; lo < n; lo += chunk {
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for idx := lo; idx < hi; idx++ {
				g.gatherOne(e.At(idx))
			}
		}(lo, hi)
	}
	wg.Wait()
}

// gatherOne recomputes the cubic B-spline weights/gradients between p and
// the faces/centres in its support directly from its position (the same
// offsets used in accumulateAt, but queried from the particle outward
// rather than from the grid inward), since the per-cell InterpRecord
// arenas are indexed by grid node, not by particle.
func (g *Grid) gatherOne(p *emitter.Particle) {
	alpha, beta := g.Cfg.Alpha, g.Cfg.Beta

	var vNew, vFlip [3]float64
	var gradV mkernel.Mat3
	var tNew, tFlip float64
	var wSum float64

	accumulateAxis := func(faces []CellFace, axis int) {
		e := axisVec(axis)
		i0, j0, k0 := mkernel.CellOf(p.Position, g.Origin, g.H)
		for di := -2; di <= 3; di++ {
			i := i0 + di
			if i < 0 || i >= g.N {
				continue
			}
			for dj := -2; dj <= 3; dj++ {
				j := j0 + dj
				if j < 0 || j >= g.N {
					continue
				}
				for dk := -2; dk <= 3; dk++ {
					k := k0 + dk
					if k < 0 || k >= g.N {
						continue
					}
					pos := g.FacePosition(axis, i, j, k)
					d := [3]float64{
						(pos[0] - p.Position[0]) / g.H,
						(pos[1] - p.Position[1]) / g.H,
						(pos[2] - p.Position[2]) / g.H,
					}
					w := mkernel.Cubic3(d, g.H)
					if w.N == 0 {
						continue
					}
					f := &faces[g.Index(i, j, k)]
					for a := 0; a < 3; a++ {
						vNew[a] += w.N * f.VelocityStar * e[a]
						vFlip[a] += w.N * (f.VelocityStar - f.Velocity) * e[a]
						for b := 0; b < 3; b++ {
							gradV[a][b] += f.VelocityStar * w.Grad[b] * e[a]
						}
					}
				}
			}
		}
	}
	accumulateAxis(g.FacesX, 0)
	accumulateAxis(g.FacesY, 1)
	accumulateAxis(g.FacesZ, 2)

	i0, j0, k0 := mkernel.CellOf(p.Position, g.Origin, g.H)
	for di := -2; di <= 3; di++ {
		i := i0 + di
		if i < 0 || i >= g.N {
			continue
		}
		for dj := -2; dj <= 3; dj++ {
			j := j0 + dj
			if j < 0 || j >= g.N {
				continue
			}
			for dk := -2; dk <= 3; dk++ {
				k := k0 + dk
				if k < 0 || k >= g.N {
					continue
				}
				pos := g.CentrePosition(i, j, k)
				d := [3]float64{
					(pos[0] - p.Position[0]) / g.H,
					(pos[1] - p.Position[1]) / g.H,
					(pos[2] - p.Position[2]) / g.H,
				}
				w := mkernel.Cubic3(d, g.H)
				if w.N == 0 {
					continue
				}
				c := &g.Centres[g.Index(i, j, k)]
				tNew += w.N * c.Temp
				tFlip += w.N * (c.Temp - c.PrevTemp)
				wSum += w.N
			}
		}
	}

	prev := p.Velocity
	for a := 0; a < 3; a++ {
		p.Velocity[a] = (1-alpha)*vNew[a] + alpha*(prev[a]+vFlip[a])
	}
	p.PrevVelocity = prev
	p.VelGrad = gradV
	if wSum > 0 {
		p.PrevTemperature = p.Temperature
		p.Temperature = (1-beta)*tNew + beta*(p.Temperature+tFlip)
	}
}
