// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package emitter

import "github.com/cpmech/gosl/rnd"

// NewJittered seeds nx*ny*nz particles on a regular lattice of the given
// spacing around centre, each displaced by a small random jitter inside
// its cell rather than placed exactly on the lattice, to avoid a
// perfectly aligned initial stress state.
//
// nx, ny, nz are the lattice counts per axis; jitterFrac in [0,1) is the
// jitter amplitude as a fraction of spacing.
func NewJittered(mat *Material, centre [3]float64, spacing float64, nx, ny, nz int, jitterFrac float64, massPerParticle, temperature float64) []*Particle {
	rnd.Init(0)
	half := [3]float64{
		float64(nx-1) * spacing / 2,
		float64(ny-1) * spacing / 2,
		float64(nz-1) * spacing / 2,
	}
	particles := make([]*Particle, 0, nx*ny*nz)
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			for k := 0; k < nz; k++ {
				pos := [3]float64{
					centre[0] - half[0] + float64(i)*spacing,
					centre[1] - half[1] + float64(j)*spacing,
					centre[2] - half[2] + float64(k)*spacing,
				}
				jitter := spacing * jitterFrac
				if jitter > 0 {
					pos[0] += rnd.Float64(-jitter/2, jitter/2)
					pos[1] += rnd.Float64(-jitter/2, jitter/2)
					pos[2] += rnd.Float64(-jitter/2, jitter/2)
				}
				particles = append(particles, NewParticle(mat, pos, massPerParticle, temperature))
			}
		}
	}
	return particles
}
