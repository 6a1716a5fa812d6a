// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cpmech/gosl/chk"
)

const sampleGeo = `
# sample scene
dt 0.01
frames 10
box_origin 0 0 0
box_side 1.0
n 20
gravity 0 -9.81 0
tambient 273.15
theat 373.15
heat_plane_j 1
implicit 0
tau 6
alpha 0.95
beta 0.95

material ice
  mu0 1e4
  lambda0 1e4
  hardness 10
  thetac 0.025
  thetas 0.0075
  cp_solid 2.1
  cp_liquid 4.2
  k_solid 2.2
  k_liquid 0.6
  latent_heat 334.0
  tmelt 273.15
end

emitter ice lattice
  centre 0.5 0.5 0.5
  lattice 4 4 4
  spacing 0.02
  mass 0.01
  celsius 0
  tag 0
end

emitter ice jitter
  centre 0.3 0.3 0.3
  lattice 2 2 2
  spacing 0.02
  jitter_frac 0.3
  mass 0.01
  temperature 250
  tag 1
end
`

func TestReadGeoParsesSampleScene(tst *testing.T) {
	chk.PrintTitle("read geo parses sample scene")
	dir := tst.TempDir()
	path := filepath.Join(dir, "sample.geo")
	if err := os.WriteFile(path, []byte(sampleGeo), 0644); err != nil {
		tst.Fatalf("write sample scene failed: %v", err)
	}

	sc, err := ReadGeo(path)
	if err != nil {
		tst.Fatalf("ReadGeo failed: %v", err)
	}

	chk.Scalar(tst, "dt", 1e-12, sc.Dt, 0.01)
	if sc.Frames != 10 {
		tst.Fatalf("expected frames=10, got %d", sc.Frames)
	}
	if sc.N != 20 {
		tst.Fatalf("expected n=20, got %d", sc.N)
	}
	chk.Scalar(tst, "box_side", 1e-12, sc.BoxSide, 1.0)
	chk.Scalar(tst, "gravity y", 1e-12, sc.Gravity[1], -9.81)
	chk.Scalar(tst, "theat", 1e-12, sc.THeat, 373.15)

	mat, ok := sc.Materials["ice"]
	if !ok {
		tst.Fatalf("expected material %q to be registered", "ice")
	}
	chk.Scalar(tst, "mu0", 1e-12, mat.Mu0, 1e4)

	if len(sc.Emitters) != 2 {
		tst.Fatalf("expected 2 emitters, got %d", len(sc.Emitters))
	}
	lattice := sc.Emitters[0]
	if lattice.Jitter {
		tst.Fatalf("first emitter should be a plain lattice")
	}
	chk.Scalar(tst, "lattice temperature (from celsius)", 1e-9, lattice.Temperature, 273.15)
	if lattice.Nx != 4 || lattice.Ny != 4 || lattice.Nz != 4 {
		tst.Fatalf("unexpected lattice counts: %+v", lattice)
	}

	jitter := sc.Emitters[1]
	if !jitter.Jitter {
		tst.Fatalf("second emitter should be jittered")
	}
	chk.Scalar(tst, "jitter_frac", 1e-12, jitter.JitterFrac, 0.3)
	if jitter.Tag != 1 {
		tst.Fatalf("expected tag=1, got %d", jitter.Tag)
	}
}

func TestReadGeoRejectsMissingDt(tst *testing.T) {
	chk.PrintTitle("read geo rejects missing dt")
	dir := tst.TempDir()
	path := filepath.Join(dir, "bad.geo")
	bad := "n 10\nbox_side 1.0\n"
	if err := os.WriteFile(path, []byte(bad), 0644); err != nil {
		tst.Fatalf("write bad scene failed: %v", err)
	}
	if _, err := ReadGeo(path); err == nil {
		tst.Fatalf("expected an error for missing dt")
	}
}
