// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scene implements the external scene reader: a Houdini-style
// ASCII (.geo) file is tokenised into a Scene, the way inp.ReadSim/
// inp.ReadMat parse a simulation's JSON input, but hand-rolled rather
// than encoding/json since the .geo format is line-oriented, not JSON.
package scene

import (
	"bufio"
	"strconv"
	"strings"

	"github.com/all-in-one-of/MeltingSimulation/emitter"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/io"
)

// EmitterSpec describes one seeded body: initial particle positions,
// masses, phase flags, and temperatures for one material.
type EmitterSpec struct {
	Material    string
	Jitter      bool // lattice (false) or jittered lattice (true)
	Centre      [3]float64
	Spacing     float64
	Nx, Ny, Nz  int
	JitterFrac  float64
	Mass        float64
	Temperature float64 // Kelvin, already converted from Celsius if needed
	Tag         int     // MaterialTag passthrough to the exporter/viewer only
}

// Scene holds everything a .geo file provides: timestep, frame count,
// grid geometry, material bank, and emitter specs, ready to be handed to
// sim.New.
type Scene struct {
	Dt         float64
	Frames     int
	BoxOrigin  [3]float64
	BoxSide    float64
	N          int
	Gravity    [3]float64
	TAmbient   float64
	THeat      float64
	HeatPlaneJ int
	Implicit   bool
	Tau        int
	Alpha      float64
	Beta       float64

	Materials map[string]*emitter.Material
	Emitters  []EmitterSpec
}

// ReadGeo reads a .geo ASCII scene file. The format is a sequence of
// whitespace-separated records, one per line; blank lines and lines
// starting with '#' are ignored. Scalar keys set top-level Scene fields;
// `material <name> ... end` and `emitter <material> <kind> ... end`
// blocks are parsed into the Materials bank and Emitters list, the same
// "read raw records, then fun.Prms.Connect them" two-stage shape
// inp.ReadMat uses for JSON material blocks.
func ReadGeo(path string) (sc *Scene, err error) {
	b, err := io.ReadFile(path)
	if err != nil {
		return nil, err
	}
	sc = &Scene{
		Gravity:   [3]float64{0, -9.81, 0},
		Tau:       6,
		Alpha:     0.95,
		Beta:      0.95,
		Materials: make(map[string]*emitter.Material),
	}

	scanner := bufio.NewScanner(strings.NewReader(string(b)))
	var lines []string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}

	for i := 0; i < len(lines); i++ {
		fields := strings.Fields(lines[i])
		key := fields[0]
		switch key {
		case "material":
			if len(fields) < 2 {
				return nil, chk.Err("scene: material block missing name")
			}
			name := fields[1]
			end, prms, perr := readBlock(lines, i+1)
			if perr != nil {
				return nil, perr
			}
			mat, merr := emitter.NewMaterial(name, prms)
			if merr != nil {
				return nil, merr
			}
			sc.Materials[name] = mat
			i = end
		case "emitter":
			if len(fields) < 3 {
				return nil, chk.Err("scene: emitter block missing material/kind")
			}
			matName, kind := fields[1], fields[2]
			end, spec, perr := readEmitterBlock(lines, i+1, matName, kind)
			if perr != nil {
				return nil, perr
			}
			sc.Emitters = append(sc.Emitters, spec)
			i = end
		default:
			if err := setScalar(sc, fields); err != nil {
				return nil, err
			}
		}
	}

	if sc.Dt <= 0 {
		return nil, chk.Err("scene: dt must be given and > 0")
	}
	if sc.N < 4 {
		return nil, chk.Err("scene: n must be given and >= 4")
	}
	if sc.BoxSide <= 0 {
		return nil, chk.Err("scene: box_side must be given and > 0")
	}
	return sc, nil
}

// setScalar assigns one top-level "key v1 [v2 [v3]]" record.
func setScalar(sc *Scene, fields []string) error {
	key := fields[0]
	args := fields[1:]
	f := func(i int) (float64, error) {
		if i >= len(args) {
			return 0, chk.Err("scene: key %q missing argument %d", key, i)
		}
		return strconv.ParseFloat(args[i], 64)
	}
	switch key {
	case "dt":
		v, err := f(0)
		sc.Dt = v
		return err
	case "frames":
		v, err := f(0)
		sc.Frames = int(v)
		return err
	case "box_origin":
		for a := 0; a < 3; a++ {
			v, err := f(a)
			if err != nil {
				return err
			}
			sc.BoxOrigin[a] = v
		}
	case "box_side":
		v, err := f(0)
		sc.BoxSide = v
		return err
	case "n":
		v, err := f(0)
		sc.N = int(v)
		return err
	case "gravity":
		for a := 0; a < 3; a++ {
			v, err := f(a)
			if err != nil {
				return err
			}
			sc.Gravity[a] = v
		}
	case "tambient":
		v, err := f(0)
		sc.TAmbient = v
		return err
	case "theat":
		v, err := f(0)
		sc.THeat = v
		return err
	case "heat_plane_j":
		v, err := f(0)
		sc.HeatPlaneJ = int(v)
		return err
	case "implicit":
		v, err := f(0)
		sc.Implicit = v != 0
		return err
	case "tau":
		v, err := f(0)
		sc.Tau = int(v)
		return err
	case "alpha":
		v, err := f(0)
		sc.Alpha = v
		return err
	case "beta":
		v, err := f(0)
		sc.Beta = v
		return err
	default:
		return chk.Err("scene: unknown key %q", key)
	}
	return nil
}

// readBlock collects "key value" pairs from lines[start:] up to (and
// including) the terminating "end" line, as a fun.Prms slice ready for
// Connect.
func readBlock(lines []string, start int) (end int, prms fun.Prms, err error) {
	for i := start; i < len(lines); i++ {
		fields := strings.Fields(lines[i])
		if fields[0] == "end" {
			return i, prms, nil
		}
		if len(fields) < 2 {
			return 0, nil, chk.Err("scene: material block: malformed line %q", lines[i])
		}
		v, perr := strconv.ParseFloat(fields[1], 64)
		if perr != nil {
			return 0, nil, chk.Err("scene: material block: %v", perr)
		}
		prms = append(prms, &fun.Prm{N: fields[0], V: v})
	}
	return 0, nil, chk.Err("scene: material block missing terminating \"end\"")
}

// readEmitterBlock parses an "emitter <material> <kind> ... end" block
// into an EmitterSpec.
func readEmitterBlock(lines []string, start int, matName, kind string) (end int, spec EmitterSpec, err error) {
	spec.Material = matName
	spec.Jitter = kind == "jitter"
	spec.JitterFrac = 0.3
	for i := start; i < len(lines); i++ {
		fields := strings.Fields(lines[i])
		if fields[0] == "end" {
			return i, spec, nil
		}
		switch fields[0] {
		case "centre", "center":
			for a := 0; a < 3; a++ {
				v, perr := strconv.ParseFloat(fields[1+a], 64)
				if perr != nil {
					return 0, spec, chk.Err("scene: emitter centre: %v", perr)
				}
				spec.Centre[a] = v
			}
		case "lattice":
			nx, e1 := strconv.Atoi(fields[1])
			ny, e2 := strconv.Atoi(fields[2])
			nz, e3 := strconv.Atoi(fields[3])
			if e1 != nil || e2 != nil || e3 != nil {
				return 0, spec, chk.Err("scene: emitter lattice: malformed counts")
			}
			spec.Nx, spec.Ny, spec.Nz = nx, ny, nz
		case "spacing":
			v, perr := strconv.ParseFloat(fields[1], 64)
			if perr != nil {
				return 0, spec, chk.Err("scene: emitter spacing: %v", perr)
			}
			spec.Spacing = v
		case "jitter_frac":
			v, perr := strconv.ParseFloat(fields[1], 64)
			if perr != nil {
				return 0, spec, chk.Err("scene: emitter jitter_frac: %v", perr)
			}
			spec.JitterFrac = v
		case "mass":
			v, perr := strconv.ParseFloat(fields[1], 64)
			if perr != nil {
				return 0, spec, chk.Err("scene: emitter mass: %v", perr)
			}
			spec.Mass = v
		case "temperature":
			v, perr := strconv.ParseFloat(fields[1], 64)
			if perr != nil {
				return 0, spec, chk.Err("scene: emitter temperature: %v", perr)
			}
			spec.Temperature = v
		case "celsius":
			v, perr := strconv.ParseFloat(fields[1], 64)
			if perr != nil {
				return 0, spec, chk.Err("scene: emitter celsius: %v", perr)
			}
			spec.Temperature = v + 273.15 // scene file gives Celsius, controller wants Kelvin
		case "tag":
			v, perr := strconv.Atoi(fields[1])
			if perr != nil {
				return 0, spec, chk.Err("scene: emitter tag: %v", perr)
			}
			spec.Tag = v
		default:
			return 0, spec, chk.Err("scene: emitter block: unknown key %q", fields[0])
		}
	}
	return 0, spec, chk.Err("scene: emitter block missing terminating \"end\"")
}
