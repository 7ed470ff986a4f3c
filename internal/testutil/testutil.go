// Package testutil provides shared test utilities and fixtures.
//
// This package centralises the mesh validity and vector proximity
// assertions used across test files to reduce code duplication.
package testutil

import (
	"math"
	"testing"

	"github.com/banshee-data/mesh.report/internal/geom"
)

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// AssertVecNear checks that got is within tol of want in every component.
func AssertVecNear(t *testing.T, got, want geom.Vec3, tol float64) {
	t.Helper()
	if math.Abs(got.X-want.X) > tol || math.Abs(got.Y-want.Y) > tol || math.Abs(got.Z-want.Z) > tol {
		t.Errorf("vector = %v, want %v (tol %v)", got, want, tol)
	}
}

// AssertValidMesh checks the output contract of a simplification run:
// every face references three distinct in-range vertices and no two
// faces share the same vertex set.
func AssertValidMesh(t *testing.T, positions []geom.Vec3, faces [][3]int) {
	t.Helper()
	seen := make(map[[3]int]struct{}, len(faces))
	for i, f := range faces {
		for _, v := range f {
			if v < 0 || v >= len(positions) {
				t.Errorf("face %d: index %d out of range [0,%d)", i, v, len(positions))
			}
		}
		if f[0] == f[1] || f[1] == f[2] || f[0] == f[2] {
			t.Errorf("face %d: repeated vertex in %v", i, f)
		}
		k := f
		if k[0] > k[1] {
			k[0], k[1] = k[1], k[0]
		}
		if k[1] > k[2] {
			k[1], k[2] = k[2], k[1]
		}
		if k[0] > k[1] {
			k[0], k[1] = k[1], k[0]
		}
		if _, dup := seen[k]; dup {
			t.Errorf("face %d: duplicate vertex set %v", i, f)
		}
		seen[k] = struct{}{}
	}
}
