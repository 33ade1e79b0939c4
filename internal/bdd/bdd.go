package bdd

import "github.com/cwbudde/zen/internal/solver"

var _ solver.Solver = (*Backend)(nil)
