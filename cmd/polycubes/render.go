package main

import (
	"log"

	"github.com/mikepound/opencubes/internal/grid"
)

// render is the --render entry point. Rendering shapes to an image is a
// trivial external collaborator out of core scope (the reference
// implementation delegates it to matplotlib); here it logs what it
// would have rendered rather than drawing anything itself.
func render(shapes []grid.Grid, outDir string) {
	log.Printf("render: %d shapes would be written under %s (rendering is out of core scope)", len(shapes), outDir)
}
