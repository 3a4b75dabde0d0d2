// Package visualization renders stax state trees in Graphviz formats. It
// only reads the tree's children, active stacks and elapsed times; it never
// mutates the machine it visualizes.
package visualization

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"sort"
	"strings"

	"github.com/anggasct/stax"
)

// DOTGenerator generates Graphviz DOT format representations of state trees
type DOTGenerator struct {
	root    stax.State
	options DOTOptions
}

// DOTOptions configures the DOT generation
type DOTOptions struct {
	HighlightActive bool
	ShowElapsed     bool
	RankDirection   string // "TB", "LR", "BT", "RL"
	NodeShape       string
	ActiveFillColor string
	IdleFillColor   string
}

// DefaultDOTOptions returns sensible default options for DOT generation
func DefaultDOTOptions() DOTOptions {
	return DOTOptions{
		HighlightActive: true,
		ShowElapsed:     true,
		RankDirection:   "TB",
		NodeShape:       "box",
		ActiveFillColor: "lightgreen",
		IdleFillColor:   "lightblue",
	}
}

// NewDOTGenerator creates a new DOT generator rooted at the given state
func NewDOTGenerator(root stax.State, options ...DOTOptions) *DOTGenerator {
	opts := DefaultDOTOptions()
	if len(options) > 0 {
		opts = options[0]
	}

	return &DOTGenerator{
		root:    root,
		options: opts,
	}
}

// Generate creates a DOT representation of the state tree
func (g *DOTGenerator) Generate() (string, error) {
	if g.root == nil {
		return "", fmt.Errorf("no root state to visualize")
	}

	var dot strings.Builder

	dot.WriteString("digraph StateTree {\n")
	dot.WriteString(fmt.Sprintf("  rankdir=%s;\n", g.options.RankDirection))
	dot.WriteString(fmt.Sprintf("  node [shape=%s];\n", g.options.NodeShape))
	dot.WriteString("  edge [fontsize=10];\n\n")

	active := g.activeSet()
	g.generateNode(&dot, g.root, g.root.Name(), active)

	dot.WriteString("}\n")

	return dot.String(), nil
}

// activeSet collects the states on the current configuration path
func (g *DOTGenerator) activeSet() map[stax.State]bool {
	active := map[stax.State]bool{g.root: true}
	node := g.root
	for {
		stack := node.ActiveStack()
		if len(stack) == 0 {
			return active
		}
		for _, s := range stack {
			active[s] = true
		}
		node = stack[len(stack)-1]
	}
}

// generateNode emits one node and recurses into its children. Node IDs are
// full paths so sibling subtrees can reuse state names.
func (g *DOTGenerator) generateNode(dot *strings.Builder, s stax.State, path string, active map[stax.State]bool) {
	label := s.Name()
	fillColor := g.options.IdleFillColor

	if g.options.HighlightActive && active[s] {
		fillColor = g.options.ActiveFillColor
		if g.options.ShowElapsed && len(s.ActiveStack()) == 0 {
			label = fmt.Sprintf("%s\\n%.3fs", label, s.ElapsedTime())
		}
	}

	dot.WriteString(fmt.Sprintf("  \"%s\" [style=\"filled\" fillcolor=%s label=\"%s\"];\n",
		path, fillColor, label))

	children := s.Children()
	names := make([]string, 0, len(children))
	for name := range children {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		childPath := path + "/" + name
		style := "solid"
		if g.options.HighlightActive && active[children[name]] {
			style = "bold"
		}
		dot.WriteString(fmt.Sprintf("  \"%s\" -> \"%s\" [style=%s];\n", path, childPath, style))
		g.generateNode(dot, children[name], childPath, active)
	}
}

// GenerateToFile writes the DOT representation to a file
func (g *DOTGenerator) GenerateToFile(filename string) error {
	content, err := g.Generate()
	if err != nil {
		return err
	}

	return os.WriteFile(filename, []byte(content), 0644)
}

// SVGGenerator generates SVG representations by calling Graphviz
type SVGGenerator struct {
	dotGenerator *DOTGenerator
}

// NewSVGGenerator creates a new SVG generator
func NewSVGGenerator(root stax.State, options ...DOTOptions) *SVGGenerator {
	return &SVGGenerator{
		dotGenerator: NewDOTGenerator(root, options...),
	}
}

// Generate creates an SVG representation of the state tree
func (g *SVGGenerator) Generate() (string, error) {
	dotContent, err := g.dotGenerator.Generate()
	if err != nil {
		return "", err
	}

	// Use Graphviz dot command to convert DOT to SVG
	cmd := exec.Command("dot", "-Tsvg")
	cmd.Stdin = strings.NewReader(dotContent)

	var out bytes.Buffer
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("failed to execute dot command: %w (make sure Graphviz is installed)", err)
	}

	return out.String(), nil
}

// GenerateSVG creates an SVG representation of the state tree
// This is a convenience method on DOTGenerator for compatibility
func (g *DOTGenerator) GenerateSVG() (string, error) {
	svgGen := &SVGGenerator{dotGenerator: g}
	return svgGen.Generate()
}
