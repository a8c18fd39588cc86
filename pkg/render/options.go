/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package render writes a crawled topology.Graph as a text dump, Graphviz
// DOT, yEd GraphML, Mermaid or an inventory catalog.
package render

import "time"

// Options is shared by every renderer.
type Options struct {
	Title   string
	Version string
	// Now stamps diagram credits; nil means time.Now.
	Now func() time.Time

	NodeTextSize  int
	LinkTextSize  int
	TitleTextSize int

	IncludeSerials bool
	IncludeLo      bool
	IncludeSVI     bool
	// StackMembers lists stack members inside grouped nodes.
	StackMembers bool

	// ExpandStack and ExpandPair draw each unit as its own node inside a
	// cluster. ExpandLAG draws every member link instead of one edge per
	// aggregate.
	ExpandStack bool
	ExpandPair  bool
	ExpandLAG   bool
}

// DefaultOptions matches the configuration defaults.
func DefaultOptions() Options {
	return Options{
		Title:         "MNet Network Diagram",
		NodeTextSize:  8,
		LinkTextSize:  7,
		TitleTextSize: 15,
		ExpandLAG:     true,
	}
}

func (o Options) now() time.Time {
	if o.Now == nil {
		return time.Now()
	}

	return o.Now()
}

func (o Options) stamp() string {
	return o.now().Format("2006-01-02 15:04")
}

// GraphMLStyle holds the yEd-only presentation switches.
type GraphMLStyle struct {
	// Layout is one of dot, circular, shell, grid or random.
	Layout string
	Seed   int64

	NoArrows     bool
	NoColors     bool
	NoNodeLabels bool
	NoEdgeLabels bool

	// LumpAttributes appends the device description to the node label,
	// below a rule drawn with SepChar.
	LumpAttributes bool
	SepChar        string

	NodeColor     string
	NodeTextColor string
	EdgeColor     string
	EdgeTextColor string
	ArrowHead     string
	ArrowTail     string
}

// DefaultGraphMLStyle returns the style used when no flag overrides it.
func DefaultGraphMLStyle() GraphMLStyle {
	return GraphMLStyle{
		Layout:        LayoutDot,
		Seed:          1,
		SepChar:       "_",
		NodeColor:     "#CCCCFF",
		NodeTextColor: "#000000",
		EdgeColor:     "#000000",
		EdgeTextColor: "#000000",
		ArrowHead:     "none",
		ArrowTail:     "none",
	}
}

const (
	LayoutDot      = "dot"
	LayoutCircular = "circular"
	LayoutShell    = "shell"
	LayoutGrid     = "grid"
	LayoutRandom   = "random"
)

// Layouts lists the accepted GraphMLStyle.Layout values.
var Layouts = []string{LayoutDot, LayoutCircular, LayoutShell, LayoutGrid, LayoutRandom}
