package gen

import (
	"fmt"
	"runtime"
	"strings"

	"classforge/compiler/load"
)

// Config holds the global settings of one generation run.
type Config struct {
	// GroupID is the Maven group identifier of the emitted project.
	GroupID string
	// ArtifactID is the Maven artifact identifier; it also names the
	// project directory inside download archives.
	ArtifactID string
	// BasePackage is the Java package the sources are emitted under.
	// Defaults to "<GroupID>.<ArtifactID>".
	BasePackage string
	// AppName is the bootstrap class name, e.g. "DemoApplication".
	AppName string
	// ServerPort is written into the emitted runtime configuration.
	ServerPort int
	// Workers bounds the parallel artifact rendering.
	Workers int
}

// defaults fills the zero fields in place.
func (c *Config) defaults() {
	if c.GroupID == "" {
		c.GroupID = "com.example"
	}
	if c.ArtifactID == "" {
		c.ArtifactID = "demo"
	}
	if c.BasePackage == "" {
		c.BasePackage = c.GroupID + "." + c.ArtifactID
	}
	if c.AppName == "" {
		c.AppName = ToPascal(Sanitize(c.ArtifactID, "Demo")) + "Application"
	}
	if c.ServerPort == 0 {
		c.ServerPort = 8080
	}
	if c.Workers <= 0 {
		c.Workers = runtime.GOMAXPROCS(0)
	}
}

// PackagePath returns the base package as a directory path.
func (c *Config) PackagePath() string {
	return strings.ReplaceAll(c.BasePackage, ".", "/")
}

// JavaRoot returns the source root the per-class artifacts are emitted
// under.
func (c *Config) JavaRoot() string {
	return "src/main/java/" + c.PackagePath()
}

// Graph holds the planned classes of one diagram snapshot. A Graph is
// built fresh per generation request and never shared; concurrent requests
// each construct their own.
type Graph struct {
	Config *Config
	// Nodes are the planned classes in diagram order.
	Nodes []*Type
	// Warnings records every input irregularity the planner degraded
	// around: dropped duplicates, unknown relation endpoints, name
	// collisions. Generation still succeeds; callers may surface them.
	Warnings []string
}

// NewGraph plans the full set of classes and relations into types with
// resolved fields and edges. The only refused input is a diagram with no
// classes; everything else degrades with a warning.
func NewGraph(c *Config, d *load.Diagram) (*Graph, error) {
	if d == nil || len(d.Classes) == 0 {
		return nil, ErrNoClasses
	}
	cfg := Config{}
	if c != nil {
		cfg = *c
	}
	cfg.defaults()
	g := &Graph{Config: &cfg}

	// First pass: classes and their scalar attributes. The first class
	// to claim a sanitized name wins; later claimants are dropped.
	byRaw := make(map[string]*Type, len(d.Classes))
	byName := make(map[string]*Type, len(d.Classes))
	for i, cl := range d.Classes {
		name := ToPascal(Sanitize(cl.Name, fmt.Sprintf("Class%d", i+1)))
		if _, ok := byName[name]; ok {
			g.warnf("class %q duplicates %q after sanitization; dropped", cl.Name, name)
			continue
		}
		t := newType(g.Config, name, cl.Name)
		t.Methods = append(t.Methods, cl.Methods...)
		for j, line := range cl.Attributes {
			f := ParseAttribute(line, j)
			if !t.addField(f) {
				g.warnf("class %s: attribute %q collides with an existing member; dropped", name, f.Name)
			}
		}
		byName[name] = t
		byRaw[cl.Name] = t
		g.Nodes = append(g.Nodes, t)
	}

	// Second pass: relations, one planned side per endpoint. A relation
	// with an unknown type or endpoint contributes nothing.
	for _, r := range d.Relations {
		rel := ParseRel(r.Type)
		if rel == Unk {
			g.warnf("relation %s -> %s: unknown type %q; skipped", r.Source, r.Target, r.Type)
			continue
		}
		src, ok := byRaw[r.Source]
		dst, ok2 := byRaw[r.Target]
		if !ok || !ok2 {
			g.warnf("relation %s -> %s: unknown class reference; skipped", r.Source, r.Target)
			continue
		}
		g.planSide(src, dst, rel, true, r.Bidirectional)
		g.planSide(dst, src, rel, false, r.Bidirectional)
	}
	return g, nil
}

// planSide resolves the reference member a relation contributes to one
// endpoint class c, with other as the opposite endpoint. isSource reports
// whether c is the relation's source. A nil candidate means this side
// contributes nothing for the relation type.
func (g *Graph) planSide(c, other *Type, rel Rel, isSource, bidi bool) {
	otherVar := other.Var()
	otherPlural := Pluralize(otherVar)
	var e *Edge
	switch rel {
	case O2O:
		switch {
		case isSource:
			e = &Edge{Name: otherVar, Type: other, Rel: rel, Owning: true, Column: otherVar + "_id"}
		case bidi:
			e = &Edge{Name: otherVar, Type: other, Rel: rel, MappedBy: c.Var()}
		}
	case M2O:
		switch {
		case isSource:
			e = &Edge{Name: otherVar, Type: other, Rel: rel, Owning: true, Column: otherVar + "_id"}
		case bidi:
			e = &Edge{Name: otherPlural, Type: other, Rel: rel, Collection: true, MappedBy: c.Var()}
		}
	case O2M:
		if isSource {
			e = &Edge{Name: otherPlural, Type: other, Rel: rel, Owning: true, Collection: true, MappedBy: c.Var()}
		} else {
			// The foreign-key side always gets its back-reference,
			// bidirectional or not; a many-valued foreign-key
			// relationship is otherwise unnavigable from this side.
			e = &Edge{Name: otherVar, Type: other, Rel: rel, Owning: true, Column: otherVar + "_id"}
		}
	case M2M:
		switch {
		case isSource:
			e = &Edge{
				Name:              otherPlural,
				Type:              other,
				Rel:               rel,
				Owning:            true,
				Collection:        true,
				JoinTable:         c.Lower() + "_" + other.Lower(),
				JoinColumn:        c.Lower() + "_id",
				InverseJoinColumn: other.Lower() + "_id",
			}
		case bidi:
			e = &Edge{Name: otherPlural, Type: other, Rel: rel, Collection: true, MappedBy: Pluralize(c.Var())}
		}
	}
	if e == nil {
		return
	}
	if !c.addEdge(e) {
		g.warnf("class %s: relation member %q collides with an existing member; dropped", c.Name, e.Name)
	}
}

func (g *Graph) warnf(format string, args ...any) {
	g.Warnings = append(g.Warnings, fmt.Sprintf(format, args...))
}
