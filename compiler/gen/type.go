package gen

import (
	"fmt"
	"sort"
	"strings"
)

// Rel is the relation type between two classes.
type Rel int

// Relation types.
const (
	Unk Rel = iota // Unknown.
	O2O            // One to one.
	O2M            // One to many.
	M2O            // Many to one.
	M2M            // Many to many.
)

// String returns the relation name in its wire spelling.
func (r Rel) String() string {
	s := "UNKNOWN"
	switch r {
	case O2O:
		s = "ONE_TO_ONE"
	case O2M:
		s = "ONE_TO_MANY"
	case M2O:
		s = "MANY_TO_ONE"
	case M2M:
		s = "MANY_TO_MANY"
	}
	return s
}

// ParseRel converts a wire relation name into a Rel. Unknown names return
// Unk; the caller decides whether to skip or fail.
func ParseRel(s string) Rel {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ONE_TO_ONE":
		return O2O
	case "ONE_TO_MANY":
		return O2M
	case "MANY_TO_ONE":
		return M2O
	case "MANY_TO_MANY":
		return M2M
	}
	return Unk
}

// Field is a resolved scalar attribute of a planned class.
type Field struct {
	Name string // camel-cased member name
	Type JavaType
}

// JavaType returns the boxed Java type name for the field.
func (f Field) JavaType() string { return f.Type.Java() }

// Accessor returns the Pascal-cased accessor stem, so "title" yields
// getTitle/setTitle in the emitted source.
func (f Field) Accessor() string { return ToPascal(f.Name) }

// Sample returns the field's JSON sample literal for request bodies.
func (f Field) Sample() string { return f.Type.Sample(f.Name) }

// Edge is a resolved relationship member of a planned class. Edges always
// reference another planned class; relations with an unknown endpoint never
// produce an edge.
type Edge struct {
	Name       string // member name: camel(other) or its plural
	Type       *Type  // the other endpoint
	Rel        Rel
	Owning     bool   // holds the foreign key or defines the join table
	Collection bool   // many-valued, emitted as List<other>

	// Mapping details, populated per side.
	Column            string // foreign-key column, owning scalar sides only
	MappedBy          string // owning side's member name, inverse and one-to-many sides
	JoinTable         string // join table name, many-to-many owning side only
	JoinColumn        string // join column name, many-to-many owning side only
	InverseJoinColumn string // inverse join column name, many-to-many owning side only
}

// M2M indicates if this edge is an M2M edge.
func (e Edge) M2M() bool { return e.Rel == M2M }

// M2O indicates if this edge is an M2O edge.
func (e Edge) M2O() bool { return e.Rel == M2O }

// O2M indicates if this edge is an O2M edge.
func (e Edge) O2M() bool { return e.Rel == O2M }

// O2O indicates if this edge is an O2O edge.
func (e Edge) O2O() bool { return e.Rel == O2O }

// Accessor returns the Pascal-cased accessor stem of the edge member.
func (e Edge) Accessor() string { return ToPascal(e.Name) }

// JavaType returns the member's Java type: the other class name, wrapped in
// List for collections.
func (e Edge) JavaType() string {
	if e.Collection {
		return "List<" + e.Type.Name + ">"
	}
	return e.Type.Name
}

// Annotations returns the JPA mapping annotations for the edge member, in
// emission order. Scalar sides that hold a foreign key map with a join
// column; every other side maps back through mappedBy.
func (e Edge) Annotations() []string {
	switch {
	case e.O2O() && e.Owning:
		return []string{"@OneToOne", fmt.Sprintf("@JoinColumn(name = %q)", e.Column)}
	case e.O2O():
		return []string{fmt.Sprintf("@OneToOne(mappedBy = %q)", e.MappedBy)}
	case e.M2M() && e.Owning:
		return []string{
			"@ManyToMany",
			fmt.Sprintf("@JoinTable(name = %q, joinColumns = @JoinColumn(name = %q), inverseJoinColumns = @JoinColumn(name = %q))",
				e.JoinTable, e.JoinColumn, e.InverseJoinColumn),
		}
	case e.M2M():
		return []string{fmt.Sprintf("@ManyToMany(mappedBy = %q)", e.MappedBy)}
	case e.Collection:
		return []string{fmt.Sprintf("@OneToMany(mappedBy = %q)", e.MappedBy)}
	default:
		return []string{"@ManyToOne", fmt.Sprintf("@JoinColumn(name = %q)", e.Column)}
	}
}

// Type represents one planned class of the diagram: the entity identifier
// plus its resolved scalar fields and relationship edges.
type Type struct {
	*Config

	Name    string   // Pascal-cased entity name
	Raw     string   // class name as supplied by the diagram
	Fields  []*Field // scalar attributes, input order
	Edges   []*Edge  // relationship members, input order
	Methods []string // carried through from the diagram, never emitted

	reserved *nameSet
}

// newType builds a planned class from a sanitized name and reserves the
// surrogate id ahead of every attribute.
func newType(c *Config, name, raw string) *Type {
	t := &Type{
		Config:   c,
		Name:     name,
		Raw:      raw,
		reserved: newNameSet(),
	}
	t.reserved.reserve("id")
	return t
}

// Var returns the camel-cased variable name of the class.
func (t *Type) Var() string { return ToCamel(t.Name) }

// Plural returns the pluralized variable name, used for collection members
// referencing this class and for the REST resource path.
func (t *Type) Plural() string { return Pluralize(t.Var()) }

// Lower returns the lower-cased class name, used in join table and column
// names.
func (t *Type) Lower() string { return strings.ToLower(t.Name) }

// ResourcePath returns the REST path of the class resource.
func (t *Type) ResourcePath() string { return "/api/" + t.Plural() }

// addField reserves the field name and appends the field. It reports false
// when the name is already taken; the field is dropped in that case.
func (t *Type) addField(f *Field) bool {
	if !t.reserved.reserve(f.Name) {
		return false
	}
	t.Fields = append(t.Fields, f)
	return true
}

// addEdge reserves the edge name and appends the edge. It reports false
// when the name is already taken; the edge is dropped in that case.
func (t *Type) addEdge(e *Edge) bool {
	if !t.reserved.reserve(e.Name) {
		return false
	}
	t.Edges = append(t.Edges, e)
	return true
}

// HasCollections reports whether any edge is many-valued.
func (t *Type) HasCollections() bool {
	for _, e := range t.Edges {
		if e.Collection {
			return true
		}
	}
	return false
}

// DTOImports returns the sorted Java imports required by the scalar fields.
// Reference members never appear in transfer objects, so edges contribute
// nothing here.
func (t *Type) DTOImports() []string {
	set := make(map[string]struct{})
	for _, f := range t.Fields {
		if imp := f.Type.Import(); imp != "" {
			set[imp] = struct{}{}
		}
	}
	return sortedImports(set)
}

// EntityImports returns the sorted Java imports required by the entity
// source: field type imports plus collection types when any edge is
// many-valued.
func (t *Type) EntityImports() []string {
	set := make(map[string]struct{})
	for _, f := range t.Fields {
		if imp := f.Type.Import(); imp != "" {
			set[imp] = struct{}{}
		}
	}
	if t.HasCollections() {
		set["java.util.ArrayList"] = struct{}{}
		set["java.util.List"] = struct{}{}
	}
	set["java.util.Objects"] = struct{}{}
	return sortedImports(set)
}

func sortedImports(set map[string]struct{}) []string {
	imports := make([]string, 0, len(set))
	for imp := range set {
		imports = append(imports, imp)
	}
	sort.Strings(imports)
	return imports
}

// Reserved returns the reserved member names in insertion order: id first,
// then attributes, then relation members.
func (t *Type) Reserved() []string {
	return append([]string(nil), t.reserved.order...)
}

// nameSet is an insertion-ordered reservation set. Member names are unique
// per class and the first writer always wins; later candidates are dropped,
// never renamed.
type nameSet struct {
	order []string
	index map[string]struct{}
}

func newNameSet() *nameSet {
	return &nameSet{index: make(map[string]struct{})}
}

// reserve adds the name to the set and reports whether it was free.
func (s *nameSet) reserve(name string) bool {
	if _, ok := s.index[name]; ok {
		return false
	}
	s.index[name] = struct{}{}
	s.order = append(s.order, name)
	return true
}

// has reports whether the name is reserved.
func (s *nameSet) has(name string) bool {
	_, ok := s.index[name]
	return ok
}
