package gen

import (
	"embed"
	"sync"
	"text/template"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var (
	tmplOnce sync.Once
	tmplSet  *template.Template
)

// templates parses the embedded artifact templates once and shares the set
// across writers. The templates lean on the model types for helpers, so no
// function map is registered.
func templates() *template.Template {
	tmplOnce.Do(func() {
		tmplSet = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))
	})
	return tmplSet
}

// TypeTemplate describes one artifact rendered per planned class.
type TypeTemplate struct {
	Name   string             // template file name without extension
	Format func(*Type) string // output path inside the project
	Cond   func(*Type) bool   // optional; the artifact is skipped when false
}

// GraphTemplate describes one artifact rendered once per project.
type GraphTemplate struct {
	Name   string
	Format func(*Graph) string
	Skip   func(*Graph) bool
}

// Templates are the per-class artifacts, one per emitter kind.
var Templates = []TypeTemplate{
	{
		Name:   "entity",
		Format: func(t *Type) string { return t.JavaRoot() + "/model/" + t.Name + ".java" },
	},
	{
		Name:   "dto",
		Format: func(t *Type) string { return t.JavaRoot() + "/dto/" + t.Name + "DTO.java" },
	},
	{
		Name:   "repository",
		Format: func(t *Type) string { return t.JavaRoot() + "/repository/" + t.Name + "Repository.java" },
	},
	{
		Name:   "service",
		Format: func(t *Type) string { return t.JavaRoot() + "/service/" + t.Name + "Service.java" },
	},
	{
		Name:   "controller",
		Format: func(t *Type) string { return t.JavaRoot() + "/controller/" + t.Name + "Controller.java" },
	},
}

// GraphTemplates are the project-wide scaffolding artifacts.
var GraphTemplates = []GraphTemplate{
	{
		Name:   "pom",
		Format: func(*Graph) string { return "pom.xml" },
	},
	{
		Name:   "application",
		Format: func(*Graph) string { return "src/main/resources/application.properties" },
	},
	{
		Name:   "bootstrap",
		Format: func(g *Graph) string { return g.Config.JavaRoot() + "/" + g.Config.AppName + ".java" },
	},
	{
		Name:   "mapper",
		Format: func(g *Graph) string { return g.Config.JavaRoot() + "/config/ModelMapperConfig.java" },
	},
}
