package gen

import (
	"encoding/json"
	"fmt"
	"strings"
)

// The collection documents are assembled programmatically; JSON built from
// structs survives odd class names that would break a text template.
var documentBuilders = []struct {
	path  string
	build func(*Graph) ([]byte, error)
}{
	{path: "postman_collection.json", build: PostmanCollection},
	{path: "postman_environment.json", build: PostmanEnvironment},
}

const postmanSchema = "https://schema.getpostman.com/json/collection/v2.1.0/collection.json"

type postmanCollection struct {
	Info postmanInfo   `json:"info"`
	Item []postmanItem `json:"item"`
}

type postmanInfo struct {
	Name   string `json:"name"`
	Schema string `json:"schema"`
}

// postmanItem is either a request folder (Item set) or a single request
// (Request set).
type postmanItem struct {
	Name    string          `json:"name"`
	Item    []postmanItem   `json:"item,omitempty"`
	Request *postmanRequest `json:"request,omitempty"`
}

type postmanRequest struct {
	Method string          `json:"method"`
	Header []postmanHeader `json:"header"`
	Body   *postmanBody    `json:"body,omitempty"`
	URL    postmanURL      `json:"url"`
}

type postmanHeader struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type postmanBody struct {
	Mode string `json:"mode"`
	Raw  string `json:"raw"`
}

type postmanURL struct {
	Raw  string   `json:"raw"`
	Host []string `json:"host"`
	Path []string `json:"path"`
}

type postmanEnvironment struct {
	Name   string       `json:"name"`
	Scope  string       `json:"_postman_variable_scope"`
	Values []postmanVar `json:"values"`
}

type postmanVar struct {
	Key     string `json:"key"`
	Value   string `json:"value"`
	Enabled bool   `json:"enabled"`
}

// PostmanCollection renders the API-testing collection: one folder per
// class holding a list request and a create request with a sample body.
func PostmanCollection(g *Graph) ([]byte, error) {
	col := postmanCollection{
		Info: postmanInfo{
			Name:   g.Config.ArtifactID,
			Schema: postmanSchema,
		},
		Item: make([]postmanItem, 0, len(g.Nodes)),
	}
	for _, t := range g.Nodes {
		col.Item = append(col.Item, postmanItem{
			Name: t.Name,
			Item: []postmanItem{
				{
					Name: "List " + t.Plural(),
					Request: &postmanRequest{
						Method: "GET",
						Header: []postmanHeader{},
						URL:    resourceURL(t),
					},
				},
				{
					Name: "Create " + t.Var(),
					Request: &postmanRequest{
						Method: "POST",
						Header: []postmanHeader{{Key: "Content-Type", Value: "application/json"}},
						Body:   &postmanBody{Mode: "raw", Raw: sampleBody(t)},
						URL:    resourceURL(t),
					},
				},
			},
		})
	}
	return json.MarshalIndent(col, "", "    ")
}

// PostmanEnvironment renders the companion environment defining the
// baseUrl variable the collection requests resolve against.
func PostmanEnvironment(g *Graph) ([]byte, error) {
	env := postmanEnvironment{
		Name:  g.Config.ArtifactID + "-env",
		Scope: "environment",
		Values: []postmanVar{
			{
				Key:     "baseUrl",
				Value:   fmt.Sprintf("http://localhost:%d", g.Config.ServerPort),
				Enabled: true,
			},
		},
	}
	return json.MarshalIndent(env, "", "    ")
}

func resourceURL(t *Type) postmanURL {
	return postmanURL{
		Raw:  "{{baseUrl}}" + t.ResourcePath(),
		Host: []string{"{{baseUrl}}"},
		Path: []string{"api", t.Plural()},
	}
}

// sampleBody derives the JSON request body from the scalar fields, keeping
// diagram order. Reference members never appear; they are not part of the
// transfer object either.
func sampleBody(t *Type) string {
	if len(t.Fields) == 0 {
		return "{}"
	}
	var b strings.Builder
	b.WriteString("{\n")
	for i, f := range t.Fields {
		if i > 0 {
			b.WriteString(",\n")
		}
		fmt.Fprintf(&b, "    %q: %s", f.Name, f.Sample())
	}
	b.WriteString("\n}")
	return b.String()
}
