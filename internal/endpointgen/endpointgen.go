// Package endpointgen renders the typed operations of the API client from
// an endpoint catalogue.
package endpointgen

import (
	"bytes"
	"go/format"
	"go/token"
	"net/http"
	"os"
	"path"
	"strconv"
	"strings"
	"text/template"

	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
)

// File is a parsed endpoint catalogue.
type File struct {
	// Package is the Go package the operations are generated into.
	Package string `toml:"package"`
	// Models is the import path of the request and response models.
	Models    string     `toml:"models"`
	Endpoints []Endpoint `toml:"endpoint"`
}

// Endpoint is one operation of the catalogue.
type Endpoint struct {
	Name        string   `toml:"name"`
	Func        string   `toml:"func"`
	Method      string   `toml:"method"`
	Path        string   `toml:"path"`
	Request     string   `toml:"request"`
	Param       string   `toml:"param"`
	Response    string   `toml:"response"`
	Accept      []string `toml:"accept"`
	ContentType []string `toml:"content_type"`
	Summary     string   `toml:"summary"`
}

// Load reads and validates the catalogue at p.
func Load(p string) (*File, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, err
	}
	f, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load %s", p)
	}
	return f, nil
}

// Parse decodes and validates a catalogue.
func Parse(data []byte) (*File, error) {
	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(err, "invalid endpoint catalogue")
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks that the catalogue describes a set of operations that can
// be generated.
func (f *File) Validate() error {
	if !token.IsIdentifier(f.Package) {
		return errors.Errorf("invalid package name %q", f.Package)
	}
	if f.Models == "" {
		return errors.New("models import path is required")
	}
	if len(f.Endpoints) == 0 {
		return errors.New("no endpoints defined")
	}
	names := map[string]bool{}
	funcs := map[string]bool{}
	for i, ep := range f.Endpoints {
		if ep.Name == "" {
			return errors.Errorf("endpoint %d: name is required", i)
		}
		if names[ep.Name] {
			return errors.Errorf("endpoint %s: duplicate name", ep.Name)
		}
		names[ep.Name] = true
		if !token.IsIdentifier(ep.Func) || !token.IsExported(ep.Func) {
			return errors.Errorf("endpoint %s: func %q is not an exported identifier", ep.Name, ep.Func)
		}
		if funcs[ep.Func] || funcs[ep.Func+"Async"] || strings.HasSuffix(ep.Func, "Async") && funcs[strings.TrimSuffix(ep.Func, "Async")] {
			return errors.Errorf("endpoint %s: duplicate func %s", ep.Name, ep.Func)
		}
		funcs[ep.Func] = true
		switch ep.Method {
		case http.MethodGet:
			if ep.Request != "" {
				return errors.Errorf("endpoint %s: GET operations take no request", ep.Name)
			}
		case http.MethodPost:
		default:
			return errors.Errorf("endpoint %s: unsupported method %q", ep.Name, ep.Method)
		}
		if !strings.HasPrefix(ep.Path, "/") {
			return errors.Errorf("endpoint %s: path %q must start with /", ep.Name, ep.Path)
		}
		if (ep.Request == "") != (ep.Param == "") {
			return errors.Errorf("endpoint %s: request and param must be set together", ep.Name)
		}
		if ep.Request != "" && !token.IsIdentifier(ep.Request) {
			return errors.Errorf("endpoint %s: invalid request type %q", ep.Name, ep.Request)
		}
		if !token.IsIdentifier(ep.Response) {
			return errors.Errorf("endpoint %s: invalid response type %q", ep.Name, ep.Response)
		}
	}
	return nil
}

// Render generates the Go source of f. source names the catalogue in the
// generated header.
func Render(f *File, source string) ([]byte, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	qual := path.Base(f.Models)
	model := func(name string) string { return qual + "." + name }

	tmpl, err := template.New("endpoints").Funcs(template.FuncMap{
		"quote":       strconv.Quote,
		"model":       model,
		"comment":     comment,
		"stringSlice": stringSlice,
		"varName": func(ep Endpoint) string {
			return "endpoint" + ep.Func
		},
		"params": func(ep Endpoint) string {
			if ep.Request == "" {
				return "ctx context.Context, opts ...CallOption"
			}
			return "ctx context.Context, req *" + model(ep.Request) + ", opts ...CallOption"
		},
		"reqType": func(ep Endpoint) string {
			if ep.Request == "" {
				return "struct{}"
			}
			return model(ep.Request)
		},
		"reqArg": func(ep Endpoint) string {
			if ep.Request == "" {
				return "nil"
			}
			return "req"
		},
	}).Parse(sourceTemplate)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, struct {
		*File
		Source string
	}{f, source})
	if err != nil {
		return nil, err
	}
	out, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, errors.Wrap(err, "generated source does not parse")
	}
	return out, nil
}

func stringSlice(s []string) string {
	q := make([]string, len(s))
	for i, v := range s {
		q[i] = strconv.Quote(v)
	}
	return "[]string{" + strings.Join(q, ", ") + "}"
}

const commentWidth = 77

// comment renders text as a line comment wrapped at commentWidth columns.
func comment(text string) string {
	var lines []string
	var line string
	for _, w := range strings.Fields(text) {
		switch {
		case line == "":
			line = w
		case len(line)+1+len(w) > commentWidth:
			lines = append(lines, line)
			line = w
		default:
			line += " " + w
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	return "// " + strings.Join(lines, "\n// ")
}

const sourceTemplate = `// Code generated by endpointgen from {{.Source}}. DO NOT EDIT.

package {{.Package}}

import (
	"context"

	"{{.Models}}"
)
{{range .Endpoints}}
var {{varName .}} = Endpoint{
	Name: {{quote .Name}},
	Method: {{quote .Method}},
	Path: {{quote .Path}},
{{- if .Param}}
	Param: {{quote .Param}},
{{- end}}
{{- if .Accept}}
	Accept: {{stringSlice .Accept}},
{{- end}}
{{- if .ContentType}}
	ContentType: {{stringSlice .ContentType}},
{{- end}}
	Response: {{quote .Response}},
}
{{end}}
var endpoints = []Endpoint{
{{- range .Endpoints}}
	{{varName .}},
{{- end}}
}

// RequesterAPIClient defines the operations of the requester API.
type RequesterAPIClient interface {
{{- range .Endpoints}}
	{{.Func}}({{params .}}) ({{model .Response}}, error)
	{{.Func}}Async({{params .}}) *Handle[{{model .Response}}]
{{- end}}
}
{{range .Endpoints}}
{{comment (printf "%s %s" .Func .Summary)}}
func (cli *Client) {{.Func}}({{params .}}) ({{model .Response}}, error) {
	return invoke[{{reqType .}}, {{model .Response}}](ctx, cli, {{varName .}}, {{reqArg .}}, opts)
}

// {{.Func}}Async is the asynchronous form of [Client.{{.Func}}].
func (cli *Client) {{.Func}}Async({{params .}}) *Handle[{{model .Response}}] {
	return invokeAsync[{{reqType .}}, {{model .Response}}](ctx, cli, {{varName .}}, {{reqArg .}}, opts)
}
{{end}}`
