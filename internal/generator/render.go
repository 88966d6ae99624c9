package generator

import (
	"bytes"
	"strings"
	"sync"
	"text/template"
	"unicode"
	"unicode/utf8"

	"github.com/simonhull/anchor-init/internal/naming"
)

// Helpers maps a template helper name to a pure string transform.
type Helpers map[string]func(string) string

// DefaultHelpers returns the helpers every Anchor template may use.
func DefaultHelpers() Helpers {
	return Helpers{
		"PascalCase": PascalCase, // my_project → MyProject
		"camelCase":  CamelCase,  // my_project → myProject
		"snakeCase":  naming.SnakeCase,
	}
}

// Renderer compiles templates against a single Context with caching
type Renderer struct {
	ctx     Context
	data    map[string]string
	funcMap template.FuncMap
	cache   map[string]*template.Template
	mu      sync.RWMutex
}

// NewRenderer creates a renderer bound to ctx. Each context key is exposed as
// a niladic function so that {{projectName}} and {{PascalCase projectName}}
// resolve without a leading dot.
func NewRenderer(ctx Context, helpers Helpers) *Renderer {
	data := ctx.Values()

	funcMap := make(template.FuncMap, len(helpers)+len(data))
	for name, fn := range helpers {
		funcMap[name] = fn
	}
	for key, value := range data {
		funcMap[key] = constant(value)
	}

	return &Renderer{
		ctx:     ctx,
		data:    data,
		funcMap: funcMap,
		cache:   make(map[string]*template.Template),
	}
}

// Context returns the context the renderer is bound to.
func (r *Renderer) Context() Context {
	return r.ctx
}

// RenderString renders templateStr. The name labels errors.
func (r *Renderer) RenderString(name, templateStr string) (string, error) {
	out, err := r.Render(name, []byte(templateStr))
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Render renders template content. Templates without any action are returned
// as-is without parsing.
func (r *Renderer) Render(name string, content []byte) ([]byte, error) {
	if !bytes.Contains(content, []byte("{{")) {
		return content, nil
	}

	tmpl, err := r.parse(name, string(content))
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, r.data); err != nil {
		return nil, &TemplateError{Name: name, Err: err}
	}
	if buf.Len() == 0 {
		return []byte{}, nil
	}
	return buf.Bytes(), nil
}

func (r *Renderer) parse(name, text string) (*template.Template, error) {
	cacheKey := name + "\x00" + text

	r.mu.RLock()
	if tmpl, ok := r.cache[cacheKey]; ok {
		r.mu.RUnlock()
		return tmpl, nil
	}
	r.mu.RUnlock()

	tmpl, err := template.New(name).
		Option("missingkey=error").
		Funcs(r.funcMap).
		Parse(text)
	if err != nil {
		return nil, &TemplateError{Name: name, Err: err}
	}

	r.mu.Lock()
	r.cache[cacheKey] = tmpl
	r.mu.Unlock()

	return tmpl, nil
}

func constant(value string) func() string {
	return func() string { return value }
}

// PascalCase splits s on every rune that is not a letter or digit, upper-cases
// the first rune of each segment and concatenates the segments. The rest of
// each segment is kept as-is.
// Examples: my_project → MyProject, token-vault → TokenVault, myProject → MyProject
func PascalCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	upperNext := true
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			upperNext = true
			continue
		}
		if upperNext {
			b.WriteRune(unicode.ToUpper(r))
			upperNext = false
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// CamelCase is PascalCase with the first rune lower-cased.
// Examples: my_project → myProject, MyProject → myProject
func CamelCase(s string) string {
	pascal := PascalCase(s)
	r, size := utf8.DecodeRuneInString(pascal)
	if size == 0 {
		return ""
	}
	return string(unicode.ToLower(r)) + pascal[size:]
}
