package routetable

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/pathrouter/core/router"
)

// envVarPattern matches ${VAR} and ${VAR:-default}.
var envVarPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// Table is a set of route declarations.
type Table struct {
	Routes []Entry `yaml:"routes"`
}

// Entry declares one route. Method and Methods may be combined; when both are
// empty the route is registered for every method.
type Entry struct {
	Name    string   `yaml:"name"`
	Method  string   `yaml:"method"`
	Methods []string `yaml:"methods"`
	Pattern string   `yaml:"pattern"`
}

// methods returns the methods to register the entry for.
func (e Entry) methods() []string {
	var out []string
	if e.Method != "" {
		out = append(out, e.Method)
	}
	out = append(out, e.Methods...)
	if len(out) == 0 {
		out = []string{router.MethodAny}
	}
	return out
}

// RouteName returns the declared name, falling back to the pattern when the
// entry is unnamed.
func (e Entry) RouteName() string {
	if e.Name != "" {
		return e.Name
	}
	return e.Pattern
}

// Load reads and parses the table at path.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return nil, fmt.Errorf("failed to read route table %s: %w", path, err)
	}
	return parse(data)
}

// Parse reads a table from r.
func Parse(r io.Reader) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read route table: %w", err)
	}
	return parse(data)
}

func parse(data []byte) (*Table, error) {
	var t Table
	if err := yaml.Unmarshal([]byte(substituteEnvVars(string(data))), &t); err != nil {
		return nil, fmt.Errorf("failed to parse route table: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// Validate checks the declarations that the router itself does not. Pattern
// syntax is left to router.Insert.
func (t *Table) Validate() error {
	if len(t.Routes) == 0 {
		return ErrEmptyTable
	}

	names := make(map[string]int, len(t.Routes))
	for i, e := range t.Routes {
		if strings.TrimSpace(e.Pattern) == "" {
			return fmt.Errorf("%w: entry %d", ErrMissingPattern, i)
		}
		if e.Name == "" {
			continue
		}
		if prev, ok := names[e.Name]; ok {
			return fmt.Errorf("%w: '%s' at entries %d and %d", ErrDuplicateName, e.Name, prev, i)
		}
		names[e.Name] = i
	}
	return nil
}

// Register inserts every entry into r using the route name as the handle.
func (t *Table) Register(r *router.Router[string]) error {
	return RegisterFunc(t, r, Entry.RouteName)
}

// RegisterFunc inserts every entry into r with the handle built by route.
// The first failure stops registration and is reported with the offending
// entry.
func RegisterFunc[R any](t *Table, r *router.Router[R], route func(Entry) R) error {
	for i, e := range t.Routes {
		h := route(e)
		for _, method := range e.methods() {
			if err := r.Insert(method, e.Pattern, h); err != nil {
				return fmt.Errorf("%w: entry %d (%s %s): %w", ErrRegister, i, method, e.Pattern, err)
			}
		}
	}
	return nil
}

// Build creates a router with opts and registers the table into it.
func (t *Table) Build(opts ...router.Option[string]) (*router.Router[string], error) {
	r := router.New(opts...)
	if err := t.Register(r); err != nil {
		r.Destroy()
		return nil, err
	}
	return r, nil
}

// substituteEnvVars replaces ${VAR} and ${VAR:-default} with environment values.
func substituteEnvVars(content string) string {
	return envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		sub := envVarPattern.FindStringSubmatch(match)
		if value, ok := os.LookupEnv(sub[1]); ok {
			return value
		}
		return sub[2]
	})
}
