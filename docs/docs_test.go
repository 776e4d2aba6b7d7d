package docs

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type operation struct {
	ID          string `json:"operationId"`
	Summary     string `json:"summary"`
	Description string `json:"description"`
}

// annotatedOperations reads the swag annotations of the handler package,
// keyed by "METHOD path".
func annotatedOperations(t *testing.T) map[string]operation {
	t.Helper()
	files, err := filepath.Glob(filepath.Join("..", "internal", "http", "handlers", "*.go"))
	if err != nil || len(files) == 0 {
		t.Fatalf("handler sources: %v (%d files)", err, len(files))
	}
	out := map[string]operation{}
	for _, name := range files {
		if strings.HasSuffix(name, "_test.go") {
			continue
		}
		f, err := os.Open(name)
		if err != nil {
			t.Fatalf("open %s: %v", name, err)
		}
		var cur operation
		sc := bufio.NewScanner(f)
		for sc.Scan() {
			line := strings.TrimSpace(strings.TrimPrefix(sc.Text(), "//"))
			tag, val, _ := strings.Cut(line, " ")
			val = strings.TrimSpace(val)
			switch tag {
			case "@ID":
				cur.ID = val
			case "@Summary":
				cur.Summary = val
			case "@Description":
				cur.Description = val
			case "@Router":
				path, method, _ := strings.Cut(val, " ")
				method = strings.ToUpper(strings.Trim(method, "[]"))
				out[method+" "+path] = cur
				cur = operation{}
			}
		}
		_ = f.Close()
		if err := sc.Err(); err != nil {
			t.Fatalf("scan %s: %v", name, err)
		}
	}
	return out
}

func documentedOperations(t *testing.T) map[string]operation {
	t.Helper()
	var doc struct {
		Paths map[string]map[string]operation `json:"paths"`
	}
	if err := json.Unmarshal([]byte(SwaggerInfo.ReadDoc()), &doc); err != nil {
		t.Fatalf("rendered doc is not JSON: %v", err)
	}
	out := map[string]operation{}
	for path, ops := range doc.Paths {
		for method, op := range ops {
			out[strings.ToUpper(method)+" "+path] = op
		}
	}
	return out
}

func TestDocMatchesHandlerAnnotations(t *testing.T) {
	want := annotatedOperations(t)
	if len(want) == 0 {
		t.Fatalf("no annotated routes found")
	}
	if diff := cmp.Diff(want, documentedOperations(t)); diff != "" {
		t.Fatalf("docs are stale, regenerate with swag init (-annotations +docs):\n%s", diff)
	}
}

func TestSwaggerJSONMatchesDoc(t *testing.T) {
	b, err := os.ReadFile("swagger.json")
	if err != nil {
		t.Fatalf("read swagger.json: %v", err)
	}
	var file struct {
		Paths map[string]map[string]operation `json:"paths"`
	}
	if err := json.Unmarshal(b, &file); err != nil {
		t.Fatalf("swagger.json: %v", err)
	}
	got := map[string]operation{}
	for path, ops := range file.Paths {
		for method, op := range ops {
			got[strings.ToUpper(method)+" "+path] = op
		}
	}
	if diff := cmp.Diff(documentedOperations(t), got); diff != "" {
		t.Fatalf("swagger.json differs from docs.go (-docs.go +swagger.json):\n%s", diff)
	}
}
