// Command ecs-gen writes a synthetic set of components and systems used by
// ecs-stress.
package main

import (
	"bytes"
	"flag"
	"log"
	"os"
	"text/template"

	"golang.org/x/tools/imports"
)

type params struct {
	Components  int
	Systems     int
	SparseEvery int
}

type systemDef struct {
	Index  int
	First  int
	Second int
}

func (p params) ComponentIndexes() []int {
	out := make([]int, p.Components)
	for i := range out {
		out[i] = i
	}
	return out
}

// Sparse reports whether component i uses sparse storage.
func (p params) Sparse(i int) bool {
	return p.SparseEvery > 0 && i%p.SparseEvery == p.SparseEvery-1
}

func (p params) SystemDefs() []systemDef {
	out := make([]systemDef, p.Systems)
	for i := range out {
		out[i] = systemDef{
			Index:  i,
			First:  (2 * i) % p.Components,
			Second: (2*i + 1) % p.Components,
		}
	}
	return out
}

const source = `// Code generated by ecs-gen. DO NOT EDIT.

package main

import (
	"github.com/plus3/tickworld/ecs"
)

const (
	componentCount = {{.Components}}
	systemCount = {{.Systems}}
)
{{range .ComponentIndexes}}
type Component{{.}} struct {
	Value float64
}
{{end}}
{{- range .SystemDefs}}
type System{{.Index}} struct {
	ecs.Order
}

func (s *System{{.Index}}) Process(frame *ecs.UpdateFrame) {
	for _, pair := range ecs.Each2[Component{{.First}}, Component{{.Second}}](frame.World) {
		pair.First.Value += pair.Second.Value * frame.DeltaTime
	}
}
{{end}}
func RegisterAllGeneratedComponents(r *ecs.ComponentRegistry) {
{{- range .ComponentIndexes}}
	{{- if $.Sparse .}}
	ecs.RegisterComponent[Component{{.}}](r, ecs.WithStorage(ecs.StorageSparse))
	{{- else}}
	ecs.RegisterComponent[Component{{.}}](r)
	{{- end}}
{{- end}}
}

func RegisterAllGeneratedSystems(w *ecs.World) error {
{{- range .SystemDefs}}
	if _, err := ecs.AddSystem(w, &System{{.Index}}{Order: {{.Index}}}); err != nil {
		return err
	}
{{- end}}
	return nil
}

var componentAdders = [componentCount]func(w *ecs.World, e ecs.Entity){
{{- range .ComponentIndexes}}
	func(w *ecs.World, e ecs.Entity) { ecs.AddComponent(w, e, Component{{.}}{Value: 1}) },
{{- end}}
}
`

func main() {
	var p params
	flag.IntVar(&p.Components, "components", 16, "Number of component types to generate.")
	flag.IntVar(&p.Systems, "systems", 8, "Number of systems to generate.")
	flag.IntVar(&p.SparseEvery, "sparse-every", 4, "Give every Nth component sparse storage (0 disables).")
	out := flag.String("out", "generated.go", "Output file.")
	flag.Parse()

	if p.Components < 2 {
		log.Fatal("need at least 2 components")
	}

	tmpl := template.Must(template.New("generated").Parse(source))

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, p); err != nil {
		log.Fatalf("render: %v", err)
	}

	formatted, err := imports.Process(*out, buf.Bytes(), nil)
	if err != nil {
		log.Fatalf("format: %v", err)
	}

	if err := os.WriteFile(*out, formatted, 0o644); err != nil {
		log.Fatalf("write %s: %v", *out, err)
	}
	log.Printf("wrote %s: %d components, %d systems", *out, p.Components, p.Systems)
}
