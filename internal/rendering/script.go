package rendering

import (
	"embed"
	"fmt"
	"strings"
	"sync"
	"text/template"

	"github.com/jonathan/architect-assistant/internal/layout"
	"github.com/jonathan/architect-assistant/internal/types"
)

//go:embed templates/*.tmpl
var templateFiles embed.FS

const scriptTemplateName = "blender.py.tmpl"

// Fixed detailing dimensions (meters) used by the script helpers
const (
	GlassThickness  = 0.02
	DoorThickness   = 0.06
	TrimWidth       = 0.15
	CanopyThickness = 0.2
	CanopyOverhang  = 0.5
)

// Finish is a Principled BSDF surface setting
type Finish struct {
	R, G, B, A float64
	Roughness  float64
	Metallic   float64
}

var facadeFinishes = map[types.FacadeMaterial]Finish{
	types.FacadeGlassCurtainWall: {R: 0.55, G: 0.7, B: 0.8, A: 0.6, Roughness: 0.05, Metallic: 0.3},
	types.FacadeStone:            {R: 0.72, G: 0.68, B: 0.6, A: 1, Roughness: 0.85},
	types.FacadeBrick:            {R: 0.6, G: 0.25, B: 0.18, A: 1, Roughness: 0.9},
	types.FacadeStucco:           {R: 0.93, G: 0.9, B: 0.82, A: 1, Roughness: 0.95},
	types.FacadeConcrete:         {R: 0.62, G: 0.62, B: 0.6, A: 1, Roughness: 0.8},
	types.FacadeWood:             {R: 0.55, G: 0.38, B: 0.22, A: 1, Roughness: 0.7},
	types.FacadeMetalPanel:       {R: 0.7, G: 0.72, B: 0.75, A: 1, Roughness: 0.35, Metallic: 0.9},
}

// fixed finishes for the non-facade materials
var (
	slabFinish  = Finish{R: 0.5, G: 0.5, B: 0.5, A: 1, Roughness: 0.9}
	glassFinish = Finish{R: 0.6, G: 0.75, B: 0.85, A: 0.35, Roughness: 0.02}
	roofFinish  = Finish{R: 0.25, G: 0.25, B: 0.27, A: 1, Roughness: 0.8}
	doorFinish  = Finish{R: 0.2, G: 0.15, B: 0.1, A: 1, Roughness: 0.5}
	trimFinish  = Finish{R: 0.85, G: 0.85, B: 0.82, A: 1, Roughness: 0.6}
)

type materialData struct {
	Var  string
	Name string
	Finish
}

type opData struct {
	Kind string
	Op   layout.Op
}

type scriptData struct {
	Title           string
	Spec            types.BuildingSpecification
	WallThickness   float64
	GlassThickness  float64
	DoorThickness   float64
	TrimWidth       float64
	CanopyThickness float64
	CanopyOverhang  float64
	Materials       []materialData
	Ops             []opData
}

var (
	scriptTmpl    *template.Template
	scriptTmplErr error
	scriptOnce    sync.Once
)

// scriptTemplate parses the embedded template once; the parsed template is safe for
// concurrent execution
func scriptTemplate() (*template.Template, error) {
	scriptOnce.Do(func() {
		content, err := templateFiles.ReadFile("templates/" + scriptTemplateName)
		if err != nil {
			scriptTmplErr = &TemplateError{Message: "failed to read embedded template", Cause: err}
			return
		}
		scriptTmpl, err = template.New(scriptTemplateName).Option("missingkey=error").Funcs(template.FuncMap{
			"num":  FormatFloat,
			"py":   pyLiteral,
			"ints": formatInts,
			"join": joinExtras,
		}).Parse(string(content))
		if err != nil {
			scriptTmplErr = &TemplateError{Message: "failed to parse template", Cause: err}
		}
	})
	return scriptTmpl, scriptTmplErr
}

// Title is the human-readable name of a building, e.g. "20-floor glass-curtain-wall building"
func Title(spec types.BuildingSpecification) string {
	return fmt.Sprintf("%d-floor %s building", spec.FloorCount, spec.FacadeMaterial)
}

// RenderScript renders a layout plan into a Blender Python script. The output depends only
// on the plan and the specification.
func RenderScript(plan *layout.Plan, spec types.BuildingSpecification) (string, error) {
	if plan == nil {
		return "", &RenderError{Message: "plan is nil"}
	}
	finish, ok := facadeFinishes[spec.FacadeMaterial]
	if !ok {
		return "", &RenderError{Message: fmt.Sprintf("no finish for facade material %q", spec.FacadeMaterial)}
	}

	tmpl, err := scriptTemplate()
	if err != nil {
		return "", err
	}

	data := &scriptData{
		Title:           Title(spec),
		Spec:            spec,
		WallThickness:   plan.WallThickness,
		GlassThickness:  GlassThickness,
		DoorThickness:   DoorThickness,
		TrimWidth:       TrimWidth,
		CanopyThickness: CanopyThickness,
		CanopyOverhang:  CanopyOverhang,
		Materials: []materialData{
			{Var: "SLAB", Name: "Slab", Finish: slabFinish},
			{Var: "FACADE", Name: "Facade_" + string(spec.FacadeMaterial), Finish: finish},
			{Var: "GLASS", Name: "Glass", Finish: glassFinish},
			{Var: "ROOF", Name: "Roof_" + string(spec.RoofType), Finish: roofFinish},
			{Var: "DOOR", Name: "Door", Finish: doorFinish},
			{Var: "TRIM", Name: "Trim", Finish: trimFinish},
		},
		Ops: make([]opData, 0, len(plan.Ops)),
	}
	for _, op := range plan.Ops {
		data.Ops = append(data.Ops, opData{Kind: string(op.Kind()), Op: op})
	}

	var result strings.Builder
	if err := tmpl.Execute(&result, data); err != nil {
		return "", &TemplateError{Message: "failed to execute template", Cause: err}
	}
	return result.String(), nil
}

func joinExtras(extras []types.Extra) string {
	parts := make([]string, len(extras))
	for i, e := range extras {
		parts[i] = string(e)
	}
	return strings.Join(parts, ", ")
}
