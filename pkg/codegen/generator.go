package codegen

import (
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/xplshn/bgen/pkg/block"
	"github.com/xplshn/bgen/pkg/config"
	"github.com/xplshn/bgen/pkg/fragments"
	"github.com/xplshn/bgen/pkg/pins"
	"github.com/xplshn/bgen/pkg/typeChecker"
)

// Result is the output of one pass.
type Result struct {
	Source string
	// Digest is the xxhash of Source.
	Digest   uint64
	Warnings []Annotation
	Claims   []pins.Claim
	Types    *typeChecker.Result
}

// Generator turns block workspaces into mbed C++ translation units. Passes
// share nothing but the configuration, so a Generator may be reused; it must
// not run two passes at once.
type Generator struct {
	cfg *config.Config
}

func NewGenerator(cfg *config.Config) *Generator {
	return &Generator{cfg: cfg}
}

// Generate runs one full pass over ws. An unknown block kind, a block used
// in the wrong shape, or (with strict-pins) a pin conflict fails the pass and
// no source is returned.
func (g *Generator) Generate(ws *block.Workspace) (*Result, error) {
	ctx := NewContext(g.cfg, ws)
	defer ctx.reset()

	ctx.declareVariables()

	var body strings.Builder
	for _, top := range ws.Blocks {
		body.WriteString(ctx.chain(top))
	}
	if ctx.err != nil {
		return nil, ctx.err
	}
	if len(ctx.conflicts) > 0 && g.cfg.IsFeatureEnabled(config.FeatStrictPins) {
		return nil, &PinConflictError{Conflicts: ctx.conflicts}
	}

	src := ctx.assemble(body.String())
	return &Result{
		Source:   src,
		Digest:   xxhash.Sum64String(src),
		Warnings: ctx.annotations,
		Claims:   ctx.pins.Claims(),
		Types:    ctx.types,
	}, nil
}

// declareVariables emits one global per workspace variable, typed by the
// type checker.
func (ctx *Context) declareVariables() {
	for _, raw := range ctx.types.Vars {
		t := ctx.types.VarType(raw)
		if t == typeChecker.Undefined {
			if n := ctx.firstUse(raw); n != nil {
				ctx.warn(n, config.WarnType, "type", "Type of variable '%s' could not be determined, declaring it as int.", raw)
			}
		}
		if t == typeChecker.Text {
			ctx.include("<string>")
		}
		name := ctx.variable(raw)
		ctx.frags.Put(fragments.Variables, strings.ToLower(raw), typeChecker.CType(t)+" "+name+";", false)
	}
}

func (ctx *Context) firstUse(raw string) *block.Node {
	var found *block.Node
	ctx.ws.Walk(func(n *block.Node) bool {
		if found != nil {
			return false
		}
		if f, ok := block.NameFieldOf(n); ok && f.Category() == block.VariableName && strings.EqualFold(f.Name(), raw) {
			found = n
		}
		return found == nil
	})
	return found
}

const preamble = "#define HIGH 1\n#define LOW 0\n#include \"mbed.h\""

// assemble drains the fragment buckets around body: includes, variables,
// declarations, helper functions, user functions, then main with the setup
// statements ahead of the body. User setup code always runs last among the
// setups.
func (ctx *Context) assemble(body string) string {
	if code, ok := ctx.frags.Get(fragments.Setups, "userSetupCode"); ok {
		ctx.frags.Delete(fragments.Setups, "userSetupCode")
		ctx.frags.Put(fragments.Setups, "userSetupCode", code, false)
	}

	var sections []string
	add := func(parts []string, sep string) {
		if len(parts) > 0 {
			sections = append(sections, strings.Join(parts, sep))
		}
	}

	var head []string
	if ctx.cfg.IsFeatureEnabled(config.FeatPreamble) {
		head = append(head, preamble)
	}
	add(append(head, ctx.frags.Drain(fragments.Includes)...), "\n")
	add(ctx.frags.Drain(fragments.Variables), "\n")
	add(ctx.frags.Drain(fragments.Declarations), "\n")
	add(ctx.frags.Drain(fragments.Functions), "\n\n")
	add(ctx.frags.Drain(fragments.UserFunctions), "\n\n")

	var main strings.Builder
	main.WriteString("int main() {\n")
	if setups := ctx.frags.Drain(fragments.Setups); len(setups) > 0 {
		main.WriteString(ctx.indentLines(strings.Join(setups, "\n") + "\n"))
		if body != "" {
			main.WriteString("\n")
		}
	}
	main.WriteString(ctx.indentLines(body))
	main.WriteString("}\n")
	sections = append(sections, main.String())

	return strings.Join(sections, "\n\n")
}
