package codegen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xplshn/bgen/pkg/block"
	"github.com/xplshn/bgen/pkg/board"
	"github.com/xplshn/bgen/pkg/config"
	"github.com/xplshn/bgen/pkg/fragments"
	"github.com/xplshn/bgen/pkg/names"
	"github.com/xplshn/bgen/pkg/pins"
	"github.com/xplshn/bgen/pkg/typeChecker"
)

// Annotation is a user-visible note attached to one block during a pass.
// Tag identifies the source of the note so a block carries at most one note
// per tag.
type Annotation struct {
	BlockID string
	Tag     string
	Warning config.Warning
	Message string
}

// Context is the state of one generation pass. It is created by Generate and
// discarded when the pass ends; nothing in it outlives the pass.
type Context struct {
	cfg         *config.Config
	board       *board.Profile
	ws          *block.Workspace
	names       *names.Allocator
	pins        pins.Ledger
	frags       fragments.Store
	types       *typeChecker.Result
	annotations []Annotation
	noteIndex   map[string]int
	conflicts   []*pins.Conflict
	procs       map[string]*block.Node
	macros      map[string]bool
	indent      string
	err         error
}

// NewContext starts a pass over ws: every table is empty and the types of
// ws are resolved.
func NewContext(cfg *config.Config, ws *block.Workspace) *Context {
	b := cfg.Board
	if b == nil {
		b = board.Default()
	}
	ctx := &Context{
		cfg:    cfg,
		board:  b,
		ws:     ws,
		names:  names.NewAllocator(),
		indent: strings.Repeat(" ", cfg.IndentWidth),
	}
	ctx.reset()

	ctx.types = typeChecker.NewTypeChecker(cfg).Check(ws)
	for i, d := range ctx.types.Diagnostics {
		ctx.annotate(d.BlockID, "type:"+strconv.Itoa(i), d.Warning, d.Message)
	}
	ws.Walk(func(n *block.Node) bool {
		switch n.Kind {
		case "procedures_defreturn", "procedures_defnoreturn":
			k := strings.ToLower(n.Field("NAME"))
			if _, dup := ctx.procs[k]; !dup {
				ctx.procs[k] = n
			}
		case "macro_define":
			ctx.macros[strings.ToLower(n.Field("MACRO_NAME"))] = true
		}
		return true
	})
	return ctx
}

// reset returns every pass-scoped table to its empty state.
func (ctx *Context) reset() {
	ctx.names.Reset()
	ctx.pins.Reset()
	ctx.frags.ResetAll()
	ctx.types = nil
	ctx.annotations = nil
	ctx.noteIndex = make(map[string]int)
	ctx.conflicts = nil
	ctx.procs = make(map[string]*block.Node)
	ctx.macros = make(map[string]bool)
	ctx.err = nil
}

// fail records the first fatal error of the pass. Emitters keep returning
// text after a failure; Generate discards it.
func (ctx *Context) fail(err error) {
	if ctx.err == nil {
		ctx.err = err
	}
}

func (ctx *Context) annotate(blockID, tag string, wt config.Warning, message string) {
	key := blockID + "\x00" + tag
	if i, ok := ctx.noteIndex[key]; ok {
		ctx.annotations[i].Message = message
		return
	}
	ctx.noteIndex[key] = len(ctx.annotations)
	ctx.annotations = append(ctx.annotations, Annotation{BlockID: blockID, Tag: tag, Warning: wt, Message: message})
}

// warn attaches a note to n if the warning is enabled.
func (ctx *Context) warn(n *block.Node, wt config.Warning, tag, format string, args ...any) {
	if !ctx.cfg.IsWarningEnabled(wt) {
		return
	}
	ctx.annotate(n.ID, tag, wt, fmt.Sprintf(format, args...))
}

// reservePin claims pin for n. A conflicting claim is recorded and both the
// claiming block and the block holding the first claim get a note.
func (ctx *Context) reservePin(n *block.Node, pin string, kind pins.Kind, label string) {
	if pin == "" {
		return
	}
	c := ctx.pins.Reserve(pin, kind, n.ID, label)
	if c == nil {
		return
	}
	ctx.conflicts = append(ctx.conflicts, c)
	if !ctx.cfg.IsWarningEnabled(config.WarnPinConflict) {
		return
	}
	tag := "pin:" + pin
	ctx.annotate(c.Owner, tag, config.WarnPinConflict, c.Message())
	ctx.annotate(c.Existing.Owner, tag, config.WarnPinConflict, c.ExistingMessage())
}

// checkPin warns when pin is not part of the board list stored under key.
func (ctx *Context) checkPin(n *block.Node, key, pin string) {
	if pin == "" || ctx.board.Has(key, pin) {
		return
	}
	ctx.warn(n, config.WarnExtra, "board:"+key, "Pin %s is not a %s entry of board %s.", pin, key, ctx.board.Key)
}

func (ctx *Context) include(header string) {
	ctx.frags.Put(fragments.Includes, header, "#include "+header, false)
}

// variable returns the emitted name of a user variable.
func (ctx *Context) variable(raw string) string {
	return ctx.names.Allocate(raw, names.Variable)
}

func (ctx *Context) typeOf(n *block.Node) typeChecker.Type {
	return ctx.types.TypeOf(n)
}

// ident turns a pin or port name into an identifier fragment.
func ident(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if r == '_' || (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			sb.WriteRune(r)
		} else {
			sb.WriteByte('_')
		}
	}
	return sb.String()
}
