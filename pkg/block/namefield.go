package block

import (
	"strconv"
	"strings"
)

// NameCategory groups name fields that refer to the same kind of entity.
type NameCategory int

const (
	VariableName NameCategory = iota
	MacroName
	ProcedureName
)

// NameField is a block field holding a user identifier.
type NameField interface {
	Name() string
	Category() NameCategory
	// Rename replaces the name when it matches old case-insensitively and
	// reports whether it did.
	Rename(old, new string) bool
}

type nameField struct {
	node     *Node
	field    string
	category NameCategory
}

func (f nameField) Name() string           { return f.node.Field(f.field) }
func (f nameField) Category() NameCategory { return f.category }

func (f nameField) Rename(old, new string) bool {
	if !strings.EqualFold(f.Name(), old) {
		return false
	}
	if f.node.Fields == nil {
		f.node.Fields = map[string]string{}
	}
	f.node.Fields[f.field] = new
	return true
}

var nameFieldKinds = map[string]nameField{
	"variables_get":           {field: "VAR", category: VariableName},
	"variables_set":           {field: "VAR", category: VariableName},
	"math_change":             {field: "VAR", category: VariableName},
	"controls_for":            {field: "VAR", category: VariableName},
	"macro_define":            {field: "MACRO_NAME", category: MacroName},
	"macro_get":               {field: "MACRO_NAME", category: MacroName},
	"procedures_defreturn":    {field: "NAME", category: ProcedureName},
	"procedures_defnoreturn":  {field: "NAME", category: ProcedureName},
	"procedures_callreturn":   {field: "NAME", category: ProcedureName},
	"procedures_callnoreturn": {field: "NAME", category: ProcedureName},
}

// NameFieldOf returns the name field owned by n, if its kind has one.
func NameFieldOf(n *Node) (NameField, bool) {
	f, ok := nameFieldKinds[n.Kind]
	if !ok {
		return nil, false
	}
	f.node = n
	return f, true
}

// Names lists the distinct names of a category in walk order. Names that
// differ only in case are reported once, with the first spelling seen.
func (ws *Workspace) Names(cat NameCategory) []string {
	var out []string
	seen := map[string]bool{}
	ws.Walk(func(n *Node) bool {
		f, ok := NameFieldOf(n)
		if !ok || f.Category() != cat || f.Name() == "" {
			return true
		}
		key := strings.ToLower(f.Name())
		if !seen[key] {
			seen[key] = true
			out = append(out, f.Name())
		}
		return true
	})
	return out
}

// Rename renames every field of the category matching old and returns how
// many fields changed.
func (ws *Workspace) Rename(cat NameCategory, old, new string) int {
	count := 0
	ws.Walk(func(n *Node) bool {
		if f, ok := NameFieldOf(n); ok && f.Category() == cat && f.Rename(old, new) {
			count++
		}
		return true
	})
	return count
}

const nameLetters = "ijkmnopqrstuvwxyzabcdefgh"

// UniqueName proposes a short name not present in the category: single
// letters first, then letters with a numeric suffix.
func (ws *Workspace) UniqueName(cat NameCategory) string {
	taken := map[string]bool{}
	for _, n := range ws.Names(cat) {
		taken[strings.ToLower(n)] = true
	}
	for suffix := 0; ; suffix++ {
		for _, l := range nameLetters {
			name := string(l)
			if suffix > 0 {
				name += strconv.Itoa(suffix)
			}
			if !taken[name] {
				return name
			}
		}
	}
}
