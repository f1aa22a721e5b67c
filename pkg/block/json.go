package block

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

type jsonWorkspace struct {
	Blocks []*jsonNode `json:"blocks"`
}

type jsonNode struct {
	Type     string         `json:"type"`
	ID       string         `json:"id,omitempty"`
	Fields   map[string]any `json:"fields,omitempty"`
	Inputs   []jsonInput    `json:"inputs,omitempty"`
	Next     *jsonNode      `json:"next,omitempty"`
	Comment  string         `json:"comment,omitempty"`
	Disabled bool           `json:"disabled,omitempty"`
	Mutation *jsonMutation  `json:"mutation,omitempty"`
}

type jsonInput struct {
	Name      string    `json:"name"`
	Value     *jsonNode `json:"value,omitempty"`
	Statement *jsonNode `json:"statement,omitempty"`
}

type jsonMutation struct {
	Args      []string `json:"args,omitempty"`
	ElseIf    int      `json:"elseif,omitempty"`
	Else      bool     `json:"else,omitempty"`
	HasReturn bool     `json:"value,omitempty"`
	Items     int      `json:"items,omitempty"`
}

type decoder struct {
	seen   map[string]bool
	nextID int
}

// Decode reads a JSON workspace:
//
//	{"blocks": [{"type": "io_digitalwrite", "id": "b1",
//	             "fields": {"PIN": "PA_5"},
//	             "inputs": [{"name": "STATE", "value": {"type": "io_highlow", ...}}],
//	             "next": {...}}]}
//
// Blocks without an id are numbered; duplicate ids are rejected.
func Decode(r io.Reader) (*Workspace, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var jw jsonWorkspace
	if err := dec.Decode(&jw); err != nil {
		return nil, fmt.Errorf("decoding workspace: %w", err)
	}

	d := &decoder{seen: make(map[string]bool)}
	ws := &Workspace{}
	for i, jb := range jw.Blocks {
		n, err := d.node(jb)
		if err != nil {
			return nil, fmt.Errorf("top-level block %d: %w", i, err)
		}
		ws.Blocks = append(ws.Blocks, n)
	}
	return ws, nil
}

func DecodeBytes(data []byte) (*Workspace, error) { return Decode(bytes.NewReader(data)) }

func (d *decoder) node(jn *jsonNode) (*Node, error) {
	if jn == nil {
		return nil, nil
	}
	if jn.Type == "" {
		return nil, fmt.Errorf("block %q has no type", jn.ID)
	}

	id := jn.ID
	if id == "" {
		for {
			d.nextID++
			id = fmt.Sprintf("b%d", d.nextID)
			if !d.seen[id] {
				break
			}
		}
	}
	if d.seen[id] {
		return nil, fmt.Errorf("duplicate block id %q", id)
	}
	d.seen[id] = true

	n := &Node{ID: id, Kind: jn.Type, Comment: jn.Comment, Disabled: jn.Disabled}
	if len(jn.Fields) > 0 {
		n.Fields = make(map[string]string, len(jn.Fields))
		for name, raw := range jn.Fields {
			v, err := fieldString(raw)
			if err != nil {
				return nil, fmt.Errorf("block %s field %s: %w", id, name, err)
			}
			n.Fields[name] = v
		}
	}
	if m := jn.Mutation; m != nil {
		n.Mutation = Mutation{Args: m.Args, ElseIf: m.ElseIf, Else: m.Else, HasReturn: m.HasReturn, Items: m.Items}
	}

	for _, ji := range jn.Inputs {
		if ji.Value != nil && ji.Statement != nil {
			return nil, fmt.Errorf("block %s input %s: both value and statement given", id, ji.Name)
		}
		if n.Input(ji.Name) != nil {
			return nil, fmt.Errorf("block %s: duplicate input %s", id, ji.Name)
		}
		in := &Input{Name: ji.Name, Kind: ValueInput}
		child := ji.Value
		if ji.Statement != nil {
			in.Kind, child = StatementInput, ji.Statement
		}
		cn, err := d.node(child)
		if err != nil {
			return nil, err
		}
		in.Block = cn
		n.Inputs = append(n.Inputs, in)
	}

	next, err := d.node(jn.Next)
	if err != nil {
		return nil, err
	}
	n.Next = next
	return n, nil
}

func fieldString(raw any) (string, error) {
	switch v := raw.(type) {
	case string:
		return v, nil
	case json.Number:
		return v.String(), nil
	case bool:
		return strings.ToUpper(fmt.Sprint(v)), nil
	case nil:
		return "", nil
	}
	return "", fmt.Errorf("unsupported field value %T", raw)
}

// Encode writes ws in the format read by Decode.
func Encode(w io.Writer, ws *Workspace) error {
	jw := jsonWorkspace{}
	for _, b := range ws.Blocks {
		jw.Blocks = append(jw.Blocks, encodeNode(b))
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(jw)
}

func encodeNode(n *Node) *jsonNode {
	if n == nil {
		return nil
	}
	jn := &jsonNode{Type: n.Kind, ID: n.ID, Comment: n.Comment, Disabled: n.Disabled}
	if len(n.Fields) > 0 {
		jn.Fields = make(map[string]any, len(n.Fields))
		for k, v := range n.Fields {
			jn.Fields[k] = v
		}
	}
	m := n.Mutation
	if len(m.Args) > 0 || m.ElseIf > 0 || m.Else || m.HasReturn || m.Items > 0 {
		jn.Mutation = &jsonMutation{Args: m.Args, ElseIf: m.ElseIf, Else: m.Else, HasReturn: m.HasReturn, Items: m.Items}
	}
	for _, in := range n.Inputs {
		ji := jsonInput{Name: in.Name}
		if in.Kind == StatementInput {
			ji.Statement = encodeNode(in.Block)
		} else {
			ji.Value = encodeNode(in.Block)
		}
		jn.Inputs = append(jn.Inputs, ji)
	}
	jn.Next = encodeNode(n.Next)
	return jn
}
