package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v2"

	"github.com/RostamVPN/mullvadvpn-app/internal/wfp"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#25A065"))
	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Width(14)
	persistentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFC107"))
)

// object is the printable form of a descriptor.
type object struct {
	Flavor      string  `json:"flavor" yaml:"flavor"`
	Kind        string  `json:"kind" yaml:"kind"`
	Name        string  `json:"name" yaml:"name"`
	Description string  `json:"description" yaml:"description"`
	Key         string  `json:"key" yaml:"key"`
	ProviderKey string  `json:"provider_key,omitempty" yaml:"provider_key,omitempty"`
	Weight      *uint16 `json:"weight,omitempty" yaml:"weight,omitempty"`
	Persistent  bool    `json:"persistent" yaml:"persistent"`
}

// RunShow prints the descriptors in the given format. An empty flavor
// prints all of them.
func RunShow(w io.Writer, format, flavor string) error {
	objects, err := collectObjects(flavor)
	if err != nil {
		return err
	}

	switch format {
	case "", "text":
		return renderText(w, objects)
	case "json":
		return renderJSON(w, objects)
	case "yaml":
		return renderYAML(w, objects)
	case "hcl":
		return renderHCL(w, objects)
	default:
		return fmt.Errorf("unknown format %q (want text, json, yaml or hcl)", format)
	}
}

func collectObjects(flavor string) ([]object, error) {
	flavors := wfp.Flavors()
	if flavor != "" {
		f, err := wfp.ParseFlavor(flavor)
		if err != nil {
			return nil, err
		}
		flavors = []wfp.Flavor{f}
	}

	catalog, err := wfp.BuildCatalog()
	if err != nil {
		return nil, err
	}

	objects := make([]object, 0, len(flavors))
	for _, f := range flavors {
		o := object{Flavor: f.String(), Kind: string(f.Kind())}
		switch f.Kind() {
		case wfp.KindProvider:
			p, _ := catalog.Provider(f)
			o.Name, o.Description, o.Key, o.Persistent = p.Name, p.Description, p.Key.String(), p.Persistent
		case wfp.KindSublayer:
			s, _ := catalog.Sublayer(f)
			weight := uint16(s.Weight)
			o.Name, o.Description, o.Key, o.Persistent = s.Name, s.Description, s.Key.String(), s.Persistent
			o.ProviderKey = s.ProviderKey.String()
			o.Weight = &weight
		}
		objects = append(objects, o)
	}
	return objects, nil
}

func renderText(w io.Writer, objects []object) error {
	var b strings.Builder
	for i, o := range objects {
		if i > 0 {
			b.WriteString("\n")
		}
		title := fmt.Sprintf("%s %s", o.Kind, o.Flavor)
		if o.Persistent {
			title += " " + persistentStyle.Render("(persistent)")
		}
		b.WriteString(headerStyle.Render(title) + "\n")
		row := func(label, value string) {
			b.WriteString("  " + labelStyle.Render(label) + value + "\n")
		}
		row("name", o.Name)
		row("description", o.Description)
		row("key", o.Key)
		if o.ProviderKey != "" {
			row("provider", o.ProviderKey)
		}
		if o.Weight != nil {
			row("weight", fmt.Sprintf("%d", *o.Weight))
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func renderJSON(w io.Writer, objects []object) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(objects)
}

func renderYAML(w io.Writer, objects []object) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(objects)
}

func renderHCL(w io.Writer, objects []object) error {
	f := hclwrite.NewEmptyFile()
	body := f.Body()
	for i, o := range objects {
		if i > 0 {
			body.AppendNewline()
		}
		block := body.AppendNewBlock(o.Kind, []string{o.Flavor})
		b := block.Body()
		b.SetAttributeValue("name", cty.StringVal(o.Name))
		b.SetAttributeValue("description", cty.StringVal(o.Description))
		b.SetAttributeValue("key", cty.StringVal(o.Key))
		if o.ProviderKey != "" {
			b.SetAttributeValue("provider", cty.StringVal(o.ProviderKey))
		}
		if o.Weight != nil {
			b.SetAttributeValue("weight", cty.NumberIntVal(int64(*o.Weight)))
		}
		b.SetAttributeValue("persistent", cty.BoolVal(o.Persistent))
	}
	_, err := w.Write(f.Bytes())
	return err
}
