package core

type SubComponent struct {
	TagNameMap string
	Style      string
}

type MiniappConfig struct {
	RenderSlotProps []string
	SubComponents   map[string]SubComponent
	// Entries holds the "main" and "main:<platform>" fields.
	Entries map[string]string
}

// PackageConfig is the subset of a component package's package.json the
// compiler reads.
type PackageConfig struct {
	Name    string
	Main    string
	Dir     string
	Miniapp *MiniappConfig
}

func (p *PackageConfig) IsRenderSlotProp(attr string) bool {
	if p == nil || p.Miniapp == nil {
		return false
	}
	for _, name := range p.Miniapp.RenderSlotProps {
		if name == attr {
			return true
		}
	}
	return false
}

func (p *PackageConfig) SubComponent(member string) (SubComponent, bool) {
	if p == nil || p.Miniapp == nil {
		return SubComponent{}, false
	}
	sub, ok := p.Miniapp.SubComponents[member]
	return sub, ok
}

func (p *PackageConfig) Entry(field string) (string, bool) {
	if p == nil || p.Miniapp == nil {
		return "", false
	}
	entry, ok := p.Miniapp.Entries[field]
	return entry, ok && entry != ""
}

func (p *PackageConfig) MainFile() string {
	if p.Main == "" {
		return "index.js"
	}
	return p.Main
}
