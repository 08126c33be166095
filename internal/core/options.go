package core

const (
	PlatformQuickApp  = "quickapp"
	PlatformWeChat    = "wechat"
	PlatformAli       = "ali"
	PlatformByteDance = "bytedance"
	PlatformBaidu     = "baidu"

	DefaultPlatform = PlatformQuickApp
)

var templateExts = map[string]string{
	PlatformQuickApp:  ".ux",
	PlatformWeChat:    ".wxml",
	PlatformAli:       ".axml",
	PlatformByteDance: ".ttml",
	PlatformBaidu:     ".swan",
}

func TemplateExt(platform string) string {
	if ext, ok := templateExts[platform]; ok {
		return ext
	}
	return ".axml"
}

type Platform struct {
	Type string
}

type Options struct {
	ResourcePath   string
	SourcePath     string
	OutputPath     string
	Platform       Platform
	DisableCopyNpm bool
	// StrictPlatformEntries turns a package without a miniapp entry for the
	// active platform into a compile error instead of a warning.
	StrictPlatformEntries bool
	VendorPrefixes        []string
	BaseComponents        []string
	// NativeComponents maps sanitized tags to the native tag they compile to.
	NativeComponents map[string]string
}

var DefaultBaseComponents = []string{
	"rax-view",
	"rax-text",
	"rax-image",
	"rax-link",
	"rax-picture",
	"rax-icon",
	"rax-textinput",
	"rax-scrollview",
	"rax-recyclerview",
	"rax-slider",
	"rax-video",
}

func DefaultOptions() Options {
	return Options{
		Platform:       Platform{Type: DefaultPlatform},
		VendorPrefixes: []string{DefaultVendorPrefix},
		BaseComponents: DefaultBaseComponents,
	}
}

func (o Options) PlatformType() string {
	if o.Platform.Type == "" {
		return DefaultPlatform
	}
	return o.Platform.Type
}

// MainField is the miniappConfig key holding the entry for the active platform.
func (o Options) MainField() string {
	if p := o.PlatformType(); p != PlatformQuickApp {
		return "main:" + p
	}
	return "main"
}

func (o Options) IsBaseComponent(tag string) bool {
	for _, c := range o.BaseComponents {
		if c == tag {
			return true
		}
	}
	return false
}

func (o Options) NativeTag(tag string) (string, bool) {
	native, ok := o.NativeComponents[tag]
	return native, ok
}
