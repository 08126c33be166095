package templates

import (
	"embed"
	"io/fs"
	"slices"
	"strings"

	"github.com/3-lines-studio/jsx2mp/internal/core"
)

//go:embed all:scaffold
var scaffoldFS embed.FS

var validPlatforms = []string{
	core.PlatformQuickApp,
	core.PlatformWeChat,
	core.PlatformAli,
	core.PlatformByteDance,
	core.PlatformBaidu,
}

func Scaffold() (fs.FS, error) {
	return fs.Sub(scaffoldFS, "scaffold")
}

func ValidPlatform(platform string) bool {
	return slices.Contains(validPlatforms, platform)
}

func Platforms() []string {
	return slices.Clone(validPlatforms)
}

type TemplateData struct {
	Platform string
}

func ProcessFilename(filename string, data TemplateData) (string, bool) {
	if before, ok := strings.CutSuffix(filename, ".tmpl"); ok {
		return before, true
	}
	return filename, false
}

func ProcessContent(content []byte, isTemplate bool, data TemplateData) []byte {
	if !isTemplate {
		return content
	}

	result := string(content)
	result = strings.ReplaceAll(result, "{{.Platform}}", data.Platform)

	return []byte(result)
}
