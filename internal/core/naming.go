package core

import (
	"path/filepath"
	"strings"
)

const DefaultVendorPrefix = "_ali_"

var tagCharReplacer = strings.NewReplacer("@", "_", "/", "_")

// SanitizeTag turns a component name into a valid template tag name.
func SanitizeTag(name string, vendorPrefixes []string) string {
	tag := tagCharReplacer.Replace(name)
	for {
		stripped := tag
		for _, prefix := range vendorPrefixes {
			if prefix != "" {
				stripped = strings.TrimPrefix(stripped, prefix)
			}
		}
		if stripped == tag {
			return tag
		}
		tag = stripped
	}
}

// NpmDirName is the directory a package is copied to under the compiled npm dir.
func NpmDirName(pkgDir string) string {
	return strings.ReplaceAll(pkgDir, "@", "_")
}

// OutputBaseForPath maps a source file to its compiled location, without extension.
func OutputBaseForPath(sourcePath, outputPath, resourcePath string) (string, error) {
	rel, err := filepath.Rel(sourcePath, resourcePath)
	if err != nil {
		return "", err
	}
	base := filepath.Join(outputPath, rel)
	return strings.TrimSuffix(base, filepath.Ext(base)), nil
}
